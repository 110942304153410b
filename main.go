package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nilecart/jtexpress/internal/server"
	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "jtexpress",
	Short:   "J&T Express Egypt shipping bridge - signed order API adapter",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP facade",
	RunE:  runServe,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a shipping order from a JSON file",
	RunE:  runCreate,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <txlogisticId>",
	Short: "Cancel a shipping order",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

var trackCmd = &cobra.Command{
	Use:   "track <billCode> [billCode...]",
	Short: "Track one or more waybills",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrack,
}

var ordersCmd = &cobra.Command{
	Use:   "orders <serialNumber> [serialNumber...]",
	Short: "Get order details by serial number",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOrders,
}

var printCmd = &cobra.Command{
	Use:   "print <billCode>",
	Short: "Generate a printable waybill",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

var (
	createFile   string
	cancelReason string
	printSize    string
	printCode    int
)

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "path to the order JSON file")
	createCmd.MarkFlagRequired("file")
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
	printCmd.Flags().StringVar(&printSize, "size", "", "print size code")
	printCmd.Flags().IntVar(&printCode, "code", 0, "print format code")

	rootCmd.AddCommand(serveCmd, createCmd, cancelCmd, trackCmd, ordersCmd, printCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, cfg, logger, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting J&T Express bridge",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
	)

	srv := server.New(server.Config{Port: cfg.Port}, service, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, _, _, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := os.ReadFile(createFile)
	if err != nil {
		return fmt.Errorf("reading order file: %w", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return fmt.Errorf("parsing order file: %w", err)
	}

	result, err := service.CreateOrder(ctx, orderDataFrom(flat))
	if err != nil {
		return err
	}
	return printResult(result)
}

func runCancel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, _, _, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := service.CancelOrder(ctx, args[0], cancelReason)
	if err != nil {
		return err
	}
	return printResult(result)
}

// runTrack fans out over the requested waybills concurrently; one failed
// trace does not abort the others.
func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, _, logger, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	results := make(map[string]*shipping.Result, len(args))
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)
	for _, billCode := range args {
		g.Go(func() error {
			result, err := service.TrackOrder(ctx, billCode)
			if err != nil {
				logger.Warn("Trace failed",
					zap.String("bill_code", billCode),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			results[billCode] = result
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return printJSON(results)
}

func runOrders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, _, _, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := service.GetOrders(ctx, args...)
	if err != nil {
		return err
	}
	return printResult(result)
}

func runPrint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, _, _, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := service.PrintOrder(ctx, args[0], &shipping.PrintOptions{
		PrintSize: printSize,
		PrintCode: printCode,
	})
	if err != nil {
		return err
	}
	return printResult(result)
}

// orderDataFrom splits a flat JSON order into structured sections plus
// builder overrides, mirroring the HTTP facade's request shape.
func orderDataFrom(flat map[string]any) *shipping.OrderData {
	data := &shipping.OrderData{Overrides: map[string]any{}}
	for key, value := range flat {
		switch key {
		case "id":
			data.ID = fmt.Sprintf("%v", value)
		case "total":
			data.Total = fmt.Sprintf("%v", value)
		case "shippingAddress":
			if addr, ok := value.(map[string]any); ok {
				data.ShippingAddress = addr
			}
		case "orderItems":
			if items, ok := value.([]any); ok {
				data.Items = items
			}
		default:
			data.Overrides[key] = value
		}
	}
	return data
}

func printResult(result *shipping.Result) error {
	return printJSON(result)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
