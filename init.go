package main

import (
	"context"

	"github.com/nilecart/jtexpress/internal/config"
	"github.com/nilecart/jtexpress/internal/telemetry"
	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/nilecart/jtexpress/pkg/shipping/jtexpress"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initService(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) shipping.Service {
	return jtexpress.New(cfg.JTExpress(), logger, tracer)
}

// bootstrap wires config, logging, tracing, and the adapter for a CLI
// command. The returned cleanup flushes logs and pending spans.
func bootstrap(ctx context.Context) (shipping.Service, *config.Config, *otelzap.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer")
		tracer = nil
		tracerShutdown = func(context.Context) error { return nil }
	}

	service := initService(cfg, logger, tracer)

	cleanup := func() {
		tracerShutdown(ctx)
		logger.Sync()
	}
	return service, cfg, logger, cleanup, nil
}
