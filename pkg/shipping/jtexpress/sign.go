package jtexpress

import (
	"crypto/md5"
	"encoding/base64"
	"strconv"
	"time"
)

// The provider verifies requests against base64-encoded raw MD5 digests of
// plainly concatenated secrets. This is message authentication by contract,
// not cryptography: the exact construction must be reproduced bit-for-bit
// or the provider rejects the request. Do not substitute a stronger hash.

// BizContentDigest computes the digest embedded inside signed business
// payloads: base64(md5(customerCode ++ customerPwd ++ privateKey)).
func BizContentDigest(customerCode, customerPwd, privateKey string) string {
	sum := md5.Sum([]byte(customerCode + customerPwd + privateKey))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// HeaderDigest computes the per-request header digest over the serialized
// bizContent body: base64(md5(bizContent ++ privateKey)).
func HeaderDigest(bizContent, privateKey string) string {
	sum := md5.Sum([]byte(bizContent + privateKey))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Timestamp returns the millisecond epoch string the provider expects in
// the request header.
func Timestamp() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
