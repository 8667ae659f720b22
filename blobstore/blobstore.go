// Package blobstore persists window images outside the order record. Orders
// keep only scheme-prefixed references; the prefix ("file://", "s3://")
// identifies which backend holds the bytes.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is returned when a reference does not resolve to stored bytes.
var ErrNotFound = errors.New("blobstore: not found")

// Store writes and reads opaque image blobs. Put returns a reference that
// any Store built from the same configuration can later resolve.
type Store interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
	// Delete removes a blob; resolving its reference afterwards yields
	// ErrNotFound. Used by the retention sweep, never by order saves.
	Delete(ctx context.Context, ref string) error
	// List returns every reference the backend currently holds.
	List(ctx context.Context) ([]string, error)
}

// Open builds the store selected by IMAGE_STORE ("file", default, or "s3").
func Open(ctx context.Context) (Store, error) {
	switch backend := os.Getenv("IMAGE_STORE"); backend {
	case "", "file":
		dir := os.Getenv("IMAGE_DIR")
		if dir == "" {
			dir = "saved_data/images"
		}
		return NewFileStore(dir)
	case "s3":
		return NewS3Store(ctx, S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    os.Getenv("S3_REGION"),
			Bucket:    os.Getenv("S3_BUCKET"),
			AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		})
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORE backend %q", backend)
	}
}

// splitRef separates a reference into scheme and backend-local key.
func splitRef(ref string) (scheme, key string, err error) {
	scheme, key, ok := strings.Cut(ref, "://")
	if !ok {
		return "", "", fmt.Errorf("malformed blob reference %q", ref)
	}
	return scheme, key, nil
}
