// Package kv implements the persistence layer on top of a gocloud.dev blob
// bucket. Records are stored as JSON documents under well-known keys, so the
// same repositories run against the in-memory driver in tests and the
// filesystem driver in deployments.
package kv

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"shophub/config"
	"shophub/internal/errors"

	"go.uber.org/fx"
)

// ErrKeyNotFound is returned when a key has no stored document.
var ErrKeyNotFound = errors.New("key not found")

// Store wraps a blob bucket with JSON document access.
type Store struct {
	bucket *blob.Bucket
}

// NewStore wraps an open bucket.
func NewStore(bucket *blob.Bucket) *Store {
	return &Store{bucket: bucket}
}

// BucketParams holds dependencies for the blob bucket, injected by Fx
type BucketParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewBucket opens the configured blob bucket and closes it on shutdown.
func NewBucket(params BucketParams) (*blob.Bucket, error) {
	cfg := params.Config.Storage

	var bucket *blob.Bucket
	var err error

	switch {
	case cfg == nil || cfg.Driver == "" || cfg.Driver == "mem":
		params.Logger.Info("Using in-memory storage bucket")
		bucket = memblob.OpenBucket(nil)

	case cfg.Driver == "file":
		if cfg.Path == "" {
			return nil, errors.New("storage path is required for file driver")
		}
		if err = os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, errors.Wrap(err, "create storage directory")
		}
		params.Logger.Info("Using file storage bucket", slog.String("path", cfg.Path))
		bucket, err = fileblob.OpenBucket(cfg.Path, nil)
		if err != nil {
			return nil, errors.Wrap(err, "open file bucket")
		}

	default:
		return nil, errors.Errorf("unknown storage driver: %s", cfg.Driver)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return bucket, nil
}

// GetJSON reads the document at key into out. Returns ErrKeyNotFound when
// the key has never been written.
func (s *Store) GetJSON(ctx context.Context, key string, out any) error {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return ErrKeyNotFound
		}

		return errors.Wrapf(err, "read %s", key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode %s", key)
	}

	return nil
}

// SetJSON writes value as the document at key, replacing any previous document.
func (s *Store) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	if err := s.bucket.WriteAll(ctx, key, data, nil); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}

	return nil
}

// Delete removes the document at key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBucket),
	fx.Provide(NewStore),
	fx.Provide(NewUserRepository),
	fx.Provide(NewAddressRepository),
	fx.Provide(NewOrderRepository),
	fx.Provide(NewAuditRepository),
	fx.Provide(NewCartRepository),
)
