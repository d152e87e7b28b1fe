// Package kv holds the key-value blob stores that back every course collection.
package kv

import (
	"context"
	"fmt"
)

// Store persists opaque blobs under string keys. A missing key is reported
// with ok == false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

func UnknownDriverError(driver string) error {
	return fmt.Errorf("unknown store driver %q", driver)
}
