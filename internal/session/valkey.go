// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// valkeyKey holds the session document for hosted console deployments.
	valkeyKey = "educonsole:session"

	valkeyTimeout = 5 * time.Second
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), valkeyTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// ValkeyStorage persists the session document in Valkey. Used when the
// console is hosted rather than run from an operator's workstation, so a
// restart or a second replica picks up the same session.
type ValkeyStorage struct {
	client *redis.Client
}

// NewValkeyStorage creates a Valkey-backed storage.
func NewValkeyStorage(client *redis.Client) *ValkeyStorage {
	return &ValkeyStorage{client: client}
}

// Read implements Storage.
func (v *ValkeyStorage) Read() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyTimeout)
	defer cancel()

	data, err := v.client.Get(ctx, valkeyKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get: %w", err)
	}
	return data, nil
}

// Write implements Storage. The document has no TTL: expiry is the access
// token's concern, discovered via 401.
func (v *ValkeyStorage) Write(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyTimeout)
	defer cancel()

	if err := v.client.Set(ctx, valkeyKey, data, 0).Err(); err != nil {
		return fmt.Errorf("valkey set: %w", err)
	}
	return nil
}

// Delete implements Storage.
func (v *ValkeyStorage) Delete() error {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyTimeout)
	defer cancel()

	if err := v.client.Del(ctx, valkeyKey).Err(); err != nil {
		return fmt.Errorf("valkey del: %w", err)
	}
	return nil
}
