// Package store provides the process-wide keyed scalar store the Trading
// statement publishes net profit and loss into.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Backend names a store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Store is a string-valued key/value store with last-write-wins semantics.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set overwrites key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes keys; missing keys are ignored.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Keys lists keys with the given prefix in sorted order.
func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Open builds the configured backend. The returned close function releases
// any connection and is never nil.
func Open(ctx context.Context, backend Backend, addr, prefix string) (Store, func() error, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemory(), func() error { return nil }, nil
	case BackendRedis:
		client, err := Dial(ctx, addr)
		if err != nil {
			return nil, nil, err
		}
		return NewRedis(client, prefix), client.Close, nil
	}
	return nil, nil, fmt.Errorf("store: unknown backend %q", backend)
}
