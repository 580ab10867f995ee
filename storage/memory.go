package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryMirror keeps blobs in a map. Used when Redis is not configured and
// in tests.
type MemoryMirror struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{blobs: make(map[string][]byte)}
}

func (mm *MemoryMirror) Put(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	mm.mu.Lock()
	mm.blobs[key] = data
	mm.mu.Unlock()
	return nil
}

func (mm *MemoryMirror) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	mm.mu.RLock()
	data, ok := mm.blobs[key]
	mm.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (mm *MemoryMirror) Delete(_ context.Context, key string) error {
	mm.mu.Lock()
	delete(mm.blobs, key)
	mm.mu.Unlock()
	return nil
}
