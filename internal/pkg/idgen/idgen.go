// Package idgen provides character identifier allocation
package idgen

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/mimihimesama/item-simulator/internal/pkg/idgen Allocator

// Allocator hands out the next character identifier.
type Allocator interface {
	NextID(ctx context.Context) (int64, error)
}

// MaxIDReader reports the highest character id currently stored, zero when
// no character exists.
type MaxIDReader interface {
	MaxAllocatedID(ctx context.Context) (int64, error)
}

// SequenceAllocator allocates max stored id + 1. The allocation is
// advisory: two concurrent calls can return the same id, and the store's
// uniqueness enforcement at write time arbitrates between them.
type SequenceAllocator struct {
	reader MaxIDReader
}

// NewSequence creates an allocator backed by a max-id read from the store
func NewSequence(reader MaxIDReader) *SequenceAllocator {
	return &SequenceAllocator{reader: reader}
}

// NextID returns the next character id, starting at 1
func (a *SequenceAllocator) NextID(ctx context.Context) (int64, error) {
	maxID, err := a.reader.MaxAllocatedID(ctx)
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// Fixed returns a predetermined sequence of ids for tests
type Fixed struct {
	IDs  []int64
	next int
}

// NextID returns the next predetermined id
func (f *Fixed) NextID(_ context.Context) (int64, error) {
	if f.next >= len(f.IDs) {
		return 0, errors.New("idgen: fixed allocator exhausted")
	}
	id := f.IDs[f.next]
	f.next++
	return id, nil
}
