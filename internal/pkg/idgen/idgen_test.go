package idgen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimihimesama/item-simulator/internal/pkg/idgen"
)

type stubReader struct {
	maxID int64
	err   error
}

func (r *stubReader) MaxAllocatedID(_ context.Context) (int64, error) {
	return r.maxID, r.err
}

func TestSequenceAllocator_StartsAtOne(t *testing.T) {
	alloc := idgen.NewSequence(&stubReader{maxID: 0})

	id, err := alloc.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestSequenceAllocator_IncrementsMax(t *testing.T) {
	alloc := idgen.NewSequence(&stubReader{maxID: 7})

	id, err := alloc.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestSequenceAllocator_ReaderError(t *testing.T) {
	alloc := idgen.NewSequence(&stubReader{err: errors.New("store down")})

	_, err := alloc.NextID(context.Background())
	assert.Error(t, err)
}

func TestFixed_ReturnsSequenceThenExhausts(t *testing.T) {
	alloc := &idgen.Fixed{IDs: []int64{3, 5}}

	id, err := alloc.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	id, err = alloc.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	_, err = alloc.NextID(context.Background())
	assert.Error(t, err)
}
