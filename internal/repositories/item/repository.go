// Package item provides the interface for item definition persistence
package item

//go:generate mockgen -destination=mock/mock_repository.go -package=itemmock github.com/mimihimesama/item-simulator/internal/repositories/item Repository

import (
	"context"

	"github.com/mimihimesama/item-simulator/internal/entities"
)

// Repository defines the interface for item definition persistence
type Repository interface {
	// Create persists a new item definition. Code uniqueness is enforced
	// by the store at write time.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the code is already taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an item definition by code
	// Returns errors.NotFound if the item doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update overwrites an existing item definition
	// Returns errors.NotFound if the item doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// List retrieves all item definitions ordered by ascending code
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating an item
type CreateInput struct {
	Item *entities.Item
}

// CreateOutput defines the output for creating an item
type CreateOutput struct {
	Item *entities.Item
}

// GetInput defines the input for getting an item
type GetInput struct {
	Code int64
}

// GetOutput defines the output for getting an item
type GetOutput struct {
	Item *entities.Item
}

// UpdateInput defines the input for updating an item
type UpdateInput struct {
	Item *entities.Item
}

// UpdateOutput defines the output for updating an item
type UpdateOutput struct {
	Item *entities.Item
}

// ListInput defines the input for listing items
type ListInput struct{}

// ListOutput defines the output for listing items, ordered by ascending
// code
type ListOutput struct {
	Items []*entities.Item
}
