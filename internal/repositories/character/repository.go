// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/mimihimesama/item-simulator/internal/repositories/character Repository

import (
	"context"

	"github.com/mimihimesama/item-simulator/internal/entities"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create persists a new character. Name uniqueness is enforced by the
	// store at write time.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the name or id is already taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by id
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByName retrieves a character by its unique name
	// Returns errors.NotFound if no character has the name
	GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error)

	// Update writes a character with compare-and-swap semantics: the stored
	// version must equal the version on the supplied character, and the
	// write bumps it by one.
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.Aborted if the stored version no longer matches
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character record and its index entries. Item
	// definitions are untouched.
	// Returns errors.NotFound if the character doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List retrieves all characters ordered by ascending id
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// MaxAllocatedID reports the highest stored character id, zero when no
	// character exists. Plain signature so the repository satisfies
	// idgen.MaxIDReader and backs the id allocator.
	MaxAllocatedID(ctx context.Context) (int64, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// GetByNameInput defines the input for getting a character by name
type GetByNameInput struct {
	Name string
}

// GetByNameOutput defines the output for getting a character by name
type GetByNameOutput struct {
	Character *entities.Character
}

// UpdateInput defines the input for updating a character. The character's
// Version field must hold the version that was read.
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput defines the output for updating a character. Character is
// the stored copy with the bumped version.
type UpdateOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the output for deleting a character. Character is
// the record as it was before deletion.
type DeleteOutput struct {
	Character *entities.Character
}

// ListInput defines the input for listing characters
type ListInput struct{}

// ListOutput defines the output for listing characters, ordered by
// ascending id
type ListOutput struct {
	Characters []*entities.Character
}
