// Package equipment defines the interface for character and item
// operations, including the equip/unequip transitions.
package equipment

import (
	"context"

	"github.com/mimihimesama/item-simulator/internal/entities"
)

// Service defines the interface for character and item operations
type Service interface {
	// Character lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Equipment transitions
	ListEquippedItems(ctx context.Context, input *ListEquippedItemsInput) (*ListEquippedItemsOutput, error)
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)

	// Item definition lifecycle
	CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error)
	ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error)
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	UpdateItem(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error)
}

// CharacterSummary is the listing projection: id and name only
type CharacterSummary struct {
	CharacterID int64
	Name        string
}

// EquippedItemView is one equip-list entry resolved for display
type EquippedItemView struct {
	ItemCode int64
	ItemName string
}

// CharacterView is the character state returned by equip and unequip
type CharacterView struct {
	Name          string
	Health        int64
	Power         int64
	EquippedItems []EquippedItemView
}

// ItemSummary is the item listing projection: code and name only
type ItemSummary struct {
	ItemCode int64
	ItemName string
}

// ItemStatPatch carries the optional stat fields of an item update. Only
// supplied fields overwrite.
type ItemStatPatch struct {
	Health *int64
	Power  *int64
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	Name string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	CharacterID int64
	Name        string
}

// ListCharactersInput defines the request for listing characters
type ListCharactersInput struct{}

// ListCharactersOutput defines the response for listing characters,
// ordered by ascending id
type ListCharactersOutput struct {
	Characters []CharacterSummary
}

// GetCharacterInput defines the request for getting character detail
type GetCharacterInput struct {
	CharacterID int64
}

// GetCharacterOutput defines the response for getting character detail
type GetCharacterOutput struct {
	Name   string
	Health int64
	Power  int64
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID int64
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Name string
}

// ListEquippedItemsInput defines the request for listing a character's
// equipped items
type ListEquippedItemsInput struct {
	CharacterID int64
}

// ListEquippedItemsOutput defines the response for listing a character's
// equipped items
type ListEquippedItemsOutput struct {
	Items []EquippedItemView
}

// EquipItemInput defines the request for equipping an item
type EquipItemInput struct {
	CharacterID int64
	ItemCode    int64
}

// EquipItemOutput defines the response for equipping an item
type EquipItemOutput struct {
	Character CharacterView
}

// UnequipItemInput defines the request for unequipping an item
type UnequipItemInput struct {
	CharacterID int64
	ItemCode    int64
}

// UnequipItemOutput defines the response for unequipping an item
type UnequipItemOutput struct {
	Character CharacterView
}

// CreateItemInput defines the request for creating an item definition
type CreateItemInput struct {
	ItemCode int64
	ItemName string
	ItemStat entities.ItemStat
}

// CreateItemOutput defines the response for creating an item definition
type CreateItemOutput struct {
	Item *entities.Item
}

// ListItemsInput defines the request for listing item definitions
type ListItemsInput struct{}

// ListItemsOutput defines the response for listing item definitions,
// ordered by ascending code
type ListItemsOutput struct {
	Items []ItemSummary
}

// GetItemInput defines the request for getting item detail
type GetItemInput struct {
	ItemCode int64
}

// GetItemOutput defines the response for getting item detail
type GetItemOutput struct {
	Item *entities.Item
}

// UpdateItemInput defines the request for a partial item update. Nil
// fields are left as stored.
type UpdateItemInput struct {
	ItemCode int64
	ItemName *string
	ItemStat *ItemStatPatch
}

// UpdateItemOutput defines the response for updating an item definition
type UpdateItemOutput struct {
	Item *entities.Item
}
