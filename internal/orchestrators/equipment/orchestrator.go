// Package equipment implements the equipment state machine: character and
// item lifecycle plus the equip/unequip transitions.
package equipment

import (
	"context"
	"strings"

	"github.com/mimihimesama/item-simulator/internal/entities"
	"github.com/mimihimesama/item-simulator/internal/errors"
	"github.com/mimihimesama/item-simulator/internal/pkg/idgen"
	characterrepo "github.com/mimihimesama/item-simulator/internal/repositories/character"
	itemrepo "github.com/mimihimesama/item-simulator/internal/repositories/item"
	"github.com/mimihimesama/item-simulator/internal/rules"
	"github.com/mimihimesama/item-simulator/internal/services/equipment"
)

const (
	maxCharacterNameLength = 50
	maxItemNameLength      = 15
)

// Config holds the dependencies for the equipment orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	ItemRepo      itemrepo.Repository
	IDAllocator   idgen.Allocator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.IDAllocator == nil {
		vb.RequiredField("IDAllocator")
	}

	return vb.Build()
}

// Orchestrator implements the equipment.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	itemRepo      itemrepo.Repository
	idAllocator   idgen.Allocator
}

// New creates a new equipment orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		itemRepo:      cfg.ItemRepo,
		idAllocator:   cfg.IDAllocator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ equipment.Service = (*Orchestrator)(nil)

// Character lifecycle

// CreateCharacter allocates the next id and stores a character with base
// stats and an empty equip list
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *equipment.CreateCharacterInput) (*equipment.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxLength("name", name, maxCharacterNameLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	// Friendly pre-check; the store's SETNX on the name index is what
	// actually arbitrates under concurrency.
	if _, err := o.characterRepo.GetByName(ctx, characterrepo.GetByNameInput{Name: name}); err == nil {
		return nil, errors.AlreadyExistsf("character name %q is already in use", name)
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrapf(err, "failed to check character name")
	}

	id, err := o.idAllocator.NextID(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate character id")
	}

	char := &entities.Character{
		ID:            id,
		Name:          name,
		Health:        rules.BaseHealth,
		Power:         rules.BasePower,
		EquippedItems: []entities.EquippedItem{},
		Version:       1,
	}

	created, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char})
	if err != nil {
		return nil, err
	}

	return &equipment.CreateCharacterOutput{
		CharacterID: created.Character.ID,
		Name:        created.Character.Name,
	}, nil
}

// ListCharacters returns all characters ordered by ascending id,
// projected to id and name
func (o *Orchestrator) ListCharacters(ctx context.Context, _ *equipment.ListCharactersInput) (*equipment.ListCharactersOutput, error) {
	listOutput, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	summaries := make([]equipment.CharacterSummary, 0, len(listOutput.Characters))
	for _, char := range listOutput.Characters {
		summaries = append(summaries, equipment.CharacterSummary{
			CharacterID: char.ID,
			Name:        char.Name,
		})
	}

	return &equipment.ListCharactersOutput{Characters: summaries}, nil
}

// GetCharacter returns one character's name and derived stats
func (o *Orchestrator) GetCharacter(ctx context.Context, input *equipment.GetCharacterInput) (*equipment.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	char := getOutput.Character
	return &equipment.GetCharacterOutput{
		Name:   char.Name,
		Health: char.Health,
		Power:  char.Power,
	}, nil
}

// DeleteCharacter removes a character record and its equip list. Item
// definitions are untouched.
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *equipment.DeleteCharacterInput) (*equipment.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	deleted, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &equipment.DeleteCharacterOutput{Name: deleted.Character.Name}, nil
}

// Equipment transitions

// ListEquippedItems returns a character's equip list with item names
// joined from the item store
func (o *Orchestrator) ListEquippedItems(ctx context.Context, input *equipment.ListEquippedItemsInput) (*equipment.ListEquippedItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	views, err := o.resolveEquippedItems(ctx, getOutput.Character.EquippedItems)
	if err != nil {
		return nil, err
	}

	return &equipment.ListEquippedItemsOutput{Items: views}, nil
}

// EquipItem adds an item's stat contribution to a character and appends
// the snapshot to the equip list. The write is compare-and-swap: a
// concurrent modification surfaces as a conflict instead of silently
// losing one equip.
func (o *Orchestrator) EquipItem(ctx context.Context, input *equipment.EquipItemInput) (*equipment.EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	if char.HasEquipped(input.ItemCode) {
		return nil, errors.FailedPreconditionf("item %d is already equipped", input.ItemCode)
	}

	itemOutput, err := o.itemRepo.Get(ctx, itemrepo.GetInput{Code: input.ItemCode})
	if err != nil {
		return nil, err
	}

	snap := rules.Snapshot(itemOutput.Item)
	char.Health, char.Power = rules.ApplyEquip(char.Health, char.Power, snap)
	char.EquippedItems = append(char.EquippedItems, snap)

	updateOutput, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char})
	if err != nil {
		return nil, err
	}

	view, err := o.characterView(ctx, updateOutput.Character)
	if err != nil {
		return nil, err
	}

	return &equipment.EquipItemOutput{Character: view}, nil
}

// UnequipItem subtracts the stat snapshot recorded at equip time and
// removes the entry from the equip list
func (o *Orchestrator) UnequipItem(ctx context.Context, input *equipment.UnequipItemInput) (*equipment.UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	idx := -1
	for i, snap := range char.EquippedItems {
		if snap.ItemCode == input.ItemCode {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errors.FailedPreconditionf("item %d is not equipped", input.ItemCode)
	}

	// The snapshot, not a fresh item lookup: the removal delta must equal
	// what was added at equip time.
	snap := char.EquippedItems[idx]
	char.Health, char.Power = rules.ApplyUnequip(char.Health, char.Power, snap)
	char.EquippedItems = append(char.EquippedItems[:idx], char.EquippedItems[idx+1:]...)

	updateOutput, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char})
	if err != nil {
		return nil, err
	}

	view, err := o.characterView(ctx, updateOutput.Character)
	if err != nil {
		return nil, err
	}

	return &equipment.UnequipItemOutput{Character: view}, nil
}

// Item definition lifecycle

// CreateItem stores a new item definition. Code uniqueness is enforced by
// the store.
func (o *Orchestrator) CreateItem(ctx context.Context, input *equipment.CreateItemInput) (*equipment.CreateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.ItemName)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("item_name", name, vb)
	errors.ValidateMaxLength("item_name", name, maxItemNameLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	it := &entities.Item{
		Code: input.ItemCode,
		Name: name,
		Stat: input.ItemStat,
	}

	created, err := o.itemRepo.Create(ctx, itemrepo.CreateInput{Item: it})
	if err != nil {
		return nil, err
	}

	return &equipment.CreateItemOutput{Item: created.Item}, nil
}

// ListItems returns all item definitions ordered by ascending code,
// projected to code and name
func (o *Orchestrator) ListItems(ctx context.Context, _ *equipment.ListItemsInput) (*equipment.ListItemsOutput, error) {
	listOutput, err := o.itemRepo.List(ctx, itemrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items")
	}

	summaries := make([]equipment.ItemSummary, 0, len(listOutput.Items))
	for _, it := range listOutput.Items {
		summaries = append(summaries, equipment.ItemSummary{
			ItemCode: it.Code,
			ItemName: it.Name,
		})
	}

	return &equipment.ListItemsOutput{Items: summaries}, nil
}

// GetItem returns one item definition
func (o *Orchestrator) GetItem(ctx context.Context, input *equipment.GetItemInput) (*equipment.GetItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.itemRepo.Get(ctx, itemrepo.GetInput{Code: input.ItemCode})
	if err != nil {
		return nil, err
	}

	return &equipment.GetItemOutput{Item: getOutput.Item}, nil
}

// UpdateItem applies a partial update: only supplied fields overwrite,
// and within item_stat only supplied stat fields overwrite. Equip-list
// snapshots on characters are deliberately untouched.
func (o *Orchestrator) UpdateItem(ctx context.Context, input *equipment.UpdateItemInput) (*equipment.UpdateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.itemRepo.Get(ctx, itemrepo.GetInput{Code: input.ItemCode})
	if err != nil {
		return nil, err
	}
	it := getOutput.Item

	if input.ItemName != nil {
		name := strings.TrimSpace(*input.ItemName)
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("item_name", name, vb)
		errors.ValidateMaxLength("item_name", name, maxItemNameLength, vb)
		if err := vb.Build(); err != nil {
			return nil, err
		}
		it.Name = name
	}

	if input.ItemStat != nil {
		if input.ItemStat.Health != nil {
			it.Stat.Health = input.ItemStat.Health
		}
		if input.ItemStat.Power != nil {
			it.Stat.Power = input.ItemStat.Power
		}
	}

	updated, err := o.itemRepo.Update(ctx, itemrepo.UpdateInput{Item: it})
	if err != nil {
		return nil, err
	}

	return &equipment.UpdateItemOutput{Item: updated.Item}, nil
}

// characterView projects a character for equip/unequip responses
func (o *Orchestrator) characterView(ctx context.Context, char *entities.Character) (equipment.CharacterView, error) {
	views, err := o.resolveEquippedItems(ctx, char.EquippedItems)
	if err != nil {
		return equipment.CharacterView{}, err
	}

	return equipment.CharacterView{
		Name:          char.Name,
		Health:        char.Health,
		Power:         char.Power,
		EquippedItems: views,
	}, nil
}

// resolveEquippedItems joins equip-list snapshots against the item store
// for display names. Item definitions are never deleted, so a missing one
// means the store is corrupt.
func (o *Orchestrator) resolveEquippedItems(ctx context.Context, snaps []entities.EquippedItem) ([]equipment.EquippedItemView, error) {
	views := make([]equipment.EquippedItemView, 0, len(snaps))
	for _, snap := range snaps {
		getOutput, err := o.itemRepo.Get(ctx, itemrepo.GetInput{Code: snap.ItemCode})
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.Internalf("equipped item %d is missing from the item store", snap.ItemCode)
			}
			return nil, errors.Wrapf(err, "failed to resolve equipped item %d", snap.ItemCode)
		}
		views = append(views, equipment.EquippedItemView{
			ItemCode: snap.ItemCode,
			ItemName: getOutput.Item.Name,
		})
	}
	return views, nil
}
