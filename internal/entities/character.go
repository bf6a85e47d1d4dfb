// Package entities defines the stored records for characters and items
package entities

// Character is the stored character record. Health and Power are derived
// values: base stats plus the sum of the equipped-item snapshots. They are
// only ever mutated through the rules package deltas.
type Character struct {
	ID            int64          `json:"character_id"`
	Name          string         `json:"name"`
	Health        int64          `json:"health"`
	Power         int64          `json:"power"`
	EquippedItems []EquippedItem `json:"equipped_items"`

	// Version increments on every write. Updates are compare-and-swap on
	// this field, so two concurrent equips cannot silently drop one.
	Version   int64 `json:"version"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// EquippedItem is one entry in a character's equip list. Health and Power
// are a snapshot of the item's contribution taken at equip time; unequip
// subtracts the snapshot rather than re-reading the item definition, so
// later edits to the item cannot skew the removal delta.
type EquippedItem struct {
	ItemCode int64 `json:"item_code"`
	Health   int64 `json:"health"`
	Power    int64 `json:"power"`
}

// HasEquipped reports whether an item with the given code is in the equip
// list. Items are compared by code, not by reference.
func (c *Character) HasEquipped(code int64) bool {
	for _, e := range c.EquippedItems {
		if e.ItemCode == code {
			return true
		}
	}
	return false
}
