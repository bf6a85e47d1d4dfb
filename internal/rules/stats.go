// Package rules implements the stat ledger: the only code allowed to
// change a character's health and power. Every mutation goes through the
// equip/unequip deltas so the base-plus-equipment invariant holds.
package rules

import "github.com/mimihimesama/item-simulator/internal/entities"

// Base stats assigned at character creation.
const (
	BaseHealth int64 = 500
	BasePower  int64 = 100
)

// Snapshot records an item's stat contribution as an equip-list entry.
// The snapshot is what unequip subtracts later, so the pair of deltas is
// an exact inverse even if the item definition changes in between.
func Snapshot(item *entities.Item) entities.EquippedItem {
	return entities.EquippedItem{
		ItemCode: item.Code,
		Health:   statValue(item.Stat.Health),
		Power:    statValue(item.Stat.Power),
	}
}

// ApplyEquip returns the character's health and power after adding the
// snapshot's contribution.
func ApplyEquip(health, power int64, snap entities.EquippedItem) (int64, int64) {
	return health + snap.Health, power + snap.Power
}

// ApplyUnequip returns the character's health and power after removing the
// snapshot's contribution. Exact inverse of ApplyEquip.
func ApplyUnequip(health, power int64, snap entities.EquippedItem) (int64, int64) {
	return health - snap.Health, power - snap.Power
}

func statValue(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
