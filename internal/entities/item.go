package entities

// Item is a shared item definition. Characters reference items by code;
// equipping never clones the record.
type Item struct {
	Code      int64    `json:"item_code"`
	Name      string   `json:"item_name"`
	Stat      ItemStat `json:"item_stat"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

// ItemStat holds an item's stat contributions. Absent fields contribute
// zero.
type ItemStat struct {
	Health *int64 `json:"health,omitempty"`
	Power  *int64 `json:"power,omitempty"`
}
