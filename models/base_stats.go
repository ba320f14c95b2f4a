package models

import "github.com/uptrace/bun"

// BaseStats holds a fighter's physical attributes, keyed 1:1 by fighter_id.
type BaseStats struct {
	bun.BaseModel `bun:"table:base_stats,alias:bs"`

	FighterID   int      `bun:"fighter_id,pk" json:"fighter_id"`
	Weight      *float64 `bun:"weight" json:"weight,omitempty"`
	Height      *float64 `bun:"height" json:"height,omitempty"`
	Reach       *float64 `bun:"reach" json:"reach,omitempty"`
	Age         *int     `bun:"age" json:"age,omitempty"`
	LastUpdated string   `bun:"last_updated,notnull,type:date,nullzero,default:current_date" json:"last_updated,omitempty"`
}
