package models

import "github.com/uptrace/bun"

// ExtendedStats holds per-minute striking and grappling metrics, keyed 1:1 by
// fighter_id. Percentages are stored as fractions of 1.
type ExtendedStats struct {
	bun.BaseModel `bun:"table:extended_stats,alias:es"`

	FighterID   int      `bun:"fighter_id,pk" json:"fighter_id"`
	Stance      *string  `bun:"stance" json:"stance,omitempty"`
	SLpM        *float64 `bun:"slpm" json:"slpm,omitempty"`
	StrAcc      *float64 `bun:"str_acc" json:"str_acc,omitempty"`
	SApM        *float64 `bun:"sapm" json:"sapm,omitempty"`
	StrDef      *float64 `bun:"str_def" json:"str_def,omitempty"`
	TDAvg       *float64 `bun:"td_avg" json:"td_avg,omitempty"`
	TDAcc       *float64 `bun:"td_acc" json:"td_acc,omitempty"`
	TDDef       *float64 `bun:"td_def" json:"td_def,omitempty"`
	SubAvg      *float64 `bun:"sub_avg" json:"sub_avg,omitempty"`
	LastUpdated string   `bun:"last_updated,notnull,type:date,nullzero,default:current_date" json:"last_updated,omitempty"`
}
