package models

import "github.com/uptrace/bun"

// FightsResults tallies fight outcomes by method, keyed 1:1 by fighter_id.
type FightsResults struct {
	bun.BaseModel `bun:"table:fights_results,alias:fr"`

	FighterID   int    `bun:"fighter_id,pk" json:"fighter_id"`
	WinByKoTko  *int   `bun:"win_by_ko_tko" json:"win_by_ko_tko,omitempty"`
	LossByKoTko *int   `bun:"loss_by_ko_tko" json:"loss_by_ko_tko,omitempty"`
	WinBySub    *int   `bun:"win_by_sub" json:"win_by_sub,omitempty"`
	LossBySub   *int   `bun:"loss_by_sub" json:"loss_by_sub,omitempty"`
	WinByDec    *int   `bun:"win_by_dec" json:"win_by_dec,omitempty"`
	LossByDec   *int   `bun:"loss_by_dec" json:"loss_by_dec,omitempty"`
	NonContest  *int   `bun:"non_contest" json:"non_contest,omitempty"`
	LastUpdated string `bun:"last_updated,notnull,type:date,nullzero,default:current_date" json:"last_updated,omitempty"`
}
