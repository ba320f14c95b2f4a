package models

import "github.com/uptrace/bun"

// Fighter is the aggregate root: identity and career summary for one fighter.
// The three stats records are optional 1:1 extensions sharing fighter_id.
type Fighter struct {
	bun.BaseModel `bun:"table:fighters,alias:f"`

	FighterID     int     `bun:"fighter_id,pk,autoincrement" json:"fighter_id"`
	Name          *string `bun:"name,unique:uq_name_nickname_surname" json:"name,omitempty"`
	Nickname      *string `bun:"nickname,unique:uq_name_nickname_surname" json:"nickname,omitempty"`
	Surname       *string `bun:"surname,unique:uq_name_nickname_surname" json:"surname,omitempty"`
	Country       *string `bun:"country" json:"country,omitempty"`
	WeightClass   *string `bun:"weight_class" json:"weight_class,omitempty"`
	Wins          *int    `bun:"wins" json:"wins,omitempty"`
	Loss          *int    `bun:"loss" json:"loss,omitempty"`
	Draw          *int    `bun:"draw" json:"draw,omitempty"`
	CurrentStreak *int    `bun:"current_streak" json:"current_streak,omitempty"`
	LastFightDate *string `bun:"last_fight_date,type:date" json:"last_fight_date,omitempty"`
	LastUpdated   string  `bun:"last_updated,notnull,type:date,nullzero,default:current_date" json:"last_updated,omitempty"`

	BaseStats     *BaseStats     `bun:"rel:has-one,join:fighter_id=fighter_id" json:"base_stats,omitempty"`
	ExtendedStats *ExtendedStats `bun:"rel:has-one,join:fighter_id=fighter_id" json:"extended_stats,omitempty"`
	FightsResults *FightsResults `bun:"rel:has-one,join:fighter_id=fighter_id" json:"fights_results,omitempty"`
}
