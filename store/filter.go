package store

import (
	"fmt"

	"github.com/openfightdb/fighterapi/models"
)

// Cond is one column = value predicate against the fighters table.
type Cond struct {
	Column string
	Value  any
}

// filterColumns is the closed set of fighter columns a filter may reference.
// fighter_id and last_updated are deliberately excluded from filtering.
var filterColumns = map[string]struct{}{
	"name":            {},
	"nickname":        {},
	"surname":         {},
	"country":         {},
	"weight_class":    {},
	"wins":            {},
	"loss":            {},
	"draw":            {},
	"current_streak":  {},
	"last_fight_date": {},
}

// BuildWhere validates every condition column against the fighters schema and
// returns the predicate list unchanged. An unknown column is a configuration
// error, not a transient one.
func BuildWhere(conds []Cond) ([]Cond, error) {
	for _, c := range conds {
		if _, ok := filterColumns[c.Column]; !ok {
			return nil, fmt.Errorf("%w: %q in fighters", ErrUnknownColumn, c.Column)
		}
	}
	return conds, nil
}

// FighterFilter is the all-fields-optional shape used both for search
// predicates and for partial-update payloads.
type FighterFilter struct {
	Name          *string `json:"name" query:"name"`
	Nickname      *string `json:"nickname" query:"nickname"`
	Surname       *string `json:"surname" query:"surname"`
	Country       *string `json:"country" query:"country"`
	WeightClass   *string `json:"weight_class" query:"weight_class"`
	Wins          *int    `json:"wins" query:"wins"`
	Loss          *int    `json:"loss" query:"loss"`
	Draw          *int    `json:"draw" query:"draw"`
	CurrentStreak *int    `json:"current_streak" query:"current_streak"`
	LastFightDate *string `json:"last_fight_date" query:"last_fight_date"`
}

// Conds drops unset fields and returns the remaining column/value pairs.
func (f *FighterFilter) Conds() []Cond {
	var cs []Cond
	if f.Name != nil {
		cs = append(cs, Cond{"name", *f.Name})
	}
	if f.Nickname != nil {
		cs = append(cs, Cond{"nickname", *f.Nickname})
	}
	if f.Surname != nil {
		cs = append(cs, Cond{"surname", *f.Surname})
	}
	if f.Country != nil {
		cs = append(cs, Cond{"country", *f.Country})
	}
	if f.WeightClass != nil {
		cs = append(cs, Cond{"weight_class", *f.WeightClass})
	}
	if f.Wins != nil {
		cs = append(cs, Cond{"wins", *f.Wins})
	}
	if f.Loss != nil {
		cs = append(cs, Cond{"loss", *f.Loss})
	}
	if f.Draw != nil {
		cs = append(cs, Cond{"draw", *f.Draw})
	}
	if f.CurrentStreak != nil {
		cs = append(cs, Cond{"current_streak", *f.CurrentStreak})
	}
	if f.LastFightDate != nil {
		cs = append(cs, Cond{"last_fight_date", *f.LastFightDate})
	}
	return cs
}

// apply copies the set fields onto a fighter row and reports which columns
// changed. Absent fields are left untouched, not nulled.
func (f *FighterFilter) apply(dst *models.Fighter) []string {
	var cols []string
	if f.Name != nil {
		dst.Name = f.Name
		cols = append(cols, "name")
	}
	if f.Nickname != nil {
		dst.Nickname = f.Nickname
		cols = append(cols, "nickname")
	}
	if f.Surname != nil {
		dst.Surname = f.Surname
		cols = append(cols, "surname")
	}
	if f.Country != nil {
		dst.Country = f.Country
		cols = append(cols, "country")
	}
	if f.WeightClass != nil {
		dst.WeightClass = f.WeightClass
		cols = append(cols, "weight_class")
	}
	if f.Wins != nil {
		dst.Wins = f.Wins
		cols = append(cols, "wins")
	}
	if f.Loss != nil {
		dst.Loss = f.Loss
		cols = append(cols, "loss")
	}
	if f.Draw != nil {
		dst.Draw = f.Draw
		cols = append(cols, "draw")
	}
	if f.CurrentStreak != nil {
		dst.CurrentStreak = f.CurrentStreak
		cols = append(cols, "current_streak")
	}
	if f.LastFightDate != nil {
		dst.LastFightDate = f.LastFightDate
		cols = append(cols, "last_fight_date")
	}
	return cols
}

// model builds a fresh fighter row from the set fields.
func (f *FighterFilter) model() *models.Fighter {
	fighter := &models.Fighter{}
	f.apply(fighter)
	return fighter
}

// BaseStatsFilter mirrors BaseStats with every field optional.
type BaseStatsFilter struct {
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
	Reach  *float64 `json:"reach"`
	Age    *int     `json:"age"`
}

func (f *BaseStatsFilter) model(fighterID int, now string) *models.BaseStats {
	return &models.BaseStats{
		FighterID:   fighterID,
		Weight:      f.Weight,
		Height:      f.Height,
		Reach:       f.Reach,
		Age:         f.Age,
		LastUpdated: now,
	}
}

// ExtendedStatsFilter mirrors ExtendedStats with every field optional.
type ExtendedStatsFilter struct {
	Stance *string  `json:"stance"`
	SLpM   *float64 `json:"slpm"`
	StrAcc *float64 `json:"str_acc"`
	SApM   *float64 `json:"sapm"`
	StrDef *float64 `json:"str_def"`
	TDAvg  *float64 `json:"td_avg"`
	TDAcc  *float64 `json:"td_acc"`
	TDDef  *float64 `json:"td_def"`
	SubAvg *float64 `json:"sub_avg"`
}

func (f *ExtendedStatsFilter) model(fighterID int, now string) *models.ExtendedStats {
	return &models.ExtendedStats{
		FighterID:   fighterID,
		Stance:      f.Stance,
		SLpM:        f.SLpM,
		StrAcc:      f.StrAcc,
		SApM:        f.SApM,
		StrDef:      f.StrDef,
		TDAvg:       f.TDAvg,
		TDAcc:       f.TDAcc,
		TDDef:       f.TDDef,
		SubAvg:      f.SubAvg,
		LastUpdated: now,
	}
}

// FightsResultsFilter mirrors FightsResults with every field optional.
type FightsResultsFilter struct {
	WinByKoTko  *int `json:"win_by_ko_tko"`
	LossByKoTko *int `json:"loss_by_ko_tko"`
	WinBySub    *int `json:"win_by_sub"`
	LossBySub   *int `json:"loss_by_sub"`
	WinByDec    *int `json:"win_by_dec"`
	LossByDec   *int `json:"loss_by_dec"`
	NonContest  *int `json:"non_contest"`
}

func (f *FightsResultsFilter) model(fighterID int, now string) *models.FightsResults {
	return &models.FightsResults{
		FighterID:   fighterID,
		WinByKoTko:  f.WinByKoTko,
		LossByKoTko: f.LossByKoTko,
		WinBySub:    f.WinBySub,
		LossBySub:   f.LossBySub,
		WinByDec:    f.WinByDec,
		LossByDec:   f.LossByDec,
		NonContest:  f.NonContest,
		LastUpdated: now,
	}
}

// ExtendedFighterFilter adds the optional nested extension payloads used by
// the extended create/update paths.
type ExtendedFighterFilter struct {
	FighterFilter
	BaseStats     *BaseStatsFilter     `json:"base_stats"`
	ExtendedStats *ExtendedStatsFilter `json:"extended_stats"`
	FightsResults *FightsResultsFilter `json:"fights_results"`
}
