package store

import "fmt"

// tableInfo describes one table of the fighter aggregate: its SQL name, the
// alias it carries inside the extended projection, and its column set.
type tableInfo struct {
	name    string
	alias   string
	columns map[string]struct{}
}

// statTables is the fixed, ordered list scanned by resolveField. Fields are
// assumed not to collide across tables; the first match wins.
var statTables = []tableInfo{
	{
		name:  "fighters",
		alias: "f",
		columns: map[string]struct{}{
			"fighter_id": {}, "name": {}, "nickname": {}, "surname": {},
			"country": {}, "weight_class": {}, "wins": {}, "loss": {},
			"draw": {}, "current_streak": {}, "last_fight_date": {},
			"last_updated": {},
		},
	},
	{
		name:  "base_stats",
		alias: "base_stats",
		columns: map[string]struct{}{
			"weight": {}, "height": {}, "reach": {}, "age": {},
		},
	},
	{
		name:  "extended_stats",
		alias: "extended_stats",
		columns: map[string]struct{}{
			"stance": {}, "slpm": {}, "str_acc": {}, "sapm": {},
			"str_def": {}, "td_avg": {}, "td_acc": {}, "td_def": {},
			"sub_avg": {},
		},
	},
	{
		name:  "fights_results",
		alias: "fights_results",
		columns: map[string]struct{}{
			"win_by_ko_tko": {}, "loss_by_ko_tko": {}, "win_by_sub": {},
			"loss_by_sub": {}, "win_by_dec": {}, "loss_by_dec": {},
			"non_contest": {},
		},
	},
}

// resolveField returns the table owning the named column.
func resolveField(name string) (tableInfo, error) {
	for _, t := range statTables {
		if _, ok := t.columns[name]; ok {
			return t, nil
		}
	}
	return tableInfo{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}
