package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfightdb/fighterapi/models"
)

func TestBuildWhere(t *testing.T) {
	conds, err := BuildWhere([]Cond{{"country", "Brazil"}, {"wins", 10}})
	require.NoError(t, err)
	assert.Len(t, conds, 2)

	_, err = BuildWhere([]Cond{{"country", "Brazil"}, {"power_level", 9001}})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	// fighter_id and last_updated are not filterable.
	_, err = BuildWhere([]Cond{{"fighter_id", 1}})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = BuildWhere([]Cond{{"last_updated", "2024-01-01"}})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFighterFilterConds(t *testing.T) {
	f := &FighterFilter{
		Country: ptr("USA"),
		Wins:    ptr(12),
	}
	conds := f.Conds()
	require.Len(t, conds, 2)
	assert.Equal(t, Cond{"country", "USA"}, conds[0])
	assert.Equal(t, Cond{"wins", 12}, conds[1])

	assert.Empty(t, (&FighterFilter{}).Conds())
}

func TestFighterFilterApply(t *testing.T) {
	dst := &models.Fighter{
		Name:    ptr("Old"),
		Country: ptr("USA"),
		Wins:    ptr(10),
	}

	patch := &FighterFilter{Wins: ptr(11), CurrentStreak: ptr(3)}
	cols := patch.apply(dst)

	assert.ElementsMatch(t, []string{"wins", "current_streak"}, cols)
	assert.Equal(t, 11, *dst.Wins)
	assert.Equal(t, 3, *dst.CurrentStreak)
	// Absent fields stay put.
	assert.Equal(t, "Old", *dst.Name)
	assert.Equal(t, "USA", *dst.Country)
}

func TestResolveField(t *testing.T) {
	cases := map[string]string{
		"wins":          "fighters",
		"country":       "fighters",
		"age":           "base_stats",
		"reach":         "base_stats",
		"slpm":          "extended_stats",
		"td_avg":        "extended_stats",
		"win_by_ko_tko": "fights_results",
		"non_contest":   "fights_results",
	}
	for field, table := range cases {
		ti, err := resolveField(field)
		require.NoError(t, err, field)
		assert.Equal(t, table, ti.name, field)
	}

	_, err := resolveField("no_such_field")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
