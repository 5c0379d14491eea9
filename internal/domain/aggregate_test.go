package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	records := []MergedRecord{
		{District: "Lucknow", Counts: map[string]*int{"NDRF": IntPtr(5), "SDRF": IntPtr(0)}},
		{District: "Kanpur", Counts: map[string]*int{}},
		{District: "Agra", Counts: map[string]*int{"NDRF": IntPtr(2), "SDRF": IntPtr(3)}},
	}

	totals := Aggregate(records, DefaultCategories())

	assert.Equal(t, Totals{"NDRF": 7, "SDRF": 3, "PAC": 0}, totals)
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil, DefaultCategories())
	assert.Equal(t, Totals{"NDRF": 0, "SDRF": 0, "PAC": 0}, totals)
}

func TestAggregate_Deterministic(t *testing.T) {
	records := []MergedRecord{
		{Counts: map[string]*int{"NDRF": IntPtr(1), "PAC": IntPtr(4)}},
		{Counts: map[string]*int{"NDRF": IntPtr(2)}},
	}
	first := Aggregate(records, DefaultCategories())
	second := Aggregate(records, DefaultCategories())
	assert.Equal(t, first, second)
}

func TestStyleFor(t *testing.T) {
	for _, c := range DefaultCategories() {
		s := StyleFor(c)
		assert.Equal(t, c.Color, s.FillColor)
		assert.Equal(t, "black", s.Color)
		assert.InDelta(t, 1.5, s.Weight, 1e-9)
		assert.InDelta(t, 1.0, s.FillOpacity, 1e-9)
	}

	b := BoundaryStyle()
	assert.Empty(t, b.FillColor)
	assert.Zero(t, b.FillOpacity)
	assert.InDelta(t, 2.0, b.Weight, 1e-9)
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	assert.Equal(t, []string{"NDRF", "SDRF", "PAC"}, CategoryNames(cats))

	visible := 0
	for _, c := range cats {
		if c.DefaultVisible {
			visible++
		}
	}
	assert.Equal(t, 1, visible)
	assert.True(t, cats[0].DefaultVisible)
	assert.Equal(t, "green", cats[1].Color)
	assert.Equal(t, "yellow", cats[2].Color)
}
