package state

import (
	"testing"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(id, name string) model.FoodItem {
	return model.FoodItem{ID: id, Name: name, Calories: 100}
}

func TestCollection_AddRejectsDuplicate(t *testing.T) {
	c := NewCollection[model.FoodItem]()

	require.NoError(t, c.Add(food("1", "rice")))
	err := c.Add(food("1", "beans"))

	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "rice", got.Name)
}

func TestCollection_RemoveByID(t *testing.T) {
	c := NewCollection(food("1", "rice"), food("2", "beans"), food("3", "egg"))

	assert.True(t, c.RemoveByID("2"))
	assert.False(t, c.RemoveByID("2"))

	ids := []string{}
	for _, f := range c.List() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestCollection_ReplaceByIDKeepsPosition(t *testing.T) {
	c := NewCollection(food("1", "rice"), food("2", "beans"))

	require.NoError(t, c.ReplaceByID("1", food("1", "brown rice")))
	assert.Equal(t, "brown rice", c.List()[0].Name)

	require.ErrorIs(t, c.ReplaceByID("9", food("9", "x")), ErrNotFound)
	require.ErrorIs(t, c.ReplaceByID("1", food("2", "clash")), ErrDuplicateID)
}

func TestCollection_ListIsCopy(t *testing.T) {
	c := NewCollection(food("1", "rice"))

	list := c.List()
	list[0].Name = "mutated"

	got, _ := c.Get("1")
	assert.Equal(t, "rice", got.Name)
}

func TestCollection_Reset(t *testing.T) {
	c := NewCollection(food("1", "rice"))

	c.Reset([]model.FoodItem{food("2", "beans"), food("2", "dup"), food("3", "egg")})

	require.Equal(t, 2, c.Len())
	_, ok := c.Get("1")
	assert.False(t, ok)
}
