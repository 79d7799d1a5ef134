package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMode_Cycle(t *testing.T) {
	assert.Equal(t, FilterFavorites, FilterAll.Next())
	assert.Equal(t, FilterWatched, FilterFavorites.Next())
	assert.Equal(t, FilterAll, FilterWatched.Next())
}

func TestFilterMode_Labels(t *testing.T) {
	assert.Equal(t, "Mostrar Todos", FilterAll.Label())
	assert.Equal(t, "Mostrar Favoritos", FilterFavorites.Label())
	assert.Equal(t, "Mostrar Já Vistos", FilterWatched.Label())
}

func TestParseFilterMode(t *testing.T) {
	for _, mode := range []FilterMode{FilterAll, FilterFavorites, FilterWatched} {
		got, err := ParseFilterMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	got, err := ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, got)

	_, err = ParseFilterMode("starred")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilterMode_Matches(t *testing.T) {
	plain := NewItem("plain", false, time.Now())
	fav := NewItem("fav", true, time.Now())
	seen := NewItem("seen", false, time.Now())
	seen.FlipWatched()

	assert.True(t, FilterAll.Matches(plain))
	assert.False(t, FilterFavorites.Matches(plain))
	assert.True(t, FilterFavorites.Matches(fav))
	assert.False(t, FilterWatched.Matches(fav))
	assert.True(t, FilterWatched.Matches(seen))
}

func TestNewItem_Defaults(t *testing.T) {
	at := time.Unix(1700000000, 0)
	item := NewItem("Filme", false, at)

	assert.Equal(t, "Filme", item.Title())
	assert.Equal(t, "Filme", item.FilterValue())
	assert.False(t, item.IsFavorite())
	assert.False(t, item.IsWatched())
	assert.Equal(t, at, item.AddedAt)
	assert.Len(t, item.ID, 36)
}

func TestItem_Flip(t *testing.T) {
	item := NewItem("Filme", true, time.Now())

	assert.False(t, item.FlipFavorite())
	assert.False(t, item.IsFavorite())
	assert.True(t, item.FlipFavorite())

	assert.True(t, item.FlipWatched())
	assert.True(t, item.IsWatched())
	assert.False(t, item.FlipWatched())
}
