package watchlist

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/watchlist/internal/domain"
)

func titles(items []*domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title()
	}
	return out
}

// isSubsequence reports whether sub appears in full in the same relative order.
func isSubsequence(sub, full []*domain.Item) bool {
	j := 0
	for _, item := range full {
		if j < len(sub) && sub[j] == item {
			j++
		}
	}
	return j == len(sub)
}

func TestNewStore_SeedState(t *testing.T) {
	s := NewStore()

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Filme 1", "Filme 2", "Filme 3"}, titles(items))

	assert.False(t, items[0].IsFavorite())
	assert.True(t, items[1].IsFavorite(), "Filme 2 is seeded as favorite")
	assert.False(t, items[2].IsFavorite())
	for _, item := range items {
		assert.False(t, item.IsWatched(), "%s should start unwatched", item.Title())
		assert.NotEmpty(t, item.ID)
	}

	assert.Equal(t, domain.FilterAll, s.Filter())
	assert.Empty(t, s.DraftTitle())
}

func TestNewStore_UniqueIDs(t *testing.T) {
	s := NewStore()
	s.AddItem("Filme 1")

	seen := make(map[string]bool)
	for _, item := range s.Items() {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestNewStore_Options(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return fixed }), WithInitialFilter(domain.FilterWatched))

	assert.Equal(t, domain.FilterWatched, s.Filter())
	for _, item := range s.Items() {
		assert.Equal(t, fixed, item.AddedAt)
	}

	s = NewStore(WithInitialFilter(domain.FilterMode(42)))
	assert.Equal(t, domain.FilterAll, s.Filter(), "invalid initial filter is ignored")
}

func TestCycleFilter_ReturnsToAll(t *testing.T) {
	s := NewStore()

	var seen []domain.FilterMode
	for i := 0; i < 3; i++ {
		seen = append(seen, s.CycleFilter())
	}

	assert.Equal(t, []domain.FilterMode{domain.FilterFavorites, domain.FilterWatched, domain.FilterAll}, seen)
	assert.Equal(t, domain.FilterAll, s.Filter())
}

func TestAddItem_UnderFavoritesFilter(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetFilter(domain.FilterFavorites))

	item := s.AddItem("X")

	assert.True(t, item.IsFavorite(), "items added while viewing favorites become favorites")
	assert.Contains(t, s.VisibleItems(), item)
}

func TestAddItem_UnderWatchedFilter(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetFilter(domain.FilterWatched))

	item := s.AddItem("Z")

	assert.False(t, item.IsFavorite())
	assert.False(t, item.IsWatched())
	assert.NotContains(t, s.VisibleItems(), item)
}

func TestAddItem_UnderAllFilter(t *testing.T) {
	s := NewStore()

	item := s.AddItem("Y")

	assert.False(t, item.IsFavorite())
	items := s.Items()
	require.Len(t, items, 4)
	assert.Same(t, item, items[len(items)-1], "new item is appended")
}

func TestAddItem_EmptyTitleAccepted(t *testing.T) {
	s := NewStore()

	item := s.AddItem("")

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "", item.Title())
}

func TestAddItem_DuplicateTitlesAreDistinct(t *testing.T) {
	s := NewStore()

	a := s.AddItem("Filme 1")
	s.ToggleWatched(a)

	items := s.Items()
	assert.False(t, items[0].IsWatched(), "seed Filme 1 is untouched")
	assert.True(t, a.IsWatched())
	assert.NotEqual(t, items[0].ID, a.ID)
}

func TestToggle_TwiceRestores(t *testing.T) {
	s := NewStore()
	item := s.Items()[1]

	origFav, origWatched := item.IsFavorite(), item.IsWatched()

	assert.True(t, s.ToggleFavorite(item))
	assert.NotEqual(t, origFav, item.IsFavorite())
	s.ToggleFavorite(item)
	assert.Equal(t, origFav, item.IsFavorite())

	assert.True(t, s.ToggleWatched(item))
	assert.NotEqual(t, origWatched, item.IsWatched())
	s.ToggleWatched(item)
	assert.Equal(t, origWatched, item.IsWatched())
}

func TestToggle_ItemNotInStore(t *testing.T) {
	s := NewStore()
	stray := domain.NewItem("elsewhere", false, time.Now())

	assert.False(t, s.ToggleFavorite(stray), "membership is reported")
	assert.True(t, stray.IsFavorite(), "the flag still flips on the instance")
	assert.Equal(t, 3, s.Len())

	assert.False(t, s.ToggleWatched(nil))
	assert.False(t, s.ToggleFavorite(nil))
}

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	item := s.Items()[1]

	require.True(t, s.RemoveItem(item))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(item))

	for i := 0; i < 3; i++ {
		assert.NotContains(t, s.VisibleItems(), item, "filter %s", s.Filter())
		s.CycleFilter()
	}

	assert.False(t, s.RemoveItem(item), "second removal is a no-op")
	assert.Equal(t, 2, s.Len())
}

func TestRemoveItem_NotPresent(t *testing.T) {
	s := NewStore()
	before := s.Items()

	assert.False(t, s.RemoveItem(domain.NewItem("Filme 1", false, time.Now())), "same title, different instance")
	assert.False(t, s.RemoveItem(nil))

	assert.Equal(t, before, s.Items())
}

func TestVisibleItems_Projection(t *testing.T) {
	s := NewStore()
	items := s.Items()
	s.ToggleWatched(items[0])
	s.ToggleWatched(items[1])
	s.AddItem("Filme 4")
	fav := s.AddItem("Filme 5")
	s.ToggleFavorite(fav)

	all := s.Items()
	for i := 0; i < 3; i++ {
		visible := s.VisibleItems()
		assert.True(t, isSubsequence(visible, all), "filter %s", s.Filter())

		switch s.Filter() {
		case domain.FilterAll:
			assert.Equal(t, all, visible)
		case domain.FilterFavorites:
			assert.Equal(t, []string{"Filme 2", "Filme 5"}, titles(visible))
			for _, item := range visible {
				assert.True(t, item.IsFavorite())
			}
		case domain.FilterWatched:
			assert.Equal(t, []string{"Filme 1", "Filme 2"}, titles(visible))
			for _, item := range visible {
				assert.True(t, item.IsWatched())
			}
		}
		s.CycleFilter()
	}
}

func TestVisibleItems_FreshSlice(t *testing.T) {
	s := NewStore()

	first := s.VisibleItems()
	first[0] = nil

	assert.NotNil(t, s.VisibleItems()[0], "callers cannot corrupt store state")
}

func TestDraftTitle_Verbatim(t *testing.T) {
	s := NewStore()

	s.SetDraftTitle("abc")
	assert.Equal(t, "abc", s.DraftTitle())

	s.SetDraftTitle("  spaced <b> ")
	assert.Equal(t, "  spaced <b> ", s.DraftTitle())
}

func TestCommitDraft(t *testing.T) {
	s := NewStore()
	s.SetDraftTitle("Filme 4")

	item := s.CommitDraft()

	assert.Equal(t, "Filme 4", item.Title())
	assert.Empty(t, s.DraftTitle())
	assert.Same(t, item, s.Items()[3])
}

func TestSetFilter_Invalid(t *testing.T) {
	s := NewStore()

	err := s.SetFilter(domain.FilterMode(-1))

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	assert.Equal(t, domain.FilterAll, s.Filter())
}

func TestItemByID(t *testing.T) {
	s := NewStore()
	want := s.Items()[2]

	got, err := s.ItemByID(want.ID)
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = s.ItemByID("missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	s.RemoveItem(want)
	_, err = s.ItemByID(want.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestToggle_ConcurrentReaders(t *testing.T) {
	s := NewStore()
	item := s.Items()[0]

	const rounds = 1000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			s.ToggleFavorite(item)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = item.IsFavorite()
			_ = s.VisibleItems()
			_ = s.Stats()
		}
	}()
	wg.Wait()

	assert.False(t, item.IsFavorite(), "an even number of toggles restores the flag")
}

func TestStats(t *testing.T) {
	s := NewStore()
	s.ToggleWatched(s.Items()[0])
	require.NoError(t, s.SetFilter(domain.FilterFavorites))
	s.AddItem("fav")

	assert.Equal(t, Stats{Total: 4, Favorites: 2, Watched: 1}, s.Stats())
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	s := NewStore()

	var got []domain.Change
	unsubscribe := s.Subscribe(domain.ObserverFunc(func(c domain.Change) {
		got = append(got, c)
	}))

	item := s.AddItem("A")
	s.ToggleFavorite(item)
	s.ToggleWatched(item)
	s.CycleFilter()
	s.SetDraftTitle("draft")
	s.SetDraftTitle("draft") // unchanged, no event
	s.RemoveItem(item)
	s.RemoveItem(item) // absent, no event

	kinds := make([]domain.ChangeKind, len(got))
	for i, c := range got {
		kinds[i] = c.Kind
	}
	assert.Equal(t, []domain.ChangeKind{
		domain.ChangeAdded,
		domain.ChangeFavoriteToggled,
		domain.ChangeWatchedToggled,
		domain.ChangeFilter,
		domain.ChangeDraft,
		domain.ChangeRemoved,
	}, kinds)
	assert.Same(t, item, got[0].Item)
	assert.Equal(t, domain.FilterFavorites, got[3].Filter)

	unsubscribe()
	s.AddItem("B")
	assert.Len(t, got, 6, "no events after unsubscribe")
}

func TestSubscribe_ObserverCanReadStore(t *testing.T) {
	s := NewStore()

	var visible int
	s.Subscribe(domain.ObserverFunc(func(domain.Change) {
		visible = len(s.VisibleItems())
	}))

	s.AddItem("A")
	assert.Equal(t, 4, visible, "observers run outside the lock")
}
