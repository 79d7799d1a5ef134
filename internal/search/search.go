package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mmcdole/watchlist/internal/domain"
)

// Match is an item that survived a filter query
type Match struct {
	Item           *domain.Item
	MatchedIndexes []int // Rune positions in the title that matched (for highlighting)
}

// titleSource implements sahilm/fuzzy.Source over folded titles
type titleSource []string

func (t titleSource) String(i int) string { return t[i] }
func (t titleSource) Len() int            { return len(t) }

// Fold lowercases s and strips diacritics so "Já" matches "ja".
func Fold(s string) string {
	folded, _ := foldMapped(s)
	return folded
}

// foldMapped folds s one rune at a time. origin[i] is the rune position in
// s that produced rune i of the folded string, so match positions can be
// mapped back to the title as displayed. Combining marks fold to nothing,
// which keeps precomposed and decomposed input equivalent.
func foldMapped(s string) (string, []int) {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

	var b strings.Builder
	origin := make([]int, 0, len(s))
	pos := 0
	for _, r := range s {
		piece, _, err := transform.String(strip, string(r))
		if err != nil {
			piece = string(r)
		}
		for _, fr := range strings.ToLower(piece) {
			b.WriteRune(fr)
			origin = append(origin, pos)
		}
		pos++
	}
	return b.String(), origin
}

// Filter narrows items to those fuzzily matching query.
// Results keep the order of items; an empty query matches everything.
func Filter(query string, items []*domain.Item) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(items))
		for i, item := range items {
			matches[i] = Match{Item: item}
		}
		return matches
	}

	source := make(titleSource, len(items))
	origins := make([][]int, len(items))
	for i, item := range items {
		source[i], origins[i] = foldMapped(item.FilterValue())
	}

	found := sfuzzy.FindFrom(Fold(query), source)

	// Keep list order rather than score order
	sort.Slice(found, func(i, j int) bool { return found[i].Index < found[j].Index })

	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Item:           items[m.Index],
			MatchedIndexes: titleIndexes(runeIndexes(m.Str, m.MatchedIndexes), origins[m.Index]),
		}
	}
	return matches
}

// Similar returns the items whose titles are close to title: equal after
// folding, or within a length-scaled edit distance.
func Similar(title string, items []*domain.Item) []*domain.Item {
	folded := Fold(strings.TrimSpace(title))
	if folded == "" {
		return nil
	}

	maxDist := allowedTypos(utf8.RuneCountInString(folded))

	var similar []*domain.Item
	for _, item := range items {
		other := Fold(strings.TrimSpace(item.Title()))
		if other == "" {
			continue
		}
		if other == folded || fuzzy.LevenshteinDistance(folded, other) <= maxDist {
			similar = append(similar, item)
		}
	}
	return similar
}

// allowedTypos returns the edit distance tolerated for a title of the given length
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// titleIndexes maps rune positions in a folded title back to the original
// title, dropping duplicates
func titleIndexes(folded []int, origin []int) []int {
	if len(folded) == 0 {
		return nil
	}
	out := make([]int, 0, len(folded))
	last := -1
	for _, idx := range folded {
		if idx < 0 || idx >= len(origin) {
			continue
		}
		if o := origin[idx]; o != last {
			out = append(out, o)
			last = o
		}
	}
	return out
}

// runeIndexes converts byte offsets in s to rune positions
func runeIndexes(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if b < 0 || b > len(s) {
			continue
		}
		out = append(out, utf8.RuneCountInString(s[:b]))
	}
	return out
}
