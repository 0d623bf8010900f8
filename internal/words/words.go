// Package words holds themed word lists and the hint rendering used by the
// round state machine. A Bank is pure given its data; randomness comes from
// the caller so games can be replayed deterministically in tests.
package words

import (
	"math/rand"
	"sort"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// Bank maps theme names to candidate words. Unknown themes fall back to the
// default theme, so a stale client setting is a soft miss, not an error.
type Bank struct {
	themes   map[string][]string
	fallback string
}

// NewBank builds a bank around the given themes, falling back to fallback
// for unrecognized theme names.
func NewBank(themes map[string][]string, fallback string) *Bank {
	copied := make(map[string][]string, len(themes))
	for name, list := range themes {
		copied[name] = append([]string(nil), list...)
	}
	return &Bank{themes: copied, fallback: fallback}
}

// DefaultBank returns the built-in themes.
func DefaultBank() *Bank {
	return NewBank(defaultThemes, internal.DefaultTheme)
}

// AddTheme merges extra words into a theme, creating it if needed.
// Duplicates already present are kept out.
func (b *Bank) AddTheme(name string, list []string) {
	existing := b.themes[name]
	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[w] = true
	}
	for _, w := range list {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		existing = append(existing, w)
	}
	b.themes[name] = existing
}

// Themes lists the known theme names, sorted.
func (b *Bank) Themes() []string {
	names := make([]string, 0, len(b.themes))
	for name := range b.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTheme reports whether the theme exists without falling back.
func (b *Bank) HasTheme(name string) bool {
	_, ok := b.themes[name]
	return ok
}

// PickWords draws count distinct words uniformly at random from the theme's
// list, falling back to the default theme for unknown names. Lists with
// fewer than count unique words yield as many as available; that is a
// configuration problem, not a crash.
func (b *Bank) PickWords(rng *rand.Rand, theme string, count int) []string {
	list, ok := b.themes[theme]
	if !ok || len(list) == 0 {
		list = b.themes[b.fallback]
	}
	if len(list) == 0 || count <= 0 {
		return nil
	}

	selected := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for attempts := 0; len(selected) < count && attempts < 100; attempts++ {
		w := list[rng.Intn(len(list))]
		if seen[w] {
			continue
		}
		seen[w] = true
		selected = append(selected, w)
	}
	return selected
}

// HintFor renders the reveal mask for a word with the first revealedCount
// non-space characters shown literally. Token i of the result is always
// character i of the word.
func HintFor(word string, revealedCount int) string {
	return internal.RenderHint(word, internal.RevealFirst(word, revealedCount))
}
