package internal

import "strings"

// RenderHint builds the space-joined reveal mask for a word. Spaces pass
// through as-is; positions present in revealed show the real character;
// everything else is an underscore.
func RenderHint(word string, revealed map[int]bool) string {
	if word == "" {
		return ""
	}
	runes := []rune(word)
	tokens := make([]string, len(runes))
	for i, c := range runes {
		switch {
		case c == ' ':
			tokens[i] = " "
		case revealed[i]:
			tokens[i] = string(c)
		default:
			tokens[i] = "_"
		}
	}
	return strings.Join(tokens, " ")
}

// RevealFirst returns the reveal set covering the first count non-space
// characters of word. Growing count only ever adds positions.
func RevealFirst(word string, count int) map[int]bool {
	revealed := make(map[int]bool)
	shown := 0
	for i, c := range []rune(word) {
		if shown >= count {
			break
		}
		if c == ' ' {
			continue
		}
		revealed[i] = true
		shown++
	}
	return revealed
}

// UnrevealedPositions lists the letter indices (spaces excluded) still
// hidden by the mask.
func UnrevealedPositions(word string, revealed map[int]bool) []int {
	var positions []int
	for i, c := range []rune(word) {
		if c == ' ' || revealed[i] {
			continue
		}
		positions = append(positions, i)
	}
	return positions
}
