package cli

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestions caps how many candidates PrettyPrintSuggestion will list.
const maxSuggestions = 5

// Suggest returns the items in haystack within maxDistance edits of needle, closest first.
// Ties are broken alphabetically so the output is stable.
func Suggest(needle string, haystack []string, maxDistance int) []string {
	r := []rune(needle)
	options := make([]suggestion, 0, len(haystack))
	for _, straw := range haystack {
		if straw == "" {
			continue
		}
		if distance := levenshtein.DistanceForStrings(r, []rune(straw), levenshtein.DefaultOptions); distance <= maxDistance {
			options = append(options, suggestion{s: straw, dist: distance})
		}
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].dist != options[j].dist {
			return options[i].dist < options[j].dist
		}
		return options[i].s < options[j].s
	})
	ret := make([]string, len(options))
	for i, o := range options {
		ret[i] = o.s
	}
	return ret
}

// PrettyPrintSuggestion produces a single "did you mean" message for the given needle,
// or the empty string if nothing is close enough.
func PrettyPrintSuggestion(needle string, haystack []string, maxDistance int) string {
	options := Suggest(needle, haystack, maxDistance)
	if len(options) == 0 {
		return ""
	} else if len(options) > maxSuggestions {
		options = options[:maxSuggestions]
	}
	if len(options) == 1 {
		return "\nMaybe you meant " + options[0] + " ?"
	}
	// Leave a space before punctuation so the labels can be selected without it.
	return "\nMaybe you meant " + strings.Join(options[:len(options)-1], " , ") + " or " + options[len(options)-1] + " ?"
}

type suggestion struct {
	s    string
	dist int
}
