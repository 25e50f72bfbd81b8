package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	haystack := []string{"//java/com/foo:foo", "//java/com/foo:fo", "//java/com/bar:bar", ""}
	assert.Equal(t, []string{"//java/com/foo:foo", "//java/com/foo:fo"}, Suggest("//java/com/foo:fooo", haystack, 2))
	assert.Empty(t, Suggest("//completely:different", haystack, 2))
}

func TestPrettyPrintSuggestion(t *testing.T) {
	haystack := []string{"//a:b", "//a:c"}
	// A substitution costs two edits.
	assert.Equal(t, "\nMaybe you meant //a:b or //a:c ?", PrettyPrintSuggestion("//a:d", haystack, 2))
	assert.Equal(t, "", PrettyPrintSuggestion("//a:d", haystack, 1))
	assert.Equal(t, "\nMaybe you meant //a:b ?", PrettyPrintSuggestion("//a:bb", []string{"//a:b"}, 1))
	assert.Equal(t, "", PrettyPrintSuggestion("//x:y", haystack, 1))
}
