package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchScopeKeepsInsertionOrder(t *testing.T) {
	s := NewSearchScope("/archive/b", "/archive/a", "/archive/c")
	assert.Equal(t, []string{"/archive/b", "/archive/a", "/archive/c"}, s.Dirs())
}

func TestSearchScopeRejectsDuplicates(t *testing.T) {
	s := NewSearchScope()
	assert.True(t, s.Add("/archive/a"))
	assert.False(t, s.Add("/archive/a"))
	assert.Equal(t, 1, s.Len())
}

func TestSearchScopeRemove(t *testing.T) {
	s := NewSearchScope("/a", "/b", "/c")

	assert.True(t, s.Remove("/b"))
	assert.False(t, s.Remove("/b"))
	assert.Equal(t, []string{"/a", "/c"}, s.Dirs())

	// A removed directory can be re-added, at the end.
	assert.True(t, s.Add("/b"))
	assert.Equal(t, []string{"/a", "/c", "/b"}, s.Dirs())
}

func TestMatchResultMeets(t *testing.T) {
	assert.True(t, MatchResult{Path: "/a/x.jpg", Score: 90}.Meets(90))
	assert.False(t, MatchResult{Path: "/a/x.jpg", Score: 89}.Meets(90))
	assert.False(t, MatchResult{Score: 100}.Meets(90))
}
