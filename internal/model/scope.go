package model

import "time"

// SearchDirectory is one root directory registered for candidate scanning.
// Position preserves the operator's insertion order.
type SearchDirectory struct {
	AddedAt  time.Time
	Path     string
	ID       int64
	Position int
}

// SearchScope is an ordered set of search directories. Insertion order is
// preserved and duplicate paths are rejected.
type SearchScope struct {
	dirs []string
	seen map[string]struct{}
}

// NewSearchScope builds a scope from the given directories, dropping
// duplicates while keeping first-insertion order.
func NewSearchScope(dirs ...string) *SearchScope {
	s := &SearchScope{seen: make(map[string]struct{})}
	for _, dir := range dirs {
		s.Add(dir)
	}
	return s
}

// Add appends a directory to the scope. It returns false if the directory
// is already present.
func (s *SearchScope) Add(dir string) bool {
	if _, ok := s.seen[dir]; ok {
		return false
	}
	s.seen[dir] = struct{}{}
	s.dirs = append(s.dirs, dir)
	return true
}

// Remove deletes a directory from the scope, preserving the order of the
// remaining entries. It returns false if the directory was not present.
func (s *SearchScope) Remove(dir string) bool {
	if _, ok := s.seen[dir]; !ok {
		return false
	}
	delete(s.seen, dir)
	for i, d := range s.dirs {
		if d == dir {
			s.dirs = append(s.dirs[:i], s.dirs[i+1:]...)
			break
		}
	}
	return true
}

// Dirs returns the directories in insertion order.
func (s *SearchScope) Dirs() []string {
	out := make([]string, len(s.dirs))
	copy(out, s.dirs)
	return out
}

// Len returns the number of directories in the scope.
func (s *SearchScope) Len() int {
	return len(s.dirs)
}
