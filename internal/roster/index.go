package roster

import (
	"sort"
	"strings"
)

// Entry is one roster row as seen by the resolver.
type Entry struct {
	Name     string
	Username string
}

// Index is an immutable snapshot of one class's student map, taken at the
// moment a resolution or download pass starts. Later roster edits do not
// affect pairings already resolved against it. Entries are sorted by name so
// enumeration (and therefore tie-breaking between equally good matches) is
// deterministic.
type Index struct {
	entries []Entry
}

func NewIndex(students map[string]string) *Index {
	ix := &Index{entries: make([]Entry, 0, len(students))}
	for name, username := range students {
		name = strings.TrimSpace(name)
		username = SanitizeUsername(username)
		if name == "" || username == "" {
			continue
		}
		ix.entries = append(ix.entries, Entry{Name: name, Username: username})
	}
	sort.Slice(ix.entries, func(i, j int) bool { return ix.entries[i].Name < ix.entries[j].Name })
	return ix
}

func (ix *Index) Len() int { return len(ix.entries) }

func (ix *Index) Entries() []Entry {
	return append([]Entry(nil), ix.entries...)
}
