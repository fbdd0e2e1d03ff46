package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Store persists the roster document as flat JSON. The legacy formats of the
// file (a bare class→students map, or class entries without the students
// wrapper) are upgraded once at load time; nothing downstream ever sees them.
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

func (s *Store) Load() (*File, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewFile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	f, err := decodeFile(raw)
	if err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	return f, nil
}

func (s *Store) Save(f *File) error {
	if f.Classes == nil {
		f.Classes = make(map[string]*Class)
	}
	if f.Settings.RoundFolderFormat == "" {
		f.Settings.RoundFolderFormat = "{class_name}-round{round_number}"
	}
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode roster file: %w", err)
	}
	if err := os.WriteFile(s.path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write roster file: %w", err)
	}
	return nil
}

func decodeFile(raw []byte) (*File, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	if classesRaw, ok := probe["classes"]; ok {
		f := NewFile()
		var classes map[string]json.RawMessage
		if err := json.Unmarshal(classesRaw, &classes); err != nil {
			return nil, err
		}
		for name, cr := range classes {
			f.Classes[name] = upgradeClass(cr)
		}
		if cur, ok := probe["current_class"]; ok {
			_ = json.Unmarshal(cur, &f.CurrentClass)
		}
		if st, ok := probe["settings"]; ok {
			_ = json.Unmarshal(st, &f.Settings)
		}
		normalizeCurrent(f)
		return f, nil
	}

	// Legacy top level: the document itself is the class map.
	f := NewFile()
	for name, cr := range probe {
		f.Classes[name] = upgradeClass(cr)
	}
	normalizeCurrent(f)
	return f, nil
}

// upgradeClass tolerates both the wrapped class shape and the legacy bare
// name→username map. Undecodable entries become empty classes rather than
// load failures.
func upgradeClass(raw json.RawMessage) *Class {
	var c Class
	if err := json.Unmarshal(raw, &c); err == nil && c.Students != nil {
		return &c
	}
	var students map[string]string
	if err := json.Unmarshal(raw, &students); err == nil {
		return &Class{Students: students}
	}
	return &Class{Students: make(map[string]string)}
}

func normalizeCurrent(f *File) {
	if _, ok := f.Classes[f.CurrentClass]; ok && f.CurrentClass != "" {
		return
	}
	f.CurrentClass = ""
	names := make([]string, 0, len(f.Classes))
	for n := range f.Classes {
		names = append(names, n)
	}
	if len(names) > 0 {
		sort.Strings(names)
		f.CurrentClass = names[0]
	}
}
