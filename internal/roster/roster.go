package roster

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode"
)

var (
	ErrClassExists   = errors.New("class already exists")
	ErrClassNotFound = errors.New("class not found")
	ErrNoCurrent     = errors.New("no class selected")
	ErrEmptyStudent  = errors.New("student name and username are required")
)

// Class is one coaching group: metadata plus the real-name → username map.
type Class struct {
	CreatedDate string            `json:"created_date"`
	Description string            `json:"description"`
	Students    map[string]string `json:"students"`
}

type Settings struct {
	RoundFolderFormat string `json:"round_folder_format"`
}

// File is the on-disk roster document (classes.json).
type File struct {
	Classes      map[string]*Class `json:"classes"`
	CurrentClass string            `json:"current_class"`
	Settings     Settings          `json:"settings"`
}

func NewFile() *File {
	return &File{
		Classes:  make(map[string]*Class),
		Settings: Settings{RoundFolderFormat: "{class_name}-round{round_number}"},
	}
}

func (f *File) Class(name string) (*Class, bool) {
	c, ok := f.Classes[name]
	return c, ok
}

// Current returns the currently selected class.
func (f *File) Current() (*Class, error) {
	if strings.TrimSpace(f.CurrentClass) == "" {
		return nil, ErrNoCurrent
	}
	c, ok := f.Classes[f.CurrentClass]
	if !ok {
		return nil, ErrClassNotFound
	}
	return c, nil
}

func (f *File) CreateClass(name, description string, now time.Time) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("class name is required")
	}
	if _, exists := f.Classes[name]; exists {
		return nil, ErrClassExists
	}
	c := &Class{
		CreatedDate: now.Format("2006-01-02"),
		Description: strings.TrimSpace(description),
		Students:    make(map[string]string),
	}
	if f.Classes == nil {
		f.Classes = make(map[string]*Class)
	}
	f.Classes[name] = c
	f.CurrentClass = name
	return c, nil
}

func (f *File) DeleteClass(name string) error {
	if _, ok := f.Classes[name]; !ok {
		return ErrClassNotFound
	}
	delete(f.Classes, name)
	if f.CurrentClass == name {
		f.CurrentClass = ""
		for _, n := range f.ClassNames() {
			f.CurrentClass = n
			break
		}
	}
	return nil
}

func (f *File) SetDescription(name, description string) error {
	c, ok := f.Classes[name]
	if !ok {
		return ErrClassNotFound
	}
	c.Description = strings.TrimSpace(description)
	return nil
}

func (f *File) Use(name string) error {
	if _, ok := f.Classes[name]; !ok {
		return ErrClassNotFound
	}
	f.CurrentClass = name
	return nil
}

// ClassNames returns class names sorted for stable listing.
func (f *File) ClassNames() []string {
	names := make([]string, 0, len(f.Classes))
	for n := range f.Classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Class) AddStudent(name, username string) error {
	name = strings.TrimSpace(name)
	username = SanitizeUsername(username)
	if name == "" || username == "" {
		return ErrEmptyStudent
	}
	if c.Students == nil {
		c.Students = make(map[string]string)
	}
	c.Students[name] = username
	return nil
}

func (c *Class) RemoveStudent(name string) bool {
	if _, ok := c.Students[name]; !ok {
		return false
	}
	delete(c.Students, name)
	return true
}

// Merge adds every parsed (name, username) entry, overwriting duplicates.
func (c *Class) Merge(students map[string]string) int {
	added := 0
	for name, username := range students {
		if err := c.AddStudent(name, username); err == nil {
			added++
		}
	}
	return added
}

// SanitizeUsername strips all whitespace so the result is safe as an API
// path segment.
func SanitizeUsername(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
