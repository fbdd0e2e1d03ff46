package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T, contents string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classes.json")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return NewStore(path)
}

func TestLoadMissingFile(t *testing.T) {
	f, err := tempStore(t, "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Classes) != 0 || f.CurrentClass != "" {
		t.Fatalf("missing file should yield an empty roster, got %+v", f)
	}
}

func TestLoadLegacyBareClassMap(t *testing.T) {
	legacy := `{"monday": {"Zhang San": "zhangsan123"}, "friday": {"Li Si": "lisi99"}}`
	f, err := tempStore(t, legacy).Load()
	if err != nil {
		t.Fatalf("Load legacy: %v", err)
	}
	if len(f.Classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(f.Classes))
	}
	cls, ok := f.Class("monday")
	if !ok || cls.Students["Zhang San"] != "zhangsan123" {
		t.Fatalf("monday class not upgraded: %+v", cls)
	}
	// first class in sorted order becomes current
	if f.CurrentClass != "friday" {
		t.Fatalf("current = %q, want friday", f.CurrentClass)
	}
}

func TestLoadWrappedWithLegacyClassEntries(t *testing.T) {
	mixed := `{
	  "classes": {
	    "new": {"created_date": "2026-01-01", "students": {"Wang Wu": "wangwu_chess"}},
	    "old": {"Li Si": "lisi99"}
	  },
	  "current_class": "old"
	}`
	f, err := tempStore(t, mixed).Load()
	if err != nil {
		t.Fatalf("Load mixed: %v", err)
	}
	if f.CurrentClass != "old" {
		t.Fatalf("current = %q, want old", f.CurrentClass)
	}
	oldCls, _ := f.Class("old")
	if oldCls.Students["Li Si"] != "lisi99" {
		t.Fatalf("legacy class entry not upgraded: %+v", oldCls)
	}
	newCls, _ := f.Class("new")
	if newCls.CreatedDate != "2026-01-01" || newCls.Students["Wang Wu"] != "wangwu_chess" {
		t.Fatalf("wrapped class mangled: %+v", newCls)
	}
}

func TestLoadInvalidCurrentClassFallsBack(t *testing.T) {
	doc := `{"classes": {"b": {"students": {}}, "a": {"students": {}}}, "current_class": "gone"}`
	f, err := tempStore(t, doc).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.CurrentClass != "a" {
		t.Fatalf("current = %q, want a", f.CurrentClass)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := tempStore(t, "")
	f := NewFile()
	cls, err := f.CreateClass("monday", "evening group", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateClass: %v", err)
	}
	if err := cls.AddStudent("Zhang San", "zhangsan123"); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if err := st.Save(f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CurrentClass != "monday" {
		t.Fatalf("current = %q", got.CurrentClass)
	}
	cls2, _ := got.Class("monday")
	if cls2.CreatedDate != "2026-08-29" || cls2.Description != "evening group" {
		t.Fatalf("class metadata lost: %+v", cls2)
	}
	if cls2.Students["Zhang San"] != "zhangsan123" {
		t.Fatalf("students lost: %+v", cls2.Students)
	}
}

func TestDeleteClassReselectsCurrent(t *testing.T) {
	f := NewFile()
	now := time.Now()
	if _, err := f.CreateClass("b", "", now); err != nil {
		t.Fatalf("CreateClass b: %v", err)
	}
	if _, err := f.CreateClass("a", "", now); err != nil {
		t.Fatalf("CreateClass a: %v", err)
	}
	if f.CurrentClass != "a" {
		t.Fatalf("create should select the new class, got %q", f.CurrentClass)
	}
	if err := f.DeleteClass("a"); err != nil {
		t.Fatalf("DeleteClass: %v", err)
	}
	if f.CurrentClass != "b" {
		t.Fatalf("current after delete = %q, want b", f.CurrentClass)
	}
}
