package store

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"synthdeck/internal/model"
)

func testDoc() model.Document {
	return model.Document{
		Themes: []model.Theme{
			{
				ID:    "t1",
				Title: "Onboarding friction",
				Color: model.ColorBlue,
				Clusters: []model.Cluster{
					{
						ID:   "c1",
						Name: "Setup confusion",
						Entities: []model.Entity{
							{ID: "e1", Type: model.TypePain, Statement: "Setup takes too long"},
						},
					},
				},
			},
		},
	}
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_EmptyCache(t *testing.T) {
	s := openTemp(t)

	if _, ok, err := s.LoadDocument(); err != nil || ok {
		t.Errorf("LoadDocument on empty cache: ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.LastSaved(); err != nil || ok {
		t.Errorf("LastSaved on empty cache: ok=%v err=%v", ok, err)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)
	doc := testDoc()

	if err := s.SaveDocument(doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	got, ok, err := s.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if !ok {
		t.Fatal("LoadDocument: ok = false after save")
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, doc)
	}
}

func TestStore_LastSaved(t *testing.T) {
	s := openTemp(t)

	before := time.Now().Add(-2 * time.Second)
	if err := s.SaveDocument(testDoc()); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	after := time.Now().Add(2 * time.Second)

	saved, ok, err := s.LastSaved()
	if err != nil {
		t.Fatalf("LastSaved: %v", err)
	}
	if !ok {
		t.Fatal("LastSaved: ok = false after save")
	}
	if saved.Before(before) || saved.After(after) {
		t.Errorf("saved time %v outside [%v, %v]", saved, before, after)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := openTemp(t)

	if err := s.SaveDocument(testDoc()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	doc := testDoc()
	doc.Themes[0].Title = "Renamed theme"
	if err := s.SaveDocument(doc); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, ok, err := s.LoadDocument()
	if err != nil || !ok {
		t.Fatalf("LoadDocument: ok=%v err=%v", ok, err)
	}
	if got.Themes[0].Title != "Renamed theme" {
		t.Errorf("title = %q, want Renamed theme", got.Themes[0].Title)
	}
}

func TestStore_Clear(t *testing.T) {
	s := openTemp(t)

	if err := s.SaveDocument(testDoc()); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, ok, _ := s.LoadDocument(); ok {
		t.Error("document still present after Clear")
	}
	if _, ok, _ := s.LastSaved(); ok {
		t.Error("save time still present after Clear")
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveDocument(testDoc()); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, ok, err := s2.LoadDocument()
	if err != nil || !ok {
		t.Fatalf("LoadDocument after reopen: ok=%v err=%v", ok, err)
	}
	if got.Themes[0].ID != "t1" {
		t.Errorf("theme id = %q, want t1", got.Themes[0].ID)
	}
}
