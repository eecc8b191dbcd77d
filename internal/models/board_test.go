package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func parseIndexes(t *testing.T, model interface{}) map[string]*schema.Index {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}
	byName := make(map[string]*schema.Index)
	for _, idx := range s.ParseIndexes() {
		byName[idx.Name] = idx
	}
	return byName
}

func indexColumns(idx *schema.Index) []string {
	cols := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		cols = append(cols, f.DBName)
	}
	return cols
}

// A save with no board stores board_id as NULL, and NULLs never collide in
// the composite index. The partial index is what rejects the second
// boardless save of the same post.
func TestSavedPostUniqueIndexes(t *testing.T) {
	indexes := parseIndexes(t, &SavedPost{})

	full, ok := indexes["paw_saved_posts_ux1"]
	if !ok {
		t.Fatal("missing unique index paw_saved_posts_ux1")
	}
	if full.Class != "UNIQUE" {
		t.Errorf("paw_saved_posts_ux1 class = %q, want UNIQUE", full.Class)
	}
	wantFull := []string{"user_id", "post_id", "board_id"}
	if cols := indexColumns(full); len(cols) != len(wantFull) {
		t.Fatalf("paw_saved_posts_ux1 columns = %v, want %v", cols, wantFull)
	} else {
		for i := range wantFull {
			if cols[i] != wantFull[i] {
				t.Fatalf("paw_saved_posts_ux1 columns = %v, want %v", cols, wantFull)
			}
		}
	}

	boardless, ok := indexes["paw_saved_posts_ux2"]
	if !ok {
		t.Fatal("missing unique index paw_saved_posts_ux2")
	}
	if boardless.Class != "UNIQUE" {
		t.Errorf("paw_saved_posts_ux2 class = %q, want UNIQUE", boardless.Class)
	}
	if boardless.Where != "board_id IS NULL" {
		t.Errorf("paw_saved_posts_ux2 where = %q, want %q", boardless.Where, "board_id IS NULL")
	}
	wantBoardless := []string{"user_id", "post_id"}
	if cols := indexColumns(boardless); len(cols) != len(wantBoardless) {
		t.Fatalf("paw_saved_posts_ux2 columns = %v, want %v", cols, wantBoardless)
	} else {
		for i := range wantBoardless {
			if cols[i] != wantBoardless[i] {
				t.Fatalf("paw_saved_posts_ux2 columns = %v, want %v", cols, wantBoardless)
			}
		}
	}
}
