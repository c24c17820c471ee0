package tree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bibtree/internal/models"
)

// fixture returns a small tree:
//
//	a
//	├── b
//	│   └── d
//	└── c
//	e
func fixture() []models.Category {
	return []models.Category{
		{
			ID: "a", Name: "Root A", Color: "#111111",
			Children: []models.Category{
				{
					ID: "b", Name: "Child B", Color: "#222222",
					Children: []models.Category{
						{ID: "d", Name: "Grandchild D", Color: "#333333", Children: []models.Category{}},
					},
				},
				{ID: "c", Name: "Child C", Color: "#444444", Children: []models.Category{}},
			},
		},
		{ID: "e", Name: "Root E", Color: "#555555", Children: []models.Category{}},
	}
}

func TestInsertRoot(t *testing.T) {
	snap := fixture()
	next := InsertRoot(snap, models.Category{ID: "f", Name: "Root F", Children: []models.Category{}})

	if len(next) != 3 {
		t.Fatalf("root count: got %d, want 3", len(next))
	}
	if next[2].ID != "f" {
		t.Errorf("new root appended last: got %q, want %q", next[2].ID, "f")
	}
	if len(snap) != 2 {
		t.Errorf("input snapshot mutated: %d roots", len(snap))
	}
}

func TestInsertChild(t *testing.T) {
	snap := []models.Category{
		{ID: "a", Name: "Root", Children: []models.Category{}},
	}
	child := models.Category{ID: "b", Name: "Child", Children: []models.Category{}}

	next, found := InsertChild(snap, "a", child)
	if !found {
		t.Fatal("parent should have been found")
	}

	want := []models.Category{
		{ID: "a", Name: "Root", Children: []models.Category{
			{ID: "b", Name: "Child", Children: []models.Category{}},
		}},
	}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	// Input snapshot is untouched.
	if len(snap[0].Children) != 0 {
		t.Error("input snapshot mutated")
	}
}

func TestInsertChildDeep(t *testing.T) {
	snap := fixture()
	child := models.Category{ID: "x", Name: "Under D", Children: []models.Category{}}

	next, found := InsertChild(snap, "d", child)
	if !found {
		t.Fatal("parent should have been found")
	}

	got, ok := FindByID(next, "x")
	if !ok {
		t.Fatal("inserted node not findable")
	}
	if diff := cmp.Diff(child, got); diff != "" {
		t.Errorf("inserted node mismatch (-want +got):\n%s", diff)
	}

	// Ancestor chain includes d.
	d, _ := FindByID(next, "d")
	if len(d.Children) != 1 || d.Children[0].ID != "x" {
		t.Errorf("d.Children: got %+v", d.Children)
	}

	// Unrelated branch keeps its identity.
	if &next[1] == &snap[1] {
		t.Log("top-level structs are values; identity check applies to children slices")
	}
	if len(next[1].Children) != len(snap[1].Children) {
		t.Error("unrelated root changed")
	}
}

func TestInsertChildUnknownParent(t *testing.T) {
	snap := fixture()

	next, found := InsertChild(snap, "zzz", models.Category{ID: "x", Name: "Orphan"})
	if found {
		t.Fatal("unknown parent reported as found")
	}
	if diff := cmp.Diff(snap, next); diff != "" {
		t.Errorf("unknown parent must be a no-op (-want +got):\n%s", diff)
	}
}

func TestUpdateByID(t *testing.T) {
	snap := fixture()
	b, _ := FindByID(snap, "b")
	b.Description = "now with a description"

	next := UpdateByID(snap, b)

	got, ok := FindByID(next, "b")
	if !ok {
		t.Fatal("b vanished")
	}
	if got.Description != "now with a description" {
		t.Errorf("description: got %q", got.Description)
	}
	// Wholesale replacement keeps the subtree the caller passed.
	if len(got.Children) != 1 || got.Children[0].ID != "d" {
		t.Errorf("children lost on update: %+v", got.Children)
	}
	// Original snapshot unchanged.
	old, _ := FindByID(snap, "b")
	if old.Description != "" {
		t.Error("input snapshot mutated")
	}
}

func TestUpdateByIDUnknown(t *testing.T) {
	snap := fixture()
	next := UpdateByID(snap, models.Category{ID: "nope", Name: "Ghost"})
	if diff := cmp.Diff(snap, next); diff != "" {
		t.Errorf("unknown id must be a no-op (-want +got):\n%s", diff)
	}
}

func TestRemoveByIDCascades(t *testing.T) {
	snap := fixture()
	next := RemoveByID(snap, "b")

	for _, id := range []string{"b", "d"} {
		if _, ok := FindByID(next, id); ok {
			t.Errorf("%q still present after cascading delete", id)
		}
	}
	for _, id := range []string{"a", "c", "e"} {
		if _, ok := FindByID(next, id); !ok {
			t.Errorf("%q should have survived", id)
		}
	}
}

func TestRemoveByIDIdempotent(t *testing.T) {
	snap := fixture()
	next := RemoveByID(snap, "does-not-exist")
	if diff := cmp.Diff(snap, next); diff != "" {
		t.Errorf("removing unknown id must be structurally a no-op (-want +got):\n%s", diff)
	}
}

func TestPropagateColor(t *testing.T) {
	snap := fixture()
	next := PropagateColor(snap, "a", "#abcdef")

	for _, id := range []string{"a", "b", "c", "d"} {
		c, _ := FindByID(next, id)
		if c.Color != "#abcdef" {
			t.Errorf("%q color: got %q, want #abcdef", id, c.Color)
		}
	}
	// Other roots untouched.
	e, _ := FindByID(next, "e")
	if e.Color != "#555555" {
		t.Errorf("e color changed: %q", e.Color)
	}
	// Input snapshot untouched.
	a, _ := FindByID(snap, "a")
	if a.Color != "#111111" {
		t.Error("input snapshot mutated")
	}
}

func TestPropagateColorMidTree(t *testing.T) {
	snap := fixture()
	next := PropagateColor(snap, "b", "#00ff00")

	for _, id := range []string{"b", "d"} {
		c, _ := FindByID(next, id)
		if c.Color != "#00ff00" {
			t.Errorf("%q color: got %q", id, c.Color)
		}
	}
	for id, want := range map[string]string{"a": "#111111", "c": "#444444", "e": "#555555"} {
		c, _ := FindByID(next, id)
		if c.Color != want {
			t.Errorf("%q color: got %q, want %q", id, c.Color, want)
		}
	}
}

func TestFindByIDOrder(t *testing.T) {
	snap := fixture()
	got, ok := FindByID(snap, "d")
	if !ok || got.Name != "Grandchild D" {
		t.Fatalf("FindByID(d): got %+v, ok=%v", got, ok)
	}
	if _, ok := FindByID(snap, "missing"); ok {
		t.Error("found a node that does not exist")
	}
}

func TestFlatten(t *testing.T) {
	snap := fixture()
	rows := Flatten(snap)

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Category.ID
	}
	wantIDs := []string{"a", "b", "d", "c", "e"}
	if diff := cmp.Diff(wantIDs, ids); diff != "" {
		t.Fatalf("pre-order mismatch (-want +got):\n%s", diff)
	}

	wantDepths := []int{0, 1, 2, 1, 0}
	for i, r := range rows {
		if r.Depth != wantDepths[i] {
			t.Errorf("row %d depth: got %d, want %d", i, r.Depth, wantDepths[i])
		}
	}

	d := rows[2]
	wantPath := strings.Join([]string{"Root A", "Child B", "Grandchild D"}, PathSeparator)
	if d.Path != wantPath {
		t.Errorf("path: got %q, want %q", d.Path, wantPath)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if rows := Flatten(nil); len(rows) != 0 {
		t.Errorf("empty tree: got %d rows", len(rows))
	}
}

func TestCount(t *testing.T) {
	if n := Count(fixture()); n != 5 {
		t.Errorf("count: got %d, want 5", n)
	}
	if n := Count(nil); n != 0 {
		t.Errorf("count empty: got %d, want 0", n)
	}
}
