// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tree implements the category tree operations. Every function is
// pure: it takes a snapshot ([]models.Category), never mutates it, and
// returns a new snapshot. Untouched branches keep their identity so
// callers can cheaply detect what changed.
//
// All operations are full depth-first traversals. The tree is a
// user-curated taxonomy of at most a few hundred nodes, so no id index is
// maintained.
package tree

import (
	"strings"

	"bibtree/internal/models"
)

// PathSeparator joins ancestor names in breadcrumb paths.
const PathSeparator = " > "

// InsertRoot appends cat to the top-level sequence.
func InsertRoot(snapshot []models.Category, cat models.Category) []models.Category {
	out := make([]models.Category, 0, len(snapshot)+1)
	out = append(out, snapshot...)
	return append(out, cat)
}

// InsertChild appends cat to the children of the node with id parentID.
// The second return value reports whether the parent was found; when it
// is false the returned snapshot is the input unchanged. An unknown
// parent is not an error.
func InsertChild(snapshot []models.Category, parentID string, cat models.Category) ([]models.Category, bool) {
	for i := range snapshot {
		if snapshot[i].ID == parentID {
			out := copyLevel(snapshot)
			node := out[i]
			children := make([]models.Category, 0, len(node.Children)+1)
			children = append(children, node.Children...)
			node.Children = append(children, cat)
			out[i] = node
			return out, true
		}
		if len(snapshot[i].Children) > 0 {
			if children, ok := InsertChild(snapshot[i].Children, parentID, cat); ok {
				out := copyLevel(snapshot)
				out[i].Children = children
				return out, true
			}
		}
	}
	return snapshot, false
}

// UpdateByID replaces the node whose id matches updated.ID wholesale.
// Callers that only want to change a field must pass the full node,
// children included. No-op if the id is not present.
func UpdateByID(snapshot []models.Category, updated models.Category) []models.Category {
	for i := range snapshot {
		if snapshot[i].ID == updated.ID {
			out := copyLevel(snapshot)
			out[i] = updated
			return out
		}
		if len(snapshot[i].Children) > 0 {
			if children := UpdateByID(snapshot[i].Children, updated); !sameSlice(children, snapshot[i].Children) {
				out := copyLevel(snapshot)
				out[i].Children = children
				return out
			}
		}
	}
	return snapshot
}

// RemoveByID removes the node with the given id and its entire subtree
// from wherever it occurs. Removing an id that is not present returns a
// snapshot structurally equal to the input.
func RemoveByID(snapshot []models.Category, id string) []models.Category {
	out := make([]models.Category, 0, len(snapshot))
	for _, c := range snapshot {
		if c.ID == id {
			continue
		}
		if len(c.Children) > 0 {
			c.Children = RemoveByID(c.Children, id)
		}
		out = append(out, c)
	}
	return out
}

// PropagateColor sets color on the node with the given id and copies it
// down onto every descendant. The rest of the tree is unchanged. No-op if
// the id is not present.
func PropagateColor(snapshot []models.Category, id, color string) []models.Category {
	for i := range snapshot {
		if snapshot[i].ID == id {
			out := copyLevel(snapshot)
			out[i] = recolor(out[i], color)
			return out
		}
		if len(snapshot[i].Children) > 0 {
			if children := PropagateColor(snapshot[i].Children, id, color); !sameSlice(children, snapshot[i].Children) {
				out := copyLevel(snapshot)
				out[i].Children = children
				return out
			}
		}
	}
	return snapshot
}

// recolor returns a copy of c with color applied to it and all descendants.
func recolor(c models.Category, color string) models.Category {
	c.Color = color
	if len(c.Children) > 0 {
		children := make([]models.Category, len(c.Children))
		for i, child := range c.Children {
			children[i] = recolor(child, color)
		}
		c.Children = children
	}
	return c
}

// FindByID returns the node with the given id, depth-first pre-order.
// Ids are unique across the tree, so the first match is the only match.
// The returned value is a copy; mutating it does not affect the snapshot.
func FindByID(snapshot []models.Category, id string) (models.Category, bool) {
	for i := range snapshot {
		if snapshot[i].ID == id {
			return snapshot[i], true
		}
		if c, ok := FindByID(snapshot[i].Children, id); ok {
			return c, true
		}
	}
	return models.Category{}, false
}

// Flat is one row of a depth-first flattening of the tree.
type Flat struct {
	Depth    int
	Path     string // ancestor names joined with PathSeparator, self included
	Category models.Category
}

// Flatten walks the tree depth-first pre-order and emits one Flat per
// node, in traversal order.
func Flatten(snapshot []models.Category) []Flat {
	var out []Flat
	flatten(snapshot, 0, nil, &out)
	return out
}

func flatten(cats []models.Category, depth int, ancestors []string, out *[]Flat) {
	for _, c := range cats {
		path := append(append([]string{}, ancestors...), c.Name)
		*out = append(*out, Flat{
			Depth:    depth,
			Path:     strings.Join(path, PathSeparator),
			Category: c,
		})
		if len(c.Children) > 0 {
			flatten(c.Children, depth+1, path, out)
		}
	}
}

// Count returns the number of nodes in the tree.
func Count(snapshot []models.Category) int {
	n := 0
	for i := range snapshot {
		n += 1 + Count(snapshot[i].Children)
	}
	return n
}

// copyLevel shallow-copies one level of siblings so the caller can swap a
// single element without touching the input.
func copyLevel(cats []models.Category) []models.Category {
	out := make([]models.Category, len(cats))
	copy(out, cats)
	return out
}

// sameSlice reports whether two slices share the same backing view, which
// is how the recursive operations signal "nothing changed below".
func sameSlice(a, b []models.Category) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
