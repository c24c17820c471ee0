// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DefaultColor is the fallback display color for categories that never
// had one set explicitly.
const DefaultColor = "#ff6347"

// Category represents one node of the taxonomy tree. Nesting is encoded
// by Children; ParentCategoryID is only meaningful at creation time, when
// it routes where the new node is inserted.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`

	// ParentCategoryID is nil for root nodes. The document store cannot
	// represent "undefined", so it serializes as an explicit null.
	ParentCategoryID *string `json:"parentCategoryId"`

	// Children preserves insertion order. An empty slice (not nil) is the
	// canonical no-children representation after sanitization.
	Children []Category `json:"children"`

	// LiteratureIDs references records in the literature registry.
	LiteratureIDs []string `json:"literatureIds,omitempty"`

	// Literature holds embedded records found in older stored trees.
	// Loading migrates them into LiteratureIDs; nothing writes this
	// field anymore.
	Literature []Literature `json:"literature,omitempty"`
}
