// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Literature is a bibliographic record stored independently of the tree.
// Categories reference it by ID; zero or more categories may point at the
// same record.
type Literature struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url"`
}

// SameWork reports whether two records describe the same work. Embedded
// records in legacy trees carry no IDs, so (title, url) is the identity
// used for deduplication.
func (l Literature) SameWork(other Literature) bool {
	return l.Title == other.Title && l.URL == other.URL
}
