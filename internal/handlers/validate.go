// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for category and literature fields.
const (
	maxNameLen   = 300
	maxDescLen   = 10_000
	maxColorLen  = 50
	maxTitleLen  = 500
	maxAuthorLen = 300
	maxDateLen   = 100
	maxURLLen    = 2_000
)

// validateCategory checks category inputs and returns the first error found.
func validateCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	return ""
}

// validateColor checks a color value. Any non-empty string within the
// length cap is accepted; clients send CSS color strings.
func validateColor(color string) string {
	if strings.TrimSpace(color) == "" {
		return "Color is required."
	}
	if utf8.RuneCountInString(color) > maxColorLen {
		return "Color is too long (max 50 characters)."
	}
	return ""
}

// validateLiterature checks literature record inputs.
func validateLiterature(title, author, date, url string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 500 characters)."
	}
	if strings.TrimSpace(url) == "" {
		return "URL is required."
	}
	if utf8.RuneCountInString(url) > maxURLLen {
		return "URL is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return "Author is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(date) > maxDateLen {
		return "Date is too long (max 100 characters)."
	}
	return ""
}
