// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export flattens the category tree and the literature registry
// into a two-sheet xlsx workbook.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bibtree/internal/models"
	"bibtree/internal/tree"
)

// Filename is the download name offered to the browser.
const Filename = "categories_tree.xlsx"

const (
	sheetLiterature = "Literature"
	sheetCategories = "Categories"
)

// unknownRef is rendered for a literature reference that no longer
// resolves to a registry record.
const unknownRef = "Unknown"

// Workbook builds the export workbook from a tree snapshot and the
// literature registry. Literature rows get fresh 1-based sequential ids
// in registry order; category rows reference those ids. The output is
// deterministic for a fixed snapshot and registry order.
func Workbook(snapshot []models.Category, literature []models.Literature) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheetLiterature); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetCategories); err != nil {
		return nil, fmt.Errorf("create categories sheet: %w", err)
	}

	// Sequential export ids, decoupled from real record ids and
	// recomputed fresh on every export.
	seq := make(map[string]int, len(literature))
	for i, lit := range literature {
		seq[lit.ID] = i + 1
	}

	if err := writeLiteratureSheet(f, literature); err != nil {
		return nil, err
	}
	if err := writeCategoriesSheet(f, snapshot, seq); err != nil {
		return nil, err
	}

	return f, nil
}

func writeLiteratureSheet(f *excelize.File, literature []models.Literature) error {
	header := []any{"ID", "Title", "Author", "Date", "URL"}
	if err := f.SetSheetRow(sheetLiterature, "A1", &header); err != nil {
		return fmt.Errorf("write literature header: %w", err)
	}

	for i, lit := range literature {
		row := []any{i + 1, lit.Title, lit.Author, lit.Date, lit.URL}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetLiterature, cell, &row); err != nil {
			return fmt.Errorf("write literature row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeCategoriesSheet(f *excelize.File, snapshot []models.Category, seq map[string]int) error {
	header := []any{"Level", "Name", "Description", "LiteratureIDs", "Path"}
	if err := f.SetSheetRow(sheetCategories, "A1", &header); err != nil {
		return fmt.Errorf("write categories header: %w", err)
	}

	for i, flat := range tree.Flatten(snapshot) {
		row := []any{
			flat.Depth,
			flat.Category.Name,
			flat.Category.Description,
			literatureRefs(flat.Category.LiteratureIDs, seq),
			flat.Path,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetCategories, cell, &row); err != nil {
			return fmt.Errorf("write category row %d: %w", i+1, err)
		}
	}
	return nil
}

// literatureRefs resolves reference ids to their sequential export ids.
// Dangling references render as "Unknown"; no references render as an
// empty string.
func literatureRefs(ids []string, seq map[string]int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		if n, ok := seq[id]; ok {
			parts[i] = strconv.Itoa(n)
		} else {
			parts[i] = unknownRef
		}
	}
	return strings.Join(parts, ", ")
}
