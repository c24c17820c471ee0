// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/xuri/excelize/v2"

	"bibtree/internal/models"
)

func (e *testEnv) addLiterature(t *testing.T, title, url string) models.Literature {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/api/literature", models.Literature{Title: title, URL: url})
	if rr.Code != http.StatusCreated {
		t.Fatalf("add %q: status %d: %s", title, rr.Code, rr.Body.String())
	}
	var lit models.Literature
	if err := json.Unmarshal(rr.Body.Bytes(), &lit); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return lit
}

func TestLiteratureListStartsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/literature", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	var resp literatureResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Literature) != 0 {
		t.Errorf("expected empty registry, got %d records", len(resp.Literature))
	}
}

func TestLiteratureAddAssignsID(t *testing.T) {
	env := newTestEnv(t)

	lit := env.addLiterature(t, "Systema Naturae", "https://example.org/systema")
	if lit.ID == "" {
		t.Error("expected server-assigned id")
	}
	if lit.Title != "Systema Naturae" {
		t.Errorf("title: got %q", lit.Title)
	}
}

func TestLiteratureListInsertionOrder(t *testing.T) {
	env := newTestEnv(t)

	first := env.addLiterature(t, "First", "https://example.org/1")
	second := env.addLiterature(t, "Second", "https://example.org/2")

	rr := env.do(t, http.MethodGet, "/api/literature", nil)
	var resp literatureResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Literature) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp.Literature))
	}
	if resp.Literature[0].ID != first.ID || resp.Literature[1].ID != second.ID {
		t.Errorf("order: got %q, %q", resp.Literature[0].Title, resp.Literature[1].Title)
	}
}

func TestLiteratureAddValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		lit  models.Literature
	}{
		{"missing title", models.Literature{URL: "https://example.org"}},
		{"missing url", models.Literature{Title: "No URL"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/literature", tc.lit)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rr.Code)
			}
		})
	}
}

func TestLiteratureDeleteLeavesReferencesDangling(t *testing.T) {
	env := newTestEnv(t)

	catID := env.createCategory(t, "Biology", nil)
	lit := env.addLiterature(t, "Origin", "https://example.org/origin")
	env.do(t, http.MethodPost, "/api/categories/"+catID+"/literature", attachRequest{LiteratureID: lit.ID})

	rr := env.do(t, http.MethodDelete, "/api/literature/"+lit.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rr.Code)
	}

	// The registry no longer has the record.
	listRR := env.do(t, http.MethodGet, "/api/literature", nil)
	var resp literatureResponse
	if err := json.Unmarshal(listRR.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Literature) != 0 {
		t.Errorf("registry should be empty, got %d", len(resp.Literature))
	}

	// The category still references the deleted id.
	treeRR := env.do(t, http.MethodGet, "/api/tree", nil)
	cats := decodeTree(t, treeRR)
	if got := cats[0].LiteratureIDs; len(got) != 1 || got[0] != lit.ID {
		t.Errorf("reference should stay dangling, got %v", got)
	}
}

func TestExportDownload(t *testing.T) {
	env := newTestEnv(t)

	catID := env.createCategory(t, "Biology", nil)
	lit := env.addLiterature(t, "Origin", "https://example.org/origin")
	env.do(t, http.MethodPost, "/api/categories/"+catID+"/literature", attachRequest{LiteratureID: lit.ID})

	rr := env.do(t, http.MethodGet, "/api/export", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rr.Code, rr.Body.String())
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="categories_tree.xlsx"` {
		t.Errorf("content disposition: got %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Literature" || sheets[1] != "Categories" {
		t.Errorf("sheets: got %v", sheets)
	}

	rows, err := f.GetRows("Categories")
	if err != nil {
		t.Fatalf("read categories sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[1][1] != "Biology" {
		t.Errorf("category row: got %v", rows[1])
	}
}
