package export

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"bibtree/internal/models"
)

func testLiterature() []models.Literature {
	return []models.Literature{
		{ID: "lit-1", Title: "First Paper", Author: "Ada", Date: "2001-01-01", URL: "https://example.org/1"},
		{ID: "lit-2", Title: "Second Paper", URL: "https://example.org/2"},
	}
}

func testTree() []models.Category {
	return []models.Category{
		{
			ID: "a", Name: "Root", Description: "top",
			LiteratureIDs: []string{"lit-2", "lit-1"},
			Children: []models.Category{
				{ID: "b", Name: "Child", LiteratureIDs: []string{"lit-1", "gone"}},
			},
		},
	}
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	got, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", sheet, err)
	}
	return got
}

func TestWorkbookSheets(t *testing.T) {
	f, err := Workbook(testTree(), testLiterature())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	sheets := f.GetSheetList()
	want := []string{"Literature", "Categories"}
	if diff := cmp.Diff(want, sheets); diff != "" {
		t.Errorf("sheets (-want +got):\n%s", diff)
	}
}

func TestLiteratureSheet(t *testing.T) {
	f, err := Workbook(testTree(), testLiterature())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	got := rows(t, f, "Literature")
	want := [][]string{
		{"ID", "Title", "Author", "Date", "URL"},
		{"1", "First Paper", "Ada", "2001-01-01", "https://example.org/1"},
		{"2", "Second Paper", "", "", "https://example.org/2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("literature rows (-want +got):\n%s", diff)
	}
}

func TestCategoriesSheet(t *testing.T) {
	f, err := Workbook(testTree(), testLiterature())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	got := rows(t, f, "Categories")
	want := [][]string{
		{"Level", "Name", "Description", "LiteratureIDs", "Path"},
		{"0", "Root", "top", "2, 1", "Root"},
		{"1", "Child", "", "1, Unknown", "Root > Child"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("category rows (-want +got):\n%s", diff)
	}
}

func TestEmptyTreeStillListsLiterature(t *testing.T) {
	f, err := Workbook(nil, testLiterature())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	cats := rows(t, f, "Categories")
	if len(cats) != 1 {
		t.Errorf("categories sheet: got %d rows, want header only", len(cats))
	}

	lits := rows(t, f, "Literature")
	if len(lits) != 3 {
		t.Errorf("literature sheet: got %d rows, want header + 2 entries", len(lits))
	}
}

func TestNoAttachmentsIsEmptyNotUnknown(t *testing.T) {
	snapshot := []models.Category{{ID: "a", Name: "Bare"}}
	f, err := Workbook(snapshot, testLiterature())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	got := rows(t, f, "Categories")
	// excelize trims trailing empty cells; the LiteratureIDs column must
	// not carry "Unknown" for a node with no attachments.
	if len(got) != 2 {
		t.Fatalf("rows: got %d, want 2", len(got))
	}
	for _, cell := range got[1] {
		if cell == "Unknown" {
			t.Error("no attachments must render as empty, not Unknown")
		}
	}
}

func TestExportDeterminism(t *testing.T) {
	write := func() []byte {
		f, err := Workbook(testTree(), testLiterature())
		if err != nil {
			t.Fatalf("Workbook: %v", err)
		}
		// Compare row content, not raw bytes: the xlsx container embeds
		// timestamps.
		var buf bytes.Buffer
		for _, sheet := range f.GetSheetList() {
			for _, row := range rows(t, f, sheet) {
				for _, cell := range row {
					buf.WriteString(cell)
					buf.WriteByte(';')
				}
				buf.WriteByte('\n')
			}
		}
		return buf.Bytes()
	}

	if !bytes.Equal(write(), write()) {
		t.Error("two exports of the same state differ")
	}
}
