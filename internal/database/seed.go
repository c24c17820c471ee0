package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bibtree/internal/models"
)

// Seed populates the database with initial development data: a tiny
// example taxonomy and two literature records. No-op if any documents
// exist already.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return fmt.Errorf("seed check documents: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	lit := []models.Literature{
		{
			ID:     uuid.NewString(),
			Title:  "On the Origin of Species",
			Author: "Charles Darwin",
			Date:   "1859-11-24",
			URL:    "https://www.gutenberg.org/ebooks/1228",
		},
		{
			ID:     uuid.NewString(),
			Title:  "Systema Naturae",
			Author: "Carl Linnaeus",
			Date:   "1735-01-01",
			URL:    "https://www.biodiversitylibrary.org/item/10277",
		},
	}

	rootID := uuid.NewString()
	tree := []models.Category{
		{
			ID:            rootID,
			Name:          "Biology",
			Description:   "Example root category",
			Color:         models.DefaultColor,
			Children:      []models.Category{},
			LiteratureIDs: []string{lit[0].ID},
		},
	}

	insert := func(collection, id string, doc any) error {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("seed marshal %s/%s: %w", collection, id, err)
		}
		_, err = db.Exec(
			`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`,
			collection, id, payload,
		)
		if err != nil {
			return fmt.Errorf("seed insert %s/%s: %w", collection, id, err)
		}
		return nil
	}

	for _, l := range lit {
		if err := insert("literature", l.ID, l); err != nil {
			return err
		}
	}
	if err := insert("trees", "categories", map[string]any{"categories": tree}); err != nil {
		return err
	}
	if err := insert("categories", rootID, tree[0]); err != nil {
		return err
	}

	slog.Info("database seeded with example taxonomy",
		"categories", len(tree),
		"literature", len(lit),
	)

	return nil
}
