package library

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Custom errors for library operations
var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrMissingFilename = errors.New("filename is required")
)

// Store indexes saved recipe notes using SQLite.
type Store struct {
	db *sql.DB
}

// Entry is the index record for one saved note.
type Entry struct {
	RecipeID         uuid.UUID `json:"recipe_id"`
	Title            string    `json:"title"`
	SourceURL        string    `json:"source_url"`
	Filename         string    `json:"filename"`
	IngredientCount  int       `json:"ingredient_count"`
	InstructionCount int       `json:"instruction_count"`
	SavedAt          time.Time `json:"saved_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Filter represents filtering options for listing entries.
type Filter struct {
	Query  string // Case-insensitive match against title or source URL
	Limit  int    // Pagination limit
	Offset int    // Pagination offset
}

// NewStore opens (and if needed creates) the index at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the recipes table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		recipe_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		source_url TEXT NOT NULL DEFAULT '',
		filename TEXT NOT NULL UNIQUE,
		ingredient_count INTEGER NOT NULL DEFAULT 0,
		instruction_count INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record indexes a saved note. Saving under a filename that is already
// indexed refreshes that entry and keeps its ID and original saved_at, the
// same way the note file itself is overwritten.
func (s *Store) Record(title, sourceURL, filename string, ingredients, instructions int) (*Entry, error) {
	if filename == "" {
		return nil, ErrMissingFilename
	}

	now := time.Now()
	query := `
		INSERT INTO recipes (
			recipe_id, title, source_url, filename,
			ingredient_count, instruction_count, saved_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			title = excluded.title,
			source_url = excluded.source_url,
			ingredient_count = excluded.ingredient_count,
			instruction_count = excluded.instruction_count,
			updated_at = excluded.updated_at
	`

	_, err := s.db.Exec(query,
		uuid.New().String(),
		title,
		sourceURL,
		filename,
		ingredients,
		instructions,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record recipe: %w", err)
	}

	return s.GetByFilename(filename)
}

const selectColumns = `
	SELECT recipe_id, title, source_url, filename,
	       ingredient_count, instruction_count, saved_at, updated_at
	FROM recipes
`

// Get retrieves an entry by ID.
func (s *Store) Get(recipeID uuid.UUID) (*Entry, error) {
	return s.getOne(selectColumns+" WHERE recipe_id = ?", recipeID.String())
}

// GetByFilename retrieves an entry by its note filename.
func (s *Store) GetByFilename(filename string) (*Entry, error) {
	return s.getOne(selectColumns+" WHERE filename = ?", filename)
}

func (s *Store) getOne(query string, arg any) (*Entry, error) {
	entry, err := scanEntry(s.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}
	return entry, nil
}

// List returns entries newest first.
func (s *Store) List(filter Filter) ([]Entry, error) {
	query := selectColumns
	var args []any

	if filter.Query != "" {
		query += " WHERE title LIKE ? OR source_url LIKE ?"
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY saved_at DESC, title ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite only accepts OFFSET after a LIMIT
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	return entries, nil
}

// Delete removes an entry. The note file is left alone.
func (s *Store) Delete(recipeID uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM recipes WHERE recipe_id = ?", recipeID.String())
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry is shared by the single-row and listing queries.
func scanEntry(row rowScanner) (*Entry, error) {
	var idStr, title, sourceURL, filename, savedAtStr, updatedAtStr string
	var ingredients, instructions int

	err := row.Scan(
		&idStr, &title, &sourceURL, &filename,
		&ingredients, &instructions, &savedAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe ID: %w", err)
	}

	return &Entry{
		RecipeID:         id,
		Title:            title,
		SourceURL:        sourceURL,
		Filename:         filename,
		IngredientCount:  ingredients,
		InstructionCount: instructions,
		SavedAt:          parseTime(savedAtStr),
		UpdatedAt:        parseTime(updatedAtStr),
	}, nil
}

// timeLayout is fixed-width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Helper functions for time formatting
func formatTime(t time.Time) string {
	// Strip monotonic clock for consistent storage and comparisons
	return t.Truncate(0).UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	// Fall back to RFC3339 for rows written by hand
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t.Truncate(0)
}
