// Package repositories implements SQLite persistence for import history.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spillover/internal/models"
	"github.com/desertthunder/spillover/internal/shared"
)

// ImportRepository implements models.Repository[*models.ImportRecord].
type ImportRepository struct {
	db *sql.DB
}

// NewImportRepository creates a new ImportRepository with the given database connection
func NewImportRepository(db *sql.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// Create inserts a new import record with a generated ID.
func (r *ImportRepository) Create(record *models.ImportRecord) error {
	record.SetID(shared.GenerateID())

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO imports (id, url, platform, search_query, track_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var searchQuery any = record.SearchQuery()
	if searchQuery == "" {
		searchQuery = nil
	}

	_, err := r.db.Exec(query,
		record.ID(),
		record.URL(),
		record.Platform(),
		searchQuery,
		record.TrackCount(),
		record.CreatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert import: %w", err)
	}

	return nil
}

// Get retrieves an import record by its ID.
func (r *ImportRepository) Get(id string) (*models.ImportRecord, error) {
	query := `
		SELECT id, url, platform, search_query, track_count, created_at
		FROM imports WHERE id = ?
	`

	record, err := scanImport(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("import %s not found", id)
		}
		return nil, fmt.Errorf("failed to get import: %w", err)
	}

	return record, nil
}

// List retrieves the most recent import records, newest first.
func (r *ImportRepository) List(limit int) ([]*models.ImportRecord, error) {
	query := `
		SELECT id, url, platform, search_query, track_count, created_at
		FROM imports ORDER BY created_at DESC LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var records []*models.ImportRecord
	for rows.Next() {
		record, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate imports: %w", err)
	}

	return records, nil
}

// Delete removes an import record by its ID.
func (r *ImportRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM imports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("import %s not found", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImport(row rowScanner) (*models.ImportRecord, error) {
	var (
		id, url, platform, createdAt string
		searchQuery                  sql.NullString
		trackCount                   int
	)

	if err := row.Scan(&id, &url, &platform, &searchQuery, &trackCount, &createdAt); err != nil {
		return nil, err
	}

	record := models.NewImportRecord(url, platform, searchQuery.String, trackCount)
	record.SetID(id)

	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		record.SetCreatedAt(ts)
	}

	return record, nil
}
