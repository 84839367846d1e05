package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalog (
	id       INTEGER PRIMARY KEY,
	title    TEXT NOT NULL,
	note     TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	source   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS week_slots (
	date      TEXT NOT NULL,
	meal_type TEXT NOT NULL,
	recipe_id INTEGER,
	note      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (date, meal_type)
);

CREATE TABLE IF NOT EXISTS pending_saves (
	id         TEXT PRIMARY KEY,
	date       TEXT NOT NULL,
	meal_type  TEXT NOT NULL,
	recipe_id  INTEGER,
	note       TEXT NOT NULL DEFAULT '',
	attempts   INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
`

// SQLiteStore is the default cache Provider, one file under the config dir.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a store for the given database path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("cache not initialized, run 'mealgrid init' first")
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Load.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// SaveCatalog replaces the cached catalog with the freshly fetched feeds.
func (s *SQLiteStore) SaveCatalog(entries []models.CatalogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM catalog"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO catalog (id, title, note, category, source) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.ID, e.Title, e.Note, e.Category, string(e.Source)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetCatalog() ([]models.CatalogEntry, error) {
	rows, err := s.db.Query("SELECT id, title, note, category, source FROM catalog ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		var source string
		if err := rows.Scan(&e.ID, &e.Title, &e.Note, &e.Category, &source); err != nil {
			return nil, err
		}
		e.Source = recipeSource(source)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveWeekSnapshot replaces the cached slots for the window's seven days.
// Other weeks' rows are left alone so paging back and forth offline works.
func (s *SQLiteStore) SaveWeekSnapshot(w planner.WeekWindow, slots []models.SlotRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM week_slots WHERE date >= ? AND date <= ?", w.StartISO(), w.EndISO()); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO week_slots (date, meal_type, recipe_id, note) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range slots {
		if !w.Contains(rec.Date) {
			continue
		}
		var recipeID sql.NullInt64
		if rec.RecipeID != nil {
			recipeID = sql.NullInt64{Int64: int64(*rec.RecipeID), Valid: true}
		}
		if _, err := stmt.Exec(rec.Date, rec.MealType, recipeID, rec.Note); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetWeekSnapshot(w planner.WeekWindow) ([]models.SlotRecord, error) {
	rows, err := s.db.Query(
		"SELECT date, meal_type, recipe_id, note FROM week_slots WHERE date >= ? AND date <= ? ORDER BY date, meal_type",
		w.StartISO(), w.EndISO(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.SlotRecord
	for rows.Next() {
		var rec models.SlotRecord
		var recipeID sql.NullInt64
		if err := rows.Scan(&rec.Date, &rec.MealType, &recipeID, &rec.Note); err != nil {
			return nil, err
		}
		if recipeID.Valid {
			id := int(recipeID.Int64)
			rec.RecipeID = &id
		}
		slots = append(slots, rec)
	}
	return slots, rows.Err()
}

// EnqueuePendingSave journals a failed slot save for later replay. A newer
// mutation to the same cell supersedes any older queued one, matching the
// per-cell last-write-wins behavior of the live planner.
func (s *SQLiteStore) EnqueuePendingSave(rec models.SlotRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pending_saves WHERE date = ? AND meal_type = ?", rec.Date, rec.MealType); err != nil {
		return err
	}

	var recipeID sql.NullInt64
	if rec.RecipeID != nil {
		recipeID = sql.NullInt64{Int64: int64(*rec.RecipeID), Valid: true}
	}
	_, err = tx.Exec(
		"INSERT INTO pending_saves (id, date, meal_type, recipe_id, note, attempts, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)",
		uuid.New().String(), rec.Date, rec.MealType, recipeID, rec.Note, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetPendingSaves() ([]PendingSave, error) {
	rows, err := s.db.Query("SELECT id, date, meal_type, recipe_id, note, attempts, created_at FROM pending_saves ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []PendingSave
	for rows.Next() {
		var p PendingSave
		var recipeID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Record.Date, &p.Record.MealType, &recipeID, &p.Record.Note, &p.Attempts, &p.CreatedAt); err != nil {
			return nil, err
		}
		if recipeID.Valid {
			id := int(recipeID.Int64)
			p.Record.RecipeID = &id
		}
		saves = append(saves, p)
	}
	return saves, rows.Err()
}

func (s *SQLiteStore) ResolvePendingSave(id string) error {
	_, err := s.db.Exec("DELETE FROM pending_saves WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) BumpPendingSaveAttempts(id string) error {
	_, err := s.db.Exec("UPDATE pending_saves SET attempts = attempts + 1 WHERE id = ?", id)
	return err
}

func recipeSource(s string) constants.RecipeSource {
	switch constants.RecipeSource(s) {
	case constants.SourceStudent:
		return constants.SourceStudent
	case constants.SourceGym:
		return constants.SourceGym
	default:
		return constants.SourceUnknown
	}
}
