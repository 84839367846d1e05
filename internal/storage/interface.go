package storage

import (
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
)

// PendingSave is one journaled slot mutation awaiting replay. Saves are
// fire-and-forget in-session; a failed one lands here so `mealgrid sync`
// can retry it later.
type PendingSave struct {
	ID        string
	Record    models.SlotRecord
	Attempts  int
	CreatedAt string
}

// Provider is the offline cache behind the planner client: a snapshot of the
// last weeks and catalog seen from the server, plus the pending-save journal.
// The server stays the source of truth; everything here is disposable.
type Provider interface {
	// Init creates the cache database and schema.
	Init() error
	// Load opens an existing cache. It fails if Init was never run.
	Load() error
	Close() error
	GetConfigPath() string

	SaveCatalog(entries []models.CatalogEntry) error
	GetCatalog() ([]models.CatalogEntry, error)

	SaveWeekSnapshot(w planner.WeekWindow, slots []models.SlotRecord) error
	GetWeekSnapshot(w planner.WeekWindow) ([]models.SlotRecord, error)

	EnqueuePendingSave(rec models.SlotRecord) error
	GetPendingSaves() ([]PendingSave, error)
	ResolvePendingSave(id string) error
	BumpPendingSaveAttempts(id string) error
}
