package loans

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"verde-backend/internal/platform/config"
	"verde-backend/internal/platform/db"
)

// RecordStore persists loan records. Three interchangeable backends exist:
// a SQL database, a flat delimited file and a spreadsheet. Identifiers are
// store-assigned ULIDs, stable for the record's lifetime and never reused.
//
// The file and spreadsheet backends rewrite the whole backing resource on
// every mutation, so Add and Update are O(total records) and the last full
// rewrite wins under concurrent writers. Accepted for a low-traffic
// internal tool.
type RecordStore interface {
	// Add persists a new record and returns its freshly minted id.
	Add(ctx context.Context, rec *LoanRecord) (string, error)
	// LoadAll returns every record. Order is backend-dependent; an empty
	// store yields an empty slice, not an error.
	LoadAll(ctx context.Context) ([]LoanRecord, error)
	// Update replaces the full field set of an existing record.
	Update(ctx context.Context, id string, rec *LoanRecord) error
	Close() error
}

// OpenStore selects the backend from configuration.
func OpenStore(cfg config.StorageConfig) (RecordStore, error) {
	switch cfg.Backend {
	case "database":
		conn, err := db.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn)
	case "file":
		return NewCSVStore(cfg.File.Path)
	case "spreadsheet":
		return NewXLSXStore(cfg.Spreadsheet.Path, cfg.Spreadsheet.Sheet)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newRecordID() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
