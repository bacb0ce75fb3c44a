// Package store persists flattened instruction components in a per-session
// DuckDB file so large route documents can be paged and filtered without
// holding everything in memory.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcboeker/go-duckdb"
	"github.com/nav-banner/backend/internal/models"
)

// Instruction slots within a step.
const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
)

// ComponentRow is one flattened component with its position in the route.
type ComponentRow struct {
	StepIndex      int                                `json:"stepIndex"`
	Slot           string                             `json:"slot"`
	ComponentIndex int                                `json:"componentIndex"`
	Component      *models.VisualInstructionComponent `json:"component"`
}

// ComponentStore stores instruction components in a temporary DuckDB file.
type ComponentStore struct {
	db        *sql.DB
	dbPath    string
	rowCount  int
	batchSize int
	batch     []*ComponentRow
	lastError error
}

// NewComponentStore creates a DuckDB-backed store in the given temp
// directory, one file per session.
func NewComponentStore(tempDir, sessionID string) (*ComponentStore, error) {
	dbPath := filepath.Join(tempDir, fmt.Sprintf("session_%s.duckdb", sessionID))

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE components (
			step_idx      INTEGER NOT NULL,
			slot          VARCHAR NOT NULL,
			comp_idx      INTEGER NOT NULL,
			comp_type     VARCHAR NOT NULL,
			text          VARCHAR,
			image_url     VARCHAR,
			abbr          VARCHAR,
			abbr_priority INTEGER NOT NULL,
			maneuver_type VARCHAR NOT NULL,
			maneuver_dir  VARCHAR NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &ComponentStore{
		db:        db,
		dbPath:    dbPath,
		batchSize: 5000,
		batch:     make([]*ComponentRow, 0, 5000),
	}, nil
}

// AddInstruction flattens an instruction's components into rows. Rows are
// batched for efficient insertion.
func (cs *ComponentStore) AddInstruction(stepIndex int, slot string, vi *models.VisualInstruction) {
	for i, comp := range vi.Components {
		cs.batch = append(cs.batch, &ComponentRow{
			StepIndex:      stepIndex,
			Slot:           slot,
			ComponentIndex: i,
			Component:      comp,
		})
		cs.rowCount++

		if len(cs.batch) >= cs.batchSize {
			if err := cs.flushBatch(); err != nil {
				cs.lastError = err
				fmt.Printf("[ComponentStore] flush error: %v\n", err)
			}
		}
	}
}

// LastError returns the last error that occurred during batch flush.
func (cs *ComponentStore) LastError() error {
	return cs.lastError
}

// Finalize flushes any pending rows and creates the query index.
func (cs *ComponentStore) Finalize() error {
	if err := cs.flushBatch(); err != nil {
		return err
	}
	if _, err := cs.db.Exec("CREATE INDEX idx_step ON components(step_idx)"); err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	return nil
}

// flushBatch writes the current batch using the native Appender API.
func (cs *ComponentStore) flushBatch() error {
	if len(cs.batch) == 0 {
		return nil
	}

	conn, err := cs.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	err = conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("failed to cast to duckdb.Conn")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "components")
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		defer appender.Close()

		for _, row := range cs.batch {
			comp := row.Component
			if err := appender.AppendRow(
				int32(row.StepIndex),
				row.Slot,
				int32(row.ComponentIndex),
				string(comp.Type),
				nullableString(comp.Text),
				nullableString(comp.ImageURL),
				nullableString(comp.Abbreviation),
				int32(comp.AbbreviationPriority),
				string(comp.ManeuverType),
				string(comp.ManeuverDirection),
			); err != nil {
				return fmt.Errorf("appending row: %w", err)
			}
		}
		return appender.Flush()
	})
	if err != nil {
		return err
	}

	cs.batch = cs.batch[:0]
	return nil
}

// Count returns the total number of stored components.
func (cs *ComponentStore) Count() int {
	return cs.rowCount
}

// QueryComponents returns a page of component rows, optionally restricted
// to a single step (stepIndex < 0 means all steps). Rows come back in route
// order.
func (cs *ComponentStore) QueryComponents(stepIndex, limit, offset int) ([]*ComponentRow, error) {
	query := `
		SELECT step_idx, slot, comp_idx, comp_type, text, image_url, abbr,
		       abbr_priority, maneuver_type, maneuver_dir
		FROM components`
	args := make([]interface{}, 0, 3)
	if stepIndex >= 0 {
		query += " WHERE step_idx = ?"
		args = append(args, stepIndex)
	}
	query += " ORDER BY step_idx, slot, comp_idx LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := cs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying components: %w", err)
	}
	defer rows.Close()

	result := make([]*ComponentRow, 0, limit)
	for rows.Next() {
		var (
			row                 ComponentRow
			compType            string
			text, imageURL, abr sql.NullString
			priority            int
			maneuverType        string
			maneuverDir         string
		)
		if err := rows.Scan(&row.StepIndex, &row.Slot, &row.ComponentIndex,
			&compType, &text, &imageURL, &abr, &priority, &maneuverType, &maneuverDir); err != nil {
			return nil, fmt.Errorf("scanning component row: %w", err)
		}
		row.Component = &models.VisualInstructionComponent{
			Type:                 models.VisualInstructionComponentType(compType),
			Text:                 nullStringPtr(text),
			ImageURL:             nullStringPtr(imageURL),
			Abbreviation:         nullStringPtr(abr),
			AbbreviationPriority: priority,
			ManeuverType:         models.ManeuverType(maneuverType),
			ManeuverDirection:    models.ManeuverDirection(maneuverDir),
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}

// CountByType returns component counts grouped by component type.
func (cs *ComponentStore) CountByType() (map[string]int, error) {
	rows, err := cs.db.Query("SELECT comp_type, COUNT(*) FROM components GROUP BY comp_type")
	if err != nil {
		return nil, fmt.Errorf("counting components: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var compType string
		var n int
		if err := rows.Scan(&compType, &n); err != nil {
			return nil, err
		}
		counts[compType] = n
	}
	return counts, rows.Err()
}

// Close closes the database and removes the session file.
func (cs *ComponentStore) Close() error {
	if cs.db != nil {
		cs.db.Close()
	}
	if cs.dbPath != "" {
		os.Remove(cs.dbPath)
	}
	return nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
