package state

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/webprobe-dev/webprobe/internal/core"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

// SQLiteStore persists reports in a SQLite database, one row per report
// document keyed by (run_id, kind).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath and runs pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		// Table doesn't exist yet, run initial migration
		version = 0
	}

	if version < 1 {
		if _, err := s.db.Exec(migrationV1); err != nil {
			return fmt.Errorf("applying migration v1: %w", err)
		}
	}
	return nil
}

// SaveAnalysis implements core.ReportStore.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, report *core.AnalysisReport) error {
	return s.save(ctx, report.TestRunID, kindAnalysis, report)
}

// SaveWorkflowReport implements core.ReportStore.
func (s *SQLiteStore) SaveWorkflowReport(ctx context.Context, report *core.WorkflowReport) error {
	return s.save(ctx, report.RunID, kindFinalReport, report)
}

// LoadAnalysis implements core.ReportStore.
func (s *SQLiteStore) LoadAnalysis(ctx context.Context, id core.RunID) (*core.AnalysisReport, error) {
	var report core.AnalysisReport
	if err := s.load(ctx, id, kindAnalysis, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// LoadWorkflowReport implements core.ReportStore.
func (s *SQLiteStore) LoadWorkflowReport(ctx context.Context, id core.RunID) (*core.WorkflowReport, error) {
	var report core.WorkflowReport
	if err := s.load(ctx, id, kindFinalReport, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// List implements core.ReportStore. Reports are returned newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]core.ReportInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, kind, LENGTH(payload), created_at FROM reports ORDER BY created_at DESC, run_id DESC")
	if err != nil {
		return nil, core.ErrState(core.CodePersistenceFailed, "listing reports").WithCause(err)
	}
	defer rows.Close()

	var infos []core.ReportInfo
	for rows.Next() {
		var (
			runID     string
			kind      string
			size      int64
			createdAt time.Time
		)
		if err := rows.Scan(&runID, &kind, &size, &createdAt); err != nil {
			return nil, core.ErrState(core.CodeStateCorrupted, "scanning report row").WithCause(err)
		}
		infos = append(infos, core.ReportInfo{
			Name:      documentName(core.RunID(runID), kind),
			RunID:     core.RunID(runID),
			Kind:      kind,
			CreatedAt: createdAt,
			SizeBytes: size,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, core.ErrState(core.CodePersistenceFailed, "iterating report rows").WithCause(err)
	}
	return infos, nil
}

func (s *SQLiteStore) save(ctx context.Context, id core.RunID, kind string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return core.ErrState(core.CodePersistenceFailed, "encoding report").WithCause(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (run_id, kind, payload, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (run_id, kind) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		id.String(), kind, string(payload), time.Now().UTC())
	if err != nil {
		return core.ErrState(core.CodePersistenceFailed, "saving report").WithCause(err)
	}
	return nil
}

func (s *SQLiteStore) load(ctx context.Context, id core.RunID, kind string, doc any) error {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM reports WHERE run_id = ? AND kind = ?", id.String(), kind).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound("report", documentName(id, kind))
	}
	if err != nil {
		return core.ErrState(core.CodePersistenceFailed, "loading report").WithCause(err)
	}
	if err := json.Unmarshal([]byte(payload), doc); err != nil {
		return core.ErrState(core.CodeStateCorrupted, "decoding report payload").WithCause(err)
	}
	return nil
}
