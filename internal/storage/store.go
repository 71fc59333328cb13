package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
)

const (
	catalogFile = "catalog.db"
	statesFile  = "states.csv"

	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var ErrRunNotFound = errors.New("run not found")

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	pressure     REAL NOT NULL,
	pressure_bar REAL NOT NULL,
	temp         REAL NOT NULL,
	dt           REAL NOT NULL,
	tau          REAL NOT NULL,
	steps        INTEGER NOT NULL,
	samples      INTEGER NOT NULL,
	status       TEXT NOT NULL,
	error        TEXT NOT NULL DEFAULT '',
	metrics      TEXT NOT NULL DEFAULT '{}'
)`

// Store keeps a SQLite catalog of runs under baseDir and one directory per
// run holding its sample file.
type Store struct {
	baseDir string
	db      *sql.DB
}

type RunMetadata struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Timestamp  time.Time           `json:"timestamp"`
	Conditions ignition.Conditions `json:"conditions"`
	Dt         float64             `json:"dt"`
	Tau        float64             `json:"tau"`
	Steps      int                 `json:"steps"`
	Samples    int                 `json:"samples"`
	Status     string              `json:"status"`
	Error      string              `json:"error,omitempty"`
	Metrics    map[string]float64  `json:"metrics"`
}

func Open(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	baseDir = filepath.Clean(baseDir)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := filepath.Join(baseDir, catalogFile) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{baseDir: baseDir, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Dir() string { return s.baseDir }

func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Save writes the sample file and the catalog entry for one run. A failed
// run is stored too, with its partial history and the error text.
func (s *Store) Save(ctx context.Context, name string, cond ignition.Conditions, params ignition.Params, result *sim.Result, runErr error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if result == nil || result.History == nil {
		return "", fmt.Errorf("result has no history")
	}

	meta := RunMetadata{
		ID:         newRunID(),
		Name:       name,
		Timestamp:  time.Now().UTC(),
		Conditions: cond,
		Dt:         params.Dt,
		Tau:        params.Tau,
		Steps:      result.StepsTaken,
		Samples:    result.History.Len(),
		Status:     StatusCompleted,
		Metrics:    result.Metrics,
	}
	if runErr != nil {
		meta.Status = StatusFailed
		meta.Error = runErr.Error()
	}
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	metricsJSON, err := json.Marshal(meta.Metrics)
	if err != nil {
		return "", fmt.Errorf("encode metrics: %w", err)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	if err := writeCSVFile(filepath.Join(runDir, statesFile), result.History); err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (
		   id, name, created_at, pressure, pressure_bar, temp,
		   dt, tau, steps, samples, status, error, metrics
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID,
		meta.Name,
		meta.Timestamp.UnixMilli(),
		cond.Pressure,
		cond.PressureBar,
		cond.Temp,
		meta.Dt,
		meta.Tau,
		meta.Steps,
		meta.Samples,
		meta.Status,
		meta.Error,
		string(metricsJSON),
	)
	if err != nil {
		_ = os.RemoveAll(runDir)
		return "", fmt.Errorf("insert run: %w", err)
	}
	return meta.ID, nil
}

const selectRuns = `SELECT id, name, created_at, pressure, pressure_bar, temp,
	dt, tau, steps, samples, status, error, metrics FROM runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunMetadata, error) {
	var (
		meta        RunMetadata
		createdAt   int64
		metricsJSON string
	)
	err := row.Scan(
		&meta.ID,
		&meta.Name,
		&createdAt,
		&meta.Conditions.Pressure,
		&meta.Conditions.PressureBar,
		&meta.Conditions.Temp,
		&meta.Dt,
		&meta.Tau,
		&meta.Steps,
		&meta.Samples,
		&meta.Status,
		&meta.Error,
		&metricsJSON,
	)
	if err != nil {
		return RunMetadata{}, err
	}
	meta.Timestamp = time.UnixMilli(createdAt).UTC()
	if err := json.Unmarshal([]byte(metricsJSON), &meta.Metrics); err != nil {
		return RunMetadata{}, fmt.Errorf("decode metrics for %s: %w", meta.ID, err)
	}
	return meta, nil
}

// List returns all runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (s *Store) Load(ctx context.Context, runID string) (*RunMetadata, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, runID)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadHistory(runID string) (*sim.History, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// Delete removes a run from the catalog along with its directory.
func (s *Store) Delete(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
