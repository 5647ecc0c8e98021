// Package runstore persists clustering run outcomes to sqlite for
// offline analysis. It records run metadata and the final-cluster
// summaries emitted by each density pass; the engine itself never reads
// this database and no microcluster state is stored.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/piratevector/DynamicClustering/internal/dyclee"
)

const schema = `
CREATE TABLE IF NOT EXISTS cluster_runs (
	run_id TEXT PRIMARY KEY,
	created_unix_nanos INTEGER NOT NULL,
	phi REAL NOT NULL,
	t_global INTEGER NOT NULL,
	dims INTEGER NOT NULL,
	dataset TEXT
);
CREATE TABLE IF NOT EXISTS cluster_passes (
	run_id TEXT NOT NULL REFERENCES cluster_runs(run_id),
	pass_t INTEGER NOT NULL,
	label INTEGER NOT NULL,
	microclusters INTEGER NOT NULL,
	samples INTEGER NOT NULL,
	center_json TEXT NOT NULL,
	mean_density REAL NOT NULL,
	spread REAL NOT NULL,
	PRIMARY KEY (run_id, pass_t, label)
);
CREATE INDEX IF NOT EXISTS idx_cluster_passes_run ON cluster_passes(run_id, pass_t);
`

// Run describes one recorded clustering run.
type Run struct {
	RunID            string  `json:"run_id"`
	CreatedUnixNanos int64   `json:"created_unix_nanos"`
	Phi              float64 `json:"phi"`
	TGlobal          int64   `json:"t_global"`
	Dims             int     `json:"dims"`
	Dataset          string  `json:"dataset,omitempty"`
}

// Store provides persistence for run outcomes.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a run store at the given sqlite path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap run store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// CreateRun inserts a new run record. If RunID is empty, a UUID is
// generated.
func (s *Store) CreateRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedUnixNanos == 0 {
		run.CreatedUnixNanos = time.Now().UnixNano()
	}
	_, err := s.db.Exec(`
		INSERT INTO cluster_runs (run_id, created_unix_nanos, phi, t_global, dims, dataset)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedUnixNanos, run.Phi, run.TGlobal, run.Dims, run.Dataset)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordPass persists the final-cluster summaries of one density pass.
func (s *Store) RecordPass(runID string, passT int64, clusters []dyclee.FinalCluster) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin pass transaction: %w", err)
	}
	defer tx.Rollback()

	for _, fc := range clusters {
		center, err := json.Marshal(fc.Center)
		if err != nil {
			return fmt.Errorf("marshal cluster center: %w", err)
		}
		_, err = tx.Exec(`
			INSERT OR REPLACE INTO cluster_passes
				(run_id, pass_t, label, microclusters, samples, center_json, mean_density, spread)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, passT, fc.Label, fc.MicroClusters, fc.Samples, string(center), fc.MeanDensity, fc.Spread)
		if err != nil {
			return fmt.Errorf("insert pass cluster: %w", err)
		}
	}
	return tx.Commit()
}

// PassCluster is a stored final-cluster summary joined with its pass
// timestamp.
type PassCluster struct {
	PassT int64
	dyclee.FinalCluster
}

// ListPasses returns every stored cluster summary of a run, ordered by
// pass timestamp then label.
func (s *Store) ListPasses(runID string) ([]PassCluster, error) {
	rows, err := s.db.Query(`
		SELECT pass_t, label, microclusters, samples, center_json, mean_density, spread
		FROM cluster_passes
		WHERE run_id = ?
		ORDER BY pass_t, label`, runID)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer rows.Close()

	var out []PassCluster
	for rows.Next() {
		var pc PassCluster
		var centerJSON string
		if err := rows.Scan(&pc.PassT, &pc.Label, &pc.MicroClusters, &pc.Samples,
			&centerJSON, &pc.MeanDensity, &pc.Spread); err != nil {
			return nil, fmt.Errorf("scan pass cluster: %w", err)
		}
		if err := json.Unmarshal([]byte(centerJSON), &pc.Center); err != nil {
			return nil, fmt.Errorf("decode cluster center: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// GetRun returns a stored run record.
func (s *Store) GetRun(runID string) (*Run, error) {
	var run Run
	err := s.db.QueryRow(`
		SELECT run_id, created_unix_nanos, phi, t_global, dims, COALESCE(dataset, '')
		FROM cluster_runs WHERE run_id = ?`, runID).
		Scan(&run.RunID, &run.CreatedUnixNanos, &run.Phi, &run.TGlobal, &run.Dims, &run.Dataset)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return &run, nil
}
