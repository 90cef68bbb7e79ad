package store

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS policy_versions (
	version_id    TEXT PRIMARY KEY,
	parent_id     TEXT,
	source        TEXT NOT NULL,
	belief_json   TEXT NOT NULL,
	matrices      BLOB NOT NULL,
	metrics_json  TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES policy_versions(version_id)
);

CREATE TABLE IF NOT EXISTS active_policy (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	version_id    TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES policy_versions(version_id)
);

CREATE TABLE IF NOT EXISTS decision_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	version_id    TEXT,
	state         INTEGER NOT NULL,
	goal          TEXT NOT NULL,
	phase         TEXT NOT NULL,
	performance   TEXT NOT NULL,
	behaviour     TEXT NOT NULL,
	next_state    INTEGER NOT NULL,
	draws         INTEGER NOT NULL,
	advances      INTEGER NOT NULL,
	step          TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS decision_log_session ON decision_log(session_id, id);
`

// Schema returns the DDL so callers (and tests) can create the tables on a
// connection they own.
func Schema() string {
	return schema
}
// #endregion schema

// #region store-struct
// Store manages versioned policy artifacts and the decision log in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an already-migrated connection.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for the decision logger.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion close

// #region save-artifact
// SaveArtifact inserts a new version and makes it active in one transaction.
// An empty VersionID gets a fresh uuid; a zero CreatedAt gets now.
func (s *Store) SaveArtifact(a Artifact) (Artifact, error) {
	if a.Tables == nil {
		return Artifact{}, fmt.Errorf("save artifact: %w", reward.ErrMatrixShape)
	}
	if err := a.Belief.Validate(); err != nil {
		return Artifact{}, fmt.Errorf("save artifact: %w", err)
	}
	if a.VersionID == "" {
		a.VersionID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	belJSON, err := json.Marshal(a.Belief)
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal belief: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Artifact{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO policy_versions (version_id, parent_id, source, belief_json, matrices, metrics_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.VersionID, nullIfEmpty(a.ParentID), a.Source, string(belJSON),
		encodeTables(a.Tables), nullIfEmpty(a.MetricsJSON), a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Artifact{}, fmt.Errorf("insert version: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO active_policy (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		a.VersionID,
	)
	if err != nil {
		return Artifact{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Artifact{}, fmt.Errorf("commit: %w", err)
	}
	return a, nil
}
// #endregion save-artifact

// #region active
// Active reads the artifact the active pointer names.
func (s *Store) Active() (Artifact, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_policy WHERE id = 1`).Scan(&versionID)
	if errors.Is(err, sql.ErrNoRows) {
		return Artifact{}, fmt.Errorf("get active: %w", ErrNotFound)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("get active: %w", err)
	}
	return s.Get(versionID)
}
// #endregion active

// #region get
// Get retrieves a specific version by ID.
func (s *Store) Get(id string) (Artifact, error) {
	row := s.db.QueryRow(
		`SELECT version_id, parent_id, source, belief_json, matrices, metrics_json, created_at
		 FROM policy_versions WHERE version_id = ?`, id,
	)
	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Artifact{}, fmt.Errorf("get version %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("get version %s: %w", id, err)
	}
	return a, nil
}
// #endregion get

// #region rollback
// Rollback sets the active pointer to a previous version.
func (s *Store) Rollback(targetVersionID string) error {
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM policy_versions WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("rollback to %s: %w", targetVersionID, ErrNotFound)
	}

	_, err = s.db.Exec(
		`INSERT INTO active_policy (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		targetVersionID,
	)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
// #endregion rollback

// #region list
// List returns the most recently saved versions, newest first.
func (s *Store) List(limit int) ([]Artifact, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, source, belief_json, matrices, metrics_json, created_at
		 FROM policy_versions ORDER BY rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(r scanner) (Artifact, error) {
	var a Artifact
	var parentID, metricsJSON sql.NullString
	var belJSON, createdStr string
	var blob []byte

	if err := r.Scan(&a.VersionID, &parentID, &a.Source, &belJSON, &blob, &metricsJSON, &createdStr); err != nil {
		return Artifact{}, err
	}
	a.ParentID = parentID.String
	a.MetricsJSON = metricsJSON.String
	if err := json.Unmarshal([]byte(belJSON), &a.Belief); err != nil {
		return Artifact{}, fmt.Errorf("unmarshal belief: %w", err)
	}
	if err := a.Belief.Validate(); err != nil {
		return Artifact{}, fmt.Errorf("stored belief: %w", err)
	}
	tables, err := decodeTables(blob)
	if err != nil {
		return Artifact{}, err
	}
	a.Tables = tables
	a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return a, nil
}
// #endregion list

// #region decisions
// Decisions returns a session's logged decisions in the order they were made.
// limit <= 0 returns all of them.
func (s *Store) Decisions(sessionID string, limit int) ([]DecisionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, version_id, state, goal, phase, performance, behaviour,
		        next_state, draws, advances, step, created_at
		 FROM decision_log WHERE session_id = ? ORDER BY id ASC LIMIT ?`, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionRecord
	for rows.Next() {
		var d DecisionRecord
		var versionID sql.NullString
		var createdStr string
		if err := rows.Scan(&d.ID, &d.SessionID, &versionID, &d.State, &d.Goal, &d.Phase,
			&d.Performance, &d.Behaviour, &d.NextState, &d.Draws, &d.Advances, &d.Step, &createdStr); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d.VersionID = versionID.String
		d.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, d)
	}
	return out, rows.Err()
}
// #endregion decisions

// #region matrix-encoding
const matrixBytes = behaviour.Count * behaviour.Count * 8

// encodeTables lays the twelve matrices out style by style, row-major, as
// little-endian float64.
func encodeTables(t *reward.Tables) []byte {
	buf := make([]byte, codec.StyleCount*matrixBytes)
	off := 0
	for _, style := range codec.Styles() {
		m := t.Matrix(style)
		for i := 0; i < behaviour.Count; i++ {
			for j := 0; j < behaviour.Count; j++ {
				binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(m.At(i, j)))
				off += 8
			}
		}
	}
	return buf
}

func decodeTables(b []byte) (*reward.Tables, error) {
	if len(b) != codec.StyleCount*matrixBytes {
		return nil, fmt.Errorf("matrix blob is %d bytes: %w", len(b), reward.ErrMatrixShape)
	}
	ms := make(map[codec.Style]*mat.Dense, codec.StyleCount)
	off := 0
	for _, style := range codec.Styles() {
		data := make([]float64, behaviour.Count*behaviour.Count)
		for k := range data {
			data[k] = math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
			off += 8
		}
		ms[style] = mat.NewDense(behaviour.Count, behaviour.Count, data)
	}
	return reward.FromMatrices(ms)
}
// #endregion matrix-encoding

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
