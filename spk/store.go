// Package spk persists and serves the clock's trajectory segments: a small
// time-indexed ephemeris dataset backed by SQLite. It implements the store
// contracts in package core — existence probe, single-shot batch build,
// read-only state queries, and phase-angle measurement.
package spk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
	_ "modernc.org/sqlite"

	"github.com/signalsfoundry/clock-ephemeris/core"
	"github.com/signalsfoundry/clock-ephemeris/internal/logging"
	"github.com/signalsfoundry/clock-ephemeris/internal/observability"
	"github.com/signalsfoundry/clock-ephemeris/model"
)

// clight is the nominal light speed used for light-time bookkeeping, in
// store distance units per second. The clock geometry never consumes it;
// it exists so state queries can report a light time alongside the state.
const clight = 299792.458

const schema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE segments (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	body_code   INTEGER NOT NULL UNIQUE,
	body_name   TEXT    NOT NULL,
	center_code INTEGER NOT NULL,
	center_name TEXT    NOT NULL,
	frame       TEXT    NOT NULL,
	start_et    DOUBLE  NOT NULL,
	stop_et     DOUBLE  NOT NULL,
	mu          DOUBLE  NOT NULL,
	label       TEXT    NOT NULL
);
CREATE TABLE samples (
	segment_id INTEGER NOT NULL REFERENCES segments(id),
	idx        INTEGER NOT NULL,
	epoch      DOUBLE  NOT NULL,
	x  DOUBLE NOT NULL, y  DOUBLE NOT NULL, z  DOUBLE NOT NULL,
	vx DOUBLE NOT NULL, vy DOUBLE NOT NULL, vz DOUBLE NOT NULL,
	PRIMARY KEY (segment_id, idx)
);
`

// FileStore locates a trajectory store on disk and satisfies the build-side
// core.SegmentStore contract.
type FileStore struct {
	Path    string
	Log     logging.Logger
	Metrics *observability.Collector
}

// Exists probes whether the store file has been created.
func (fs FileStore) Exists() bool {
	_, err := os.Stat(fs.Path)
	return err == nil
}

// Create makes a fresh store file and prepares its schema. It fails if the
// file already exists.
func (fs FileStore) Create(ctx context.Context) (core.SegmentWriter, error) {
	if fs.Exists() {
		return nil, &StoreWriteError{Path: fs.Path, Op: "create", Err: errors.New("store already exists")}
	}

	db, err := sql.Open("sqlite", fs.Path)
	if err != nil {
		return nil, &StoreWriteError{Path: fs.Path, Op: "open", Err: err}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, &StoreWriteError{Path: fs.Path, Op: "init schema", Err: err}
	}

	meta := map[string]string{
		"build_id":   uuid.NewString(),
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"kind":       "clock_simulation",
	}
	for k, v := range meta {
		if _, err := db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			db.Close()
			return nil, &StoreWriteError{Path: fs.Path, Op: "write meta", Err: err}
		}
	}

	return &writer{path: fs.Path, db: db}, nil
}

// Open attaches an existing store read-only and loads its segment table.
func (fs FileStore) Open(ctx context.Context) (*Store, error) {
	if !fs.Exists() {
		return nil, &StoreReadError{Path: fs.Path, Op: "open", Err: errors.New("store has not been built")}
	}

	db, err := sql.Open("sqlite", "file:"+fs.Path+"?mode=ro")
	if err != nil {
		return nil, &StoreReadError{Path: fs.Path, Op: "open", Err: err}
	}

	s := &Store{
		path:     fs.Path,
		db:       db,
		log:      fs.Log,
		metrics:  fs.Metrics,
		segments: make(map[int]model.Segment),
	}
	if err := s.loadSegments(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// writer is the build-side handle. It is single-use: WriteSegment until
// done, then Close.
type writer struct {
	path   string
	db     *sql.DB
	closed bool
}

// WriteSegment persists one segment and its bracketing samples atomically.
func (w *writer) WriteSegment(ctx context.Context, seg model.Segment) error {
	if w.closed {
		return &StoreWriteError{Path: w.path, Op: "write segment", Err: errors.New("store already closed")}
	}
	if len(seg.Samples) < 2 {
		return &StoreWriteError{Path: w.path, Op: "write segment",
			Err: fmt.Errorf("segment %q needs at least 2 samples, got %d", seg.Label, len(seg.Samples))}
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreWriteError{Path: w.path, Op: "begin tx", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO segments (body_code, body_name, center_code, center_name, frame, start_et, stop_et, mu, label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seg.Body.Code, seg.Body.Name, seg.Center.Code, seg.Center.Name,
		seg.Frame, seg.Start, seg.Stop, seg.Mu, seg.Label,
	)
	if err != nil {
		return &StoreWriteError{Path: w.path, Op: "insert segment", Err: err}
	}
	segID, err := res.LastInsertId()
	if err != nil {
		return &StoreWriteError{Path: w.path, Op: "insert segment", Err: err}
	}

	for i, smp := range seg.Samples {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO samples (segment_id, idx, epoch, x, y, z, vx, vy, vz)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			segID, i, smp.Epoch,
			smp.Position.X, smp.Position.Y, smp.Position.Z,
			smp.Velocity.X, smp.Velocity.Y, smp.Velocity.Z,
		); err != nil {
			return &StoreWriteError{Path: w.path, Op: "insert sample", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreWriteError{Path: w.path, Op: "commit segment", Err: err}
	}
	return nil
}

// Close releases the write handle. It is safe to call more than once.
func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.db.Close(); err != nil {
		return &StoreWriteError{Path: w.path, Op: "close", Err: err}
	}
	return nil
}

// Store is a read-only handle over a built trajectory store. It satisfies
// core.Ephemeris.
type Store struct {
	path     string
	db       *sql.DB
	log      logging.Logger
	metrics  *observability.Collector
	segments map[int]model.Segment
}

func (s *Store) loadSegments(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, body_code, body_name, center_code, center_name, frame, start_et, stop_et, mu, label
		FROM segments ORDER BY id`)
	if err != nil {
		return &StoreReadError{Path: s.path, Op: "load segments", Err: err}
	}
	defer rows.Close()

	ids := make(map[int]int64)
	for rows.Next() {
		var id int64
		var seg model.Segment
		if err := rows.Scan(&id, &seg.Body.Code, &seg.Body.Name, &seg.Center.Code, &seg.Center.Name,
			&seg.Frame, &seg.Start, &seg.Stop, &seg.Mu, &seg.Label); err != nil {
			return &StoreReadError{Path: s.path, Op: "scan segment", Err: err}
		}
		s.segments[seg.Body.Code] = seg
		ids[seg.Body.Code] = id
	}
	if err := rows.Err(); err != nil {
		return &StoreReadError{Path: s.path, Op: "load segments", Err: err}
	}
	if len(s.segments) == 0 {
		return &StoreReadError{Path: s.path, Op: "load segments", Err: errors.New("store holds no segments")}
	}

	for code, id := range ids {
		seg := s.segments[code]
		if err := s.loadSamples(ctx, id, &seg); err != nil {
			return err
		}
		s.segments[code] = seg
	}
	return nil
}

func (s *Store) loadSamples(ctx context.Context, segID int64, seg *model.Segment) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT epoch, x, y, z, vx, vy, vz FROM samples WHERE segment_id = ? ORDER BY idx`, segID)
	if err != nil {
		return &StoreReadError{Path: s.path, Op: "load samples", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var smp model.StateSample
		if err := rows.Scan(&smp.Epoch,
			&smp.Position.X, &smp.Position.Y, &smp.Position.Z,
			&smp.Velocity.X, &smp.Velocity.Y, &smp.Velocity.Z); err != nil {
			return &StoreReadError{Path: s.path, Op: "scan sample", Err: err}
		}
		seg.Samples = append(seg.Samples, smp)
	}
	if err := rows.Err(); err != nil {
		return &StoreReadError{Path: s.path, Op: "load samples", Err: err}
	}
	if len(seg.Samples) < 2 {
		return &StoreReadError{Path: s.path, Op: "load samples",
			Err: fmt.Errorf("segment %q has %d samples, want at least 2", seg.Label, len(seg.Samples))}
	}
	return nil
}

// State returns the state of target relative to observer at et, plus the
// one-way light time. Only queries against a segment's center body are
// supported, and et must lie inside the segment's validity window.
func (s *Store) State(target, observer model.Body, et float64) (model.StateSample, float64, error) {
	seg, ok := s.segments[target.Code]
	if !ok {
		return model.StateSample{}, 0, &StoreReadError{Path: s.path, Op: "state query",
			Err: fmt.Errorf("no segment for body %s", target)}
	}
	if observer.Code != seg.Center.Code {
		return model.StateSample{}, 0, &StoreReadError{Path: s.path, Op: "state query",
			Err: fmt.Errorf("segment for %s is centred on %s, not %s", target, seg.Center, observer)}
	}
	if !seg.Covers(et) {
		return model.StateSample{}, 0, &StoreReadError{Path: s.path, Op: "state query",
			Err: fmt.Errorf("et %.6f outside validity window [%.6f, %.6f] of %q", et, seg.Start, seg.Stop, seg.Label)}
	}

	s.metrics.ObserveStateQuery(target.Name)
	state := propagateCircular(nearestSample(seg.Samples, et), et)
	lt := r3.Norm(state.Position) / clight
	return state, lt, nil
}

// PhaseAngle returns the angle at observer subtended by rays towards a and
// b, in radians.
func (s *Store) PhaseAngle(observer, a, b model.Body, et float64) (float64, error) {
	stA, _, err := s.State(a, observer, et)
	if err != nil {
		return 0, err
	}
	stB, _, err := s.State(b, observer, et)
	if err != nil {
		return 0, err
	}
	return core.Sep(stA.Position, stB.Position), nil
}

// FindWindows runs an event search over the phase angle at observer between
// a and b, confined to the given window. It mirrors the geometry-finder
// surface of ephemeris toolkits; the search itself lives in core.Finder.
func (s *Store) FindWindows(ctx context.Context, observer, a, b model.Body, search core.Search, confine model.Window) (*model.WindowSet, error) {
	finder := &core.Finder{Log: s.log, Metrics: s.metrics}
	fn := func(et float64) (float64, error) {
		return s.PhaseAngle(observer, a, b, et)
	}
	return finder.FindWindows(ctx, fn, search, confine)
}

// BuildID returns the build identifier stamped when the store was created.
func (s *Store) BuildID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'build_id'`).Scan(&id)
	if err != nil {
		return "", &StoreReadError{Path: s.path, Op: "read meta", Err: err}
	}
	return id, nil
}

// Close releases the read handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return &StoreReadError{Path: s.path, Op: "close", Err: err}
	}
	return nil
}
