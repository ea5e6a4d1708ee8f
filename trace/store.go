package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrSessionNotFound indicates the requested trace session doesn't exist
var ErrSessionNotFound = errors.New("trace session not found")

// Store keeps trace logs in SQLite, one row per session. The log itself is
// stored as CBOR; the summary columns are denormalized for List.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Summary describes a stored session without its calls.
type Summary struct {
	Session    string
	Name       string
	Started    time.Time
	Calls      int
	Violations int
}

// OpenStore opens (creating if needed) the trace database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS traces (
		session    TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		started    INTEGER NOT NULL,
		calls      INTEGER NOT NULL,
		violations INTEGER NOT NULL,
		data       BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Path returns the database path.
func (s *Store) Path() string { return s.dbPath }

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists a log, replacing any earlier save of the same session.
func (s *Store) Save(l *Log) error {
	data, err := Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO traces (session, name, started, calls, violations, data) VALUES (?, ?, ?, ?, ?, ?)",
		l.Session, l.Name, l.StartedAt, len(l.Calls), len(Verify(l)), data,
	)
	if err != nil {
		return fmt.Errorf("saving trace: %w", err)
	}
	log.Debugf("saved trace %s (%d calls)", l.Session, len(l.Calls))
	return nil
}

// Load retrieves a session by ID.
func (s *Store) Load(session string) (*Log, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM traces WHERE session = ?", session).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("querying trace: %w", err)
	}
	return Unmarshal(data)
}

// List returns every stored session, oldest first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query("SELECT session, name, started, calls, violations FROM traces ORDER BY started, session")
	if err != nil {
		return nil, fmt.Errorf("listing traces: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var started int64
		if err := rows.Scan(&sum.Session, &sum.Name, &started, &sum.Calls, &sum.Violations); err != nil {
			return nil, fmt.Errorf("scanning trace: %w", err)
		}
		sum.Started = time.Unix(0, started)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing traces: %w", err)
	}
	return out, nil
}

// Delete removes a session.
func (s *Store) Delete(session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM traces WHERE session = ?", session)
	if err != nil {
		return fmt.Errorf("deleting trace: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
