package quiz

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Store persists poll tallies across runs.
type Store interface {
	// Record adds one run's tally to the accumulated counts. Every
	// party is written, zero counts included.
	Record(t Tally) error
	// Totals returns the accumulated count per party.
	Totals() (map[string]int, error)
}

// FileStore appends each run's count per party as one line to
// <Party>.txt under Dir. Totals sums the recorded lines.
type FileStore struct {
	Dir string
}

func (s FileStore) path(party string) string {
	return filepath.Join(s.Dir, party+".txt")
}

// Record appends one line per party holding that run's count.
func (s FileStore) Record(t Tally) error {
	for _, p := range Parties {
		f, err := os.OpenFile(s.path(p), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open tally file: %w", err)
		}
		_, werr := fmt.Fprintln(f, t[p])
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("append tally for %s: %w", p, werr)
		}
		if cerr != nil {
			return fmt.Errorf("close tally file for %s: %w", p, cerr)
		}
	}
	return nil
}

// Totals sums every line of every party's file. Parties whose file does
// not exist yet count zero.
func (s FileStore) Totals() (map[string]int, error) {
	out := make(map[string]int, len(Parties))
	for _, p := range Parties {
		out[p] = 0
		data, err := os.ReadFile(s.path(p))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read tally file: %w", err)
		}
		for _, line := range strings.Fields(string(data)) {
			n, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("tally file for %s: bad count %q", p, line)
			}
			out[p] += n
		}
	}
	return out, nil
}

const createPartyCounts = `CREATE TABLE IF NOT EXISTS PartyCounts (
	Party TEXT PRIMARY KEY,
	Count INT NOT NULL
)`

// SQLStore accumulates tallies in a PartyCounts table keyed by party
// name.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL opens the SQLite database at path, creating the file and the
// PartyCounts table as needed.
func OpenSQL(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createPartyCounts); err != nil {
		db.Close()
		return nil, fmt.Errorf("create PartyCounts: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Record upserts every party's row, adding this run's count onto the
// stored one.
func (s *SQLStore) Record(t Tally) error {
	const upsert = `INSERT INTO PartyCounts (Party, Count) VALUES (?, ?)
		ON CONFLICT(Party) DO UPDATE SET Count = Count + ?`
	for _, p := range Parties {
		if _, err := s.db.Exec(upsert, p, t[p], t[p]); err != nil {
			return fmt.Errorf("record tally for %s: %w", p, err)
		}
	}
	return nil
}

// Totals reads the accumulated counts. Parties without a row yet count
// zero.
func (s *SQLStore) Totals() (map[string]int, error) {
	out := make(map[string]int, len(Parties))
	for _, p := range Parties {
		out[p] = 0
	}
	rows, err := s.db.Query(`SELECT Party, Count FROM PartyCounts`)
	if err != nil {
		return nil, fmt.Errorf("query PartyCounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var party string
		var count int
		if err := rows.Scan(&party, &count); err != nil {
			return nil, fmt.Errorf("scan PartyCounts: %w", err)
		}
		out[party] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read PartyCounts: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
