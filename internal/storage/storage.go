package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS guilds (
	id TEXT PRIMARY KEY,
	incoming TEXT NOT NULL DEFAULT '',
	public TEXT NOT NULL DEFAULT '',
	warn_incoming TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	reporter TEXT NOT NULL,
	guild TEXT NOT NULL,
	reported TEXT NOT NULL,
	reason TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_reported ON reports(reported);
CREATE TABLE IF NOT EXISTS messages (
	guild TEXT NOT NULL,
	message TEXT PRIMARY KEY,
	report TEXT NOT NULL,
	FOREIGN KEY(report) REFERENCES reports(id),
	FOREIGN KEY(guild) REFERENCES guilds(id)
);
CREATE TABLE IF NOT EXISTS banned (
	id TEXT PRIMARY KEY,
	is_user INTEGER NOT NULL
);
`

// Storage is the single writer for the guilds, reports, messages and banned
// tables. Every mutating method commits to sqlite before updating the
// in-memory mirror and returning; the mirror only serves synchronous reads
// during event handling.
type Storage struct {
	db *sql.DB

	mu           sync.RWMutex
	guilds       map[string]GuildSettings
	reports      map[string]Report
	instances    map[string]Instance
	bannedUsers  map[string]struct{}
	bannedGuilds map[string]struct{}
}

// New opens (creating if needed) the database at filePath, applies the
// schema and loads all tables into memory.
func New(filePath string) (*Storage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Storage{
		db:           db,
		guilds:       make(map[string]GuildSettings),
		reports:      make(map[string]Report),
		instances:    make(map[string]Instance),
		bannedUsers:  make(map[string]struct{}),
		bannedGuilds: make(map[string]struct{}),
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// load fills the in-memory mirrors from the persistent tables.
func (s *Storage) load() error {
	rows, err := s.db.Query(`SELECT id, incoming, public, warn_incoming FROM guilds`)
	if err != nil {
		return fmt.Errorf("failed to load guilds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var g GuildSettings
		if err := rows.Scan(&g.ID, &g.Incoming, &g.Public, &g.Alert); err != nil {
			return fmt.Errorf("failed to scan guild row: %w", err)
		}
		s.guilds[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.Query(`SELECT id, reporter, guild, reported, reason FROM reports`)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Reporter, &r.Guild, &r.Reported, &r.Reason); err != nil {
			return fmt.Errorf("failed to scan report row: %w", err)
		}
		s.reports[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.Query(`SELECT guild, message, report FROM messages`)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var in Instance
		if err := rows.Scan(&in.Guild, &in.Message, &in.Report); err != nil {
			return fmt.Errorf("failed to scan message row: %w", err)
		}
		s.instances[in.Message] = in
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.Query(`SELECT id, is_user FROM banned`)
	if err != nil {
		return fmt.Errorf("failed to load banned entities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var isUser int
		if err := rows.Scan(&id, &isUser); err != nil {
			return fmt.Errorf("failed to scan banned row: %w", err)
		}
		if isUser != 0 {
			s.bannedUsers[id] = struct{}{}
		} else {
			s.bannedGuilds[id] = struct{}{}
		}
	}
	return rows.Err()
}
