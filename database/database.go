package database

import (
	"context"
	"database/sql"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"

	"botswatter/models"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// SQLiteStore keeps every guild's policy in one SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// InitDB opens (creating if needed) the database at dbPath and ensures the policy tables exist.
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createPolicyTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create policy tables: %w", err)
	}

	log.Info("connected to policy database", "path", dbPath)
	return db, nil
}

// NewSQLiteStore opens the store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := InitDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// createPolicyTables creates the keyword and channel tables if they don't exist.
// Keyword order is the AUTOINCREMENT id, so insertion order survives removals.
func createPolicyTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS autoban_keywords (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            guild_id TEXT NOT NULL,
            phrase TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_keywords_guild ON autoban_keywords(guild_id, id);`,
		`CREATE TABLE IF NOT EXISTS monitored_channels (
            guild_id TEXT NOT NULL,
            channel_id TEXT NOT NULL,
            PRIMARY KEY (guild_id, channel_id)
        );`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetKeywords(ctx context.Context, guildID string) ([]string, error) {
	return queryKeywords(ctx, s.db, guildID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryKeywords(ctx context.Context, q querier, guildID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT phrase FROM autoban_keywords WHERE guild_id = ? ORDER BY id", guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	keywords := []string{}
	for rows.Next() {
		var phrase string
		if err := rows.Scan(&phrase); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		keywords = append(keywords, phrase)
	}
	return keywords, rows.Err()
}

func queryChannels(ctx context.Context, q querier, guildID string) (map[string]struct{}, error) {
	rows, err := q.QueryContext(ctx, "SELECT channel_id FROM monitored_channels WHERE guild_id = ?", guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monitored channels for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	channels := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan channel id: %w", err)
		}
		channels[id] = struct{}{}
	}
	return channels, rows.Err()
}

func (s *SQLiteStore) SetKeywords(ctx context.Context, guildID string, keywords []string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM autoban_keywords WHERE guild_id = ?", guildID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO autoban_keywords (guild_id, phrase) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare keyword insert: %w", err)
		}
		defer stmt.Close()
		for _, k := range normalizeAll(keywords) {
			if _, err := stmt.ExecContext(ctx, guildID, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) GetMonitoredChannels(ctx context.Context, guildID string) (map[string]struct{}, error) {
	return queryChannels(ctx, s.db, guildID)
}

func (s *SQLiteStore) SetMonitoredChannels(ctx context.Context, guildID string, channels map[string]struct{}) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM monitored_channels WHERE guild_id = ?", guildID); err != nil {
			return err
		}
		for id := range channels {
			if _, err := tx.ExecContext(ctx, "INSERT INTO monitored_channels (guild_id, channel_id) VALUES (?, ?)", guildID, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) AddKeyword(ctx context.Context, guildID, phrase string) (string, error) {
	p, err := NormalizePhrase(phrase)
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO autoban_keywords (guild_id, phrase) VALUES (?, ?)", guildID, p); err != nil {
		return "", fmt.Errorf("failed to add keyword for guild %s: %w", guildID, err)
	}
	return p, nil
}

func (s *SQLiteStore) RemoveKeyword(ctx context.Context, guildID, phrase string) (int, error) {
	p, err := NormalizePhrase(phrase)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM autoban_keywords WHERE guild_id = ? AND phrase = ?", guildID, p)
	if err != nil {
		return 0, fmt.Errorf("failed to remove keyword for guild %s: %w", guildID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *SQLiteStore) ToggleChannel(ctx context.Context, guildID, channelID string) (bool, error) {
	var enabled bool
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM monitored_channels WHERE guild_id = ? AND channel_id = ?", guildID, channelID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			enabled = false
			return nil
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO monitored_channels (guild_id, channel_id) VALUES (?, ?)", guildID, channelID); err != nil {
			return err
		}
		enabled = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle channel %s: %w", channelID, err)
	}
	return enabled, nil
}

func (s *SQLiteStore) Policy(ctx context.Context, guildID string) (models.GuildPolicy, error) {
	policy := models.GuildPolicy{GuildID: guildID}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if policy.Keywords, err = queryKeywords(ctx, tx, guildID); err != nil {
			return err
		}
		policy.MonitoredChannels, err = queryChannels(ctx, tx, guildID)
		return err
	})
	return policy, err
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
