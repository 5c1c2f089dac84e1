// Package storage keeps per-guild records in a JSON-file datastore: command
// invocation history and configured moderation role IDs.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

// Moderation role kinds configurable per guild.
const (
	RoleMuted      = "muted"
	RoleRestricted = "restricted"
)

// CommandRecord is one entry of a guild's command history.
type CommandRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

// Record is the full per-guild document stored under the guild ID.
type Record struct {
	CommandsHistory []CommandRecord   `json:"commands_history"`
	Roles           map[string]string `json:"roles"`
}

// Storage wraps the datastore with guild-record accessors.
type Storage struct {
	ds *datastore.DataStore
	// cancel stops the datastore's background saver; Close waits for it.
	cancel context.CancelFunc
}

// New opens (or creates) the datastore file at path. The datastore expects
// the parent directory to exist.
func New(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create datastore directory: %w", err)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	ds, err := datastore.New(ctx, path)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Storage{ds: ds, cancel: cancel}, nil
}

// Close stops the background saver and flushes the datastore. The saver only
// exits on context cancellation, so cancel must come first.
func (s *Storage) Close() error {
	s.cancel()
	return s.ds.Close()
}

// guildRecord loads the guild document, returning an empty one when the
// guild has no entry yet.
func (s *Storage) guildRecord(guildID string) (*Record, error) {
	record := &Record{}
	if _, err := s.ds.Get(guildID, record); err != nil {
		return nil, fmt.Errorf("load guild record: %w", err)
	}
	if record.Roles == nil {
		record.Roles = map[string]string{}
	}
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}
	return record, nil
}

// AppendCommandHistory records one command invocation for a guild.
func (s *Storage) AppendCommandHistory(guildID string, rec CommandRecord) error {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	record.CommandsHistory = append(record.CommandsHistory, rec)
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}
	return s.ds.Set(guildID, record)
}

// CommandHistory returns the recorded invocations for a guild.
func (s *Storage) CommandHistory(guildID string) ([]CommandRecord, error) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}

// SetModRole pins a moderation role ID (RoleMuted, RoleRestricted) for a guild.
func (s *Storage) SetModRole(guildID, kind, roleID string) error {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	record.Roles[kind] = roleID
	return s.ds.Set(guildID, record)
}

// ModRole returns the configured role ID for kind, if any.
func (s *Storage) ModRole(guildID, kind string) (string, bool) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return "", false
	}
	roleID, ok := record.Roles[kind]
	return roleID, ok && roleID != ""
}
