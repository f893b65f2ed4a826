package install

import (
	"encoding/json"
	"fmt"

	xlog "github.com/twitchylinux/twlconf/internal/log"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session represents one run of the installer and owns its configuration.
type Session struct {
	ID     uuid.UUID
	Config Configuration

	logger zerolog.Logger
}

// NewSession starts a session around conf.
func NewSession(conf Configuration) *Session {
	id := uuid.New()
	return &Session{
		ID:     id,
		Config: conf,
		logger: xlog.WithComponent("config").With().Str("session", id.String()).Logger(),
	}
}

// Apply replaces the session configuration with a document from the UI.
// A malformed document resets the session to defaults, matching Load.
// Planning state stored by RecordStorage is replaced too: it survives only
// if the document carries it back.
func (s *Session) Apply(data []byte) {
	s.Config = Load(s.logger, data)
}

// RecordStorage stores the storage snapshots taken before and after the
// user picked a layout.
func (s *Session) RecordStorage(before, after []SystemStorageInfo) {
	s.Config.Partition.Planning.SystemStorageInfo = before
	s.Config.Partition.Planning.SystemStorageInfoCurrent = after
}

// Snapshot writes the configuration to path. The file is replaced
// atomically so a crash never leaves a truncated config behind.
func (s *Session) Snapshot(path string) error {
	return WriteFile(path, s.Config)
}

// WriteFile saves conf as indented JSON at path.
func WriteFile(path string, conf Configuration) error {
	b, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	b = append(b, '\n')

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0600))
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.Write(b); err != nil {
		return fmt.Errorf("write config data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}
	return nil
}
