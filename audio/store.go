package audio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store drops synthesized clips into the static dir the http layer serves;
// callers get back the public path.
type Store struct {
	dir string
	log *slog.Logger
}

func NewStore(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio dir %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

func (s *Store) Save(data []byte) (string, error) {
	name := fmt.Sprintf("audio_%s.mp3", uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	s.log.Debug("audio saved", "file", name, "bytes", len(data))
	return "/static/" + name, nil
}

func (s *Store) Dir() string {
	return s.dir
}
