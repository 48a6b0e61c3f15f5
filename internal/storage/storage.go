package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/kvant/internal/config"
)

// ConfigFile is the config file name looked up in the output directory when
// no explicit path is given.
const ConfigFile = "kvant.json"

// Storage handles file output for the command-line tools: config, preview
// images, deformed mesh frames and reference vectors.
type Storage struct {
	dir string
	log *slog.Logger
}

// New returns a Storage rooted at dir. Nothing is created on disk until the
// first write, which makes the parent directories it needs.
func New(dir string, log *slog.Logger) *Storage {
	return &Storage{dir: dir, log: log}
}

// Dir returns the root directory.
func (s *Storage) Dir() string { return s.dir }

// LoadConfig reads the JSON config at path into cfg. An empty path means
// kvant.json in the storage root. If the file does not exist, cfg is unchanged.
func (s *Storage) LoadConfig(path string, cfg *config.Config) error {
	if path == "" {
		path = filepath.Join(s.dir, ConfigFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg atomically to name, relative to the storage root. An
// empty name means kvant.json.
func (s *Storage) SaveConfig(name string, cfg *config.Config) error {
	if name == "" {
		name = ConfigFile
	}
	path := s.path(name)
	if err := s.atomicWriteJSON(path, cfg); err != nil {
		return err
	}
	s.log.Debug("saved config", "path", path)
	return nil
}

// SaveJSON writes v as indented JSON to name, relative to the storage root.
func (s *Storage) SaveJSON(name string, v any) error {
	path := s.path(name)
	if err := s.atomicWriteJSON(path, v); err != nil {
		return err
	}
	s.log.Info("wrote json", "path", path)
	return nil
}

// FrameName returns the relative file name of animation frame i.
func FrameName(i int) string {
	return filepath.Join("frames", fmt.Sprintf("frame_%04d.obj", i))
}

// WriteFile streams write's output to name, relative to the storage root,
// replacing any existing file only once write has succeeded.
func (s *Storage) WriteFile(name string, write func(w io.Writer) error) error {
	path := s.path(name)
	if err := mkdirParent(path); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	s.log.Debug("wrote file", "path", path)
	return nil
}

func (s *Storage) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

func mkdirParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if err := mkdirParent(path); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
