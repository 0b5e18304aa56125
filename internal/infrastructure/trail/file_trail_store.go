// Package trail implements the append-only JSONL audit trail, one file per
// category under the configured trail directory.
package trail

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
)

const (
	trailExtension = ".jsonl"
	// maxLineBytes caps a single trail line; events with huge metadata still
	// fit well under this.
	maxLineBytes = 1024 * 1024
)

// FileTrailStore writes audit events to JSON Lines files, one per category.
// Files are opened lazily on first append and kept open until Close or
// Rotate.
type FileTrailStore struct {
	mu    sync.Mutex
	dir   string
	files map[string]*os.File
}

// NewFileTrailStore creates a trail store rooted at dir, creating the
// directory when missing.
func NewFileTrailStore(dir string) (*FileTrailStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trail directory: %w", err)
	}

	return &FileTrailStore{
		dir:   dir,
		files: make(map[string]*os.File),
	}, nil
}

// Append validates the event and writes it as one JSON line to its category
// trail. The category is validated before it becomes part of a file name.
func (s *FileTrailStore) Append(event *audit.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.open(event.Category)
	if err != nil {
		return err
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append to %s trail: %w", event.Category, err)
	}
	return nil
}

// Scan reads the category trail and returns every decodable event plus the
// count of malformed lines. A category that never logged returns an empty
// result rather than an error.
func (s *FileTrailStore) Scan(category string) ([]*audit.Event, int, error) {
	file, err := os.Open(s.path(category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to open %s trail: %w", category, err)
	}
	defer func() { _ = file.Close() }()

	var events []*audit.Event
	malformed := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event audit.Event
		if err := json.Unmarshal(line, &event); err != nil {
			malformed++
			continue
		}
		events = append(events, &event)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to scan %s trail: %w", category, err)
	}

	return events, malformed, nil
}

// Rotate renames the category trail with a timestamp suffix. The next append
// starts a fresh file.
func (s *FileTrailStore) Rotate(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(category)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no %s trail to rotate", category)
		}
		return fmt.Errorf("failed to stat %s trail: %w", category, err)
	}

	if file, ok := s.files[category]; ok {
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close %s trail: %w", category, err)
		}
		delete(s.files, category)
	}

	backupPath := fmt.Sprintf("%s.%s", path, time.Now().Format("20060102-150405"))
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("failed to rotate %s trail: %w", category, err)
	}
	return nil
}

// Close closes every open trail file.
func (s *FileTrailStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for category, file := range s.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.files, category)
	}
	return firstErr
}

func (s *FileTrailStore) path(category string) string {
	return filepath.Join(s.dir, category+trailExtension)
}

// open returns the cached handle for the category, opening it in append mode
// when needed. Callers must hold the mutex.
func (s *FileTrailStore) open(category string) (*os.File, error) {
	if file, ok := s.files[category]; ok {
		return file, nil
	}

	file, err := os.OpenFile(s.path(category), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s trail: %w", category, err)
	}
	s.files[category] = file
	return file, nil
}
