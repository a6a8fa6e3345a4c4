package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"millionaire-quiz/internal/domain"
)

// ResultStore keeps the results collection as an indented JSON array in one
// file. Writers inside this process are serialized and each write replaces
// the file atomically; separate processes sharing the file can still lose
// each other's appends.
type ResultStore struct {
	path string
	mu   sync.Mutex
}

func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

// LoadAll returns an empty collection when the file is absent or corrupt.
func (s *ResultStore) LoadAll(_ context.Context) ([]domain.ResultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if errors.Is(err, domain.ErrStorageCorrupt) {
		log.Printf("results store: %v; serving empty results", err)
		return []domain.ResultRecord{}, nil
	}
	return records, err
}

// Append rewrites the whole collection with record added at the end. A
// corrupt file is moved aside to <path>.corrupt before being replaced.
func (s *ResultStore) Append(_ context.Context, record domain.ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	switch {
	case errors.Is(err, domain.ErrStorageCorrupt):
		log.Printf("results store: %v; moving it to %s", err, s.corruptPath())
		if err := os.Rename(s.path, s.corruptPath()); err != nil {
			return fmt.Errorf("preserve corrupt results: %w", err)
		}
		records = []domain.ResultRecord{}
	case err != nil:
		return err
	}

	records = append(records, record)
	return s.write(records)
}

func (s *ResultStore) read() ([]domain.ResultRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.ResultRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var records []domain.ResultRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorageCorrupt, s.path, err)
	}
	if records == nil {
		records = []domain.ResultRecord{}
	}
	return records, nil
}

func (s *ResultStore) write(records []domain.ResultRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp results: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close results: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace results: %w", err)
	}
	return nil
}

func (s *ResultStore) corruptPath() string {
	return s.path + ".corrupt"
}
