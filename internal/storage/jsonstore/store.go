// Package jsonstore keeps Sodam's records in a single JSON document: one
// table per record type, keyed by id, plus the creation order of each table.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

var errNotLoaded = errors.New("storage not loaded")

type document struct {
	Version        int                         `json:"version"`
	Settings       map[string]string           `json:"settings"`
	Hangdams       map[string]models.Hangdam   `json:"hangdams"`
	HangdamOrder   []string                    `json:"hangdam_order"`
	Happinesses    map[string]models.Happiness `json:"happinesses"`
	HappinessOrder []string                    `json:"happiness_order"`
}

func newDocument() *document {
	return &document{
		Version:     1,
		Settings:    make(map[string]string),
		Hangdams:    make(map[string]models.Hangdam),
		Happinesses: make(map[string]models.Happiness),
	}
}

// clone copies the document so a failed write can be rolled back.
func (d *document) clone() *document {
	c := &document{
		Version:        d.Version,
		Settings:       make(map[string]string, len(d.Settings)),
		Hangdams:       make(map[string]models.Hangdam, len(d.Hangdams)),
		HangdamOrder:   append([]string(nil), d.HangdamOrder...),
		Happinesses:    make(map[string]models.Happiness, len(d.Happinesses)),
		HappinessOrder: append([]string(nil), d.HappinessOrder...),
	}
	for k, v := range d.Settings {
		c.Settings[k] = v
	}
	for k, v := range d.Hangdams {
		c.Hangdams[k] = v
	}
	for k, v := range d.Happinesses {
		c.Happinesses[k] = v
	}
	return c
}

type Store struct {
	path string

	mu  sync.RWMutex
	doc *document
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, err := os.Stat(s.path); err == nil {
		// created by another process meanwhile
		doc, err := s.readFile()
		if err != nil {
			return err
		}
		s.doc = doc
		return nil
	}
	s.doc = newDocument()
	return s.save()
}

// lock takes the inter-process lock that serializes writers of the file.
func (s *Store) lock() (func(), error) {
	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock storage: %w", err)
	}
	return func() { _ = fl.Unlock() }, nil
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return nil
	}
	doc, err := s.readFile()
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// Reload replaces the in-memory document with the file content, picking up
// writes made by other processes.
func (s *Store) Reload() error {
	doc, err := s.readFile()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	return nil
}

func (s *Store) readFile() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage not initialized, run 'sodam init' first")
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Settings == nil {
		doc.Settings = make(map[string]string)
	}
	if doc.Hangdams == nil {
		doc.Hangdams = make(map[string]models.Hangdam)
	}
	if doc.Happinesses == nil {
		doc.Happinesses = make(map[string]models.Happiness)
	}
	return doc, nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// save writes the document through a temp file and rename. Callers hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// mutate applies fn to the document as it is on disk and keeps the result
// only when both fn and the write succeed. The file lock is held from the
// read to the write so commits from other processes are never overwritten.
func (s *Store) mutate(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return errNotLoaded
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	current, err := s.readFile()
	if err != nil {
		return err
	}
	s.doc = current

	next := current.clone()
	if err := fn(next); err != nil {
		return err
	}

	s.doc = next
	if err := s.save(); err != nil {
		s.doc = current
		return err
	}
	return nil
}

func (s *Store) read(fn func(doc *document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return errNotLoaded
	}
	return fn(s.doc)
}
