// Package jobs holds the job-record store, the resume reader, the
// application tracker, and the LinkedIn listing helpers.
package jobs

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/anatolykoptev/go_easyapply/internal/engine"
)

// Job is one discovered listing the agent judged worth recording.
// FitScore is the agent's own relevance rating, not computed here.
type Job struct {
	Title    string  `json:"title"`
	Link     string  `json:"link"`
	Company  string  `json:"company"`
	FitScore float64 `json:"fit_score"`
	Location string  `json:"location,omitempty"`
	Salary   string  `json:"salary,omitempty"`
}

// Store is the append-only CSV job record store. Rows are never updated or
// deleted, and nothing here deduplicates — repeated saves of the same link
// produce repeated rows. The mutex keeps concurrent appends from
// interleaving within a row; it is the only coordination this layer does.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store over the given CSV path. The file is created on
// first append, not here.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string { return s.path }

// Append writes one row — title, company, link, salary, location, in that
// fixed column order. Field contents are not validated.
func (s *Store) Append(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("store append: open %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{job.Title, job.Company, job.Link, job.Salary, job.Location}); err != nil {
		return fmt.Errorf("store append: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store append: flush: %w", err)
	}

	engine.IncrJobsSaved()
	return nil
}

// ReadAll returns the entire store as one string. A store that has never
// been written to is an error, not empty content — the caller (the agent)
// treats "no file yet" and "no matches saved" differently.
func (s *Store) ReadAll() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("store read %s: %w", s.path, err)
	}
	return string(data), nil
}
