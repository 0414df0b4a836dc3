package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// AppStatus is the lifecycle stage of a tracked application.
type AppStatus string

const (
	StatusSaved     AppStatus = "saved"
	StatusApplied   AppStatus = "applied"
	StatusInterview AppStatus = "interview"
	StatusOffer     AppStatus = "offer"
	StatusRejected  AppStatus = "rejected"
)

// Application is one tracked application. Unlike the CSV store, the tracker
// is mutable — status moves as an application progresses — but it never
// replaces the store contract: saves still go to the CSV first.
type Application struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	URL       string    `json:"url,omitempty"`
	Status    AppStatus `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// TrackerAddInput is the input for adding an application.
type TrackerAddInput struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	URL     string `json:"url,omitempty"`
	Status  string `json:"status,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// TrackerListInput is the input for listing applications.
type TrackerListInput struct {
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// TrackerUpdateInput is the input for updating an application.
type TrackerUpdateInput struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// TrackerResult is the output for add/update operations.
type TrackerResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// TrackerListResult is the output for list operations.
type TrackerListResult struct {
	Applications []Application `json:"applications"`
	Total        int           `json:"total"`
}

var (
	trackerDB   *sql.DB
	trackerOnce sync.Once
	trackerErr  error
)

// openTrackerDB opens (or creates) the SQLite tracker database.
func openTrackerDB() (*sql.DB, error) {
	trackerOnce.Do(func() {
		dir := filepath.Join(os.Getenv("HOME"), ".go_easyapply")
		if err := os.MkdirAll(dir, 0750); err != nil {
			trackerErr = fmt.Errorf("tracker: mkdir %s: %w", dir, err)
			return
		}
		db, err := sql.Open("sqlite", filepath.Join(dir, "tracker.db"))
		if err != nil {
			trackerErr = fmt.Errorf("tracker: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initTrackerSchema(db); err != nil {
			trackerErr = fmt.Errorf("tracker: init schema: %w", err)
			return
		}
		trackerDB = db
	})
	return trackerDB, trackerErr
}

func initTrackerSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS applications (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL,
		company    TEXT NOT NULL,
		url        TEXT,
		status     TEXT NOT NULL DEFAULT 'saved',
		notes      TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	return err
}

func validStatus(s string) bool {
	switch AppStatus(s) {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// AddApplication records a new application in the tracker.
func AddApplication(_ context.Context, input TrackerAddInput) (*TrackerResult, error) {
	if input.Title == "" || input.Company == "" {
		return nil, errors.New("tracker add: title and company are required")
	}

	status := strings.ToLower(input.Status)
	if status == "" {
		status = string(StatusSaved)
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("tracker add: invalid status %q (valid: saved, applied, interview, offer, rejected)", status)
	}

	db, err := openTrackerDB()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.Exec(
		`INSERT INTO applications (title, company, url, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Title, input.Company, input.URL, status, input.Notes, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("tracker add: insert: %w", err)
	}

	id, _ := res.LastInsertId()
	return &TrackerResult{
		ID:      id,
		Message: fmt.Sprintf("Application '%s' at '%s' recorded with status '%s' (id=%d)", input.Title, input.Company, status, id),
	}, nil
}

// ListApplications returns tracked applications, optionally filtered by status.
func ListApplications(_ context.Context, input TrackerListInput) (*TrackerListResult, error) {
	db, err := openTrackerDB()
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows *sql.Rows
	if input.Status != "" {
		status := strings.ToLower(input.Status)
		if !validStatus(status) {
			return nil, fmt.Errorf("tracker list: invalid status %q", status)
		}
		rows, err = db.Query(
			`SELECT id, title, company, url, status, notes, created_at, updated_at
			 FROM applications WHERE status = ? ORDER BY updated_at DESC LIMIT ?`,
			status, limit,
		)
	} else {
		rows, err = db.Query(
			`SELECT id, title, company, url, status, notes, created_at, updated_at
			 FROM applications ORDER BY updated_at DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("tracker list: query: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		var url, notes sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Company, &url, &a.Status, &notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			continue
		}
		a.URL = url.String
		a.Notes = notes.String
		apps = append(apps, a)
	}

	var total int
	if input.Status != "" {
		db.QueryRow(`SELECT COUNT(*) FROM applications WHERE status = ?`, strings.ToLower(input.Status)).Scan(&total) //nolint:errcheck
	} else {
		db.QueryRow(`SELECT COUNT(*) FROM applications`).Scan(&total) //nolint:errcheck
	}

	if apps == nil {
		apps = []Application{}
	}
	return &TrackerListResult{Applications: apps, Total: total}, nil
}

// UpdateApplication updates the status and/or notes of a tracked application.
func UpdateApplication(_ context.Context, input TrackerUpdateInput) (*TrackerResult, error) {
	if input.ID <= 0 {
		return nil, errors.New("tracker update: id is required")
	}
	if input.Status == "" && input.Notes == "" {
		return nil, errors.New("tracker update: at least one of status or notes must be provided")
	}

	db, err := openTrackerDB()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if input.Status != "" {
		status := strings.ToLower(input.Status)
		if !validStatus(status) {
			return nil, fmt.Errorf("tracker update: invalid status %q", status)
		}
		if input.Notes != "" {
			_, err = db.Exec(`UPDATE applications SET status=?, notes=?, updated_at=? WHERE id=?`,
				status, input.Notes, now, input.ID)
		} else {
			_, err = db.Exec(`UPDATE applications SET status=?, updated_at=? WHERE id=?`,
				status, now, input.ID)
		}
	} else {
		_, err = db.Exec(`UPDATE applications SET notes=?, updated_at=? WHERE id=?`,
			input.Notes, now, input.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("tracker update: %w", err)
	}

	return &TrackerResult{
		ID:      input.ID,
		Message: fmt.Sprintf("Application #%d updated", input.ID),
	}, nil
}
