package jobs

import (
	"context"
	"sync"
	"testing"
)

// resetTracker resets the singleton so each test gets a fresh DB.
func resetTracker(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	trackerDB = nil
	trackerErr = nil
	trackerOnce = sync.Once{}
}

func TestAddApplication_Basic(t *testing.T) {
	resetTracker(t)
	ctx := context.Background()

	result, err := AddApplication(ctx, TrackerAddInput{
		Title:   "Data Analyst Intern",
		Company: "Acme",
		URL:     "https://www.linkedin.com/jobs/view/4335742219",
		Status:  "applied",
		Notes:   "Easy Apply, resume uploaded",
	})
	if err != nil {
		t.Fatalf("AddApplication error: %v", err)
	}
	if result.ID <= 0 {
		t.Errorf("expected positive ID, got %d", result.ID)
	}
	if result.Message == "" {
		t.Error("expected non-empty message")
	}
}

func TestAddApplication_DefaultStatus(t *testing.T) {
	resetTracker(t)
	ctx := context.Background()

	result, err := AddApplication(ctx, TrackerAddInput{Title: "Backend Intern", Company: "Acme"})
	if err != nil {
		t.Fatalf("AddApplication error: %v", err)
	}

	list, err := ListApplications(ctx, TrackerListInput{Status: "saved"})
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if list.Total != 1 || len(list.Applications) != 1 {
		t.Fatalf("expected 1 saved application, got total=%d len=%d", list.Total, len(list.Applications))
	}
	if list.Applications[0].ID != result.ID {
		t.Errorf("listed ID %d, want %d", list.Applications[0].ID, result.ID)
	}
}

func TestAddApplication_MissingRequired(t *testing.T) {
	resetTracker(t)
	ctx := context.Background()

	if _, err := AddApplication(ctx, TrackerAddInput{Title: "Only Title"}); err == nil {
		t.Error("expected error when company is missing")
	}
	if _, err := AddApplication(ctx, TrackerAddInput{Company: "Only Company"}); err == nil {
		t.Error("expected error when title is missing")
	}
}

func TestAddApplication_InvalidStatus(t *testing.T) {
	resetTracker(t)
	ctx := context.Background()

	if _, err := AddApplication(ctx, TrackerAddInput{Title: "T", Company: "C", Status: "ghosted"}); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestListApplications_StatusFilter(t *testing.T) {
	resetTracker(t)
	ctx := context.Background()

	for _, in := range []TrackerAddInput{
		{Title: "A", Company: "X", Status: "applied"},
		{Title: "B", Company: "Y", Status: "applied"},
		{Title: "C", Company: "Z", Status: "saved"},
	} {
		if _, err := AddApplication(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	applied, err := ListApplications(ctx, TrackerListInput{Status: "applied"})
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if applied.Total != 2 {
		t.Errorf("applied total = %d, want 2", applied.Total)
	}

	all, err := ListApplications(ctx, TrackerListInput{})
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if all.Total != 3 {
		t.Errorf("all total = %d, want 3", all.Total)
	}

	if _, err := ListApplications(ctx, TrackerListInput{Status: "bogus"}); err == nil {
		t.Error("expected error for invalid status filter")
	}
}

func TestUpdateApplication(t *testing.T) {
	resetTracker(t)
	ctx := context.Background()

	added, err := AddApplication(ctx, TrackerAddInput{Title: "T", Company: "C"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := UpdateApplication(ctx, TrackerUpdateInput{ID: added.ID, Status: "interview", Notes: "phone screen Friday"}); err != nil {
		t.Fatalf("UpdateApplication error: %v", err)
	}

	list, err := ListApplications(ctx, TrackerListInput{Status: "interview"})
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected 1 interview application, got %d", list.Total)
	}
	if list.Applications[0].Notes != "phone screen Friday" {
		t.Errorf("notes = %q", list.Applications[0].Notes)
	}

	if _, err := UpdateApplication(ctx, TrackerUpdateInput{ID: 0, Status: "applied"}); err == nil {
		t.Error("expected error for missing id")
	}
	if _, err := UpdateApplication(ctx, TrackerUpdateInput{ID: added.ID}); err == nil {
		t.Error("expected error when neither status nor notes given")
	}
}
