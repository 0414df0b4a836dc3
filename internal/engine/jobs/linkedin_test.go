package jobs

import (
	"testing"
)

func TestExtractJobID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "clean numeric URL",
			url:  "https://www.linkedin.com/jobs/view/4335742219",
			want: "4335742219",
		},
		{
			name: "slug URL",
			url:  "https://www.linkedin.com/jobs/view/data-analyst-intern-at-acme-4335742219",
			want: "4335742219",
		},
		{
			name: "URL with query params",
			url:  "https://www.linkedin.com/jobs/view/4335742219?trk=jobs_biz",
			want: "4335742219",
		},
		{
			name: "search page",
			url:  "https://www.linkedin.com/jobs/search/",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJobID(tt.url); got != tt.want {
				t.Errorf("ExtractJobID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseListingHTML(t *testing.T) {
	// Realistic Guest API response fragment.
	body := `<ul>
<li>
<div class="base-card">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/data-analyst-intern-at-acme-4335742219?trk=test">
    <span class="sr-only">Data Analyst Intern</span>
  </a>
  <div class="base-search-card__info">
    <h3 class="base-search-card__title">Data Analyst Intern</h3>
    <h4 class="base-search-card__subtitle">
      Acme Corp
    </h4>
    <div class="job-search-card__location">San Francisco, CA</div>
    <time class="job-search-card__listdate" datetime="2026-08-13">2 weeks ago</time>
  </div>
</div>
</li>
<li>
<div class="base-card">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/data-scientist-intern-9876543210">
    <span class="sr-only">Data Scientist Intern</span>
  </a>
  <div class="base-search-card__info">
    <h3 class="base-search-card__title">Data Scientist Intern</h3>
    <h4 class="base-search-card__subtitle">
      BigTech Inc
    </h4>
    <div class="job-search-card__location">Remote</div>
  </div>
</div>
</li>
</ul>`

	listings := parseListingHTML(body)
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Title != "Data Analyst Intern" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Company != "Acme Corp" {
		t.Errorf("company = %q", first.Company)
	}
	if first.Location != "San Francisco, CA" {
		t.Errorf("location = %q", first.Location)
	}
	// Query string is stripped from the stored URL.
	if first.URL != "https://www.linkedin.com/jobs/view/data-analyst-intern-at-acme-4335742219" {
		t.Errorf("url = %q", first.URL)
	}
	if first.JobID != "4335742219" {
		t.Errorf("job id = %q", first.JobID)
	}
	if first.Posted != "2026-08-13" {
		t.Errorf("posted = %q", first.Posted)
	}

	second := listings[1]
	if second.JobID != "9876543210" {
		t.Errorf("job id = %q", second.JobID)
	}
	if second.Posted != "" {
		t.Errorf("posted = %q, want empty for card without listdate", second.Posted)
	}
}

func TestParseListingHTMLSkipsIncompleteCards(t *testing.T) {
	body := `<ul>
<li><div class="base-card"><h3 class="base-search-card__title">No link here</h3></div></li>
<li><div class="other"></div></li>
</ul>`
	if listings := parseListingHTML(body); len(listings) != 0 {
		t.Errorf("expected 0 listings, got %d", len(listings))
	}
}
