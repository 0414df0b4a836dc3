package jobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_easyapply/internal/engine"
	"golang.org/x/net/html"
)

// LinkedIn Guest API endpoint — returns HTML, no auth required. Lets the
// agent discover listings without spending browser steps on search pages.
const linkedInGuestAPI = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

// experienceMap maps human-readable experience levels to LinkedIn filter codes.
var experienceMap = map[string]string{
	"internship": "1",
	"entry":      "2",
	"associate":  "3",
	"mid-senior": "4",
	"director":   "5",
	"executive":  "6",
}

// jobTypeMap maps human-readable job types to LinkedIn filter codes.
var jobTypeMap = map[string]string{
	"full-time":  "F",
	"part-time":  "P",
	"contract":   "C",
	"temporary":  "T",
	"internship": "I",
	"volunteer":  "V",
}

// remoteMap maps remote/onsite to LinkedIn workplace type codes.
var remoteMap = map[string]string{
	"onsite": "1",
	"hybrid": "2",
	"remote": "3",
}

// timeRangeMap maps human-readable time ranges to LinkedIn seconds-based codes.
var timeRangeMap = map[string]string{
	"day":   "r86400",
	"week":  "r604800",
	"month": "r2592000",
}

// Listing is a parsed job card from the Guest API.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
	JobID    string `json:"job_id"`
	Posted   string `json:"posted"`
}

// SearchFilters narrows a Guest API search. Zero values mean no filter.
type SearchFilters struct {
	Location   string
	Experience string // internship, entry, associate, mid-senior, director, executive
	JobType    string // full-time, part-time, contract, temporary, internship, volunteer
	Remote     string // onsite, hybrid, remote
	TimeRange  string // day, week, month
	EasyApply  bool
}

// jobIDRe extracts the job ID from LinkedIn job URLs. Matches both
// /jobs/view/4335742219 and /jobs/view/data-analyst-at-acme-4335742219.
var jobIDRe = regexp.MustCompile(`/jobs/view/[^?]*?(\d{7,})`)

// ExtractJobID extracts a LinkedIn job ID from a URL.
func ExtractJobID(jobURL string) string {
	if m := jobIDRe.FindStringSubmatch(jobURL); m != nil {
		return m[1]
	}
	return ""
}

// SearchListings queries the LinkedIn Guest API and returns parsed job cards.
func SearchListings(ctx context.Context, query string, f SearchFilters) ([]Listing, error) {
	u, err := url.Parse(linkedInGuestAPI)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("keywords", query)
	q.Set("sortBy", "DD") // sort by date
	q.Set("start", "0")
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if v, ok := experienceMap[strings.ToLower(f.Experience)]; ok {
		q.Set("f_E", v)
	}
	if v, ok := jobTypeMap[strings.ToLower(f.JobType)]; ok {
		q.Set("f_JT", v)
	}
	if v, ok := remoteMap[strings.ToLower(f.Remote)]; ok {
		q.Set("f_WT", v)
	}
	if v, ok := timeRangeMap[strings.ToLower(f.TimeRange)]; ok {
		q.Set("f_TPR", v)
	}
	if f.EasyApply {
		q.Set("f_AL", "true")
	}
	u.RawQuery = q.Encode()

	body, err := guestRequest(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return parseListingHTML(string(body)), nil
}

// guestRequest fetches a Guest API URL with browser-like headers.
// LinkedIn is picky about clients that do not look like browsers.
func guestRequest(ctx context.Context, targetURL string) ([]byte, error) {
	engine.IncrLinkedInAPIRequests()

	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.linkedin.com/")

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		return http.DefaultClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 512*1024))
}

// parseListingHTML extracts job cards from the Guest API HTML response
// using golang.org/x/net/html for tree-based parsing.
func parseListingHTML(body string) []Listing {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var listings []Listing
	for _, li := range findElements(doc, "li") {
		if l := parseJobCard(li); l.Title != "" && l.URL != "" {
			listings = append(listings, l)
		}
	}
	return listings
}

// parseJobCard extracts a Listing from an <li> node.
func parseJobCard(li *html.Node) Listing {
	var l Listing

	if link := findByClass(li, "base-card__full-link"); link != nil {
		if href := getAttr(link, "href"); href != "" {
			l.URL = strings.TrimSpace(strings.SplitN(href, "?", 2)[0])
			l.JobID = ExtractJobID(l.URL)
		}
	}
	if n := findByClass(li, "base-search-card__title"); n != nil {
		l.Title = strings.TrimSpace(textContent(n))
	}
	if n := findByClass(li, "base-search-card__subtitle"); n != nil {
		l.Company = strings.TrimSpace(textContent(n))
	}
	if n := findByClass(li, "job-search-card__location"); n != nil {
		l.Location = strings.TrimSpace(textContent(n))
	}
	// Prefer the ISO datetime attribute over relative text like "2 weeks ago".
	if n := findByClass(li, "job-search-card__listdate"); n != nil {
		if dt := getAttr(n, "datetime"); dt != "" {
			l.Posted = strings.TrimSpace(dt)
		} else {
			l.Posted = strings.TrimSpace(textContent(n))
		}
	}
	return l
}

// --- HTML tree helpers ---

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, className string) bool {
	return strings.Contains(getAttr(n, "class"), className)
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func findByClass(n *html.Node, className string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, className) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, className); found != nil {
			return found
		}
	}
	return nil
}

func findElements(n *html.Node, tag string) []*html.Node {
	var results []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		results = append(results, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		results = append(results, findElements(c, tag)...)
	}
	return results
}
