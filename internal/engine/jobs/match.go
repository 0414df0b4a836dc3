package jobs

import (
	"sort"
	"strings"
	"unicode"
)

// fitStopWords filters common English words that add noise to keyword
// matching between a resume and a job description.
var fitStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
}

// FitReport is the keyword-overlap assessment of one job against the resume.
// It is a cheap pre-filter; the agent's recorded fit score remains its own
// judgment.
type FitReport struct {
	Score    float64  `json:"score"` // 0–100 Jaccard similarity
	Matching []string `json:"matching,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

// ExtractKeywords tokenizes text into a lowercase keyword set (>= 3 chars,
// stop words skipped). Extract once per resume and reuse across jobs.
// Tech tokens like "c++", "c#" and "node.js" survive because + # . count as
// word characters.
func ExtractKeywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !fitStopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// ScoreFit computes keyword overlap between pre-extracted resume keywords
// and a job text: Jaccard similarity × 100 rounded to one decimal, the
// shared keywords, and the job keywords the resume lacks (top 20).
func ScoreFit(resumeKW map[string]bool, jobText string) FitReport {
	jobKW := ExtractKeywords(jobText)

	var report FitReport
	inter := 0
	for kw := range resumeKW {
		if jobKW[kw] {
			inter++
			report.Matching = append(report.Matching, kw)
		}
	}
	for kw := range jobKW {
		if !resumeKW[kw] {
			report.Missing = append(report.Missing, kw)
		}
	}

	union := len(resumeKW) + len(jobKW) - inter
	if union > 0 {
		raw := float64(inter) / float64(union) * 100
		report.Score = float64(int(raw*10+0.5)) / 10
	}

	sort.Strings(report.Matching)
	sort.Strings(report.Missing)
	if len(report.Missing) > 20 {
		report.Missing = report.Missing[:20]
	}
	return report
}
