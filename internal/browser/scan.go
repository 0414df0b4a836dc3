package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go_easyapply/internal/engine"
	"github.com/go-rod/rod"
)

// Observe snapshots the current page: URL, title, and a numbered summary of
// interactive elements. Element handles are resolved lazily on first use.
func (s *Session) Observe() (engine.PageState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensurePage(); err != nil {
		return engine.PageState{}, err
	}
	s.invalidate()

	info, err := s.page.Info()
	if err != nil {
		return engine.PageState{}, fmt.Errorf("observe: page info: %w", err)
	}

	s.waitSettled(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := s.page.Context(ctx).Eval(observeScript)
	if err != nil {
		// A page mid-load is a state the agent can act on (wait, re-observe),
		// not a failure of the loop.
		return engine.PageState{
			URL:        info.URL,
			Title:      info.Title,
			DOMSummary: "Page is still loading, no elements indexed yet.",
		}, nil
	}

	raw := res.Value.String()
	if raw == "" || raw == "null" {
		return engine.PageState{URL: info.URL, Title: info.Title, DOMSummary: "Page is empty."}, nil
	}

	var elements []struct {
		ID   int    `json:"id"`
		Tag  string `json:"tag"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return engine.PageState{}, fmt.Errorf("observe: decode elements: %w", err)
	}

	var sb strings.Builder
	for _, el := range elements {
		fmt.Fprintf(&sb, "[%d] <%s> %s\n", el.ID, el.Tag, el.Text)
	}
	summary := sb.String()
	if summary == "" {
		summary = "No interactive elements found."
	}

	return engine.PageState{URL: info.URL, Title: info.Title, DOMSummary: summary}, nil
}

// element resolves an indexed element by its data-agent-id, caching the
// handle. Caller must hold the mutex.
func (s *Session) element(id int) (*rod.Element, error) {
	if el, ok := s.elements[id]; ok {
		return el, nil
	}
	el, err := s.page.Timeout(2 * time.Second).Element(fmt.Sprintf("[data-agent-id='%d']", id))
	if err != nil {
		return nil, fmt.Errorf("%w %d", ErrNoElement, id)
	}
	s.elements[id] = el
	return el, nil
}
