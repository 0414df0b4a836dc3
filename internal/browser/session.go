// Package browser owns the shared rod session: one Chromium instance reused
// by every agent in the process. All navigation-sensitive operations hold
// the session mutex, so concurrent agents are serialized against the single
// browser rather than racing each other's in-flight navigations.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Sentinel errors for element resolution, so callers can phrase their own
// messages around the failing index.
var (
	ErrNoElement   = errors.New("no element found at index")
	ErrNoFileInput = errors.New("no file upload element found at index")
)

// Session is the single shared browser session.
type Session struct {
	mu       sync.Mutex
	browser  *rod.Browser
	page     *rod.Page
	elements map[int]*rod.Element
}

// NewSession launches Chromium and opens one stealth page. The Chromium
// sandbox is disabled, matching the relaxed-security profile the automation
// needs for file-input access on LinkedIn.
func NewSession(ctx context.Context, headless bool) (*Session, error) {
	controlURL, err := launcher.New().
		Leakless(true).
		Headless(headless).
		NoSandbox(true).
		UserDataDir("user_data").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("browser launch: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser connect: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("stealth page: %w", err)
	}

	scale := 1.0
	_ = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1920,
		Height: 1080,
		Scale:  &scale,
		Mobile: false,
	})

	return &Session{
		browser:  b,
		page:     page,
		elements: make(map[int]*rod.Element),
	}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		_ = s.browser.Close()
	}
}

// ensurePage recovers from a dead tab by adopting another open one or
// creating a fresh blank page. Caller must hold the mutex.
func (s *Session) ensurePage() error {
	if s.page != nil {
		if _, err := s.page.Info(); err == nil {
			return nil
		}
		s.page = nil
	}
	pages, err := s.browser.Pages()
	if err == nil && len(pages) > 0 {
		s.page = pages[0]
		return nil
	}
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("recover page: %w", err)
	}
	s.page = page
	return nil
}

// waitSettled waits for the page to stop mutating, bounded by timeout.
// WaitStable can hang on pages with endless animation, so it runs detached.
func (s *Session) waitSettled(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		defer func() { recover(); close(done) }() //nolint:errcheck
		s.page.Timeout(timeout).WaitStable(500 * time.Millisecond)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// invalidate drops cached element handles. Any DOM mutation can detach them.
// Caller must hold the mutex.
func (s *Session) invalidate() {
	s.elements = make(map[int]*rod.Element)
}
