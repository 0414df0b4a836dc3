package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/anatolykoptev/go_easyapply/internal/engine"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Navigate loads a URL in the current page and waits for it to settle.
func (s *Session) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensurePage(); err != nil {
		return err
	}
	engine.IncrBrowserNavigations()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	s.waitSettled(5 * time.Second)
	s.invalidate()
	return nil
}

// Click clicks an indexed element, falling back to a JS-dispatched click
// when the emulated mouse click fails (overlays, off-screen elements).
func (s *Session) Click(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.element(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		if _, jsErr := el.Context(ctx).Eval(`() => { this.click(); }`); jsErr != nil {
			return fmt.Errorf("click element %d: %w", id, err)
		}
	}

	s.waitSettled(2 * time.Second)
	s.invalidate()
	return nil
}

// Type replaces the content of an indexed input with text.
func (s *Session) Type(id int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.element(id)
	if err != nil {
		return err
	}
	// Select existing content so Input replaces instead of appending.
	_ = el.SelectAllText()
	if err := el.Input(text); err != nil {
		return fmt.Errorf("type into element %d: %w", id, err)
	}
	s.invalidate()
	return nil
}

// PressKey sends a special key to the page.
func (s *Session) PressKey(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := map[string]input.Key{
		"enter":      input.Enter,
		"escape":     input.Escape,
		"tab":        input.Tab,
		"backspace":  input.Backspace,
		"arrow_down": input.ArrowDown,
		"arrow_up":   input.ArrowUp,
	}
	k, ok := keys[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unsupported key: %s", name)
	}
	if err := s.page.Keyboard.Press(k); err != nil {
		return fmt.Errorf("press %s: %w", name, err)
	}
	s.waitSettled(time.Second)
	s.invalidate()
	return nil
}

// Scroll moves the viewport up or down by most of a screen.
func (s *Session) Scroll(direction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	script := scrollDownScript
	if strings.ToLower(direction) == "up" {
		script = scrollUpScript
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := s.page.Context(ctx).Eval(script); err != nil {
		return fmt.Errorf("scroll %s: %w", direction, err)
	}
	s.invalidate()
	return nil
}

// FillBySelector waits for a CSS selector and types into it. Used by the
// login action, whose fields have stable known selectors.
func (s *Session) FillBySelector(selector, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.page.Timeout(10 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("selector %q not found: %w", selector, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

// ClickBySelector waits for a CSS selector and clicks it.
func (s *Session) ClickBySelector(selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.page.Timeout(10 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("selector %q not found: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	s.waitSettled(5 * time.Second)
	s.invalidate()
	return nil
}

// SetFiles assigns a local file path to the upload control at (or nested
// under) the indexed element. The two resolution failures are distinct
// sentinel errors so the caller can name the index in its message.
func (s *Session) SetFiles(id int, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := s.element(id)
	if err != nil {
		return err
	}

	fileEl := el
	res, err := el.Eval(`() => this.tagName === 'INPUT' && this.type === 'file'`)
	if err != nil || !res.Value.Bool() {
		nested, err := el.Timeout(2 * time.Second).Element(`input[type="file"]`)
		if err != nil {
			return fmt.Errorf("%w %d", ErrNoFileInput, id)
		}
		fileEl = nested
	}

	if err := fileEl.SetFiles([]string{path}); err != nil {
		return fmt.Errorf("set file %s on element %d: %w", path, id, err)
	}
	return nil
}

// PageMarkdown renders the current page HTML as markdown, truncated to the
// configured content budget, for LLM consumption.
func (s *Session) PageMarkdown() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensurePage(); err != nil {
		return "", err
	}
	raw, err := s.page.HTML()
	if err != nil {
		return "", fmt.Errorf("page html: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		return "", fmt.Errorf("convert page to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	if limit := engine.Cfg.MaxContentChars; limit > 0 && len(md) > limit {
		md = md[:limit] + "..."
	}
	return md, nil
}
