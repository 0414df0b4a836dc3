package actions

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_easyapply/internal/engine"
)

const loginURL = "https://www.linkedin.com/login"

// Navigator is the slice of the browser session the login action drives.
type Navigator interface {
	Navigate(url string) error
	FillBySelector(selector, text string) error
	ClickBySelector(selector string) error
}

// FileSetter assigns a local file to an indexed upload control.
type FileSetter interface {
	SetFiles(id int, path string) error
}

// NewLoginAction builds the linkedin_login action. Credentials are bound
// here at registration; the model never sees or passes them.
func NewLoginAction(b Navigator, creds engine.Credentials) Action {
	return Action{
		Name:        "linkedin_login",
		Description: "Log in to LinkedIn with the configured account. Call this once, before searching or applying.",
		Handler: func(ctx context.Context, _ map[string]any) Result {
			if err := b.Navigate(loginURL); err != nil {
				return Failure("login: %v", err)
			}
			if err := b.FillBySelector("input#username", creds.Email); err != nil {
				return Failure("login: %v", err)
			}
			if err := b.FillBySelector("input#password", creds.Password.Reveal()); err != nil {
				return Failure("login: %v", err)
			}
			if err := b.ClickBySelector("button[type=submit]"); err != nil {
				return Failure("login: %v", err)
			}
			slog.Info("logged in to linkedin", "email", creds.Email)
			return Success("Successfully logged in to LinkedIn", true)
		},
	}
}
