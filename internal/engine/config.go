package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Secret wraps a sensitive string so it cannot leak through logging,
// formatting, or JSON encoding. Only Reveal returns the raw value.
type Secret struct {
	value string
}

// NewSecret wraps a raw value.
func NewSecret(v string) Secret { return Secret{value: v} }

// Reveal returns the underlying value. Call sites should pass the result
// directly to the consumer (e.g. a form fill) and never store it.
func (s Secret) Reveal() string { return s.value }

func (s Secret) String() string   { return "[redacted]" }
func (s Secret) GoString() string { return "[redacted]" }

// MarshalJSON always encodes the redaction marker, never the value.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal("[redacted]") }

// Credentials is the LinkedIn account pair read once at startup.
type Credentials struct {
	Email    string
	Password Secret
}

// LoadCredentials reads LINKEDIN_EMAIL and LINKEDIN_PASSWORD from the
// environment. Either missing or empty is a startup error — there is no
// retry, login cannot work without them.
func LoadCredentials() (Credentials, error) {
	email := os.Getenv("LINKEDIN_EMAIL")
	password := os.Getenv("LINKEDIN_PASSWORD")
	if email == "" || password == "" {
		return Credentials{}, fmt.Errorf("LINKEDIN_EMAIL or LINKEDIN_PASSWORD is not set")
	}
	return Credentials{Email: email, Password: NewSecret(password)}, nil
}

// Config holds all engine configuration, injected from main.
type Config struct {
	Credentials Credentials

	CVPath  string // resume file, must exist at startup
	JobsCSV string // append-only job record store

	LLMAPIKey      string
	LLMAPIBase     string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int

	MaxSteps        int // per-agent step budget
	MaxContentChars int // page-content truncation for LLM context
	FetchTimeout    time.Duration

	Headless bool
	Roles    []string // one agent is launched per role
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (jobs, browser).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
