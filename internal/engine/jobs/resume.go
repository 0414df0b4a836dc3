package jobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// CheckResume verifies the resume file exists. Called once at startup; a
// missing file aborts the process before any agent runs.
func CheckResume(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("resume file not found at %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("resume path %s is a directory", path)
	}
	return nil
}

// ReadResume extracts plain text from every page of the resume PDF,
// concatenated in page order. A page with no extractable text contributes
// an empty string rather than failing the read.
func ReadResume(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("read resume %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	slog.Info("resume read", slog.String("path", path), slog.Int("chars", sb.Len()))
	return sb.String(), nil
}
