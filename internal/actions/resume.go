package actions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/anatolykoptev/go_easyapply/internal/browser"
	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
)

// NewReadCVAction builds the read_cv action: extract the resume text so the
// agent can judge job fit against it. The text is retained in memory.
func NewReadCVAction(cvPath string) Action {
	return Action{
		Name:        "read_cv",
		Description: "Read my resume (CV) text so you can evaluate how well jobs match my background. Call this once, early.",
		Handler: func(ctx context.Context, _ map[string]any) Result {
			text, err := jobs.ReadResume(cvPath)
			if err != nil {
				return Failure("read cv: %v", err)
			}
			return Success(fmt.Sprintf("CV content: %s", text), true)
		},
	}
}

// NewUploadCVAction builds the upload_cv action: attach the resume file to
// the upload control at the given element index.
func NewUploadCVAction(b FileSetter, cvPath string) Action {
	return Action{
		Name:        "upload_cv",
		Description: "Upload my resume file to the file upload element at the given index. Use on Easy Apply resume steps.",
		Params: map[string]any{
			"index": map[string]any{
				"type":        "integer",
				"description": "Element index of the file upload control",
			},
		},
		Required: []string{"index"},
		Handler: func(ctx context.Context, args map[string]any) Result {
			index, err := getInt(args, "index")
			if err != nil {
				return Failure("upload cv: %v", err)
			}

			abs, err := filepath.Abs(cvPath)
			if err != nil {
				return Failure("upload cv: resolve path %s: %v", cvPath, err)
			}

			if err := b.SetFiles(index, abs); err != nil {
				switch {
				case errors.Is(err, browser.ErrNoElement):
					return Failure("No element found at index %d", index)
				case errors.Is(err, browser.ErrNoFileInput):
					return Failure("No file upload element found at index %d", index)
				default:
					return Failure("upload cv: %v", err)
				}
			}
			return Success(fmt.Sprintf("Successfully uploaded file %q to index %d", abs, index), false)
		},
	}
}
