package jobs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckResume(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if err := CheckResume(filepath.Join(dir, "cv.pdf")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if err := CheckResume(dir); err == nil {
			t.Error("expected error for directory path")
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(dir, "cv.pdf")
		if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := CheckResume(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestReadResumeBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-pdf.pdf")
	if err := os.WriteFile(path, []byte("plain text, no pdf structure"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadResume(path); err == nil {
		t.Error("expected error for non-PDF content")
	}
}

func TestReadResumeMissingFile(t *testing.T) {
	if _, err := ReadResume(filepath.Join(t.TempDir(), "cv.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadResumeConcatenatesPagesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	writeTestPDF(t, path, []string{"Alpha analytics experience", "Beta dashboard projects"})

	text, err := ReadResume(path)
	if err != nil {
		t.Fatalf("ReadResume: %v", err)
	}

	first := strings.Index(text, "Alpha analytics experience")
	second := strings.Index(text, "Beta dashboard projects")
	if first < 0 || second < 0 {
		t.Fatalf("missing page text, got %q", text)
	}
	if first > second {
		t.Errorf("pages out of order: %q", text)
	}
}

// writeTestPDF emits a minimal uncompressed PDF with one text line per page.
// Object offsets are computed while writing, so the xref table stays valid
// whatever the page texts are.
func writeTestPDF(t *testing.T, path string, pages []string) {
	t.Helper()

	n := len(pages)
	fontObj := 3 + 2*n

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	writeObj("<</Type /Catalog /Pages 2 0 R>>")
	writeObj(fmt.Sprintf("<</Type /Pages /Kids [%s] /Count %d>>", strings.Join(kids, " "), n))
	for i := range pages {
		writeObj(fmt.Sprintf(
			"<</Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources <</Font <</F1 %d 0 R>>>> /Contents %d 0 R>>",
			fontObj, 3+n+i))
	}
	for _, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		writeObj(fmt.Sprintf("<</Length %d>>\nstream\n%s\nendstream", len(content), content))
	}
	writeObj("<</Type /Font /Subtype /Type1 /BaseFont /Helvetica>>")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d /Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}
