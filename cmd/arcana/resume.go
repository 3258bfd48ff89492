package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/profarcana/arcana/internal/themes"
)

// profileFromResume extracts plain text from a PDF resume and builds a
// minimal profile out of it. The first non-empty line becomes the
// headline, the rest goes into the summary for buzzword matching.
func profileFromResume(path string) (themes.Profile, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return themes.Profile{}, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return themes.Profile{}, fmt.Errorf("extracting text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return themes.Profile{}, fmt.Errorf("reading text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return themes.Profile{}, fmt.Errorf("no text found in %s", path)
	}

	var p themes.Profile
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			p.Headline = line
			break
		}
	}
	p.Summary = text
	return p, nil
}
