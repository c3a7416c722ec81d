// Package export renders canonical content blocks for downstream
// consumers. Renderers are pure string builders; where the output lands
// is the caller's business.
package export

import (
	"fmt"
	"strings"
	"time"

	"stt-normalization-service/internal/models"
)

// Metadata is the optional document header for rendered output.
type Metadata struct {
	Title     string
	Provider  string
	Generated string
}

// RenderMarkdown renders blocks as a Markdown transcript: a metadata
// header, then one speaker-labeled paragraph per block.
func RenderMarkdown(meta Metadata, blocks []models.ContentBlock) string {
	var b strings.Builder

	if meta.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", meta.Title)
	} else {
		b.WriteString("# Transcript\n\n")
	}
	if meta.Provider != "" {
		fmt.Fprintf(&b, "- Provider: `%s`\n", meta.Provider)
	}
	if meta.Generated != "" {
		fmt.Fprintf(&b, "- Generated: %s\n", meta.Generated)
	}
	b.WriteString("\n---\n\n")

	for _, block := range blocks {
		fmt.Fprintf(&b, "**%s** [%s]\n\n%s\n\n", block.SpeakerLabel, secToTS(block.Start), block.Text)
	}
	return b.String()
}

func secToTS(sec float64) string {
	d := time.Duration(sec*1000) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
