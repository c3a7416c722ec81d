package export

import (
	"fmt"
	"html"
	"strings"

	"stt-normalization-service/internal/models"
)

// RenderHTML renders blocks as an HTML fragment: one <section> per
// block, with each word wrapped in a timed <span> so a player can
// highlight the word under the playhead. Words are resolved through the
// block's entity ranges, which is exactly the playback-sync surface the
// ranges exist for.
func RenderHTML(meta Metadata, blocks []models.ContentBlock) string {
	var b strings.Builder

	b.WriteString("<article class=\"transcript\">\n")
	if meta.Title != "" {
		fmt.Fprintf(&b, "  <h1>%s</h1>\n", html.EscapeString(meta.Title))
	}

	for _, block := range blocks {
		fmt.Fprintf(&b, "  <section class=\"paragraph\" data-start=\"%.3f\">\n", block.Start)
		fmt.Fprintf(&b, "    <h2 class=\"speaker\">%s <span class=\"timecode\">[%s]</span></h2>\n",
			html.EscapeString(block.SpeakerLabel), secToTS(block.Start))
		b.WriteString("    <p>")
		for i, r := range block.EntityRanges {
			if i > 0 {
				b.WriteString(" ")
			}
			word := block.Words[r.WordIndex]
			fmt.Fprintf(&b, "<span data-start=\"%.3f\" data-end=\"%.3f\">%s</span>",
				word.Start, word.End, html.EscapeString(block.Text[r.Offset:r.Offset+r.Length]))
		}
		b.WriteString("</p>\n")
		b.WriteString("  </section>\n")
	}

	b.WriteString("</article>\n")
	return b.String()
}
