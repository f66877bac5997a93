package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to a
	// style file. Empty or "auto" picks one from the terminal, "notty" when
	// NO_COLOR is set.
	Style string
	// Width wraps the output, 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer creates a markdown renderer with auto detected style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render renders markdown content. Other formats, and content glamour
// fails on, are returned unchanged.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	renderer, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	style := r.Style
	if (style == "" || style == "auto") && os.Getenv("NO_COLOR") != "" {
		style = "notty"
	}

	var options []glamour.TermRendererOption
	if style == "" || style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}
