package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/output/styles"
	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer prints results in one format
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	format    Format
	lipgloss  *lipgloss.Renderer
}

// PlanView is the data printed for a link plan
type PlanView struct {
	DryRun     bool              `json:"dryRun" yaml:"dryRun"`
	Operations []types.Operation `json:"operations" yaml:"operations"`
	Unchanged  []types.Operation `json:"unchanged,omitempty" yaml:"unchanged,omitempty"`
}

// NewRenderer creates a renderer writing to w. Styling is applied only
// when w is a color capable terminal, NO_COLOR is unset and noColor is
// false.
func NewRenderer(w io.Writer, format Format, noColor bool) (*Renderer, error) {
	log := logging.GetLogger("output.renderer")

	r := &Renderer{writer: w, format: format, lipgloss: lipgloss.NewRenderer(w)}
	if noColor || os.Getenv("NO_COLOR") != "" {
		r.lipgloss.SetColorProfile(termenv.Ascii)
	}
	log.Debug().
		Str("format", string(format)).
		Int("colorProfile", int(r.lipgloss.ColorProfile())).
		Msg("Creating renderer")

	tmpl, err := template.New("output").
		Funcs(template.FuncMap{"style": r.style}).
		ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse templates")
	}
	r.templates = tmpl
	return r, nil
}

// RenderLinks prints a castle's manifest
func (r *Renderer) RenderLinks(result types.LinksResult) error {
	return r.render("links.tmpl", result)
}

// RenderCastles prints the castle names
func (r *Renderer) RenderCastles(result types.ListCastlesResult) error {
	return r.render("castles.tmpl", result)
}

// RenderBootstrap prints the castles a bootstrap cloned
func (r *Renderer) RenderBootstrap(result types.BootstrapResult) error {
	return r.render("bootstrap.tmpl", result)
}

// RenderPlan prints the operations of a link plan
func (r *Renderer) RenderPlan(view PlanView) error {
	return r.render("plan.tmpl", view)
}

func (r *Renderer) render(name string, data interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(r.writer)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		return enc.Close()
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to execute template %s", name)
	}
	_, err := io.Copy(r.writer, &buf)
	return err
}

func (r *Renderer) style(name string, value interface{}) string {
	text := fmt.Sprint(value)
	if r.lipgloss.ColorProfile() == termenv.Ascii {
		return text
	}
	return styles.GetStyle(name).Renderer(r.lipgloss).Render(text)
}
