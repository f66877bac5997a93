package output

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/heimweh/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrorPrefix starts every error line
const ErrorPrefix = "E: "

// PrintError writes "E: <err>" to w, styled when w is a terminal
func PrintError(w io.Writer, err error) {
	line := ErrorPrefix + err.Error()
	if isTerminal(w) && os.Getenv("NO_COLOR") == "" {
		line = styles.GetStyle("Error").Renderer(lipgloss.NewRenderer(w)).Render(line)
	}
	fmt.Fprintln(w, line)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
