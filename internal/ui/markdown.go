package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

var (
	rendererMu       sync.Mutex
	renderersByStyle = map[markdownRendererKey]*glamour.TermRenderer{}
)

type markdownRendererKey struct {
	width int
	color bool
}

// renderMarkdown renders a commit body. It returns the input unchanged when
// glamour cannot render it.
func renderMarkdown(input string, width int, color bool) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := getRenderer(width, color)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	out = strings.Trim(out, "\n")
	out = xansi.Hardwrap(out, width, true)
	return strings.TrimRight(out, "\n")
}

func getRenderer(width int, color bool) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := markdownRendererKey{width: width, color: color}
	if renderer, ok := renderersByStyle[key]; ok && renderer != nil {
		return renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(buildStyleConfig(color)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderersByStyle[key] = r
	return r
}

// buildStyleConfig uses the uncolored style for pipes and dumb terminals.
func buildStyleConfig(color bool) glamouransi.StyleConfig {
	base := styles.NoTTYStyleConfig
	if color {
		base = styles.DarkStyleConfig
	}
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}
