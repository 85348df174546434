package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const (
	FormatPNG  = "png"
	FormatHTML = "html"
)

var Formats = []string{FormatPNG, FormatHTML}

// Gallery queues figures until Show renders them all.
type Gallery struct {
	figures []*Figure
	runID   string
	log     *zap.Logger
	width   int
	height  int
}

func NewGallery(log *zap.Logger, width, height int) *Gallery {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gallery{
		runID:  uuid.NewV4().String(),
		log:    log,
		width:  width,
		height: height,
	}
}

// RunID names the directory Show writes into.
func (g *Gallery) RunID() string { return g.runID }

// NewFigure creates a figure and queues it.
func (g *Gallery) NewFigure(name string) *Figure {
	f := NewFigure(name).SetSize(g.width, g.height)
	g.figures = append(g.figures, f)
	return f
}

// Pending is the number of queued figures.
func (g *Gallery) Pending() int { return len(g.figures) }

// Show renders every queued figure into dir/<run id>/ and clears the queue.
// Figures nothing was drawn on are skipped.
func (g *Gallery) Show(dir string, formats ...string) ([]string, error) {
	if len(formats) == 0 {
		formats = []string{FormatPNG}
	}
	for _, format := range formats {
		if !go_utils.InArray(format, Formats) {
			return nil, fmt.Errorf("unknown figure format %q, want one of %v", format, Formats)
		}
	}
	figures := g.figures
	g.figures = nil
	if len(figures) == 0 {
		return nil, nil
	}

	out := filepath.Join(dir, g.runID)
	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, fmt.Errorf("error creating %s: %w", out, err)
	}

	var written []string
	for i, f := range figures {
		if f.Empty() {
			g.log.Warn("skipping empty figure", zap.String("figure", f.Name))
			continue
		}
		for _, format := range formats {
			var data []byte
			var err error
			switch format {
			case FormatPNG:
				data, err = f.PNG()
			case FormatHTML:
				data, err = f.HTML()
			}
			if err != nil {
				return written, err
			}
			path := filepath.Join(out, fmt.Sprintf("%02d-%s.%s", i+1, fileName(f.Name), format))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return written, fmt.Errorf("error writing %s: %w", path, err)
			}
			g.log.Info("figure written", zap.String("figure", f.Name), zap.String("path", path))
			written = append(written, path)
		}
	}
	return written, nil
}

var notAlphanumeric = regexp.MustCompile("[^a-zA-Z0-9]+")

// fileName transliterates name to ASCII and collapses everything that is not
// a letter or digit into single underscores.
func fileName(name string) string {
	processed := notAlphanumeric.ReplaceAllString(unidecode.Unidecode(name), "_")
	processed = strings.Trim(processed, "_")
	if processed == "" {
		return "figure"
	}
	return processed
}
