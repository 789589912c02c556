package game

import (
	"strings"

	"github.com/logrusorgru/aurora"
)

// Glyphs is the text shown for each cell state.
type Glyphs struct {
	Empty string
	X     string
	O     string
}

func DefaultGlyphs() Glyphs {
	return Glyphs{Empty: " ", X: "X", O: "O"}
}

type RenderOption func(r *Renderer)

type Renderer struct {
	glyphs Glyphs
	color  aurora.Aurora
}

func WithGlyphs(glyphs Glyphs) RenderOption {
	return func(r *Renderer) {
		r.glyphs = glyphs
	}
}

// WithColor paints X and O glyphs with ANSI colors for terminal output.
func WithColor(enabled bool) RenderOption {
	return func(r *Renderer) {
		r.color = aurora.NewAurora(enabled)
	}
}

func NewRenderer(options ...RenderOption) *Renderer {
	r := &Renderer{
		glyphs: DefaultGlyphs(),
		color:  aurora.NewAurora(false),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Render draws the board as rows of glyphs separated by " | ", with a rule of
// 4n-3 dashes between rows.
func (r *Renderer) Render(b *Board) string {
	var sb strings.Builder
	n := b.Dim()
	rule := strings.Repeat("-", 4*n-3)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			sb.WriteString(r.glyph(b.cells[b.index(row, col)]))
			if col == n-1 {
				sb.WriteString("\n")
			} else {
				sb.WriteString(" | ")
			}
		}
		if row != n-1 {
			sb.WriteString(rule)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (r *Renderer) glyph(cell Cell) string {
	switch cell {
	case PlayerX:
		return r.color.Red(r.glyphs.X).String()
	case PlayerO:
		return r.color.Blue(r.glyphs.O).String()
	}
	return r.glyphs.Empty
}
