// Package render draws a game state as text. Row indices run down the left
// and column indices across the top, matching the coordinates players type.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/fatih/color"
)

type highlight uint8

const (
	plain highlight = iota
	origin
	destination
	rejected
)

// Without colour the highlight is carried by the brackets around a cell.
var brackets = map[highlight][2]byte{
	plain:       {' ', ' '},
	origin:      {'[', ']'},
	destination: {'(', ')'},
	rejected:    {'!', '!'},
}

type Renderer struct {
	colours map[highlight]*color.Color
}

// New returns a renderer. Colour is forced on or off regardless of what the
// process's own stdout is attached to.
func New(useColour bool) *Renderer {
	colours := map[highlight]*color.Color{
		origin:      color.New(color.BgGreen, color.FgBlack),
		destination: color.New(color.BgBlue, color.FgWhite),
		rejected:    color.New(color.BgRed, color.FgWhite),
	}
	for _, c := range colours {
		if useColour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Renderer{colours: colours}
}

func highlights(st model.GameState) map[model.Position]highlight {
	marks := make(map[model.Position]highlight)
	for _, p := range st.LegalMoves {
		marks[p] = destination
	}
	if st.SelectedSquare != nil {
		marks[*st.SelectedSquare] = origin
	}
	if st.RejectedSquare != nil {
		marks[*st.RejectedSquare] = rejected
	}
	return marks
}

func (r *Renderer) Render(w io.Writer, st model.GameState) error {
	var buf bytes.Buffer
	marks := highlights(st)

	buf.WriteString("  ")
	for col := 0; col < model.Size; col++ {
		fmt.Fprintf(&buf, " %d ", col)
	}
	buf.WriteByte('\n')

	for row, pieces := range st.Board {
		fmt.Fprintf(&buf, "%d ", row)
		for col, piece := range pieces {
			glyph := byte('.')
			if piece != nil {
				glyph = piece.Letter()
			}
			mark := marks[model.Position{Row: row, Col: col}]
			b := brackets[mark]
			cell := string([]byte{b[0], glyph, b[1]})
			if c, ok := r.colours[mark]; ok {
				cell = c.Sprint(cell)
			}
			buf.WriteString(cell)
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "%s to move\n", st.ToMove)

	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) String(st model.GameState) string {
	var buf bytes.Buffer
	r.Render(&buf, st)
	return buf.String()
}
