package lanerush

import (
	"image/color"

	"github.com/vovakirdan/lanerush/internal/engine"
)

// HUD draws the running score in the top-right corner. It is drawn after
// every entity, so obstacles never cover it.
type HUD struct {
	run *Run
}

// NewHUD creates the score display.
func NewHUD(run *Run) *HUD {
	return &HUD{run: run}
}

// Draw renders score.
func (h *HUD) Draw(s engine.Surface, score float64) {
	bg := h.run.Backdrop
	s.SetFont("bold 20px sans-serif")
	s.SetTextAlign(engine.AlignRight)
	s.SetFillStyle(color.White)
	s.FillText("Score: "+h.run.FormatScore(score), bg.Size.Right()-10, bg.Pos.Y+24)
}
