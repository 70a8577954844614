package engine

import (
	"fmt"
	"image/color"
)

// Op is one recorded drawing call.
type Op struct {
	Kind string
	Src  string // sprite source for image ops
	Text string // text for FillText, font for SetFont, align for SetTextAlign
	Args []float64
	Fill color.Color
}

func (o Op) String() string {
	switch o.Kind {
	case "FillText":
		return fmt.Sprintf("%s(%q, %v)", o.Kind, o.Text, o.Args)
	case "DrawImage", "DrawImageRegion":
		return fmt.Sprintf("%s(%s, %v)", o.Kind, o.Src, o.Args)
	default:
		return fmt.Sprintf("%s(%v)", o.Kind, o.Args)
	}
}

// Recorder is a headless Surface that records every call.
type Recorder struct {
	W, H float64
	Ops  []Op

	fill color.Color
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, fill: color.Black}
}

func (r *Recorder) Width() float64  { return r.W }
func (r *Recorder) Height() float64 { return r.H }

// ClearRect records the clear. A full-surface clear also drops the ops
// recorded so far, so Ops always holds the latest frame.
func (r *Recorder) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= r.W && h >= r.H {
		r.Ops = r.Ops[:0]
	}
	r.record(Op{Kind: "ClearRect", Args: []float64{x, y, w, h}})
}

func (r *Recorder) DrawImage(sp *Sprite, dx, dy, dw, dh float64) {
	r.record(Op{Kind: "DrawImage", Src: sp.Src, Args: []float64{dx, dy, dw, dh}})
}

func (r *Recorder) DrawImageRegion(sp *Sprite, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	r.record(Op{Kind: "DrawImageRegion", Src: sp.Src, Args: []float64{sx, sy, sw, sh, dx, dy, dw, dh}})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Kind: "FillRect", Args: []float64{x, y, w, h}, Fill: r.fill})
}

func (r *Recorder) SetFont(font string) {
	r.record(Op{Kind: "SetFont", Text: font})
}

func (r *Recorder) SetTextAlign(align TextAlign) {
	r.record(Op{Kind: "SetTextAlign", Text: string(align)})
}

func (r *Recorder) SetFillStyle(c color.Color) {
	r.fill = c
	r.record(Op{Kind: "SetFillStyle", Fill: c})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record(Op{Kind: "FillText", Text: text, Args: []float64{x, y}, Fill: r.fill})
}

func (r *Recorder) record(op Op) {
	r.Ops = append(r.Ops, op)
}

// Count returns how many recorded ops are of the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the text of every FillText op, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "FillText" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// PulseCounter is a FrameScheduler for hosts that pump frames themselves.
// It remembers whether a pulse was requested.
type PulseCounter struct {
	pending  bool
	requests int
}

// RequestFrame marks a pulse as pending.
func (p *PulseCounter) RequestFrame() {
	p.pending = true
	p.requests++
}

// Take consumes the pending pulse, reporting whether there was one.
func (p *PulseCounter) Take() bool {
	if !p.pending {
		return false
	}
	p.pending = false
	return true
}

// Pending reports whether a pulse is waiting.
func (p *PulseCounter) Pending() bool { return p.pending }

// Requests returns the total number of pulses requested.
func (p *PulseCounter) Requests() int { return p.requests }
