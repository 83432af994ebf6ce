package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const fontSize = 10

var (
	// Reused every frame to avoid per-frame color allocations.
	panelBgColor   = rl.NewColor(26, 26, 26, 230)
	titleBgColor   = rl.NewColor(17, 17, 17, 240)
	trackColor     = rl.NewColor(60, 60, 60, 255)
	fillColor      = rl.NewColor(47, 161, 214, 255)
	labelColor     = rl.NewColor(235, 235, 235, 255)
	valueColor     = rl.NewColor(47, 161, 214, 255)
	unboundedColor = rl.NewColor(120, 120, 120, 255)
)

// Draw renders the panel in screen space. Call between BeginDrawing and EndDrawing.
func (p *Panel) Draw() {
	if p.Hidden {
		return
	}
	x, y, w := int32(p.X), int32(p.Y), int32(p.Width)
	rl.DrawRectangle(x, y, w, int32(p.Height()), panelBgColor)
	rl.DrawRectangle(x, y, w, TitleHeight, titleBgColor)
	rl.DrawText(p.Title, x+Padding, y+(TitleHeight-fontSize)/2, fontSize, labelColor)

	for i, s := range p.sliders {
		x0, x1, top := p.track(i)
		mid := int32(top) + RowHeight/2
		rl.DrawText(s.Label, x+Padding, mid-fontSize/2, fontSize, labelColor)

		trackH := int32(RowHeight - 8)
		rl.DrawRectangle(int32(x0), mid-trackH/2, int32(x1-x0), trackH, trackColor)
		if s.Bounded() {
			rl.DrawRectangle(int32(x0), mid-trackH/2, int32((x1-x0)*s.Fraction()), trackH, fillColor)
			rl.DrawText(s.Text(), int32(x1)+Padding, mid-fontSize/2, fontSize, valueColor)
		} else {
			rl.DrawText(s.Text(), int32(x1)+Padding, mid-fontSize/2, fontSize, unboundedColor)
		}
	}
}
