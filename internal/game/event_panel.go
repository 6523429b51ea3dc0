package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/layered/internal/palette"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelWidth      = 420
	panelLineHeight = 16
	panelRecent     = 3 // latest entries highlighted
)

// categoryColours marks each event row with a dot.
var categoryColours = map[string]color.RGBA{
	CatLayer:     {R: 200, G: 200, B: 190, A: 255},
	CatObjective: palette.Objective,
	CatThreat:    palette.Threat,
	CatInput:     palette.Hint,
	CatCursor:    palette.Completed,
}

// drawEventPanel renders the tail of the event log down the right edge.
func drawEventPanel(screen *ebiten.Image, log *EventLog, screenW, screenH int) {
	panelX := float32(screenW - panelWidth)
	vector.FillRect(screen, panelX, 0, panelWidth, float32(screenH), color.RGBA{R: 16, G: 16, B: 14, A: 220}, false)
	vector.StrokeLine(screen, panelX, 0, panelX, float32(screenH), 1, color.RGBA{R: 70, G: 70, B: 62, A: 255}, false)

	vector.FillRect(screen, panelX, 0, panelWidth, 18, color.RGBA{R: 30, G: 30, B: 26, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("EVENTS (%d dropped)", log.Dropped()), int(panelX)+8, 2)

	maxVisible := (screenH - 24) / panelLineHeight
	visible := log.Tail(maxVisible)
	y := 22
	for i, e := range visible {
		if i >= len(visible)-panelRecent {
			vector.FillRect(screen, panelX+2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 40, G: 40, B: 34, A: 160}, false)
		}
		dot, ok := categoryColours[e.Category]
		if !ok {
			dot = categoryColours[CatInput]
		}
		vector.FillRect(screen, panelX+5, float32(y+5), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, e.String(), int(panelX)+12, y)
		y += panelLineHeight
	}
}
