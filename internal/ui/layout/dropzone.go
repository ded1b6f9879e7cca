package layout

import "github.com/ouvrier/plume/internal/domain/entity"

// DropZone classifies where within a pane a dragged tab would land.
type DropZone string

const (
	DropZoneCenter DropZone = "center"
	DropZoneLeft   DropZone = "left"
	DropZoneRight  DropZone = "right"
	DropZoneTop    DropZone = "top"
	DropZoneBottom DropZone = "bottom"
)

// DefaultDropZoneBand is the fraction of a pane's width/height that counts
// as an edge zone.
const DefaultDropZoneBand = 0.20

// ClassifyZone determines the drop zone for a point inside the pane's
// rectangle. Points within band of an edge belong to that edge's zone;
// everything else is center. Comparisons are strict, so a point exactly on
// a band boundary is center. Where bands overlap in a corner the horizontal
// zones win, checked in left, right, top, bottom order, which keeps corner
// drops deterministic.
func ClassifyZone(rect entity.Rect, x, y, band float64) DropZone {
	if band <= 0 || band >= 0.5 {
		band = DefaultDropZoneBand
	}

	switch {
	case x < rect.X+band*rect.W:
		return DropZoneLeft
	case x > rect.X+rect.W-band*rect.W:
		return DropZoneRight
	case y < rect.Y+band*rect.H:
		return DropZoneTop
	case y > rect.Y+rect.H-band*rect.H:
		return DropZoneBottom
	default:
		return DropZoneCenter
	}
}

// ZoneRect returns the highlight rectangle for a drop zone: the half of the
// pane the new split would occupy, or the whole pane for a center drop.
func ZoneRect(rect entity.Rect, zone DropZone) entity.Rect {
	switch zone {
	case DropZoneLeft:
		return entity.Rect{X: rect.X, Y: rect.Y, W: rect.W / 2, H: rect.H}
	case DropZoneRight:
		return entity.Rect{X: rect.X + rect.W/2, Y: rect.Y, W: rect.W / 2, H: rect.H}
	case DropZoneTop:
		return entity.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H / 2}
	case DropZoneBottom:
		return entity.Rect{X: rect.X, Y: rect.Y + rect.H/2, W: rect.W, H: rect.H / 2}
	default:
		return rect
	}
}
