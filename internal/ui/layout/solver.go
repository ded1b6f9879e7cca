// Package layout computes pane geometry from layout trees: rectangle
// solving, point hit-testing, and drop-zone classification. It is pure
// arithmetic over the domain tree; rendering and input belong elsewhere.
package layout

import (
	"errors"

	"github.com/ouvrier/plume/internal/domain/entity"
)

// ErrNilTree is returned when solving against a missing tree.
var ErrNilTree = errors.New("layout tree is nil")

// ComputeRects assigns a rectangle to every node in the tree. The root
// receives bounds; each split container divides its rectangle between its
// children at its ratio, rows horizontally and columns vertically.
// Containers appear in the result alongside leaves so divider positions can
// be derived from them.
func ComputeRects(tree *entity.Tree, bounds entity.Rect) (map[entity.NodeID]entity.Rect, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	rects := make(map[entity.NodeID]entity.Rect)
	solve(tree, tree.Root(), bounds, rects)
	return rects, nil
}

func solve(tree *entity.Tree, node *entity.Node, rect entity.Rect, rects map[entity.NodeID]entity.Rect) {
	if node == nil {
		return
	}
	rects[node.ID] = rect
	if !node.IsSplit() {
		return
	}

	first, second := splitRect(rect, node.Orientation, node.Ratio)
	solve(tree, tree.Node(node.First), first, rects)
	solve(tree, tree.Node(node.Second), second, rects)
}

func splitRect(rect entity.Rect, orientation entity.Orientation, ratio float64) (entity.Rect, entity.Rect) {
	if ratio <= 0 || ratio >= 1 {
		ratio = entity.DefaultSplitRatio
	}

	switch orientation {
	case entity.OrientationRow:
		firstW := rect.W * ratio
		first := entity.Rect{X: rect.X, Y: rect.Y, W: firstW, H: rect.H}
		second := entity.Rect{X: rect.X + firstW, Y: rect.Y, W: rect.W - firstW, H: rect.H}
		return first, second
	case entity.OrientationColumn:
		firstH := rect.H * ratio
		first := entity.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: firstH}
		second := entity.Rect{X: rect.X, Y: rect.Y + firstH, W: rect.W, H: rect.H - firstH}
		return first, second
	default:
		return rect, entity.Rect{}
	}
}

// PaneAt returns the leaf whose rectangle contains the point, or nil when
// the point falls outside every pane. Rectangles treat their right and
// bottom edges as exclusive, so panes never overlap at dividers.
func PaneAt(tree *entity.Tree, rects map[entity.NodeID]entity.Rect, x, y float64) *entity.Node {
	if tree == nil {
		return nil
	}
	for _, leaf := range tree.Leaves("") {
		rect, ok := rects[leaf.ID]
		if !ok {
			continue
		}
		if rect.Contains(x, y) {
			return leaf
		}
	}
	return nil
}
