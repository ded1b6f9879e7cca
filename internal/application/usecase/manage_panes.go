// Package usecase implements the application operations over the domain
// entities: pane tree mutations, document table management, and
// recently-opened history.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ouvrier/plume/internal/application/port"
	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
)

// Edge indicates which edge of a pane a split lands on.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// NewPaneFirst reports whether a split on this edge places the new pane as
// the first (left/top) child. This ordering is the only semantic difference
// between the four edges.
func (e Edge) NewPaneFirst() bool {
	return e == EdgeLeft || e == EdgeTop
}

// Orientation returns the container orientation a split on this edge
// produces: row for left/right, column for top/bottom.
func (e Edge) Orientation() entity.Orientation {
	switch e {
	case EdgeLeft, EdgeRight:
		return entity.OrientationRow
	case EdgeTop, EdgeBottom:
		return entity.OrientationColumn
	default:
		return entity.OrientationNone
	}
}

// NavigateDirection indicates the direction for focus navigation.
type NavigateDirection string

const (
	NavLeft  NavigateDirection = "left"
	NavRight NavigateDirection = "right"
	NavUp    NavigateDirection = "up"
	NavDown  NavigateDirection = "down"
)

// ResizeDirection indicates the direction for pane resizing. The plain
// increase/decrease variants pick the nearest applicable divider
// automatically.
type ResizeDirection string

const (
	ResizeIncreaseLeft  ResizeDirection = "increase_left"
	ResizeIncreaseRight ResizeDirection = "increase_right"
	ResizeIncreaseUp    ResizeDirection = "increase_up"
	ResizeIncreaseDown  ResizeDirection = "increase_down"

	ResizeIncrease ResizeDirection = "increase"
	ResizeDecrease ResizeDirection = "decrease"
)

// Sentinel errors for pane tree operations. Missing-node conditions are
// benign (callers log and move on); a missing sibling is an internal
// invariant violation and aborts the operation.
var (
	ErrPaneNotFound    = errors.New("pane not found")
	ErrInvalidEdge     = errors.New("invalid split edge")
	ErrMissingSibling  = errors.New("split container missing sibling")
	ErrNothingToResize = errors.New("nothing to resize")
)

// ManagePanesUseCase handles pane tree operations: split, remove, focus,
// navigation, and resizing. It mutates trees only; widget/view bookkeeping
// belongs to the coordinator layer.
type ManagePanesUseCase struct {
	idGenerator port.IDGenerator
}

// NewManagePanesUseCase creates a new pane management use case.
func NewManagePanesUseCase(idGenerator port.IDGenerator) *ManagePanesUseCase {
	return &ManagePanesUseCase{idGenerator: idGenerator}
}

// SplitPaneInput contains parameters for splitting a pane.
type SplitPaneInput struct {
	Workspace    *entity.Workspace
	TargetPaneID entity.PaneID
	Edge         Edge
}

// SplitPaneOutput contains the result of a split operation.
type SplitPaneOutput struct {
	NewPane       *entity.Pane
	NewLeaf       *entity.Node
	ContainerNode *entity.Node
}

// Split creates a new empty pane adjacent to the target pane. After the
// operation exactly one new leaf and one new split container exist; the
// target pane is preserved as a sibling with unchanged content. The caller
// is responsible for moving the dragged document into the new pane.
func (uc *ManagePanesUseCase) Split(ctx context.Context, input SplitPaneInput) (*SplitPaneOutput, error) {
	log := logging.FromContext(ctx)

	if input.Workspace == nil {
		return nil, fmt.Errorf("workspace is required")
	}
	if input.Edge.Orientation() == entity.OrientationNone {
		return nil, fmt.Errorf("split %q: %w", input.Edge, ErrInvalidEdge)
	}

	tree := input.Workspace.Tree
	target := tree.PaneNode(input.TargetPaneID)
	if target == nil {
		log.Warn().Str("pane_id", string(input.TargetPaneID)).Msg("split target does not exist")
		return nil, fmt.Errorf("split target %q: %w", input.TargetPaneID, ErrPaneNotFound)
	}

	newPane := entity.NewPane(entity.PaneID(uc.idGenerator()))
	newLeaf := &entity.Node{
		ID:   entity.NodeID(newPane.ID),
		Pane: newPane,
	}

	container := &entity.Node{
		ID:          entity.NodeID(uc.idGenerator()),
		Orientation: input.Edge.Orientation(),
		Ratio:       entity.DefaultSplitRatio,
	}

	if input.Edge.NewPaneFirst() {
		container.First = newLeaf.ID
		container.Second = target.ID
	} else {
		container.First = target.ID
		container.Second = newLeaf.ID
	}

	// Replace the target's slot with the container.
	oldParentID := target.Parent
	container.Parent = oldParentID
	target.Parent = container.ID
	newLeaf.Parent = container.ID

	tree.Attach(newLeaf)
	tree.Attach(container)

	if oldParentID == "" {
		if err := tree.SetRoot(container.ID); err != nil {
			return nil, err
		}
		container.Parent = ""
	} else {
		oldParent := tree.Node(oldParentID)
		if oldParent == nil {
			return nil, fmt.Errorf("split: parent %q: %w", oldParentID, entity.ErrNodeNotFound)
		}
		switch target.ID {
		case oldParent.First:
			oldParent.First = container.ID
		case oldParent.Second:
			oldParent.Second = container.ID
		}
	}

	log.Info().
		Str("new_pane_id", string(newPane.ID)).
		Str("container_id", string(container.ID)).
		Str("edge", string(input.Edge)).
		Msg("pane split completed")

	return &SplitPaneOutput{
		NewPane:       newPane,
		NewLeaf:       newLeaf,
		ContainerNode: container,
	}, nil
}

// RemovePaneOutput describes the result of removing a pane.
type RemovePaneOutput struct {
	// Removed is false when the target was the root pane, which is never
	// structurally removed (it stays alive, possibly empty).
	Removed bool

	// Promoted is the sibling that replaced the removed pane's parent
	// container, or nil when nothing was removed.
	Promoted *entity.Node

	// NewActivePaneID is set when activity was reassigned.
	NewActivePaneID entity.PaneID
}

// Remove removes a pane and promotes its sibling into the freed slot. The
// last pane of a workspace is never removed. If the removed pane held the
// active designation, activity moves to the first leaf reachable from the
// promoted sibling.
func (uc *ManagePanesUseCase) Remove(ctx context.Context, ws *entity.Workspace, paneID entity.PaneID) (*RemovePaneOutput, error) {
	log := logging.FromContext(ctx)

	if ws == nil {
		return nil, fmt.Errorf("workspace is required")
	}
	tree := ws.Tree
	node := tree.PaneNode(paneID)
	if node == nil {
		log.Warn().Str("pane_id", string(paneID)).Msg("remove target does not exist")
		return nil, fmt.Errorf("remove target %q: %w", paneID, ErrPaneNotFound)
	}

	if node.Parent == "" {
		// Root pane: structurally immortal. An empty root stays empty.
		log.Debug().Str("pane_id", string(paneID)).Msg("root pane retained")
		return &RemovePaneOutput{Removed: false}, nil
	}

	parent := tree.Node(node.Parent)
	if parent == nil {
		log.Error().Str("pane_id", string(paneID)).Str("parent_id", string(node.Parent)).
			Msg("remove aborted: parent container missing")
		return nil, fmt.Errorf("remove %q: parent %q: %w", paneID, node.Parent, entity.ErrNodeNotFound)
	}

	sibling := tree.Sibling(node.ID)
	if sibling == nil {
		log.Error().Str("pane_id", string(paneID)).Str("parent_id", string(parent.ID)).
			Msg("remove aborted: missing sibling")
		return nil, fmt.Errorf("remove %q: %w", paneID, ErrMissingSibling)
	}

	// Promote the sibling into the parent's slot.
	grandID := parent.Parent
	if grandID == "" {
		if err := tree.SetRoot(sibling.ID); err != nil {
			return nil, err
		}
	} else {
		grand := tree.Node(grandID)
		if grand == nil {
			log.Error().Str("parent_id", string(parent.ID)).Str("grand_id", string(grandID)).
				Msg("remove aborted: grandparent missing")
			return nil, fmt.Errorf("remove %q: grandparent %q: %w", paneID, grandID, entity.ErrNodeNotFound)
		}
		switch parent.ID {
		case grand.First:
			grand.First = sibling.ID
		case grand.Second:
			grand.Second = sibling.ID
		}
		sibling.Parent = grand.ID
	}

	tree.Detach(parent.ID)
	tree.Detach(node.ID)

	out := &RemovePaneOutput{Removed: true, Promoted: sibling}

	if ws.ActivePaneID == paneID {
		if leaf := tree.FirstLeaf(sibling.ID); leaf != nil {
			ws.ActivePaneID = leaf.Pane.ID
			leaf.Pane.UpdateLastFocus()
			out.NewActivePaneID = leaf.Pane.ID
		}
	}

	log.Info().
		Str("removed_pane_id", string(paneID)).
		Str("promoted_id", string(sibling.ID)).
		Msg("pane removed, sibling promoted")

	return out, nil
}

// Focus marks the pane as the workspace's active pane.
func (uc *ManagePanesUseCase) Focus(ctx context.Context, ws *entity.Workspace, paneID entity.PaneID) error {
	log := logging.FromContext(ctx)

	node := ws.FindPane(paneID)
	if node == nil {
		log.Warn().Str("pane_id", string(paneID)).Msg("focus target does not exist")
		return fmt.Errorf("focus target %q: %w", paneID, ErrPaneNotFound)
	}
	ws.ActivePaneID = paneID
	node.Pane.UpdateLastFocus()
	return nil
}

// NavigateFocus moves activity to the nearest pane in the given direction,
// judged by the centers of the panes' last-known rectangles. Returns the
// pane that received focus, or "" when no pane lies in that direction.
func (uc *ManagePanesUseCase) NavigateFocus(
	ctx context.Context,
	ws *entity.Workspace,
	dir NavigateDirection,
	rects map[entity.NodeID]entity.Rect,
) entity.PaneID {
	log := logging.FromContext(ctx)

	current := ws.FindPane(ws.ActivePaneID)
	if current == nil {
		return ""
	}
	from, ok := rects[current.ID]
	if !ok {
		return ""
	}
	fx, fy := from.Center()

	best := entity.PaneID("")
	bestDist := math.MaxFloat64
	for _, leaf := range ws.Tree.Leaves("") {
		if leaf.ID == current.ID {
			continue
		}
		rect, ok := rects[leaf.ID]
		if !ok {
			continue
		}
		cx, cy := rect.Center()
		if !inDirection(fx, fy, cx, cy, dir) {
			continue
		}
		dist := (cx-fx)*(cx-fx) + (cy-fy)*(cy-fy)
		if dist < bestDist {
			bestDist = dist
			best = leaf.Pane.ID
		}
	}

	if best == "" {
		return ""
	}
	if err := uc.Focus(ctx, ws, best); err != nil {
		log.Warn().Err(err).Msg("navigate focus failed")
		return ""
	}
	return best
}

func inDirection(fx, fy, cx, cy float64, dir NavigateDirection) bool {
	switch dir {
	case NavLeft:
		return cx < fx
	case NavRight:
		return cx > fx
	case NavUp:
		return cy < fy
	case NavDown:
		return cy > fy
	default:
		return false
	}
}

// Resize adjusts the nearest applicable split ratio for the given
// direction. stepPercent is applied per keystroke (e.g. 5.0 means 5%);
// minPanePercent enforces a minimum size for each side of a split.
func (uc *ManagePanesUseCase) Resize(
	ctx context.Context,
	ws *entity.Workspace,
	paneID entity.PaneID,
	dir ResizeDirection,
	stepPercent float64,
	minPanePercent float64,
) error {
	log := logging.FromContext(ctx)

	if ws == nil || ws.Tree == nil {
		return ErrNothingToResize
	}
	node := ws.FindPane(paneID)
	if node == nil {
		log.Warn().Str("pane_id", string(paneID)).Msg("resize target does not exist")
		return fmt.Errorf("resize target %q: %w", paneID, ErrPaneNotFound)
	}

	actualDir := dir
	switch dir {
	case ResizeIncrease, ResizeDecrease:
		actualDir = findSmartResizeDirection(ws.Tree, node, dir == ResizeIncrease)
	}
	if actualDir == "" {
		return ErrNothingToResize
	}

	orientation, ok := orientationForResize(actualDir)
	if !ok {
		return ErrNothingToResize
	}
	splitNode := findNearestSplitForOrientation(ws.Tree, node, orientation)
	if splitNode == nil {
		return ErrNothingToResize
	}

	// Resize directions move the split divider. Ratio is the proportion
	// allocated to the first child, so moving the divider right/down
	// increases it and moving it left/up decreases it.
	delta := deltaForDividerMove(actualDir, stepPercent)

	minRatio := minPanePercent / 100.0
	maxRatio := 1.0 - minRatio
	oldRatio := splitNode.Ratio
	splitNode.Ratio = clampFloat64(splitNode.Ratio+delta, minRatio, maxRatio)

	log.Debug().
		Str("direction", string(dir)).
		Str("actual_direction", string(actualDir)).
		Float64("old_ratio", oldRatio).
		Float64("new_ratio", splitNode.Ratio).
		Msg("pane resized")

	return nil
}

// findSmartResizeDirection resolves increase/decrease into a concrete
// divider move that grows or shrinks the active pane at its nearest split.
func findSmartResizeDirection(tree *entity.Tree, node *entity.Node, growActive bool) ResizeDirection {
	splitNode, isFirstChild := findNearestSplit(tree, node)
	if splitNode == nil {
		return ""
	}

	growMeansIncreaseRatio := isFirstChild
	if !growActive {
		growMeansIncreaseRatio = !growMeansIncreaseRatio
	}

	switch splitNode.Orientation {
	case entity.OrientationRow:
		if growMeansIncreaseRatio {
			return ResizeIncreaseRight
		}
		return ResizeIncreaseLeft
	case entity.OrientationColumn:
		if growMeansIncreaseRatio {
			return ResizeIncreaseDown
		}
		return ResizeIncreaseUp
	default:
		return ""
	}
}

func findNearestSplit(tree *entity.Tree, node *entity.Node) (split *entity.Node, isFirstChild bool) {
	current := node
	for current != nil && current.Parent != "" {
		parent := tree.Node(current.Parent)
		if parent == nil {
			return nil, false
		}
		if parent.IsSplit() {
			return parent, parent.First == current.ID
		}
		current = parent
	}
	return nil, false
}

func findNearestSplitForOrientation(tree *entity.Tree, node *entity.Node, orientation entity.Orientation) *entity.Node {
	current := node
	for current != nil && current.Parent != "" {
		parent := tree.Node(current.Parent)
		if parent == nil {
			return nil
		}
		if parent.IsSplit() && parent.Orientation == orientation {
			return parent
		}
		current = parent
	}
	return nil
}

func orientationForResize(dir ResizeDirection) (entity.Orientation, bool) {
	switch dir {
	case ResizeIncreaseLeft, ResizeIncreaseRight:
		return entity.OrientationRow, true
	case ResizeIncreaseUp, ResizeIncreaseDown:
		return entity.OrientationColumn, true
	default:
		return entity.OrientationNone, false
	}
}

func deltaForDividerMove(dir ResizeDirection, stepPercent float64) float64 {
	if stepPercent < 0 {
		stepPercent = -stepPercent
	}
	delta := stepPercent / 100.0

	switch dir {
	case ResizeIncreaseRight, ResizeIncreaseDown:
		return delta
	case ResizeIncreaseLeft, ResizeIncreaseUp:
		return -delta
	default:
		return 0
	}
}

func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
