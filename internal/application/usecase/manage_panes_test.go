package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ouvrier/plume/internal/domain/entity"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestWorkspace() *entity.Workspace {
	pane := entity.NewPane("pane1")
	return entity.NewWorkspace("ws1", "main", pane)
}

func TestManagePanesUseCase_Split_EdgeSemantics(t *testing.T) {
	tests := []struct {
		name         string
		edge         Edge
		wantOrient   entity.Orientation
		wantNewFirst bool
	}{
		{name: "right places new pane second in a row", edge: EdgeRight, wantOrient: entity.OrientationRow, wantNewFirst: false},
		{name: "left places new pane first in a row", edge: EdgeLeft, wantOrient: entity.OrientationRow, wantNewFirst: true},
		{name: "bottom places new pane second in a column", edge: EdgeBottom, wantOrient: entity.OrientationColumn, wantNewFirst: false},
		{name: "top places new pane first in a column", edge: EdgeTop, wantOrient: entity.OrientationColumn, wantNewFirst: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewManagePanesUseCase(sequentialIDs("id"))
			ws := newTestWorkspace()
			ctx := context.Background()

			out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: tt.edge})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			container := out.ContainerNode
			if container.Orientation != tt.wantOrient {
				t.Errorf("orientation = %v, want %v", container.Orientation, tt.wantOrient)
			}
			if got, want := container.Ratio, entity.DefaultSplitRatio; got != want {
				t.Errorf("ratio = %v, want %v", got, want)
			}
			if ws.Tree.RootID() != container.ID {
				t.Errorf("root = %q, want container %q", ws.Tree.RootID(), container.ID)
			}

			newID, targetID := container.First, container.Second
			if !tt.wantNewFirst {
				newID, targetID = container.Second, container.First
			}
			if newID != out.NewLeaf.ID {
				t.Errorf("new leaf at wrong slot: got %q want %q", newID, out.NewLeaf.ID)
			}
			if targetID != entity.NodeID("pane1") {
				t.Errorf("target at wrong slot: got %q", targetID)
			}

			if err := ws.Tree.Validate(); err != nil {
				t.Errorf("tree invalid after split: %v", err)
			}
			if got := ws.PaneCount(); got != 2 {
				t.Errorf("pane count = %d, want 2", got)
			}
		})
	}
}

func TestManagePanesUseCase_Split_NestedReplacesParentSlot(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	first, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("first split: %v", err)
	}
	second, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: first.NewPane.ID, Edge: EdgeBottom})
	if err != nil {
		t.Fatalf("second split: %v", err)
	}

	// Outer row keeps pane1 first; its second slot is now the inner column.
	outer := ws.Tree.Root()
	if outer.First != entity.NodeID("pane1") {
		t.Errorf("outer first = %q, want pane1", outer.First)
	}
	if outer.Second != second.ContainerNode.ID {
		t.Errorf("outer second = %q, want inner container %q", outer.Second, second.ContainerNode.ID)
	}
	if second.ContainerNode.Parent != outer.ID {
		t.Errorf("inner parent = %q, want %q", second.ContainerNode.Parent, outer.ID)
	}
	if err := ws.Tree.Validate(); err != nil {
		t.Fatalf("tree invalid: %v", err)
	}
	if got := ws.PaneCount(); got != 3 {
		t.Errorf("pane count = %d, want 3", got)
	}
}

func TestManagePanesUseCase_Split_MissingTarget(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()

	_, err := uc.Split(context.Background(), SplitPaneInput{Workspace: ws, TargetPaneID: "ghost", Edge: EdgeRight})
	if !errors.Is(err, ErrPaneNotFound) {
		t.Fatalf("err = %v, want ErrPaneNotFound", err)
	}
	if got := ws.PaneCount(); got != 1 {
		t.Errorf("pane count changed on failed split: %d", got)
	}
}

func TestManagePanesUseCase_Split_InvalidEdge(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()

	_, err := uc.Split(context.Background(), SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: "diagonal"})
	if !errors.Is(err, ErrInvalidEdge) {
		t.Fatalf("err = %v, want ErrInvalidEdge", err)
	}
}

func TestManagePanesUseCase_Remove_PromotesSibling(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	removed, err := uc.Remove(ctx, ws, out.NewPane.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed.Removed {
		t.Fatal("expected pane to be removed")
	}

	// Split then remove restores the original single-leaf shape.
	if ws.Tree.RootID() != entity.NodeID("pane1") {
		t.Errorf("root = %q, want pane1", ws.Tree.RootID())
	}
	if got := ws.PaneCount(); got != 1 {
		t.Errorf("pane count = %d, want 1", got)
	}
	if err := ws.Tree.Validate(); err != nil {
		t.Errorf("tree invalid after remove: %v", err)
	}
}

func TestManagePanesUseCase_Remove_UnderGrandparent(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	first, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("first split: %v", err)
	}
	second, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: first.NewPane.ID, Edge: EdgeBottom})
	if err != nil {
		t.Fatalf("second split: %v", err)
	}

	// Remove the bottom of the inner column; its sibling takes the inner
	// container's slot in the outer row.
	if _, err := uc.Remove(ctx, ws, second.NewPane.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	outer := ws.Tree.Root()
	if outer.Second != entity.NodeID(first.NewPane.ID) {
		t.Errorf("outer second = %q, want promoted leaf %q", outer.Second, first.NewPane.ID)
	}
	promoted := ws.Tree.Node(outer.Second)
	if promoted.Parent != outer.ID {
		t.Errorf("promoted parent = %q, want %q", promoted.Parent, outer.ID)
	}
	if err := ws.Tree.Validate(); err != nil {
		t.Fatalf("tree invalid: %v", err)
	}
	if got := ws.PaneCount(); got != 2 {
		t.Errorf("pane count = %d, want 2", got)
	}
}

func TestManagePanesUseCase_Remove_RootPaneIsRetained(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()

	out, err := uc.Remove(context.Background(), ws, "pane1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out.Removed {
		t.Fatal("sole root pane must never be structurally removed")
	}
	if got := ws.PaneCount(); got != 1 {
		t.Errorf("pane count = %d, want 1", got)
	}
}

func TestManagePanesUseCase_Remove_ReassignsActive(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if err := uc.Focus(ctx, ws, out.NewPane.ID); err != nil {
		t.Fatalf("focus: %v", err)
	}

	removed, err := uc.Remove(ctx, ws, out.NewPane.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.NewActivePaneID != "pane1" {
		t.Errorf("new active = %q, want pane1", removed.NewActivePaneID)
	}
	if ws.ActivePaneID != "pane1" {
		t.Errorf("workspace active = %q, want pane1", ws.ActivePaneID)
	}
}

func TestManagePanesUseCase_Remove_InactivePaneKeepsActive(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	// pane1 is still active; removing the other pane must not move activity.
	if _, err := uc.Remove(ctx, ws, out.NewPane.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ws.ActivePaneID != "pane1" {
		t.Errorf("active = %q, want pane1", ws.ActivePaneID)
	}
}

func TestManagePanesUseCase_NavigateFocus(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	rects := map[entity.NodeID]entity.Rect{
		"pane1":                       {X: 0, Y: 0, W: 50, H: 100},
		entity.NodeID(out.NewPane.ID): {X: 50, Y: 0, W: 50, H: 100},
	}

	if got := uc.NavigateFocus(ctx, ws, NavRight, rects); got != out.NewPane.ID {
		t.Errorf("navigate right = %q, want %q", got, out.NewPane.ID)
	}
	if ws.ActivePaneID != out.NewPane.ID {
		t.Errorf("active = %q, want %q", ws.ActivePaneID, out.NewPane.ID)
	}
	if got := uc.NavigateFocus(ctx, ws, NavLeft, rects); got != "pane1" {
		t.Errorf("navigate left = %q, want pane1", got)
	}
	// No pane above: focus stays put.
	if got := uc.NavigateFocus(ctx, ws, NavUp, rects); got != "" {
		t.Errorf("navigate up = %q, want no-op", got)
	}
	if ws.ActivePaneID != "pane1" {
		t.Errorf("active = %q, want pane1", ws.ActivePaneID)
	}
}

func TestManagePanesUseCase_Resize_DividerMove(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeBottom})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	container := out.ContainerNode

	// Moving the divider down grows the first child.
	if err := uc.Resize(ctx, ws, out.NewPane.ID, ResizeIncreaseDown, 5.0, 10.0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got, want := container.Ratio, 0.55; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
	if err := uc.Resize(ctx, ws, out.NewPane.ID, ResizeIncreaseUp, 5.0, 10.0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got, want := container.Ratio, 0.5; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestManagePanesUseCase_Resize_SmartGrowsActivePane(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeBottom})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	container := out.ContainerNode

	// The new pane is the second child; growing it shrinks the ratio.
	if err := uc.Resize(ctx, ws, out.NewPane.ID, ResizeIncrease, 5.0, 10.0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got, want := container.Ratio, 0.45; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
	if err := uc.Resize(ctx, ws, out.NewPane.ID, ResizeDecrease, 5.0, 10.0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got, want := container.Ratio, 0.5; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestManagePanesUseCase_Resize_ClampsToMinPanePercent(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	out, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	out.ContainerNode.Ratio = 0.9

	// maxRatio = 1 - minPanePercent/100 = 0.9; the move is a no-op.
	if err := uc.Resize(ctx, ws, "pane1", ResizeIncreaseRight, 5.0, 10.0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got, want := out.ContainerNode.Ratio, 0.9; got != want {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestManagePanesUseCase_Resize_SingleLeafHasNothingToResize(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()

	err := uc.Resize(context.Background(), ws, "pane1", ResizeIncrease, 5.0, 10.0)
	if !errors.Is(err, ErrNothingToResize) {
		t.Fatalf("err = %v, want ErrNothingToResize", err)
	}
}

func TestManagePanesUseCase_Resize_WrongOrientationFallsThrough(t *testing.T) {
	uc := NewManagePanesUseCase(sequentialIDs("id"))
	ws := newTestWorkspace()
	ctx := context.Background()

	// Only a row split exists; a vertical divider move has no target.
	if _, err := uc.Split(ctx, SplitPaneInput{Workspace: ws, TargetPaneID: "pane1", Edge: EdgeRight}); err != nil {
		t.Fatalf("split: %v", err)
	}
	err := uc.Resize(ctx, ws, "pane1", ResizeIncreaseDown, 5.0, 10.0)
	if !errors.Is(err, ErrNothingToResize) {
		t.Fatalf("err = %v, want ErrNothingToResize", err)
	}
}
