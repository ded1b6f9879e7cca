package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/ui/coordinator"
)

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		m.handlePress(msg.X, msg.Y)
	case tea.MouseMotion:
		m.handleMotion(msg.X, msg.Y)
	case tea.MouseRelease:
		m.handleRelease(msg.X, msg.Y)
	}
	return m, nil
}

func (m *Model) handlePress(x, y int) {
	grid, lx, ly, ok := m.gridAt(x, y)
	if !ok {
		return
	}

	if paneID, docID, hit := m.tabAt(grid, lx, ly); hit {
		m.drag = dragState{
			pressed: true,
			grid:    grid,
			paneID:  paneID,
			docID:   docID,
			startX:  x,
			startY:  y,
		}
		return
	}

	if node := grid.PaneAt(float64(lx), float64(ly)); node != nil {
		_ = grid.SetActivePane(m.ctx, node.Pane.ID)
	}
}

func (m *Model) handleMotion(x, y int) {
	if !m.drag.pressed {
		return
	}

	if !m.drag.started {
		if x == m.drag.startX && y == m.drag.startY {
			return
		}
		err := m.shell.Drag().StartDrag(m.ctx, m.drag.grid, m.drag.paneID, m.drag.docID)
		if err != nil {
			m.drag = dragState{}
			return
		}
		m.drag.started = true
	}

	m.overlay = nil
	if grid, lx, ly, ok := m.gridAt(x, y); ok {
		zone, rect, hit := m.shell.Drag().DragOver(grid, float64(lx), float64(ly))
		if hit {
			node := grid.PaneAt(float64(lx), float64(ly))
			if node != nil {
				m.overlay = &dropOverlay{grid: grid, pane: node.Pane.ID, zone: zone, rect: rect}
			}
		}
	}
}

func (m *Model) handleRelease(x, y int) {
	drag := m.drag
	m.drag = dragState{}
	m.overlay = nil

	if !drag.pressed {
		return
	}

	if !drag.started {
		// Never moved: a plain click on the tab switches to that document.
		if err := drag.grid.SwitchDocument(m.ctx, drag.paneID, drag.docID); err == nil {
			_ = drag.grid.SetActivePane(m.ctx, drag.paneID)
		}
		return
	}

	grid, lx, ly, ok := m.gridAt(x, y)
	if !ok {
		// Released off every surface: the drag is abandoned.
		m.shell.Drag().CancelDrag()
		return
	}
	if err := m.shell.Drag().Drop(m.ctx, grid, float64(lx), float64(ly)); err != nil {
		m.setStatus(err.Error(), true)
	}
}

// tabAt reports the document tab under a grid-local position, if any.
func (m *Model) tabAt(grid *coordinator.WorkspaceCoordinator, lx, ly int) (entity.PaneID, entity.DocumentID, bool) {
	rects := grid.Rects()
	ws := grid.Workspace()
	for _, pane := range ws.AllPanes() {
		rect, found := rects[entity.NodeID(pane.ID)]
		if !found {
			continue
		}
		px, py, pw, _ := cellRect(rect)
		if ly != py+1 {
			continue
		}
		spans := tabSpans(grid, pane.ID, pw-2)
		for _, span := range spans {
			if lx >= px+1+span.start && lx < px+1+span.end {
				return pane.ID, span.id, true
			}
		}
	}
	return "", "", false
}

// cellRect converts a float layout rectangle to whole terminal cells. Edges
// are rounded so adjacent panes keep tiling without gaps.
func cellRect(r entity.Rect) (x, y, w, h int) {
	x = int(math.Round(r.X))
	y = int(math.Round(r.Y))
	w = int(math.Round(r.X+r.W)) - x
	h = int(math.Round(r.Y+r.H)) - y
	return x, y, w, h
}
