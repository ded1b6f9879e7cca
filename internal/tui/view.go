package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/ui/coordinator"
	"github.com/ouvrier/plume/internal/ui/layout"
)

var (
	borderStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	activeBorderStyle = borderStyle.BorderForeground(lipgloss.Color("39"))
	dropBorderStyle   = borderStyle.BorderForeground(lipgloss.Color("213"))

	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))
	statusErrStyle = statusStyle.Foreground(lipgloss.Color("203"))

	emptyPaneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting plume..."
	}

	pw, vw := m.gridWidths()
	gh := m.height - statusBarHeight
	if gh < 1 {
		return m.renderStatusBar()
	}

	main := m.renderGrid(m.shell.Primary(), pw, gh)
	if m.previewOpen && vw > 0 {
		preview := m.renderGrid(m.shell.Preview(), vw, gh)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, preview)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

// renderGrid walks the grid's split tree and composes pane boxes with joins
// matching each container's orientation.
func (m *Model) renderGrid(grid *coordinator.WorkspaceCoordinator, w, h int) string {
	tree := grid.Workspace().Tree
	return m.renderNode(grid, tree.Root(), w, h)
}

func (m *Model) renderNode(grid *coordinator.WorkspaceCoordinator, node *entity.Node, w, h int) string {
	if node == nil {
		return ""
	}
	if node.IsLeaf() {
		return m.renderPane(grid, node.Pane, w, h)
	}

	tree := grid.Workspace().Tree
	ratio := node.Ratio
	if ratio <= 0 || ratio >= 1 {
		ratio = entity.DefaultSplitRatio
	}

	if node.Orientation == entity.OrientationRow {
		fw := clampCells(int(math.Round(float64(w)*ratio)), 1, w-1)
		first := m.renderNode(grid, tree.Node(node.First), fw, h)
		second := m.renderNode(grid, tree.Node(node.Second), w-fw, h)
		return lipgloss.JoinHorizontal(lipgloss.Top, first, second)
	}

	fh := clampCells(int(math.Round(float64(h)*ratio)), 1, h-1)
	first := m.renderNode(grid, tree.Node(node.First), w, fh)
	second := m.renderNode(grid, tree.Node(node.Second), w, h-fh)
	return lipgloss.JoinVertical(lipgloss.Left, first, second)
}

func (m *Model) renderPane(grid *coordinator.WorkspaceCoordinator, pane *entity.Pane, w, h int) string {
	style := borderStyle
	if m.overlay != nil && m.overlay.grid == grid && m.overlay.pane == pane.ID {
		style = dropBorderStyle
	} else if grid == m.activeGrid() && grid.Workspace().ActivePaneID == pane.ID {
		style = activeBorderStyle
	}

	innerW := w - 2
	innerH := h - 2
	if innerW < 1 || innerH < 1 {
		return style.Width(maxInt(innerW, 0)).Height(maxInt(innerH, 0)).Render("")
	}

	tabs := m.renderTabLine(grid, pane.ID, innerW)

	var content string
	switch {
	case pane.IsEmpty():
		content = emptyPaneStyle.Render("no document")
	default:
		if editor, ok := grid.View(pane.ID).(*Editor); ok && editor != nil {
			editor.Resize(innerW, innerH-1)
			content = editor.Render()
		}
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, tabs, content)
	return style.Width(innerW).Height(innerH).Render(inner)
}

// tabSpan is one document tab's horizontal extent within a pane's tab strip,
// shared between rendering and mouse hit-testing.
type tabSpan struct {
	id     entity.DocumentID
	label  string
	start  int
	end    int
	active bool
	dirty  bool
}

// tabSpans lays out the tab strip for a pane into at most maxWidth cells.
func tabSpans(grid *coordinator.WorkspaceCoordinator, paneID entity.PaneID, maxWidth int) []tabSpan {
	var spans []tabSpan
	x := 0
	for _, tab := range grid.Tabs(paneID) {
		label := " " + tab.Title
		if tab.Dirty {
			label += "*"
		}
		label += " "
		width := lipgloss.Width(label)
		if x+width > maxWidth {
			break
		}
		spans = append(spans, tabSpan{
			id:     tab.ID,
			label:  label,
			start:  x,
			end:    x + width,
			active: tab.Active,
			dirty:  tab.Dirty,
		})
		x += width
	}
	return spans
}

func (m *Model) renderTabLine(grid *coordinator.WorkspaceCoordinator, paneID entity.PaneID, width int) string {
	var b strings.Builder
	for _, span := range tabSpans(grid, paneID, width) {
		if span.active {
			b.WriteString(activeTabStyle.Render(span.label))
		} else {
			b.WriteString(tabStyle.Render(span.label))
		}
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(b.String())
}

func (m *Model) renderStatusBar() string {
	if m.prompting {
		return statusStyle.Width(m.width).Render(m.prompt.View())
	}

	left := m.statusLine()
	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	return style.Width(m.width).Render(left)
}

// statusLine names the active document, or shows the transient message and
// drop hint when one is pending.
func (m *Model) statusLine() string {
	if m.overlay != nil {
		return " " + dropHint(m.overlay.zone)
	}
	if m.status != "" {
		return " " + m.status
	}

	pane := m.shell.Layout().ActivePane()
	if pane == nil || pane.ActiveDocumentID == "" {
		return " no document"
	}
	doc := m.shell.Documents().Get(pane.ActiveDocumentID)
	if doc == nil {
		return " " + pane.ActiveDocumentID.DisplayName()
	}
	line := " " + doc.DisplayName
	if doc.Dirty {
		line += " [+]"
	}
	return line
}

func dropHint(zone layout.DropZone) string {
	switch zone {
	case layout.DropZoneCenter:
		return "drop: move into pane"
	case layout.DropZoneLeft:
		return "drop: split left"
	case layout.DropZoneRight:
		return "drop: split right"
	case layout.DropZoneTop:
		return "drop: split top"
	case layout.DropZoneBottom:
		return "drop: split bottom"
	}
	return ""
}

func clampCells(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
