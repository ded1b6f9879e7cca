package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/infrastructure/config"
	"github.com/ouvrier/plume/internal/logging"
	"github.com/ouvrier/plume/internal/ui/coordinator"
	"github.com/ouvrier/plume/internal/ui/layout"
)

const statusBarHeight = 1

// previewRatio is the share of the terminal width given to the preview grid
// when it is open.
const previewRatio = 0.4

// minPaneCells keeps a grid from collapsing below a usable width.
const minPaneCells = 10

// dragState tracks an in-flight tab drag. A press arms it; the first motion
// promotes it to a real drag session, so a plain click still switches tabs.
type dragState struct {
	pressed bool
	started bool
	grid    *coordinator.WorkspaceCoordinator
	paneID  entity.PaneID
	docID   entity.DocumentID
	startX  int
	startY  int
}

// dropOverlay is the zone highlight for the pane currently under a drag.
type dropOverlay struct {
	grid *coordinator.WorkspaceCoordinator
	pane entity.PaneID
	zone layout.DropZone
	rect entity.Rect
}

// Model is the bubbletea root model. It owns terminal geometry and input
// routing; all layout and document state lives in the shell.
type Model struct {
	ctx   context.Context
	shell *coordinator.Shell
	cfg   config.Config
	keys  keyMap

	width  int
	height int

	previewOpen bool

	status    string
	statusErr bool
	statusSeq int

	prompt    textinput.Model
	prompting bool

	drag    dragState
	overlay *dropOverlay
}

// NewModel builds the root model around an assembled shell. Paths given on
// the command line are opened in the primary grid before the first frame.
func NewModel(ctx context.Context, shell *coordinator.Shell, cfg config.Config, paths []string) *Model {
	prompt := textinput.New()
	prompt.Prompt = "open: "
	prompt.CharLimit = 0

	m := &Model{
		ctx:         ctx,
		shell:       shell,
		cfg:         cfg,
		keys:        defaultKeyMap(),
		prompt:      prompt,
		previewOpen: cfg.Layout.PreviewEnabled,
	}

	for _, p := range paths {
		if err := shell.OpenInActive(ctx, entity.DocumentID(p)); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("path", p).Msg("failed to open document")
			m.setStatus("could not open "+p, true)
		}
	}
	return m
}

// Init enables mouse tracking so tab drags work, and starts the autosave
// timer when configured.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if m.cfg.Editor.Autosave && m.cfg.Editor.AutosaveInterval > 0 {
		cmds = append(cmds, m.autosaveTickCmd())
	}
	return tea.Batch(cmds...)
}

// applyBounds pushes the current terminal geometry into both grids. Grid
// bounds are local; screen offsets are applied only when translating mouse
// coordinates.
func (m *Model) applyBounds() {
	pw, vw := m.gridWidths()
	gh := m.height - statusBarHeight
	if gh < 0 {
		gh = 0
	}
	m.shell.Primary().SetBounds(m.ctx, entity.Rect{W: float64(pw), H: float64(gh)})
	m.shell.Preview().SetBounds(m.ctx, entity.Rect{W: float64(vw), H: float64(gh)})
}

// gridWidths returns the terminal columns allotted to the primary and
// preview grids. The preview gets zero columns while hidden.
func (m *Model) gridWidths() (primary, preview int) {
	if !m.previewOpen {
		return m.width, 0
	}
	preview = int(float64(m.width) * previewRatio)
	if preview < minPaneCells {
		preview = minPaneCells
	}
	if preview > m.width {
		preview = m.width
	}
	return m.width - preview, preview
}

// gridAt resolves a screen position to the grid under it and the position in
// that grid's local coordinates.
func (m *Model) gridAt(x, y int) (grid *coordinator.WorkspaceCoordinator, lx, ly int, ok bool) {
	gh := m.height - statusBarHeight
	if y < 0 || y >= gh {
		return nil, 0, 0, false
	}
	pw, _ := m.gridWidths()
	if x < pw {
		return m.shell.Primary(), x, y, true
	}
	if m.previewOpen && x < m.width {
		return m.shell.Preview(), x - pw, y, true
	}
	return nil, 0, 0, false
}

// gridOriginX returns the screen column where the given grid starts.
func (m *Model) gridOriginX(grid *coordinator.WorkspaceCoordinator) int {
	if grid == m.shell.Preview() {
		pw, _ := m.gridWidths()
		return pw
	}
	return 0
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
}

func (m *Model) activeGrid() *coordinator.WorkspaceCoordinator {
	return m.shell.Layout().ActiveManager()
}

func (m *Model) activeEditor() *Editor {
	view := m.shell.Layout().ActiveView()
	if view == nil {
		return nil
	}
	editor, ok := view.(*Editor)
	if !ok {
		return nil
	}
	return editor
}
