package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouvrier/plume/internal/application/usecase"
	"github.com/ouvrier/plume/internal/domain/entity"
	"github.com/ouvrier/plume/internal/logging"
	"github.com/ouvrier/plume/internal/ui/coordinator"
)

// saveDoneMsg reports a completed save command.
type saveDoneMsg struct {
	all bool
	err error
}

// statusExpiredMsg clears the status line when it is stale.
type statusExpiredMsg struct {
	seq int
}

// autosaveTickMsg fires on the configured autosave interval.
type autosaveTickMsg struct{}

// docLoadedMsg carries a finished document load back onto the event loop.
// The open is applied only then, so the target pane is re-validated after
// the I/O gap.
type docLoadedMsg struct {
	grid    *coordinator.WorkspaceCoordinator
	paneID  entity.PaneID
	id      entity.DocumentID
	content string
	err     error
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyBounds()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case saveDoneMsg:
		if msg.err != nil {
			m.setStatus("save failed: "+msg.err.Error(), true)
			logging.FromContext(m.ctx).Error().Err(msg.err).Msg("save failed")
		} else if msg.all {
			m.setStatus("all documents saved", false)
		} else {
			m.setStatus("saved", false)
		}
		return m, m.expireStatusCmd()

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case autosaveTickMsg:
		return m, tea.Batch(m.saveAllQuietCmd(), m.autosaveTickCmd())

	case docLoadedMsg:
		if msg.err != nil {
			m.setStatus("could not open "+string(msg.id), true)
			return m, m.expireStatusCmd()
		}
		// The pane may have been removed while the load was in flight;
		// ApplyOpen drops the open in that case.
		if err := msg.grid.ApplyOpen(m.ctx, msg.paneID, msg.id, msg.content); err == nil {
			m.shell.NoteOpened(m.ctx, msg.id)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Save):
		return m, m.saveCmd(false)

	case key.Matches(msg, keys.SaveAll):
		return m, m.saveCmd(true)

	case key.Matches(msg, keys.NewDoc):
		if _, err := m.shell.NewUntitledInActive(m.ctx); err != nil {
			m.setStatus(err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, keys.OpenDoc):
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case key.Matches(msg, keys.CloseDoc):
		m.closeActiveDocument()
		return m, nil

	case key.Matches(msg, keys.ClosePane):
		m.closeActivePane()
		return m, nil

	case key.Matches(msg, keys.NextTab):
		m.cycleTab(1)
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		m.cycleTab(-1)
		return m, nil

	case key.Matches(msg, keys.SplitLeft):
		m.splitActive(usecase.EdgeLeft)
		return m, nil

	case key.Matches(msg, keys.SplitRight):
		m.splitActive(usecase.EdgeRight)
		return m, nil

	case key.Matches(msg, keys.SplitUp):
		m.splitActive(usecase.EdgeTop)
		return m, nil

	case key.Matches(msg, keys.SplitDown):
		m.splitActive(usecase.EdgeBottom)
		return m, nil

	case key.Matches(msg, keys.NavLeft):
		m.activeGrid().NavigateFocus(m.ctx, usecase.NavLeft)
		return m, nil

	case key.Matches(msg, keys.NavRight):
		m.activeGrid().NavigateFocus(m.ctx, usecase.NavRight)
		return m, nil

	case key.Matches(msg, keys.NavUp):
		m.activeGrid().NavigateFocus(m.ctx, usecase.NavUp)
		return m, nil

	case key.Matches(msg, keys.NavDown):
		m.activeGrid().NavigateFocus(m.ctx, usecase.NavDown)
		return m, nil

	case key.Matches(msg, keys.Grow):
		m.resizeActive(usecase.ResizeIncrease)
		return m, nil

	case key.Matches(msg, keys.Shrink):
		m.resizeActive(usecase.ResizeDecrease)
		return m, nil

	case key.Matches(msg, keys.Preview):
		m.togglePreview()
		return m, nil
	}

	if editor := m.activeEditor(); editor != nil {
		return m, editor.Update(msg)
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case tea.KeyEnter:
		path := m.prompt.Value()
		m.prompting = false
		m.prompt.Blur()
		if path == "" {
			return m, nil
		}
		return m, m.openCmd(entity.DocumentID(path))
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) splitActive(edge usecase.Edge) {
	grid := m.activeGrid()
	paneID := grid.Workspace().ActivePaneID
	newID, err := grid.SplitPane(m.ctx, paneID, edge)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	_ = grid.SetActivePane(m.ctx, newID)
}

func (m *Model) resizeActive(dir usecase.ResizeDirection) {
	grid := m.activeGrid()
	paneID := grid.Workspace().ActivePaneID
	err := grid.ResizePane(m.ctx, paneID, dir,
		m.cfg.Layout.ResizeStepPercent, m.cfg.Layout.MinPanePercent)
	if err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) closeActiveDocument() {
	grid := m.activeGrid()
	pane := grid.Workspace().ActivePane()
	if pane == nil || pane.ActiveDocumentID == "" {
		return
	}
	if err := grid.CloseDocument(m.ctx, pane.ID, pane.ActiveDocumentID, false); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) closeActivePane() {
	grid := m.activeGrid()
	if err := grid.RemovePane(m.ctx, grid.Workspace().ActivePaneID); err != nil {
		m.setStatus(err.Error(), true)
	}
}

// cycleTab switches the active pane's document by offset within its strip.
func (m *Model) cycleTab(offset int) {
	grid := m.activeGrid()
	pane := grid.Workspace().ActivePane()
	if pane == nil || len(pane.DocumentIDs) < 2 {
		return
	}
	current := 0
	for i, id := range pane.DocumentIDs {
		if id == pane.ActiveDocumentID {
			current = i
			break
		}
	}
	n := len(pane.DocumentIDs)
	next := pane.DocumentIDs[((current+offset)%n+n)%n]
	if err := grid.SwitchDocument(m.ctx, pane.ID, next); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) togglePreview() {
	m.previewOpen = !m.previewOpen
	m.applyBounds()
	if !m.previewOpen {
		// Focus falls back to the primary grid when the preview hides.
		primary := m.shell.Primary()
		_ = primary.SetActivePane(m.ctx, primary.Workspace().ActivePaneID)
	}
}

func (m *Model) saveCmd(all bool) tea.Cmd {
	ctx, shell := m.ctx, m.shell
	return func() tea.Msg {
		var err error
		if all {
			err = shell.SaveAll(ctx)
		} else {
			err = shell.SaveActive(ctx)
		}
		return saveDoneMsg{all: all, err: err}
	}
}

// openCmd loads a document off the event loop and applies the open when the
// content arrives.
func (m *Model) openCmd(id entity.DocumentID) tea.Cmd {
	ctx, docs := m.ctx, m.shell.Documents()
	grid := m.activeGrid()
	paneID := grid.Workspace().ActivePaneID
	return func() tea.Msg {
		content, err := docs.LoadContent(ctx, id)
		return docLoadedMsg{grid: grid, paneID: paneID, id: id, content: content, err: err}
	}
}

// saveAllQuietCmd persists dirty documents without touching the status line
// unless something failed.
func (m *Model) saveAllQuietCmd() tea.Cmd {
	ctx, shell := m.ctx, m.shell
	return func() tea.Msg {
		if err := shell.SaveAll(ctx); err != nil {
			return saveDoneMsg{all: true, err: err}
		}
		return nil
	}
}

func (m *Model) autosaveTickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Editor.AutosaveInterval, func(time.Time) tea.Msg {
		return autosaveTickMsg{}
	})
}

func (m *Model) expireStatusCmd() tea.Cmd {
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
