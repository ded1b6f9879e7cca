// Package tui renders the editor shell in the terminal with bubbletea. It
// owns the translation between terminal cells and the layout engine's
// geometry, and routes key and mouse input to the pane grids.
package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouvrier/plume/internal/application/port"
)

// Editor wraps a bubbles textarea behind the port.EditorView contract. The
// coordinator swaps content in and out as the pane's active document changes;
// the model routes key events here and sizes the textarea during rendering.
type Editor struct {
	area      textarea.Model
	onChange  func(string)
	destroyed bool
}

// NewEditor creates an editor pre-filled with initial content.
func NewEditor(initial string) *Editor {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetValue(initial)
	return &Editor{area: ta}
}

// Update forwards a message to the underlying textarea and fires the change
// callback when the edit actually altered the content.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if e.destroyed {
		return nil
	}
	before := e.area.Value()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	if after := e.area.Value(); after != before && e.onChange != nil {
		e.onChange(after)
	}
	return cmd
}

// Resize fits the textarea to the pane's content box.
func (e *Editor) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	e.area.SetWidth(width)
	e.area.SetHeight(height)
}

// Render returns the textarea's current frame.
func (e *Editor) Render() string {
	return e.area.View()
}

func (e *Editor) SetContent(text string) {
	// Programmatic replacement, not a user edit: no change notification.
	e.area.SetValue(text)
}

func (e *Editor) GetContent() string {
	return e.area.Value()
}

func (e *Editor) Focus() {
	e.area.Focus()
}

func (e *Editor) Blur() {
	e.area.Blur()
}

// RequestRemeasure is a no-op for terminal views; the textarea is re-fitted
// from pane geometry on every frame.
func (e *Editor) RequestRemeasure() {}

func (e *Editor) Destroy() {
	e.destroyed = true
	e.onChange = nil
}

func (e *Editor) OnChange(fn func(content string)) {
	e.onChange = fn
}

// EditorFactory creates textarea-backed views.
type EditorFactory struct{}

// NewFactory returns a factory producing terminal editor views.
func NewFactory() *EditorFactory {
	return &EditorFactory{}
}

func (f *EditorFactory) NewView(initial string) port.EditorView {
	return NewEditor(initial)
}
