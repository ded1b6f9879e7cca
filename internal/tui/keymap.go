package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the shell-level bindings. Anything not matched here falls
// through to the focused editor.
type keyMap struct {
	Quit       key.Binding
	Save       key.Binding
	SaveAll    key.Binding
	NewDoc     key.Binding
	OpenDoc    key.Binding
	CloseDoc   key.Binding
	ClosePane  key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	SplitLeft  key.Binding
	SplitRight key.Binding
	SplitUp    key.Binding
	SplitDown  key.Binding
	NavLeft    key.Binding
	NavRight   key.Binding
	NavUp      key.Binding
	NavDown    key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Preview    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAll:    key.NewBinding(key.WithKeys("alt+S"), key.WithHelp("alt+S", "save all")),
		NewDoc:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new document")),
		OpenDoc:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open document")),
		CloseDoc:   key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close document")),
		ClosePane:  key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "close pane")),
		NextTab:    key.NewBinding(key.WithKeys("alt+]"), key.WithHelp("alt+]", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("alt+["), key.WithHelp("alt+[", "previous tab")),
		SplitLeft:  key.NewBinding(key.WithKeys("alt+H"), key.WithHelp("alt+H", "split left")),
		SplitRight: key.NewBinding(key.WithKeys("alt+L"), key.WithHelp("alt+L", "split right")),
		SplitUp:    key.NewBinding(key.WithKeys("alt+K"), key.WithHelp("alt+K", "split up")),
		SplitDown:  key.NewBinding(key.WithKeys("alt+J"), key.WithHelp("alt+J", "split down")),
		NavLeft:    key.NewBinding(key.WithKeys("alt+h", "alt+left"), key.WithHelp("alt+h", "focus left")),
		NavRight:   key.NewBinding(key.WithKeys("alt+l", "alt+right"), key.WithHelp("alt+l", "focus right")),
		NavUp:      key.NewBinding(key.WithKeys("alt+k", "alt+up"), key.WithHelp("alt+k", "focus up")),
		NavDown:    key.NewBinding(key.WithKeys("alt+j", "alt+down"), key.WithHelp("alt+j", "focus down")),
		Grow:       key.NewBinding(key.WithKeys("alt+=", "alt++"), key.WithHelp("alt+=", "grow pane")),
		Shrink:     key.NewBinding(key.WithKeys("alt+-"), key.WithHelp("alt+-", "shrink pane")),
		Preview:    key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "toggle preview")),
	}
}
