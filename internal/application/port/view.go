package port

// EditorView is the opaque handle to one pane's editable text surface. The
// layout engine never inspects view internals; it only swaps content in and
// out as the pane's active document changes.
type EditorView interface {
	// SetContent replaces the visible text.
	SetContent(text string)

	// GetContent returns the current visible text.
	GetContent() string

	// Focus gives the view input focus.
	Focus()

	// Blur removes input focus from the view.
	Blur()

	// RequestRemeasure asks the view to re-measure itself. Views can
	// mis-measure after being reparented, so this is called on every
	// surviving view after structural tree surgery.
	RequestRemeasure()

	// Destroy releases the view's resources. The handle must not be used
	// afterwards.
	Destroy()

	// OnChange registers the change notification used to mark the document
	// dirty and refresh tab titles. Only one callback is kept.
	OnChange(fn func(content string))
}

// ViewFactory creates editor views. Injected at construction so headless
// tests can supply stub views; absence of a real view implementation is a
// configuration decision, not a runtime check.
type ViewFactory interface {
	// NewView creates a view with the given initial content.
	NewView(initial string) EditorView
}

// ViewFactoryFunc adapts a function to the ViewFactory interface.
type ViewFactoryFunc func(initial string) EditorView

// NewView implements ViewFactory.
func (f ViewFactoryFunc) NewView(initial string) EditorView {
	return f(initial)
}
