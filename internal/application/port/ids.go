package port

// IDGenerator produces unique node/pane identifiers. Injected so tests can
// use deterministic sequences.
type IDGenerator func() string
