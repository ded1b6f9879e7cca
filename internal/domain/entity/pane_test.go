package entity

import "testing"

func TestPane_AppendDocument(t *testing.T) {
	p := NewPane("pane1")

	if !p.AppendDocument("a.md") {
		t.Fatal("expected append of new document to report change")
	}
	if !p.AppendDocument("b.md") {
		t.Fatal("expected append of second document to report change")
	}
	if p.AppendDocument("a.md") {
		t.Fatal("expected duplicate append to be a no-op")
	}
	if len(p.DocumentIDs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(p.DocumentIDs))
	}
	if p.DocumentIDs[0] != "a.md" || p.DocumentIDs[1] != "b.md" {
		t.Fatalf("insertion order not preserved: %v", p.DocumentIDs)
	}
}

func TestPane_RemoveDocument(t *testing.T) {
	p := NewPane("pane1")
	p.AppendDocument("a.md")
	p.AppendDocument("b.md")
	p.AppendDocument("c.md")

	if idx := p.RemoveDocument("b.md"); idx != 1 {
		t.Fatalf("expected removal index 1, got %d", idx)
	}
	if idx := p.RemoveDocument("b.md"); idx != -1 {
		t.Fatalf("expected -1 for absent document, got %d", idx)
	}
	if len(p.DocumentIDs) != 2 {
		t.Fatalf("expected 2 documents after removal, got %d", len(p.DocumentIDs))
	}
}

func TestPane_NextActiveAfterRemoval(t *testing.T) {
	tests := []struct {
		name         string
		remaining    []DocumentID
		removedIndex int
		expected     DocumentID
	}{
		{
			name:         "next document at same index",
			remaining:    []DocumentID{"a.md", "c.md"},
			removedIndex: 1,
			expected:     "c.md",
		},
		{
			name:         "previous document when last tab removed",
			remaining:    []DocumentID{"a.md", "b.md"},
			removedIndex: 2,
			expected:     "b.md",
		},
		{
			name:         "none remaining",
			remaining:    nil,
			removedIndex: 0,
			expected:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPane("pane1")
			p.DocumentIDs = tt.remaining
			if got := p.NextActiveAfterRemoval(tt.removedIndex); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDocumentID_DisplayName(t *testing.T) {
	tests := []struct {
		id       DocumentID
		expected string
	}{
		{"/home/user/notes/todo.md", "todo.md"},
		{"untitled:3", "Untitled 3"},
		{"readme.md", "readme.md"},
	}

	for _, tt := range tests {
		if got := tt.id.DisplayName(); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.expected)
		}
	}
}
