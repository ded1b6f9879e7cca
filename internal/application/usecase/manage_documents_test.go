package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ouvrier/plume/internal/domain/entity"
)

type fakeDocumentStore struct {
	mu    sync.Mutex
	files map[string]string
	fail  map[string]error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{files: make(map[string]string), fail: make(map[string]error)}
}

func (s *fakeDocumentStore) Load(_ context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return "", err
	}
	content, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return content, nil
}

func (s *fakeDocumentStore) Save(_ context.Context, path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return err
	}
	s.files[path] = content
	return nil
}

type docsFixture struct {
	store   *fakeDocumentStore
	uc      *ManageDocumentsUseCase
	primary *entity.Workspace
	preview *entity.Workspace
}

func newDocsFixture() *docsFixture {
	f := &docsFixture{
		store:   newFakeDocumentStore(),
		primary: entity.NewWorkspace("primary", "primary", entity.NewPane("pane1")),
		preview: entity.NewWorkspace("preview", "preview", entity.NewPane("pv1")),
	}
	f.uc = NewManageDocumentsUseCase(f.store, func() []*entity.Workspace {
		return []*entity.Workspace{f.primary, f.preview}
	})
	return f
}

func TestManageDocumentsUseCase_OpenCreatesTableEntry(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	doc, err := f.uc.Open(ctx, f.primary, "pane1", "/notes/a.md", "# A")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if doc.Content != "# A" {
		t.Errorf("content = %q, want %q", doc.Content, "# A")
	}
	if !f.uc.Has("/notes/a.md") {
		t.Error("table missing entry after open")
	}

	pane := f.primary.ActivePane()
	if !pane.ContainsDocument("/notes/a.md") {
		t.Error("pane does not list opened document")
	}
	if pane.ActiveDocumentID != "/notes/a.md" {
		t.Errorf("active doc = %q, want the opened one", pane.ActiveDocumentID)
	}
}

func TestManageDocumentsUseCase_OpenSharesEntryAcrossPanes(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	first, err := f.uc.Open(ctx, f.primary, "pane1", "/notes/a.md", "# A")
	if err != nil {
		t.Fatalf("open in primary: %v", err)
	}
	// A second open of the same id returns the shared entry; the provided
	// content is ignored in favor of the in-memory copy.
	second, err := f.uc.Open(ctx, f.preview, "pv1", "/notes/a.md", "stale load")
	if err != nil {
		t.Fatalf("open in preview: %v", err)
	}
	if first != second {
		t.Error("expected both panes to share one table entry")
	}
	if second.Content != "# A" {
		t.Errorf("content = %q, want shared %q", second.Content, "# A")
	}
	if got := f.uc.ReferenceCount("/notes/a.md"); got != 2 {
		t.Errorf("reference count = %d, want 2", got)
	}
	if got := f.uc.Count(); got != 1 {
		t.Errorf("table size = %d, want 1", got)
	}
}

func TestManageDocumentsUseCase_OpenDroppedWhenPaneGone(t *testing.T) {
	f := newDocsFixture()

	_, err := f.uc.Open(context.Background(), f.primary, "ghost", "/notes/a.md", "# A")
	if !errors.Is(err, ErrPaneNotFound) {
		t.Fatalf("err = %v, want ErrPaneNotFound", err)
	}
	if f.uc.Has("/notes/a.md") {
		t.Error("dropped open must not populate the table")
	}
}

func TestManageDocumentsUseCase_LoadContentPrefersTable(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	f.store.files["/notes/a.md"] = "on disk"
	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/notes/a.md", "in memory"); err != nil {
		t.Fatalf("open: %v", err)
	}

	got, err := f.uc.LoadContent(ctx, "/notes/a.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "in memory" {
		t.Errorf("content = %q, want the table copy", got)
	}

	got, err = f.uc.LoadContent(ctx, "/notes/b.md")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	_ = got

	// Untitled documents load as empty without touching storage.
	got, err = f.uc.LoadContent(ctx, f.uc.NewUntitledID())
	if err != nil {
		t.Fatalf("load untitled: %v", err)
	}
	if got != "" {
		t.Errorf("untitled content = %q, want empty", got)
	}
}

func TestManageDocumentsUseCase_SwitchRequiresMembership(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/notes/a.md", ""); err != nil {
		t.Fatalf("open a: %v", err)
	}
	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/notes/b.md", ""); err != nil {
		t.Fatalf("open b: %v", err)
	}

	if err := f.uc.Switch(ctx, f.primary, "pane1", "/notes/a.md"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if got := f.primary.ActivePane().ActiveDocumentID; got != "/notes/a.md" {
		t.Errorf("active doc = %q, want /notes/a.md", got)
	}

	err := f.uc.Switch(ctx, f.primary, "pane1", "/notes/unlisted.md")
	if !errors.Is(err, ErrDocumentNotListed) {
		t.Fatalf("err = %v, want ErrDocumentNotListed", err)
	}
	if got := f.primary.ActivePane().ActiveDocumentID; got != "/notes/a.md" {
		t.Errorf("failed switch moved activity: %q", got)
	}
}

func TestManageDocumentsUseCase_CloseActiveSuccession(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	for _, id := range []entity.DocumentID{"/a.md", "/b.md", "/c.md"} {
		if _, err := f.uc.Open(ctx, f.primary, "pane1", id, ""); err != nil {
			t.Fatalf("open %s: %v", id, err)
		}
	}
	if err := f.uc.Switch(ctx, f.primary, "pane1", "/b.md"); err != nil {
		t.Fatalf("switch: %v", err)
	}

	// Closing the active middle document activates the one that slid into
	// its index.
	res, err := f.uc.Close(ctx, f.primary, "pane1", "/b.md", false)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.NewActiveID != "/c.md" {
		t.Errorf("new active = %q, want /c.md", res.NewActiveID)
	}
	if res.PaneEmptied {
		t.Error("pane should not be empty yet")
	}

	// Closing the active last document falls back to the previous one.
	res, err = f.uc.Close(ctx, f.primary, "pane1", "/c.md", false)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.NewActiveID != "/a.md" {
		t.Errorf("new active = %q, want /a.md", res.NewActiveID)
	}

	res, err = f.uc.Close(ctx, f.primary, "pane1", "/a.md", false)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !res.PaneEmptied {
		t.Error("pane should report empty")
	}
	if res.NewActiveID != "" {
		t.Errorf("new active = %q, want none", res.NewActiveID)
	}
}

func TestManageDocumentsUseCase_CloseInactiveKeepsActive(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/a.md", ""); err != nil {
		t.Fatalf("open a: %v", err)
	}
	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/b.md", ""); err != nil {
		t.Fatalf("open b: %v", err)
	}

	res, err := f.uc.Close(ctx, f.primary, "pane1", "/a.md", false)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.NewActiveID != "/b.md" {
		t.Errorf("active = %q, want /b.md", res.NewActiveID)
	}
}

func TestManageDocumentsUseCase_EvictionCountsAllWorkspaces(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/a.md", ""); err != nil {
		t.Fatalf("open primary: %v", err)
	}
	if _, err := f.uc.Open(ctx, f.preview, "pv1", "/a.md", ""); err != nil {
		t.Fatalf("open preview: %v", err)
	}

	// Still listed in the preview grid: no eviction.
	res, err := f.uc.Close(ctx, f.primary, "pane1", "/a.md", false)
	if err != nil {
		t.Fatalf("close primary: %v", err)
	}
	if res.Evicted {
		t.Error("evicted while another workspace still lists the document")
	}
	if !f.uc.Has("/a.md") {
		t.Error("table entry dropped too early")
	}

	// Last reference gone: the entry leaves the table.
	res, err = f.uc.Close(ctx, f.preview, "pv1", "/a.md", false)
	if err != nil {
		t.Fatalf("close preview: %v", err)
	}
	if !res.Evicted {
		t.Error("expected eviction on last close")
	}
	if f.uc.Has("/a.md") {
		t.Error("table entry survived last close")
	}
}

func TestManageDocumentsUseCase_CloseWhileMovingSkipsEviction(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/a.md", "# A"); err != nil {
		t.Fatalf("open: %v", err)
	}

	// Mid-move the document is momentarily unreferenced; the entry must
	// survive so the destination pane picks up the same content.
	res, err := f.uc.Close(ctx, f.primary, "pane1", "/a.md", true)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.Evicted {
		t.Error("moving close must not evict")
	}
	if !f.uc.Has("/a.md") {
		t.Error("table entry lost during move")
	}

	if _, err := f.uc.Open(ctx, f.preview, "pv1", "/a.md", ""); err != nil {
		t.Fatalf("re-open at destination: %v", err)
	}
	if got := f.uc.Get("/a.md").Content; got != "# A" {
		t.Errorf("content after move = %q, want preserved", got)
	}
}

func TestManageDocumentsUseCase_Rename(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/old.md", "body"); err != nil {
		t.Fatalf("open primary: %v", err)
	}
	if _, err := f.uc.Open(ctx, f.preview, "pv1", "/old.md", ""); err != nil {
		t.Fatalf("open preview: %v", err)
	}

	affected, err := f.uc.Rename(ctx, "/old.md", "/new.md")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if len(affected) != 2 {
		t.Errorf("affected panes = %d, want 2", len(affected))
	}
	if f.uc.Has("/old.md") || !f.uc.Has("/new.md") {
		t.Error("table key not moved")
	}
	for _, ws := range []*entity.Workspace{f.primary, f.preview} {
		pane := ws.ActivePane()
		if pane.ContainsDocument("/old.md") {
			t.Errorf("workspace %s still lists old id", ws.ID)
		}
		if !pane.ContainsDocument("/new.md") {
			t.Errorf("workspace %s missing new id", ws.ID)
		}
		if pane.ActiveDocumentID != "/new.md" {
			t.Errorf("workspace %s active = %q, want /new.md", ws.ID, pane.ActiveDocumentID)
		}
	}

	if _, err := f.uc.Rename(ctx, "/missing.md", "/x.md"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestManageDocumentsUseCase_UpdateContentMarksDirty(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/a.md", "v1"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if !f.uc.UpdateContent("/a.md", "v2") {
		t.Error("expected change to be reported")
	}
	doc := f.uc.Get("/a.md")
	if doc.Content != "v2" || !doc.Dirty {
		t.Errorf("doc = %+v, want dirty v2", doc)
	}
	// Identical content is a no-op.
	if f.uc.UpdateContent("/a.md", "v2") {
		t.Error("no-op update reported a change")
	}
	if f.uc.UpdateContent("/missing.md", "x") {
		t.Error("update of unopened document reported a change")
	}
}

func TestManageDocumentsUseCase_SaveRefusesUntitled(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	id := f.uc.NewUntitledID()
	if _, err := f.uc.Open(ctx, f.primary, "pane1", id, "draft"); err != nil {
		t.Fatalf("open: %v", err)
	}
	err := f.uc.Save(ctx, id)
	if !errors.Is(err, ErrUntitledDocument) {
		t.Fatalf("err = %v, want ErrUntitledDocument", err)
	}
}

func TestManageDocumentsUseCase_SaveWritesAndCleans(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/a.md", "v1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	f.uc.UpdateContent("/a.md", "v2")

	if err := f.uc.Save(ctx, "/a.md"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := f.store.files["/a.md"]; got != "v2" {
		t.Errorf("stored = %q, want v2", got)
	}
	if f.uc.Get("/a.md").Dirty {
		t.Error("dirty flag not cleared after save")
	}
}

func TestManageDocumentsUseCase_SaveAll(t *testing.T) {
	f := newDocsFixture()
	ctx := context.Background()

	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/a.md", ""); err != nil {
		t.Fatalf("open a: %v", err)
	}
	if _, err := f.uc.Open(ctx, f.primary, "pane1", "/b.md", ""); err != nil {
		t.Fatalf("open b: %v", err)
	}
	untitled := f.uc.NewUntitledID()
	if _, err := f.uc.Open(ctx, f.primary, "pane1", untitled, ""); err != nil {
		t.Fatalf("open untitled: %v", err)
	}

	f.uc.UpdateContent("/a.md", "A")
	f.uc.UpdateContent("/b.md", "B")
	f.uc.UpdateContent(untitled, "draft")
	f.store.fail["/b.md"] = errors.New("disk full")

	err := f.uc.SaveAll(ctx)
	if err == nil {
		t.Fatal("expected error from failing document")
	}
	if got := f.store.files["/a.md"]; got != "A" {
		t.Errorf("stored a = %q, want A", got)
	}
	if f.uc.Get("/a.md").Dirty {
		t.Error("saved document still dirty")
	}
	if !f.uc.Get("/b.md").Dirty {
		t.Error("failed document lost its dirty flag")
	}
	if !f.uc.Get(untitled).Dirty {
		t.Error("untitled document must stay dirty")
	}
	if _, ok := f.store.files[string(untitled)]; ok {
		t.Error("untitled document reached storage")
	}
}

func TestManageDocumentsUseCase_NewUntitledIDsAreSequential(t *testing.T) {
	f := newDocsFixture()

	first := f.uc.NewUntitledID()
	second := f.uc.NewUntitledID()
	if first == second {
		t.Fatalf("ids not unique: %q", first)
	}
	if !first.IsUntitled() || !second.IsUntitled() {
		t.Errorf("ids %q, %q should be untitled", first, second)
	}
}
