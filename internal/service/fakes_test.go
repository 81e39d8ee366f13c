package service

import (
	"DMR_Link/internal/repo"
	"DMR_Link/internal/storage"
	"DMR_Link/model"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// memRecords is an in-memory RecordStore holding raw field maps per collection.
type memRecords struct {
	docs  map[model.Collection][]map[string]string
	err   error
	calls []string
}

func newMemRecords() *memRecords {
	return &memRecords{docs: map[model.Collection][]map[string]string{}}
}

func (m *memRecords) add(c model.Collection, doc map[string]string) {
	m.docs[c] = append(m.docs[c], doc)
}

func (m *memRecords) FindMatching(ctx context.Context, c model.Collection, field, pattern string) ([]model.PartRecord, error) {
	m.calls = append(m.calls, string(c)+"."+field)
	if m.err != nil {
		return nil, m.err
	}
	out := []model.PartRecord{}
	for _, doc := range m.docs[c] {
		if strings.Contains(strings.ToUpper(doc[field]), strings.ToUpper(pattern)) {
			out = append(out, model.NewPartRecord(c, fieldOf(doc)))
		}
	}
	return out, nil
}

func (m *memRecords) FindByPart(ctx context.Context, c model.Collection, part string) (*model.PartRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, doc := range m.docs[c] {
		if doc[model.FieldPart] == part {
			record := model.NewPartRecord(c, fieldOf(doc))
			return &record, nil
		}
	}
	return nil, nil
}

func fieldOf(doc map[string]string) func(string) string {
	return func(name string) string { return doc[name] }
}

type createCall struct {
	Path      string
	Password  string
	ExpiresAt time.Time
}

// memFiles is an in-memory FileStore.
type memFiles struct {
	mu         sync.Mutex
	tree       map[string][]storage.Entry
	created    []createCall
	deleted    []string
	lists      []string
	listErr    error
	createErr  error
	deleteErrs map[string]error
	next       int
}

func newMemFiles() *memFiles {
	return &memFiles{tree: map[string][]storage.Entry{}, deleteErrs: map[string]error{}}
}

func (m *memFiles) addFile(dir, name string) {
	m.tree[dir] = append(m.tree[dir], storage.Entry{Name: name, Path: dir + "/" + name})
}

func (m *memFiles) addDir(dir, name string) string {
	path := dir + "/" + name
	m.tree[dir] = append(m.tree[dir], storage.Entry{Name: name, Path: path, IsDir: true})
	return path
}

func (m *memFiles) ListChildren(ctx context.Context, folderPath string) ([]storage.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists = append(m.lists, folderPath)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]storage.Entry{}, m.tree[folderPath]...), nil
}

func (m *memFiles) CreateSharingLink(ctx context.Context, path, password string, expiresAt time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	m.next++
	m.created = append(m.created, createCall{Path: path, Password: password, ExpiresAt: expiresAt})
	return fmt.Sprintf("https://nas.example.com:5001/sharing/L%d", m.next), nil
}

func (m *memFiles) DeleteSharingLink(ctx context.Context, linkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, linkID)
	return m.deleteErrs[linkID]
}

func (m *memFiles) createdPaths() []string {
	out := make([]string, 0, len(m.created))
	for _, c := range m.created {
		out = append(out, c.Path)
	}
	return out
}

// memTracker is an in-memory TrackerStore. exists mirrors whether the
// tracking document has been created.
type memTracker struct {
	mu       sync.Mutex
	exists   bool
	links    []model.TrackedLink
	replaces int
}

func (m *memTracker) Append(ctx context.Context, link model.TrackedLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exists = true
	m.links = append(m.links, link)
	return nil
}

func (m *memTracker) Load(ctx context.Context) ([]model.TrackedLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.TrackedLink{}, m.links...), nil
}

func (m *memTracker) Replace(ctx context.Context, links []model.TrackedLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	if !m.exists {
		return nil
	}
	m.links = append([]model.TrackedLink{}, links...)
	return nil
}

var _ repo.RecordStore = (*memRecords)(nil)
var _ repo.TrackerStore = (*memTracker)(nil)
var _ storage.FileStore = (*memFiles)(nil)

// fixedClock returns a settable clock.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }
