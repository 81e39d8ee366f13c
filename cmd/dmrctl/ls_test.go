package main

import (
	"DMR_Link/internal/storage"
	"bytes"
	"context"
	"testing"
	"time"
)

type treeStore map[string][]storage.Entry

func (t treeStore) ListChildren(ctx context.Context, dir string) ([]storage.Entry, error) {
	return t[dir], nil
}

func (t treeStore) CreateSharingLink(ctx context.Context, path, password string, expiresAt time.Time) (string, error) {
	return "", nil
}

func (t treeStore) DeleteSharingLink(ctx context.Context, linkID string) error {
	return nil
}

func TestPrintTree(t *testing.T) {
	store := treeStore{
		"/r":     {{Name: "a", Path: "/r/a", IsDir: true}, {Name: "top.pdf", Path: "/r/top.pdf"}},
		"/r/a":   {{Name: "b", Path: "/r/a/b", IsDir: true}, {Name: "one.pdf", Path: "/r/a/one.pdf"}},
		"/r/a/b": {{Name: "deep.pdf", Path: "/r/a/b/deep.pdf"}},
	}

	var buf bytes.Buffer
	if err := printTree(context.Background(), &buf, store, "/r", 0, -1); err != nil {
		t.Fatal(err)
	}
	want := "-> a\n  -> b\n      deep.pdf\n    one.pdf\n  top.pdf\n"
	if buf.String() != want {
		t.Fatalf("tree =\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := printTree(context.Background(), &buf, store, "/r", 0, 0); err != nil {
		t.Fatal(err)
	}
	if want := "-> a\n  top.pdf\n"; buf.String() != want {
		t.Fatalf("depth 0 tree = %q", buf.String())
	}
}

type closingStore struct {
	treeStore
	closed int
}

func (c *closingStore) Close(ctx context.Context) error {
	c.closed++
	return nil
}

func TestRunLsClosesFileStore(t *testing.T) {
	store := &closingStore{treeStore: treeStore{"/r": {{Name: "top.pdf", Path: "/r/top.pdf"}}}}
	restore := newFileStore
	newFileStore = func() storage.FileStore { return store }
	defer func() { newFileStore = restore }()

	lsCmd.SetContext(context.Background())
	if err := runLs(lsCmd, []string{"/r"}); err != nil {
		t.Fatal(err)
	}
	if store.closed != 1 {
		t.Fatalf("close calls = %d, want 1", store.closed)
	}
}
