package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const listBucketXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>documents</Name>
  <Prefix>mss/</Prefix>
  <KeyCount>3</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <Delimiter>/</Delimiter>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>mss/</Key><Size>0</Size></Contents>
  <Contents><Key>mss/MSS-1.pdf</Key><Size>10</Size></Contents>
  <CommonPrefixes><Prefix>mss/archive/</Prefix></CommonPrefixes>
</ListBucketResult>`

func newTestMinio(t *testing.T, handler http.Handler) *MinioStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	u, _ := url.Parse(srv.URL)
	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewMinioStore(client, "documents")
}

func TestMinioListChildren(t *testing.T) {
	var gotPrefix string
	store := newTestMinio(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefix = r.URL.Query().Get("prefix")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(listBucketXML))
	}))

	entries, err := store.ListChildren(context.Background(), "/mss")
	if err != nil {
		t.Fatal(err)
	}
	if gotPrefix != "mss/" {
		t.Fatalf("prefix = %q", gotPrefix)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	files, dirs := map[string]Entry{}, map[string]Entry{}
	for _, e := range entries {
		if e.IsDir {
			dirs[e.Name] = e
		} else {
			files[e.Name] = e
		}
	}
	if files["MSS-1.pdf"].Path != "/mss/MSS-1.pdf" {
		t.Fatalf("file entry = %+v", files)
	}
	if dirs["archive"].Path != "/mss/archive" {
		t.Fatalf("dir entry = %+v", dirs)
	}
}

func TestMinioCreateSharingLinkClampsExpiry(t *testing.T) {
	store := newTestMinio(t, http.NotFoundHandler())

	link, err := store.CreateSharingLink(context.Background(), "/mss/MSS-1.pdf", "ignored", time.Now().Add(30*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(u.Path, "/documents/mss/MSS-1.pdf") {
		t.Fatalf("path = %q", u.Path)
	}
	if got := u.Query().Get("X-Amz-Expires"); got != "604800" {
		t.Fatalf("expires = %q, want the 7 day maximum", got)
	}
	if err := store.DeleteSharingLink(context.Background(), "anything"); err != nil {
		t.Fatal(err)
	}
}
