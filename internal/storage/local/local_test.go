package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestBackend(t *testing.T) (*LocalBackend, string) {
	t.Helper()
	dir := t.TempDir()
	b, err := New(Config{RootPath: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, dir
}

func TestNewRequiresRootPath(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty root path")
	}
}

func TestNewCreateDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := New(Config{RootPath: root}); err == nil {
		t.Fatal("expected error for missing root without CreateDirs")
	}

	if _, err := New(Config{RootPath: root, CreateDirs: true}); err != nil {
		t.Fatalf("expected root created, got %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", root)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	content := "hello savedrive"
	n, err := b.PutObject(ctx, "greeting.txt", strings.NewReader(content))
	if err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("expected %d bytes written, got %d", len(content), n)
	}

	rc, size, err := b.GetObject(ctx, "greeting.txt")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	defer rc.Close()
	if size != int64(len(content)) {
		t.Errorf("expected size %d, got %d", len(content), size)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != content {
		t.Errorf("expected %q, got %q", content, data)
	}
}

func TestKeysAreFlattened(t *testing.T) {
	b, dir := newTestBackend(t)
	ctx := context.Background()

	if _, err := b.PutObject(ctx, "../../etc/passwd", strings.NewReader("x")); err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "passwd")); err != nil {
		t.Errorf("expected key flattened into root, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "..", "etc", "passwd")); err == nil {
		t.Error("traversal escaped the root")
	}
}

func TestDeleteObject(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	if _, err := b.PutObject(ctx, "doomed.bin", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := b.DeleteObject(ctx, "doomed.bin"); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}

	exists, err := b.ObjectExists(ctx, "doomed.bin")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("expected object gone after delete")
	}

	// Deleting a missing object is not an error.
	if err := b.DeleteObject(ctx, "doomed.bin"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestListObjectsSkipsDirsAndDotfiles(t *testing.T) {
	b, dir := newTestBackend(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.jpg"} {
		if _, err := b.PutObject(ctx, name, strings.NewReader("x")); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".savedrive-123.tmp"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	names, err := b.ListObjects(ctx)
	if err != nil {
		t.Fatalf("ListObjects: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 objects, got %v", names)
	}
	for _, n := range names {
		if n != "a.txt" && n != "b.jpg" {
			t.Errorf("unexpected entry %q", n)
		}
	}
}

func TestGetObjectMissing(t *testing.T) {
	b, _ := newTestBackend(t)
	if _, _, err := b.GetObject(context.Background(), "nope.txt"); err == nil {
		t.Fatal("expected error for missing object")
	}
}
