package scan

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// buildTree creates a directory tree for scan tests and returns its root.
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"b.txt",
		"a.sh",
		".hidden.txt",
		filepath.Join("sub", "c.pdf"),
		filepath.Join("sub", "deep", "d.doc"),
		filepath.Join(".git", "e.txt"),
		filepath.Join("node_modules", "f.js"),
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanDepthOne(t *testing.T) {
	root := buildTree(t)

	files, err := Scan(context.Background(), root, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{
		filepath.Join(root, "a.sh"),
		filepath.Join(root, "b.txt"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("depth 1: got %v, expected %v", files, want)
	}
}

func TestScanDepthTwo(t *testing.T) {
	root := buildTree(t)

	files, err := Scan(context.Background(), root, Options{MaxDepth: 2})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{
		filepath.Join(root, "a.sh"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "c.pdf"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("depth 2: got %v, expected %v", files, want)
	}
}

func TestScanDeepReachesAll(t *testing.T) {
	root := buildTree(t)

	files, err := Scan(context.Background(), root, Options{MaxDepth: 5})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{
		filepath.Join(root, "a.sh"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "c.pdf"),
		filepath.Join(root, "sub", "deep", "d.doc"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("deep scan: got %v, expected %v", files, want)
	}
}

func TestScanIncludeHidden(t *testing.T) {
	root := buildTree(t)

	files, err := Scan(context.Background(), root, Options{MaxDepth: 2, IncludeHidden: true})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// node_modules stays excluded even with hidden files included
	want := []string{
		filepath.Join(root, ".git", "e.txt"),
		filepath.Join(root, ".hidden.txt"),
		filepath.Join(root, "a.sh"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "c.pdf"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("hidden scan: got %v, expected %v", files, want)
	}
}

func TestScanFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "real.sh")
	if err := os.WriteFile(outside, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link.sh")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := Scan(context.Background(), root, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// The link resolves to a regular file, so it is reported under its
	// path inside the root.
	want := []string{link}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("symlink scan: got %v, expected %v", files, want)
	}
}

func TestScanMaxResults(t *testing.T) {
	root := buildTree(t)

	files, err := Scan(context.Background(), root, Options{MaxDepth: 5, MaxResults: 2})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with MaxResults=2, got %d", len(files))
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{MaxDepth: 1})
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestScanCanceled(t *testing.T) {
	root := buildTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Scan(ctx, root, Options{MaxDepth: 5}); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestScanAllPreservesRootOrder(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	for _, p := range []string{
		filepath.Join(rootA, "z.txt"),
		filepath.Join(rootB, "a.txt"),
	} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanAll(context.Background(), []string{rootA, rootB}, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	// Results follow root order, not global sort order
	want := []string{
		filepath.Join(rootA, "z.txt"),
		filepath.Join(rootB, "a.txt"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ScanAll: got %v, expected %v", files, want)
	}
}

func TestScanAllEmptyRoots(t *testing.T) {
	files, err := ScanAll(context.Background(), nil, Options{MaxDepth: 1})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if files != nil {
		t.Errorf("expected nil result, got %v", files)
	}
}
