package copytree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRecursiveCopier_CopiesNestedTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "runtime")

	if err := os.MkdirAll(filepath.Join(src, "inner", "deep"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"top.txt":               "top",
		"inner/mid.txt":         "mid",
		"inner/deep/bottom.txt": "bottom",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c := &RecursiveCopier{}
	if err := c.CopyTree(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("Expected %s to be copied: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("Expected %s content %q, got %q", name, want, got)
		}
	}
}

func TestRecursiveCopier_ClearsPreviousDestination(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "keep.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "stale.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	c := &RecursiveCopier{}
	if err := c.CopyTree(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "stale.txt")); !os.IsNotExist(err) {
		t.Error("Expected stale file to be removed")
	}
	if _, err := os.Stat(filepath.Join(dst, "keep.txt")); err != nil {
		t.Errorf("Expected copied file: %v", err)
	}
}

func TestRecursiveCopier_CancelledContext(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &RecursiveCopier{}
	err := c.CopyTree(ctx, src, filepath.Join(t.TempDir(), "dst"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestDetect_AlwaysReturnsCopier(t *testing.T) {
	c := Detect()
	if c == nil {
		t.Fatal("Expected a copier")
	}
	if c.Name() != "rsync" && c.Name() != "recursive" {
		t.Errorf("Unexpected copier name: %s", c.Name())
	}
}
