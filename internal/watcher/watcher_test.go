package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := New(100*time.Millisecond, []string{"__pycache__"}, []string{"README.md"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != nil {
		t.Fatal(err)
	}

	testFile := filepath.Join(tmpDir, "module.py")
	os.WriteFile(testFile, []byte("x = 1\n"), 0644)

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s in changed files %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for file change event")
	}

	// The output file must never retrigger a run.
	os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("# generated"), 0644)

	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			if filepath.Base(p) == "README.md" {
				t.Error("excluded file triggered event")
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// A new directory is watched as soon as it appears.
	subdir := filepath.Join(tmpDir, "pkg")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changedFiles:
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for directory create event")
	}

	nested := filepath.Join(subdir, "inner.py")
	os.WriteFile(nested, []byte("y = 2\n"), 0644)

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == nested {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s in changed files %v", nested, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for nested file event")
	}
}

func TestWatcherDebounceBatches(t *testing.T) {
	tmpDir := t.TempDir()

	calls := make(chan []string, 4)
	w, err := New(200*time.Millisecond, nil, nil, func(paths []string) {
		calls <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != nil {
		t.Fatal(err)
	}

	// A burst of writes inside the debounce window collapses into one call.
	for i := 0; i < 3; i++ {
		name := filepath.Join(tmpDir, "f"+string(rune('a'+i))+".py")
		os.WriteFile(name, []byte("pass\n"), 0644)
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case paths := <-calls:
		if len(paths) < 3 {
			t.Errorf("expected all 3 files in one batch, got %v", paths)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batched callback")
	}

	select {
	case paths := <-calls:
		t.Errorf("expected a single batched callback, got extra %v", paths)
	case <-time.After(400 * time.Millisecond):
		// Expected
	}
}
