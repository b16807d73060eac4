package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"mdtodo/internal/task"
)

// DefaultPendingFile and DefaultDoneFile are used when no path is configured.
const (
	DefaultPendingFile = "todos.md"
	DefaultDoneFile    = "done_todos.md"
)

// fileMode is applied to every file written by Save.
const fileMode = 0644

// LoadPending reads the pending file. A missing file is an empty list.
func LoadPending(path string) ([]task.Task, error) {
	return loadFile(path, DecodePending)
}

// LoadDone reads the done file. A missing file is an empty list.
func LoadDone(path string) ([]task.Task, error) {
	return loadFile(path, DecodeDone)
}

// LoadAll reads both files. A file that fails to load contributes an empty
// list; the failures are joined into the returned error.
func LoadAll(pendingPath, donePath string) (pending, done []task.Task, err error) {
	pending, perr := LoadPending(pendingPath)
	if perr != nil {
		pending = []task.Task{}
	}
	done, derr := LoadDone(donePath)
	if derr != nil {
		done = []task.Task{}
	}
	return pending, done, errors.Join(perr, derr)
}

func loadFile(path string, decode func(io.Reader) ([]task.Task, error)) ([]task.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tasks, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tasks, nil
}

// Save replaces both files with the given lists. The pending file is written
// first; if that fails the done file is left untouched. Each file is written
// to a temporary sibling and renamed into place.
func Save(pending, done []task.Task, pendingPath, donePath string) error {
	if err := writeFile(pendingPath, func(w io.Writer) error { return EncodePending(w, pending) }); err != nil {
		return err
	}
	return writeFile(donePath, func(w io.Writer) error { return EncodeDone(w, done) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := encode(tmp); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
