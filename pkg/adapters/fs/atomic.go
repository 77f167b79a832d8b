package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "timehint-tmp-"

	// defaultFixtureMode applies to fixtures that did not exist before Save.
	defaultFixtureMode fs.FileMode = 0644
)

// fixtureMode returns the permission bits of an existing fixture, so that
// rewriting it in place keeps them.
func fixtureMode(target string) (fs.FileMode, error) {
	info, err := os.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return defaultFixtureMode, nil
	case err != nil:
		return 0, fmt.Errorf("failed to stat %s: %w", target, err)
	case info.IsDir():
		return 0, fmt.Errorf("%s is a directory", target)
	}
	return info.Mode().Perm(), nil
}

// replaceFixture swaps the content of target for data through a temp file
// in the same directory. Readers see either the old or the new fixture.
func replaceFixture(target string, data []byte) (err error) {
	mode, err := fixtureMode(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}
