package integration

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// copyDir recursively copies a directory tree.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		targetPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(targetPath, 0o750)
		}
		return copyFile(path, targetPath)
	})
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	// #nosec G304 -- test utility with paths from test setup, not user input
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	// #nosec G304 -- test utility with paths from test setup, not user input
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// setupSite copies a fixture site into a temp dir and returns its path.
func setupSite(t *testing.T, fixture string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, copyDir(fixture, dir), "failed to copy fixture site")
	return dir
}

// listFiles returns the slash separated relative paths of all files under root.
func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

// verifyGoldenFile compares actual with the golden file, or rewrites the
// golden file when update is set.
func verifyGoldenFile(t *testing.T, goldenPath string, actual []byte, update bool) {
	t.Helper()

	if update {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o750), "failed to create golden directory")
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o600), "failed to write golden file")
		return
	}

	// #nosec G304 -- test utility reading golden files
	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file %s (run with -update-golden)", goldenPath)
	require.Equal(t, string(expected), string(actual), "output differs from %s", goldenPath)
}
