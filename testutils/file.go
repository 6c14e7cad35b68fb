package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// WriteTempFile writes contents to a file with the given name inside a fresh temporary directory and returns its
// path. The directory is removed when the test ends.
func WriteTempFile(tb testing.TB, name, contents string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	test.That(tb, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}
