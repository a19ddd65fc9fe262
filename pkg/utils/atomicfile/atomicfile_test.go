package atomicfile_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/salesday/pkg/utils/atomicfile"
)

func TestWrite(t *testing.T) {
	t.Run("creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := atomicfile.Write(path, func(w io.Writer) error {
			_, err := fmt.Fprint(w, "hello")
			return err
		})
		gt.NoError(t, err)

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.Equal(t, string(data), "hello")
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		gt.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o600))

		err := atomicfile.Write(path, func(w io.Writer) error {
			_, err := fmt.Fprint(w, "new")
			return err
		})
		gt.NoError(t, err)

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.Equal(t, string(data), "new")
	})

	t.Run("failed write keeps the old file and leaves no temp file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		gt.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		err := atomicfile.Write(path, func(w io.Writer) error {
			return goerr.New("boom")
		})
		gt.Error(t, err)

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.Equal(t, string(data), "old")

		entries, err := os.ReadDir(dir)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 1)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		err := atomicfile.Write(path, func(w io.Writer) error { return nil })
		gt.Error(t, err)
	})
}
