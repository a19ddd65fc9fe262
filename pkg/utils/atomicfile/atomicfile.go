package atomicfile

import (
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Write creates a temporary file next to path, fills it with write and renames
// it over path. Readers see either the old file or the complete new one.
func Write(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("tmp", tmpName))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return goerr.Wrap(err, "failed to set file mode", goerr.V("tmp", tmpName))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return goerr.Wrap(err, "failed to rename temporary file", goerr.V("tmp", tmpName))
	}
	return nil
}
