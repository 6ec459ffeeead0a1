package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/pwaudit/internal/model"
)

// ErrOutputUnwritable is returned when the report file cannot be written.
var ErrOutputUnwritable = errors.New("report output unwritable")

// reportFileMode keeps reports private to the invoking user: they contain
// plaintext passwords.
const reportFileMode = 0o600

// WriteFile renders report with the writer built by newWriter and stores the
// result at path.
//
// The report is rendered into memory first and then written to a temporary
// file in the destination directory which is renamed over path, so either
// the complete report appears or nothing does.
func WriteFile(path string, newWriter func(io.Writer) Writer, report *model.Report) error {
	var buf bytes.Buffer
	if _, err := newWriter(&buf).Write(report); err != nil {
		return fmt.Errorf("%w: render %s: %w", ErrOutputUnwritable, path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	if err := tmp.Chmod(reportFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	return nil
}

// WriteFileFormat is WriteFile with the writer selected by format.
func WriteFileFormat(path string, format Format, report *model.Report) error {
	return WriteFile(path, func(w io.Writer) Writer {
		return NewWriter(format, w)
	}, report)
}
