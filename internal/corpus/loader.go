package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/pwaudit/internal/model"
)

// ErrSourceUnavailable is returned when the credential dump cannot be
// opened or read. No report can be produced from a partial dump.
var ErrSourceUnavailable = errors.New("credential dump unavailable")

const (
	// fieldSeparator separates the fields of a dump line.
	fieldSeparator = ":"

	// minFields is the number of fields a line needs to carry a password.
	minFields = 3

	// usernameField and passwordField are the field indexes of a record.
	usernameField = 0
	passwordField = 2

	// maxLineSize is the longest line that can carry a record.
	maxLineSize = 1024 * 1024
)

// ParseLine parses one dump line. It returns false when the line does not
// carry a record.
func ParseLine(line string) (model.Record, bool) {
	fields := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(fields) < minFields || fields[passwordField] == "" {
		return model.Record{}, false
	}
	return model.Record{
		Username: fields[usernameField],
		Password: fields[passwordField],
	}, true
}

// Parse reads a credential dump from r.
// Lines longer than maxLineSize are malformed: they are drained and
// skipped like any other line that carries no record.
func Parse(r io.Reader) (*model.Corpus, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	records := make([]model.Record, 0)
	line := make([]byte, 0, 256)
	tooLong := false
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}

		if !tooLong {
			if len(line)+len(chunk) > maxLineSize {
				tooLong = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if isPrefix {
			continue
		}

		if !tooLong {
			if record, ok := ParseLine(string(line)); ok {
				records = append(records, record)
			}
		}
		line = line[:0]
		tooLong = false
	}

	return model.NewCorpus(records), nil
}

// LoadFile reads the credential dump at path.
func LoadFile(path string) (*model.Corpus, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dump path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c, nil
}
