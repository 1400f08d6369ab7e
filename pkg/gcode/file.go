package gcode

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mk4tools/purgeshift/pkg/errors"
)

// ReadLines reads path and splits it into lines. Terminators stay attached to
// their lines so that Text(ReadLines(p)) reproduces the file byte-for-byte,
// including a missing final newline.
func ReadLines(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits a stream into lines, keeping each line's terminator.
func SplitLines(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.SplitAfter(text, "\n")
	// SplitAfter leaves a trailing "" when the text ends with a newline.
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Line{Num: i + 1, Raw: r}
	}
	return lines
}

// Text joins lines back into a single stream.
func Text(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Raw)
	}
	return b.String()
}

// WriteLinesAtomic writes lines to path through a temp file in the same
// directory followed by a rename, preserving the original file mode. The
// target is either fully replaced or left untouched; a partially written
// toolpath is never observable.
func WriteLinesAtomic(path string, lines []Line) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".purgeshift-*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := io.WriteString(tmp, Text(lines)); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", tmpName)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "rename %s to %s", tmpName, path)
	}
	return nil
}
