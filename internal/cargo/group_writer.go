// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"bytes"
	"io"
	"regexp"

	"xtask-cli/internal/console"
)

// groupWriter forwards process output line by line and opens a new console
// group whenever a line matches the configured pattern. The pattern's first
// capture group names the unit under test (e.g. the test binary).
type groupWriter struct {
	dst     io.Writer
	pattern *regexp.Regexp
	label   string
	buf     bytes.Buffer
	open    bool
}

func newGroupWriter(dst io.Writer, pattern *regexp.Regexp, label string) *groupWriter {
	return &groupWriter{dst: dst, pattern: pattern, label: label}
}

func (w *groupWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line: keep it buffered until more data arrives.
			w.buf.WriteString(line)
			break
		}
		w.writeLine(line)
	}
	return len(p), nil
}

func (w *groupWriter) writeLine(line string) {
	if match := w.pattern.FindStringSubmatch(line); len(match) > 1 {
		if w.open {
			console.EndGroup()
		}
		console.Group("%s: %s", w.label, match[1])
		w.open = true
	}
	io.WriteString(w.dst, line)
}

// Close flushes any buffered partial line and closes the open group.
func (w *groupWriter) Close() {
	if w.buf.Len() > 0 {
		w.writeLine(w.buf.String())
		w.buf.Reset()
	}
	if w.open {
		console.EndGroup()
		w.open = false
	}
}
