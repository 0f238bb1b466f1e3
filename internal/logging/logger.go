package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger writes prefixed diagnostic lines to a writer, normally stderr, so
// that stdout stays reserved for the computed tag.
type Logger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// New returns a Logger writing to w. Each line starts with "prefix: ".
func New(w io.Writer, prefix string) *Logger {
	return &Logger{w: w, prefix: prefix}
}

// Printf writes a single line. A nil Logger discards everything.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.prefix != "" {
		fmt.Fprintf(l.w, "%s: %s\n", l.prefix, line)
		return
	}
	fmt.Fprintln(l.w, line)
}
