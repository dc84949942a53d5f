package main

import (
	"fmt"
	"io"
	"strings"
)

// inlineProgress rewrites each progress line in place so a full run does not
// scroll 704 note/tier lines past the terminal. Only used when stdout is a
// terminal; pipes and logs get one plain line per pair.
type inlineProgress struct {
	out io.Writer
}

func (w *inlineProgress) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if _, err := fmt.Fprintf(w.out, "\r\x1b[K%s", line); err != nil {
		return 0, err
	}
	return len(p), nil
}
