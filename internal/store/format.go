// Package store reads and writes the pending and done task files.
//
// Both files are plain UTF-8 markdown-ish lists. The pending file looks like
//
//	# TODOs
//	- (2025-05-09) my task to do something
//
// and the done file like
//
//	# DONEs
//	- DONE (Completed 2025-05-10, Added 2025-05-09) my task to do something
//
// Lines before the header and lines that do not match the record grammar are
// ignored so hand edits never break loading.
package store

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mdtodo/internal/task"
)

const (
	// PendingHeader starts the records of the pending file.
	PendingHeader = "# TODOs"

	// DoneHeader starts the records of the done file.
	DoneHeader = "# DONEs"

	// legacyDoneHeader was written by earlier releases.
	legacyDoneHeader = "# Done TODOs"

	pendingPrefix   = "- ("
	donePrefix      = "- DONE (Completed "
	doneAddedMarker = ", Added "

	// maxLineSize bounds a single record line; longer lines are skipped.
	maxLineSize = 1024 * 1024
)

// EncodePending writes the pending file format to w.
func EncodePending(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, PendingHeader)
	for _, t := range tasks {
		fmt.Fprintf(bw, "- (%s) %s\n", t.DateAdded, t.Text)
	}
	return bw.Flush()
}

// EncodeDone writes the done file format to w.
func EncodeDone(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, DoneHeader)
	for _, t := range tasks {
		fmt.Fprintf(bw, "- DONE (Completed %s, Added %s) %s\n", t.DateCompleted, t.DateAdded, t.Text)
	}
	return bw.Flush()
}

// DecodePending parses pending records from r.
func DecodePending(r io.Reader) ([]task.Task, error) {
	return decode(r, isPendingHeader, parsePendingLine)
}

// DecodeDone parses done records from r.
func DecodeDone(r io.Reader) ([]task.Task, error) {
	return decode(r, isDoneHeader, parseDoneLine)
}

func isPendingHeader(line string) bool {
	return line == PendingHeader
}

func isDoneHeader(line string) bool {
	return line == DoneHeader || line == legacyDoneHeader
}

func decode(r io.Reader, isHeader func(string) bool, parse func(string) (task.Task, bool)) ([]task.Task, error) {
	tasks := []task.Task{}
	reading := false

	br := bufio.NewReader(r)
	for {
		raw, ok, err := nextLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		line := strings.TrimSpace(raw)
		if isHeader(line) {
			reading = true
			continue
		}
		if !reading {
			continue
		}
		if t, ok := parse(line); ok {
			t.ID = task.NewID()
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// nextLine reads one line without its terminator. A line longer than
// maxLineSize is consumed and reported with ok == false so it can be skipped
// like any other malformed line. io.EOF is returned only when nothing is left.
func nextLine(br *bufio.Reader) (line string, ok bool, err error) {
	var buf []byte
	tooLong := false
	read := false
	for {
		chunk, err := br.ReadSlice('\n')
		read = read || len(chunk) > 0
		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize+1 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && read:
			// final line without a newline
		case err != nil:
			return "", false, err
		}
		if tooLong {
			return "", false, nil
		}
		return strings.TrimSuffix(string(buf), "\n"), true, nil
	}
}

// parsePendingLine parses "- (<date_added>) <text>". The date runs up to the
// first closing paren.
func parsePendingLine(line string) (task.Task, bool) {
	if !strings.HasPrefix(line, pendingPrefix) || !strings.Contains(line, ") ") {
		return task.Task{}, false
	}

	end := strings.Index(line, ")")
	if end < len(pendingPrefix) {
		return task.Task{}, false
	}
	textStart := end + 2
	if textStart >= len(line) {
		return task.Task{}, false
	}

	text := strings.TrimSpace(line[textStart:])
	if text == "" {
		return task.Task{}, false
	}
	return task.Task{
		Text:      text,
		DateAdded: strings.TrimSpace(line[len(pendingPrefix):end]),
	}, true
}

// parseDoneLine parses
// "- DONE (Completed <date_completed>, Added <date_added>) <text>".
func parseDoneLine(line string) (task.Task, bool) {
	if !strings.HasPrefix(line, donePrefix) || !strings.Contains(line, doneAddedMarker) {
		return task.Task{}, false
	}

	meta, text, ok := strings.Cut(line, ") ")
	if !ok || !strings.Contains(meta, doneAddedMarker) {
		return task.Task{}, false
	}

	completedPart := meta[len(donePrefix):]
	comma := strings.IndexByte(completedPart, ',')
	if comma < 0 {
		return task.Task{}, false
	}

	addedStart := strings.Index(meta, doneAddedMarker) + len(doneAddedMarker)
	addedEnd := len(meta)
	if strings.HasSuffix(meta, ")") {
		addedEnd--
	}
	if addedStart >= addedEnd {
		return task.Task{}, false
	}

	return task.Task{
		Text:          strings.TrimSpace(text),
		DateAdded:     strings.TrimSpace(meta[addedStart:addedEnd]),
		Completed:     true,
		DateCompleted: strings.TrimSpace(completedPart[:comma]),
	}, true
}
