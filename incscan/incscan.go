// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package incscan extracts the leading include block from C sources.
package incscan

import (
	"bytes"
	"regexp"
	"strings"
)

var includeRE = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^>"]+)[>"]`)

// Entry is one include directive of a block.
type Entry struct {
	// Raw is the full source line, with its line ending if present.
	Raw string

	// Key is the include target, e.g. "stdio.h".
	Key string

	// Index is the entry's position in the block, 0-based.
	Index int

	// Line is the line index in the file, 0-based.
	Line int
}

// Block is the leading contiguous run of include directives of a file.
// Blank lines inside the run belong to the block's span but are not
// entries. A zero Block means the file has no include block.
type Block struct {
	Entries []Entry

	// Start and End are the line span of the block, [Start, End).
	Start, End int
}

// Scan locates the include block at the top of src.
// Leading blank lines are skipped. The block starts at the first
// include line and ends at the first line that is neither blank nor
// an include. A file whose first non-blank line is not an include
// has no block.
func Scan(src []byte) Block {
	lines := splitLines(src)
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) || !includeRE.MatchString(lines[i]) {
		return Block{}
	}
	block := Block{Start: i}
	for ; i < len(lines); i++ {
		m := includeRE.FindStringSubmatch(lines[i])
		if m == nil {
			if strings.TrimSpace(lines[i]) != "" {
				break
			}
			continue
		}
		block.Entries = append(block.Entries, Entry{
			Raw:   lines[i],
			Key:   m[1],
			Index: len(block.Entries),
			Line:  i,
		})
	}
	block.End = i
	return block
}

// Rebuild returns src with the block's span replaced by the entries
// selected by keep, in original order, followed by one blank line when
// any entry is kept. Bytes outside the span are preserved as is.
func Rebuild(src []byte, block Block, keep func(Entry) bool) []byte {
	lines := splitLines(src)
	var buf bytes.Buffer
	for _, line := range lines[:block.Start] {
		buf.WriteString(line)
	}
	kept := 0
	for _, e := range block.Entries {
		if !keep(e) {
			continue
		}
		buf.WriteString(e.Raw)
		if !strings.HasSuffix(e.Raw, "\n") {
			buf.WriteByte('\n')
		}
		kept++
	}
	if kept > 0 && (block.End >= len(lines) || strings.TrimSpace(lines[block.End]) != "") {
		buf.WriteByte('\n')
	}
	for _, line := range lines[block.End:] {
		buf.WriteString(line)
	}
	return buf.Bytes()
}

// RemoveLine returns src without the line at index line.
func RemoveLine(src []byte, line int) []byte {
	lines := splitLines(src)
	var buf bytes.Buffer
	for i, ln := range lines {
		if i == line {
			continue
		}
		buf.WriteString(ln)
	}
	return buf.Bytes()
}

// splitLines splits src into lines, keeping line endings.
func splitLines(src []byte) []string {
	var lines []string
	for len(src) > 0 {
		i := bytes.IndexByte(src, '\n')
		if i < 0 {
			lines = append(lines, string(src))
			break
		}
		lines = append(lines, string(src[:i+1]))
		src = src[i+1:]
	}
	return lines
}
