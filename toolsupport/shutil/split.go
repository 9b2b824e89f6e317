// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil

import (
	"fmt"
	"strings"
)

// Split splits a command line or flag list into arguments.
// It handles single quotes, double quotes and backslash escapes.
// It would return error for lines that need a real shell.
func Split(cmdline string) ([]string, error) {
	var args []string
	var sb strings.Builder
	started := false
	for i := 0; i < len(cmdline); i++ {
		ch := cmdline[i]
		switch ch {
		case ' ', '\t':
			if started {
				args = append(args, sb.String())
				sb.Reset()
				started = false
			}
		case '\\':
			if i+1 >= len(cmdline) {
				return nil, fmt.Errorf("failed to split: trailing escape in %q", cmdline)
			}
			i++
			sb.WriteByte(cmdline[i])
			started = true
		case '\'':
			j := strings.IndexByte(cmdline[i+1:], '\'')
			if j < 0 {
				return nil, fmt.Errorf("failed to split: unterminated %c quote in %q", ch, cmdline)
			}
			sb.WriteString(cmdline[i+1 : i+1+j])
			i += j + 1
			started = true
		case '"':
			closed := false
			for i++; i < len(cmdline); i++ {
				c := cmdline[i]
				if c == '\\' && i+1 < len(cmdline) && (cmdline[i+1] == '"' || cmdline[i+1] == '\\') {
					i++
					sb.WriteByte(cmdline[i])
					continue
				}
				if c == '"' {
					closed = true
					break
				}
				sb.WriteByte(c)
			}
			if !closed {
				return nil, fmt.Errorf(`failed to split: unterminated " quote in %q`, cmdline)
			}
			started = true
		case ';', '&', '|', '<', '>', '$', '#', '`':
			return nil, fmt.Errorf("failed to split: cmdline contains shell metachar %c", ch)
		default:
			sb.WriteByte(ch)
			started = true
		}
	}
	if started {
		args = append(args, sb.String())
	}
	return args, nil
}
