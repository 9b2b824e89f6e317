// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package makeutil provides utilities for make.
package makeutil

import (
	"regexp"
	"strings"
)

// Vars is a variable map scraped from a makefile.
type Vars map[string]string

var (
	assignRE = regexp.MustCompile(`^(?:export\s+)?([A-Za-z0-9_.-]+)\s*(:=|\?=|\+=|=)\s*(.*)$`)
	refRE    = regexp.MustCompile(`\$\(([^)]+)\)`)
)

// ParseVars parses single-line variable assignments in makefile contents.
//
//	NAME = value ...   (also :=, ?=, +=, with optional export prefix)
//
// Recipe lines, comments and multi-line constructs are ignored.
// Values end at a '#' comment. $(VAR) references are expanded once
// using the final map; undefined variables expand to the empty string.
func ParseVars(b []byte) Vars {
	raw := Vars{}
	for _, line := range strings.Split(string(b), "\n") {
		if strings.HasPrefix(line, "\t") {
			// recipe line
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := assignRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, op, value := m[1], m[2], m[3]
		if i := strings.IndexByte(value, '#'); i >= 0 {
			value = value[:i]
		}
		value = strings.TrimSpace(value)
		switch op {
		case "?=":
			if _, ok := raw[name]; !ok {
				raw[name] = value
			}
		case "+=":
			if prev := raw[name]; prev != "" {
				raw[name] = prev + " " + value
			} else {
				raw[name] = value
			}
		default:
			raw[name] = value
		}
	}
	vars := make(Vars, len(raw))
	for name, value := range raw {
		vars[name] = raw.expand(value)
	}
	return vars
}

func (v Vars) expand(value string) string {
	return refRE.ReplaceAllStringFunc(value, func(ref string) string {
		return v[ref[2:len(ref)-1]]
	})
}
