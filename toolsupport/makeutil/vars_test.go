// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseVars(t *testing.T) {
	for _, tc := range []struct {
		name     string
		makefile string
		want     Vars
	}{
		{
			name: "assignments",
			makefile: `
CC = gcc
CFLAGS := -Wall -O2
OPT ?= -O2
OPT ?= -O0
CFLAGS += -Wextra
export PREFIX = /usr/local
`,
			want: Vars{
				"CC":     "gcc",
				"CFLAGS": "-Wall -O2 -Wextra",
				"OPT":    "-O2",
				"PREFIX": "/usr/local",
			},
		},
		{
			name: "skips rules recipes and comments",
			makefile: `
# toolchain
CC = gcc   # or clang

all: main.o
	$(CC) -o app main.o

clean:
	rm -f app *.o

NAME=app
`,
			want: Vars{
				"CC":   "gcc",
				"NAME": "app",
			},
		},
		{
			name: "expands references once over the final map",
			makefile: `
INCDIR = $(PREFIX)/include
PREFIX = /usr/local
CFLAGS = -I$(INCDIR) -DNONE=$(UNDEFINED)1
`,
			want: Vars{
				"INCDIR": "/usr/local/include",
				"PREFIX": "/usr/local",
				"CFLAGS": "-I$(PREFIX)/include -DNONE=1",
			},
		},
		{
			name:     "empty",
			makefile: "",
			want:     Vars{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseVars([]byte(tc.makefile))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseVars diff -want +got:\n%s", diff)
			}
		})
	}
}
