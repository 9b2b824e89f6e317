// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		cmdline string
		want    []string
	}{
		{
			cmdline: `cc -std=c99 -Wall -Wextra -O2 -g -D_FORTIFY_SOURCE=2 -DNDEBUG -I../.. -Igen -fstack-protector-all -fdata-sections -ffunction-sections -Wno-unused-result -c src/main.c -o obj/main.o`,
			want: []string{
				"cc",
				"-std=c99",
				"-Wall",
				"-Wextra",
				"-O2",
				"-g",
				"-D_FORTIFY_SOURCE=2",
				"-DNDEBUG",
				"-I../..",
				"-Igen",
				"-fstack-protector-all",
				"-fdata-sections",
				"-ffunction-sections",
				"-Wno-unused-result",
				"-c",
				"src/main.c",
				"-o",
				"obj/main.o",
			},
		},
		{
			cmdline: `-DCLANG_REVISION=\"llvmorg-13-init-14086-ge1b8fde1-1\" -DNDEBUG`,
			want: []string{
				`-DCLANG_REVISION="llvmorg-13-init-14086-ge1b8fde1-1"`,
				"-DNDEBUG",
			},
		},
		{
			cmdline: `-DGREETING='"hello world"' -O0`,
			want: []string{
				`-DGREETING="hello world"`,
				"-O0",
			},
		},
		{
			cmdline: "ccache\tgcc\t-g",
			want: []string{
				"ccache",
				"gcc",
				"-g",
			},
		},
		{
			cmdline: `-I "third party/vendor include" -Iinclude`,
			want: []string{
				"-I",
				"third party/vendor include",
				"-Iinclude",
			},
		},
		{
			cmdline: `/bin/cc -c ""`,
			want: []string{
				"/bin/cc",
				"-c",
				"",
			},
		},
		{
			cmdline: ` /bin/cc  -c  ""  `,
			want: []string{
				"/bin/cc",
				"-c",
				"",
			},
		},
		{
			cmdline: `"a\\b" "say \"hi\""`,
			want: []string{
				`a\b`,
				`say "hi"`,
			},
		},
	} {
		args, err := Split(tc.cmdline)
		if err != nil {
			t.Errorf("Split(%q)=%q, %v; want nil error", tc.cmdline, args, err)
		}
		if diff := cmp.Diff(tc.want, args); diff != "" {
			t.Errorf("Split(%q); diff -want +got:\n%s", tc.cmdline, diff)
		}
	}
}

func TestSplit_Error(t *testing.T) {
	for _, cmdline := range []string{
		`cc -c main.c 2>/dev/null || (rm -rf obj && cc -c main.c)`,
		`cc $(pkg-config --cflags glib-2.0)`,
		"cc `pkg-config --cflags glib-2.0`",
		`cc -c main.c # build it`,
		`/bin/cc -c "`,
		`echo 'unterminated`,
		`cp foo bar\`,
	} {
		args, err := Split(cmdline)
		if err == nil {
			t.Errorf("Split(%q)=%q, %v; want err", cmdline, args, err)
		}
	}
}
