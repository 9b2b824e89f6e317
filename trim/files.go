// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package trim

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// CollectFiles returns the target files: explicit paths verbatim when
// given, otherwise every *.c file under dir in lexical walk order.
func CollectFiles(dir string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return slices.Clone(explicit), nil
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".c") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
