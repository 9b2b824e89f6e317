// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runtimex fixes the following API in standard runtime package.
// - NumCPU()
package runtimex

import "runtime"

var ncpu = runtime.NumCPU()

func init() {
	if n := activeProcessorCount(); n > 0 {
		ncpu = n
	}
}

// NumCPU returns the number of logical CPUs usable by the current process.
// On Windows, runtime.NumCPU() only covers the processor group the process
// started in (at most 64 CPUs). NumCPU counts the active processors of all
// groups via GetActiveProcessorCount instead.
// On non-Windows, it is runtime.NumCPU().
func NumCPU() int {
	return ncpu
}
