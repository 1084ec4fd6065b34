// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares the text of a snapshot before and after a
// refactoring using the system 'diff' tool.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/xerrors"
)

// Diff returns a unified diff from old to new, labeled with the given
// names, or nil if the texts are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	f1, err := writeTempFile(old)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)

	f2, err := writeTempFile(new)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	// diff exits with status 1 when the inputs differ.
	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		return nil, xerrors.Errorf("diff %s: %w", oldName, err)
	}

	// Replace the temporary file names in the header.
	start := 0
	for i := 0; i < 2; i++ {
		j := bytes.IndexByte(data[start:], '\n')
		if j < 0 {
			return data, nil
		}
		start += j + 1
	}
	if start >= len(data) || data[start] != '@' {
		return data, nil
	}
	hdr := fmt.Sprintf("diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	return append([]byte(hdr), data[start:]...), nil
}

func writeTempFile(data []byte) (string, error) {
	file, err := os.CreateTemp("", "classrf-diff")
	if err != nil {
		return "", xerrors.Errorf("diff: %w", err)
	}
	_, err = file.Write(data)
	if err1 := file.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(file.Name())
		return "", xerrors.Errorf("diff: %w", err)
	}
	return file.Name(), nil
}
