// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil has small filesystem helpers shared by the walker and the
// command-line tools.
package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileExists returns whether the file or directory exists, or an error if
// the filesystem could not answer.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %q", path)
}

// ReplaceTildeInDir expands a leading "~" or "~user" in dir to the
// corresponding home directory. Any other dir is returned unchanged.
func ReplaceTildeInDir(dir string) (string, error) {
	if dir == "" || dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var homeDir string
	if userName == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return "", errors.Wrapf(err, "failed to find the home directory to expand %q", dir)
		}
	} else {
		usr, err := user.Lookup(userName)
		if err != nil {
			return "", errors.Wrapf(err, "failed to find the home directory of the user in %q", dir)
		}
		homeDir = usr.HomeDir
	}
	return filepath.Join(homeDir, dir[1+len(userName):]), nil
}
