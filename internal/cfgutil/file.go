// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"os"
)

// FileExists reports whether a regular file is present at filePath, such as
// an existing bolt store.  A directory at that path is an error since no
// store can be created over it.
func FileExists(filePath string) (bool, error) {
	fi, err := os.Stat(filePath)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	case fi.IsDir():
		return false, fmt.Errorf("%s is a directory", filePath)
	}
	return true, nil
}
