package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDirectoryNotFound is returned when the search root does not exist or is
// not a directory. This is fatal for the batch: no jobs are produced.
var ErrDirectoryNotFound = errors.New("search directory not found")

// Discover walks root, collects regular files whose extension matches ext
// (without dot, case-insensitive), and returns absolute paths sorted
// lexicographically. An empty result is not an error; the caller reports
// zero jobs and exits successfully.
func Discover(root, ext string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, abs)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, abs)
	}

	want := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == want {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
