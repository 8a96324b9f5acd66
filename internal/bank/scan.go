// Package bank reads question bank files: it scans the source directory,
// parses each file as a JSON array, and converts question objects into
// storable rows.
package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// Extension selects question bank files in the source directory.
const Extension = ".json"

// SourceFile is one question bank file found by Scan.
type SourceFile struct {
	Name string
	Path string
	Size int64
}

// HumanSize renders the file size for the console listing.
func (f SourceFile) HumanSize() string {
	return humanize.Bytes(uint64(f.Size))
}

// Scan lists the regular files in dir whose names end in ".json", in
// lexical order. It returns types.ErrNoSourceFiles when there are none.
func Scan(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var files []SourceFile
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks, so linked files are picked up too.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, SourceFile{Name: e.Name(), Path: path, Size: info.Size()})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, types.ErrNoSourceFiles)
	}
	return files, nil
}
