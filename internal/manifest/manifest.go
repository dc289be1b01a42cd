// Package manifest loads lists of text files to analyse.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads one path per line from the manifest at path. Blank lines and
// lines starting with '#' are skipped. Relative entries are resolved against
// the manifest's directory.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only manifest.
			_ = cerr
		}
	}()

	base := filepath.Dir(path)
	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("manifest is empty")
	}
	return paths, nil
}

// Merge appends manifest entries to args, dropping duplicates while keeping
// first-seen order.
func Merge(args, listed []string) []string {
	seen := make(map[string]struct{}, len(args)+len(listed))
	out := make([]string, 0, len(args)+len(listed))
	for _, group := range [][]string{args, listed} {
		for _, p := range group {
			key := filepath.Clean(p)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
