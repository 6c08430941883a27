//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pkgStats counts the Go lines of one package directory.
type pkgStats struct {
	Package string `json:"package"`
	Files   int    `json:"files"`
	Prod    int    `json:"prod_lines"`
	Test    int    `json:"test_lines"`
}

// skipDirs are never counted.
var skipDirs = map[string]bool{
	".git":      true,
	"vendor":    true,
	"_examples": true,
	"magefiles": true,
	binaryDir:   true,
}

// Stats prints one JSON object with production and test line counts per
// package and for the whole module.
func Stats() error {
	byDir := map[string]*pkgStats{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		ps := byDir[dir]
		if ps == nil {
			ps = &pkgStats{Package: dir}
			byDir[dir] = ps
		}
		ps.Files++
		if strings.HasSuffix(path, "_test.go") {
			ps.Test += n
		} else {
			ps.Prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	report := struct {
		Packages []pkgStats `json:"packages"`
		Prod     int        `json:"prod_lines"`
		Test     int        `json:"test_lines"`
	}{}
	for _, ps := range byDir {
		report.Packages = append(report.Packages, *ps)
		report.Prod += ps.Prod
		report.Test += ps.Test
	}
	sort.Slice(report.Packages, func(i, j int) bool {
		return report.Packages[i].Package < report.Packages[j].Package
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}
