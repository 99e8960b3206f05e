package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyperjump/yomu/internal/models"
)

// LoadRequest reads and parses a run request JSON file.
func LoadRequest(path string) (*models.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return models.ParseRunRequest(data)
}

// ScanDir lists the regular files directly in dir whose extension is in
// exts, sorted by name.
func ScanDir(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	accept := make(map[string]bool, len(exts))
	for _, ext := range exts {
		accept[strings.ToLower(ext)] = true
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if accept[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// RequestFromDir builds a run request over every accepted file in dir.
func RequestFromDir(dir string, exts []string, persona, job string) (*models.RunRequest, error) {
	files, err := ScanDir(dir, exts)
	if err != nil {
		return nil, err
	}
	req := &models.RunRequest{
		Query: models.Query{Persona: persona, Job: job},
	}
	for _, f := range files {
		req.Documents = append(req.Documents, models.DocumentRef{Path: f})
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
