package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/edimatch/internal/models"
)

// DefaultExtensions are the document extensions the scanner accepts
// when none are configured.
var DefaultExtensions = []string{".txt", ".edi"}

// ScanDocuments reads every document with a matching extension directly
// inside dir (non-recursive; batch file sets are flat) and returns them
// sorted by filename. Extension matching is case-insensitive. An empty
// extensions list means DefaultExtensions.
func ScanDocuments(dir string, extensions []string) ([]models.NamedDocument, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var docs []models.NamedDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		doc, err := ReadDocument(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
