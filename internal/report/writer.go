package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/harrison/edimatch/internal/filelock"
	"github.com/harrison/edimatch/internal/models"
)

// lockFile guards a report directory against concurrent batch runs
// writing interleaved bundles.
const lockFile = ".edimatch.lock"

// Options controls how reports are materialized.
type Options struct {
	// HTML renders reports as standalone HTML pages instead of Markdown.
	HTML bool
	// Now stamps the generation time; zero means time.Now().
	Now time.Time
}

func (o Options) timestamp() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) ext() string {
	if o.HTML {
		return ".html"
	}
	return ".md"
}

// render converts markdown per the options.
func render(markdown, title string, o Options) ([]byte, error) {
	if !o.HTML {
		return []byte(markdown), nil
	}
	html, err := ToHTML(markdown, title)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// WritePair writes one pair summary report into dir and returns its
// path.
func WritePair(dir string, r models.ComparisonResult, o Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := render(PairSummary(r, o.timestamp()), "EDI Comparison Report", o)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "edi_comparison_report"+o.ext())
	if err := filelock.AtomicWrite(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// bundleFiles renders the full report bundle for a batch: the final
// report plus one summary per pairing key, with deterministic names and
// ordering.
func bundleFiles(set *models.BatchResultSet, o Options) (names []string, contents map[string][]byte, err error) {
	contents = make(map[string][]byte)
	now := o.timestamp()

	final, err := render(Final(set, now), "EDI Comparison Final Report", o)
	if err != nil {
		return nil, nil, err
	}
	finalName := "final_report" + o.ext()
	names = append(names, finalName)
	contents[finalName] = final

	keys := make([]string, 0, len(set.Results))
	for key := range set.Results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		data, err := render(PairSummary(set.Results[key], now), "EDI Comparison Report", o)
		if err != nil {
			return nil, nil, err
		}
		name := key + "_summary" + o.ext()
		names = append(names, name)
		contents[name] = data
	}
	return names, contents, nil
}

// WriteBundle writes the batch report bundle into dir, holding the
// directory lock for the duration. It returns the written paths in
// bundle order.
func WriteBundle(dir string, set *models.BatchResultSet, o Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	names, contents, err := bundleFiles(set, o)
	if err != nil {
		return nil, err
	}

	var paths []string
	lock := filelock.New(filepath.Join(dir, lockFile))
	err = lock.WithLock(func() error {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if err := filelock.AtomicWrite(path, contents[name], 0644); err != nil {
				return err
			}
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// WriteZip packages the batch report bundle into a single zip archive
// at path, written atomically.
func WriteZip(path string, set *models.BatchResultSet, o Options) error {
	names, contents, err := bundleFiles(set, o)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(contents[name]); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	return filelock.AtomicWrite(path, buf.Bytes(), 0644)
}
