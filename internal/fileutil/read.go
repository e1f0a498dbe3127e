package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/edimatch/internal/models"
)

// lineBreaks removes CRLF pairs and bare LF. This matches the
// normalization the parser requires as a precondition: after stripping,
// the segment terminator "~" is the only intra-segment break present.
var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "")

// StripLineBreaks normalizes raw document text for parsing.
func StripLineBreaks(text string) string {
	return lineBreaks.Replace(text)
}

// ReadDocument reads the file at path and returns it as a
// NamedDocument keyed by its base filename, with line breaks stripped.
func ReadDocument(path string) (models.NamedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.NamedDocument{}, fmt.Errorf("failed to read document: %w", err)
	}
	return models.NamedDocument{
		Name: filepath.Base(path),
		Text: StripLineBreaks(string(data)),
	}, nil
}
