package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestStripLineBreaks verifies CRLF and LF removal. A bare CR is left
// alone: only \r\n and \n count as line breaks in the input files this
// tool receives.
func TestStripLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no breaks", "ISA*00~GS*PO~", "ISA*00~GS*PO~"},
		{"unix newlines", "ISA*00~\nGS*PO~\n", "ISA*00~GS*PO~"},
		{"windows newlines", "ISA*00~\r\nGS*PO~\r\n", "ISA*00~GS*PO~"},
		{"mixed newlines", "ISA*00~\r\nGS*PO~\n", "ISA*00~GS*PO~"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripLineBreaks(tt.in); got != tt.want {
				t.Errorf("StripLineBreaks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestReadDocument verifies the base filename and stripped text.
func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order_aaa111.txt")
	if err := os.WriteFile(path, []byte("ISA*00~\r\nGS*PO~\r\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if doc.Name != "order_aaa111.txt" {
		t.Errorf("Name = %q, want base filename", doc.Name)
	}
	if doc.Text != "ISA*00~GS*PO~" {
		t.Errorf("Text = %q, want stripped content", doc.Text)
	}
}

// TestReadDocumentMissing verifies the wrapped error on absent files.
func TestReadDocumentMissing(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("ReadDocument() error = nil, want failure")
	}
}

// TestScanDocuments verifies extension filtering and sorted order.
func TestScanDocuments(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b_doc.txt":  "ISA*00~",
		"a_doc.edi":  "ISA*00~",
		"c_doc.TXT":  "ISA*00~",
		"ignore.csv": "not,a,document",
		"readme":     "plain text",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	docs, err := ScanDocuments(dir, nil)
	if err != nil {
		t.Fatalf("ScanDocuments() error = %v", err)
	}

	want := []string{"a_doc.edi", "b_doc.txt", "c_doc.TXT"}
	if len(docs) != len(want) {
		t.Fatalf("ScanDocuments() returned %d documents, want %d", len(docs), len(want))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Errorf("docs[%d].Name = %q, want %q", i, docs[i].Name, name)
		}
	}
}

// TestScanDocumentsNotADirectory rejects file paths.
func TestScanDocumentsNotADirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := ScanDocuments(path, nil); err == nil {
		t.Error("ScanDocuments() error = nil, want failure for non-directory")
	}
}
