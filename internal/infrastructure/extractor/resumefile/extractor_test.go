package resumefile

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	doc := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Senior Python Engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Machine learning and statistics</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := New().Extract("resume.docx", buildDocx(t, doc))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "Senior Python Engineer") {
		t.Errorf("text missing heading: %q", got)
	}
	if !strings.Contains(got, "Machine learning and statistics") {
		t.Errorf("text missing body line: %q", got)
	}
	if strings.Contains(got, "<w:") {
		t.Errorf("text still contains markup: %q", got)
	}
}

func TestExtractDocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/other.xml"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := New().Extract("resume.docx", buf.Bytes()); err == nil {
		t.Fatal("expected error for docx without document.xml")
	}
}

func TestExtractPlainText(t *testing.T) {
	got, err := New().Extract("notes.txt", []byte("python\t \tdeveloper\n\n\nsql"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "python developer\nsql" {
		t.Errorf("collapsed text = %q", got)
	}
}

func TestExtractRejectsUnsupportedFormat(t *testing.T) {
	if _, err := New().Extract("resume.odt", []byte("data")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExtractRejectsEmptyFile(t *testing.T) {
	if _, err := New().Extract("resume.pdf", nil); err == nil {
		t.Fatal("expected error for empty file")
	}
}
