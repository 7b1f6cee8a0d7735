package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">jane@x.com </w:t></w:r><w:r><w:tab/><w:t>555-123-4567</w:t></w:r></w:p>
<w:p><w:r><w:t>SKILLS</w:t></w:r></w:p>
<w:p><w:r><w:t>Go, SQL</w:t><w:br/><w:t>Leadership</w:t></w:r></w:p>
</w:body>
</w:document>`

// buildDocx assembles the smallest package the docx reader accepts.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            documentXML,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"resume.txt", FormatText},
		{"README.md", FormatText},
		{"resume.PDF", FormatPDF},
		{"resume.docx", FormatDOCX},
		{"resume.htm", FormatHTML},
		{"resume.doc", FormatUnknown},
		{"resume", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.filename))
		})
	}
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("resume.txt", []byte("Jane Doe\njane@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@x.com", text)
}

func TestExtractText_InvalidUTF8Dropped(t *testing.T) {
	text, err := ExtractText("resume.txt", []byte("Jane\xff Doe"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", text)
}

func TestExtractText_BinaryTextRejected(t *testing.T) {
	_, err := ExtractText("resume.txt", []byte("%PDF-1.7 not really text"))

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, FormatText, extractErr.Format)
}

func TestExtractText_LegacyDoc(t *testing.T) {
	_, err := ExtractText("resume.doc", []byte("whatever"))

	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".doc", unsupported.Extension)
	assert.Contains(t, err.Error(), ".docx")
}

func TestExtractText_UnknownExtension(t *testing.T) {
	_, err := ExtractText("resume.rtf", []byte("{\\rtf1}"))

	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".rtf", unsupported.Extension)
}

func TestExtractText_MalformedPDF(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("%PDF-1.4\nthis is not a real pdf"))

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, FormatPDF, extractErr.Format)
}

func TestExtractText_DOCX(t *testing.T) {
	text, err := ExtractText("resume.docx", buildDocx(t, testDocumentXML))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane@x.com \t555-123-4567\nSKILLS\nGo, SQL\nLeadership\n", text)
}

func TestExtractText_DOCXNotAZip(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("plain bytes"))

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, FormatDOCX, extractErr.Format)
}

func TestParagraphsFromWordXML_Malformed(t *testing.T) {
	_, err := paragraphsFromWordXML("<w:document><w:p>")
	assert.Error(t, err)
}

func TestExtractText_HTML(t *testing.T) {
	html := `<html><head><style>h1 { color: red; }</style><script>alert("x")</script></head>
<body><h1>Jane Doe</h1><p>jane@x.com<br>555-123-4567</p><h2>Skills</h2><ul><li>Go</li><li>SQL</li></ul></body></html>`

	text, err := ExtractText("resume.html", []byte(html))
	require.NoError(t, err)

	cleaned := CleanText(text)
	assert.Equal(t, "Jane Doe\njane@x.com\n555-123-4567\nSkills\n• Go\n• SQL", cleaned)
	assert.NotContains(t, cleaned, "alert")
	assert.NotContains(t, cleaned, "color")
}

func TestIngestBytes_DOCX(t *testing.T) {
	text, metadata, err := IngestBytes("jane.docx", buildDocx(t, testDocumentXML))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane@x.com 555-123-4567\nSKILLS\nGo, SQL\nLeadership", text)
	assert.Equal(t, FormatDOCX, metadata.Format)
}

func TestIsBinaryData(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{"empty", "", false},
		{"plain text", "Jane Doe\nEngineer\tGo", false},
		{"pdf magic", "%PDF-1.7", true},
		{"zip magic", "PK\x03\x04rest", true},
		{"mostly control bytes", "\x01\x02\x03\x04ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBinaryData(tt.content))
		})
	}
}
