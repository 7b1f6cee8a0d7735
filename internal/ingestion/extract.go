package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format names a supported resume file format
type Format string

const (
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatHTML    Format = "html"
	FormatUnknown Format = "unknown"
)

const (
	// MinExtractedTextLength is the minimum text length for a binary format extraction to count as successful
	MinExtractedTextLength = 20
	// BinarySampleSize is the number of bytes to sample for binary detection
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters that indicates binary data
	BinaryThreshold = 0.3
)

const legacyDocMessage = "legacy .doc files are not supported; save the document as .docx, PDF or plain text and upload it again"

// DetectFormat maps a filename extension to a Format
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md":
		return FormatText
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatUnknown
	}
}

// ExtractText extracts plain text from a TXT, PDF, DOCX or HTML resume
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".doc" {
		return "", &UnsupportedFormatError{Extension: ext, Message: legacyDocMessage}
	}

	switch DetectFormat(filename) {
	case FormatText:
		if IsBinaryData(string(data)) {
			return "", &ExtractionError{Format: FormatText, Message: "file content appears to be binary"}
		}
		return strings.ToValidUTF8(string(data), ""), nil
	case FormatPDF:
		return requireText(FormatPDF)(extractPDF(data))
	case FormatDOCX:
		return requireText(FormatDOCX)(extractDOCX(data))
	case FormatHTML:
		return extractHTML(data)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// requireText rejects extractions that produced too little text to be a resume.
func requireText(format Format) func(string, error) (string, error) {
	return func(text string, err error) (string, error) {
		if err != nil {
			return "", err
		}
		if len(strings.TrimSpace(text)) < MinExtractedTextLength {
			return "", &ExtractionError{Format: format, Message: "extracted text is too short; the file may be scanned or image-only"}
		}
		return text, nil
	}
}

// extractPDF reads the plain text of every page.
func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &ExtractionError{Format: FormatPDF, Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to open PDF", Cause: err}
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// extractDOCX reads word/document.xml and returns one line per paragraph.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to open DOCX", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	text, err := paragraphsFromWordXML(doc.Editable().GetContent())
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to read document body", Cause: err}
	}
	return text, nil
}

// paragraphsFromWordXML walks WordprocessingML, keeping w:t runs and breaking lines at w:p and w:br.
func paragraphsFromWordXML(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var b strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

var htmlBlockElements = "p, div, section, article, header, footer, h1, h2, h3, h4, h5, h6, li, tr, dt, dd, blockquote"

// extractHTML renders an HTML resume as text with one line per block element.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find(htmlBlockElements).AppendHtml("\n")

	return doc.Find("body").Text(), nil
}

// IsBinaryData checks if content appears to be binary (PDF/ZIP markers or control bytes)
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}
	if strings.HasPrefix(content, "%PDF-") {
		return true
	}
	if strings.HasPrefix(content, "PK\x03\x04") {
		return true
	}

	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
