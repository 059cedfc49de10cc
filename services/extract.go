package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentFormat identifies a supported upload format.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatPPTX DocumentFormat = "pptx"
)

// Document is a transient upload: raw bytes plus the declared format. It is
// never persisted; it only lives for the duration of one processing request.
type Document struct {
	Filename string
	Format   DocumentFormat
	Data     []byte
}

// DetectFormat maps a filename extension to a DocumentFormat. Anything but
// .pdf/.pptx is rejected before any extraction or chunking happens.
func DetectFormat(filename string) (DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".pptx":
		return FormatPPTX, nil
	default:
		return "", fmt.Errorf("%w: %q (only .pdf and .pptx are accepted)", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ExtractText converts a Document into plain text. Pages and slides are
// separated by a blank line so the chunker can recover logical breaks.
func ExtractText(doc Document) (string, error) {
	switch doc.Format {
	case FormatPDF:
		return extractPDF(doc.Data)
	case FormatPPTX:
		return extractPPTX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal, the rest of the
			// document is still usable.
			continue
		}
		if s := strings.TrimSpace(content); s != "" {
			pages = append(pages, s)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTX reads the OOXML zip directly: find the slide parts and pull
// the <a:t> text runs, which covers text boxes and table cells alike.
func extractPPTX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	type slideFile struct {
		num  int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range zr.File {
		m := slidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slideFile{num: n, file: f})
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("%w: no slides found", ErrCorruptDocument)
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var texts []string
	for _, s := range slides {
		text, err := extractSlideXML(s.file)
		if err != nil {
			return "", fmt.Errorf("%w: slide %d: %v", ErrCorruptDocument, s.num, err)
		}
		if text != "" {
			texts = append(texts, text)
		}
	}

	return strings.Join(texts, "\n\n"), nil
}

func extractSlideXML(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var buf strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "t" { // <a:t>
				var text string
				if err := decoder.DecodeElement(&text, &se); err == nil {
					buf.WriteString(text)
				}
			}
		case xml.EndElement:
			if se.Name.Local == "p" { // paragraph break within the slide
				buf.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(buf.String()), nil
}
