package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("lecture.pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = DetectFormat("SLIDES.PPTX")
	require.NoError(t, err)
	assert.Equal(t, FormatPPTX, f)

	_, err = DetectFormat("notes.docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DetectFormat("noextension")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractPDFCorrupt(t *testing.T) {
	_, err := ExtractText(Document{
		Filename: "broken.pdf",
		Format:   FormatPDF,
		Data:     []byte("this is not a pdf at all"),
	})
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

// buildPPTX assembles a minimal OOXML presentation in memory: one XML part
// per slide, text runs in <a:t> elements.
func buildPPTX(t *testing.T, slides map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range slides {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func pptxSlide(text string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody>
    <a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>
  </p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
}

func TestExtractPPTXSlidesInOrder(t *testing.T) {
	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide2.xml":  pptxSlide("Second slide"),
		"ppt/slides/slide1.xml":  pptxSlide("First slide"),
		"ppt/slides/slide10.xml": pptxSlide("Tenth slide"),
		"ppt/presentation.xml":   "<p:presentation/>",
	})

	text, err := ExtractText(Document{Filename: "deck.pptx", Format: FormatPPTX, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "First slide\n\nSecond slide\n\nTenth slide", text)
}

func TestExtractPPTXTableCells(t *testing.T) {
	table := `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:graphicFrame><a:tbl><a:tr>
    <a:tc><a:txBody><a:p><a:r><a:t>cell one</a:t></a:r></a:p></a:txBody></a:tc>
    <a:tc><a:txBody><a:p><a:r><a:t>cell two</a:t></a:r></a:p></a:txBody></a:tc>
  </a:tr></a:tbl></p:graphicFrame></p:spTree></p:cSld>
</p:sld>`

	data := buildPPTX(t, map[string]string{"ppt/slides/slide1.xml": table})
	text, err := ExtractText(Document{Filename: "deck.pptx", Format: FormatPPTX, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "cell one\ncell two", text)
}

func TestExtractPPTXEmptySlidesYieldEmptyText(t *testing.T) {
	empty := `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree/></p:cSld>
</p:sld>`

	data := buildPPTX(t, map[string]string{"ppt/slides/slide1.xml": empty})
	text, err := ExtractText(Document{Filename: "deck.pptx", Format: FormatPPTX, Data: data})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractPPTXCorrupt(t *testing.T) {
	_, err := ExtractText(Document{
		Filename: "broken.pptx",
		Format:   FormatPPTX,
		Data:     []byte("definitely not a zip archive"),
	})
	assert.ErrorIs(t, err, ErrCorruptDocument)

	// A valid zip with no slide parts is still unusable.
	data := buildPPTX(t, map[string]string{"ppt/presentation.xml": "<p:presentation/>"})
	_, err = ExtractText(Document{Filename: "empty.pptx", Format: FormatPPTX, Data: data})
	assert.ErrorIs(t, err, ErrCorruptDocument)
}
