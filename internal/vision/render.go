package vision

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"

	"github.com/counterfoil/teller/internal/workflow"
)

const (
	mimePNG  = "image/png"
	mimeJPEG = "image/jpeg"
	mimePDF  = "application/pdf"
)

// Normalize converts an intake payload into the PNG image every check
// operates on. JPEG input is re-encoded losslessly; PDF input is
// rendered at its first page via ImageMagick.
func Normalize(data []byte, contentType string) (workflow.Image, error) {
	switch contentType {
	case mimePNG:
		return workflow.Image{Data: data, MIME: mimePNG}, nil

	case mimeJPEG:
		decoded, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return workflow.Image{}, fmt.Errorf("decode jpeg: %w", err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, decoded); err != nil {
			return workflow.Image{}, fmt.Errorf("encode png: %w", err)
		}

		return workflow.Image{Data: buf.Bytes(), MIME: mimePNG}, nil

	case mimePDF:
		return renderPDF(data)

	default:
		return workflow.Image{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
}

// renderPDF renders the first page of a PDF to PNG. Intake validation
// rejects multi-page documents, so the first page is the cheque face.
func renderPDF(data []byte) (workflow.Image, error) {
	tempDir, err := os.MkdirTemp("", "teller-render-*")
	if err != nil {
		return workflow.Image{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "source.pdf")
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return workflow.Image{}, fmt.Errorf("write temp pdf: %w", err)
	}

	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return workflow.Image{}, fmt.Errorf("open pdf: %w", err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(renderConfig())
	if err != nil {
		return workflow.Image{}, fmt.Errorf("create renderer: %w", err)
	}

	page, err := pdfDoc.ExtractPage(1)
	if err != nil {
		return workflow.Image{}, fmt.Errorf("extract page: %w", err)
	}

	out, err := page.ToImage(renderer, nil)
	if err != nil {
		return workflow.Image{}, fmt.Errorf("render page: %w", err)
	}

	return workflow.Image{Data: out, MIME: mimePNG}, nil
}

func renderConfig() config.ImageConfig {
	return config.ImageConfig{
		Format: "png",
		DPI:    300,
		Options: map[string]any{
			"background": "white",
		},
	}
}

// encodeImage produces a data URI for a model call, normalizing to PNG
// first when needed.
func encodeImage(img workflow.Image) (string, error) {
	if img.MIME != mimePNG {
		normalized, err := Normalize(img.Data, img.MIME)
		if err != nil {
			return "", err
		}
		img = normalized
	}

	dataURI, err := encoding.EncodeImageDataURI(img.Data, document.PNG)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return dataURI, nil
}
