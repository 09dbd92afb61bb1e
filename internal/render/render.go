// Package render produces in-browser previews of stored files.
//
// The renderer is a deliberately narrow collaborator of the file service:
// it receives the file's canonical content type and raw bytes and returns
// the preview payload with its own content type. The access policy has
// already run by the time a renderer is invoked; this package only cares
// about formats.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/ledongthuc/pdf"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// ErrRenderUnsupported is returned for content types outside the preview
// allow-list (plain text, JPEG, PNG, PDF).
var ErrRenderUnsupported = errors.New("rendering is not supported for this content type")

// maxPreviewEdge bounds the longer edge of rendered image previews.
// Larger images are downscaled with a cheap nearest-neighbour pass.
const maxPreviewEdge = 1600

// Renderer turns a stored file into preview bytes.
type Renderer interface {
	// Render returns the preview payload and its content type, or
	// ErrRenderUnsupported when the input type has no preview form.
	Render(ctx context.Context, contentType string, data []byte) ([]byte, string, error)
}

// renderer is the default Renderer implementation.
type renderer struct {
	logger *logger.Logger
}

// NewRenderer constructs the default preview renderer.
func NewRenderer(logger *logger.Logger) Renderer {
	logger.Debug().Msg("creating preview renderer")
	return &renderer{logger: logger}
}

// Render dispatches on the canonical content type:
//   - text/plain passes through as UTF-8 text;
//   - image/jpeg and image/png are decoded, downscaled when oversized,
//     and re-encoded, which also rejects corrupt image bytes;
//   - application/pdf is validated as a parseable PDF and passed through;
//   - anything else fails with ErrRenderUnsupported.
func (r *renderer) Render(ctx context.Context, contentType string, data []byte) ([]byte, string, error) {
	switch contentType {
	case "text/plain":
		return data, "text/plain; charset=utf-8", nil
	case "image/jpeg", "image/png":
		return r.renderImage(ctx, contentType, data)
	case "application/pdf":
		return r.renderPDF(ctx, data)
	default:
		return nil, "", ErrRenderUnsupported
	}
}

func (r *renderer) renderImage(ctx context.Context, contentType string, data []byte) ([]byte, string, error) {
	log := logger.FromContext(ctx)

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Err(err).Str("content_type", contentType).Msg("image decoding failed")
		return nil, "", fmt.Errorf("image decoding failed: %w", err)
	}

	img = downscale(img, maxPreviewEdge)

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("png encoding failed: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", fmt.Errorf("jpeg encoding failed: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

func (r *renderer) renderPDF(ctx context.Context, data []byte) ([]byte, string, error) {
	log := logger.FromContext(ctx)

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Err(err).Msg("pdf parsing failed")
		return nil, "", fmt.Errorf("pdf parsing failed: %w", err)
	}
	if doc.NumPage() < 1 {
		return nil, "", fmt.Errorf("pdf parsing failed: document has no pages")
	}

	// browsers render PDFs natively; validated bytes pass through
	return data, "application/pdf", nil
}

// downscale shrinks img so its longer edge is at most maxEdge, sampling
// source pixels directly. Returns img unchanged when already small enough.
func downscale(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := max(w, h)
	if longest <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(longest)
	dw, dh := int(float64(w)*scale), int(float64(h)*scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		srcY := bounds.Min.Y + y*h/dh
		for x := 0; x < dw; x++ {
			srcX := bounds.Min.X + x*w/dw
			dst.Set(x, y, img.At(srcX, srcY))
		}
	}

	return dst
}
