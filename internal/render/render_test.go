package render

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

func newTestRenderer() Renderer {
	return NewRenderer(logger.Nop())
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestRender_PlainTextPassesThrough(t *testing.T) {
	r := newTestRenderer()

	out, contentType, err := r.Render(context.Background(), "text/plain", []byte("hello world"))

	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), out)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
}

func TestRender_PNGRoundTrip(t *testing.T) {
	r := newTestRenderer()

	out, contentType, err := r.Render(context.Background(), "image/png", encodePNG(t, 32, 16))

	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestRender_JPEGRoundTrip(t *testing.T) {
	r := newTestRenderer()

	out, contentType, err := r.Render(context.Background(), "image/jpeg", encodeJPEG(t, 20, 20))

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestRender_OversizedImageIsDownscaled(t *testing.T) {
	r := newTestRenderer()

	out, _, err := r.Render(context.Background(), "image/png", encodePNG(t, maxPreviewEdge*2, 100))

	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), maxPreviewEdge)
	assert.LessOrEqual(t, img.Bounds().Dy(), maxPreviewEdge)
}

func TestRender_CorruptImageFails(t *testing.T) {
	r := newTestRenderer()

	_, _, err := r.Render(context.Background(), "image/png", []byte("not a png"))

	require.Error(t, err)
}

func TestRender_CorruptPDFFails(t *testing.T) {
	r := newTestRenderer()

	_, _, err := r.Render(context.Background(), "application/pdf", []byte("not a pdf"))

	require.Error(t, err)
}

func TestRender_UnsupportedType(t *testing.T) {
	r := newTestRenderer()

	for _, contentType := range []string{"application/zip", "application/msword", "", "image/gif"} {
		_, _, err := r.Render(context.Background(), contentType, []byte("data"))
		require.ErrorIs(t, err, ErrRenderUnsupported, "content type %q", contentType)
	}
}

func TestDownscale_SmallImageUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	out := downscale(img, maxPreviewEdge)

	assert.Equal(t, img, out)
}

func TestDownscale_PreservesAspectRatio(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	out := downscale(img, 100)

	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}
