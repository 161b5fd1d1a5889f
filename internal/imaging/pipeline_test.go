package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// whiteImage returns a fully white, fully opaque canvas.
func whiteImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fillRect(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func pngBytes(t *testing.T, img image.Image) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

func TestContentBounds_CropsToVisibleSquare(t *testing.T) {
	img := whiteImage(100, 80)
	fillRect(img, image.Rect(20, 15, 30, 25), color.NRGBA{R: 200, G: 30, B: 30, A: 255})

	box := ContentBounds(img)

	assert.Equal(t, image.Rect(20, 15, 30, 25), box)
}

func TestContentBounds_AllWhiteFallsBackToFullBounds(t *testing.T) {
	img := whiteImage(40, 30)

	box := ContentBounds(img)

	assert.Equal(t, img.Bounds(), box)
}

func TestContentBounds_ThresholdBoundaries(t *testing.T) {
	img := whiteImage(10, 10)

	// A channel value of exactly WhiteThreshold is content, one above is not
	img.SetNRGBA(3, 3, color.NRGBA{R: WhiteThreshold, G: WhiteThreshold, B: WhiteThreshold, A: 255})
	assert.Equal(t, image.Rect(3, 3, 4, 4), ContentBounds(img))

	img = whiteImage(10, 10)
	img.SetNRGBA(3, 3, color.NRGBA{R: WhiteThreshold + 1, G: WhiteThreshold + 1, B: WhiteThreshold + 1, A: 255})
	assert.Equal(t, img.Bounds(), ContentBounds(img))
}

func TestContentBounds_TransparentPixelsAreBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	// Dark but nearly transparent: still background
	img.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 10, B: 10, A: AlphaThreshold - 1})
	assert.Equal(t, img.Bounds(), ContentBounds(img))

	// Same color at the threshold alpha is content
	img.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 10, B: 10, A: AlphaThreshold})
	assert.Equal(t, image.Rect(5, 5, 6, 6), ContentBounds(img))
}

func TestProcess_CropsAndEncodes(t *testing.T) {
	src := whiteImage(100, 80)
	fillRect(src, image.Rect(20, 15, 30, 25), color.NRGBA{R: 40, G: 90, B: 160, A: 255})

	p := NewPipeline(logrus.New(), "")
	result, err := p.Process("foto-rumah.png", pngBytes(t, src))

	require.NoError(t, err)
	assert.Equal(t, "foto-rumah.jpg", result.Name)
	assert.Equal(t, "image/jpeg", result.ContentType)
	assert.Equal(t, 10, result.Width)
	assert.Equal(t, 10, result.Height)

	decoded, format, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 10, 10), decoded.Bounds())
}

func TestProcess_AllWhiteKeepsFullDimensions(t *testing.T) {
	p := NewPipeline(logrus.New(), "")
	result, err := p.Process("blank.png", pngBytes(t, whiteImage(40, 30)))

	require.NoError(t, err)
	assert.Equal(t, 40, result.Width)
	assert.Equal(t, 30, result.Height)
}

func TestProcess_DecodeFailure(t *testing.T) {
	p := NewPipeline(logrus.New(), "")
	_, err := p.Process("broken.jpg", strings.NewReader("definitely not an image"))

	assert.ErrorIs(t, err, ErrDecode)
}

func TestProcess_Deterministic(t *testing.T) {
	src := whiteImage(60, 60)
	fillRect(src, image.Rect(10, 10, 50, 50), color.NRGBA{R: 120, G: 60, B: 20, A: 255})

	p := NewPipeline(logrus.New(), "")
	first, err := p.Process("a.png", pngBytes(t, src))
	require.NoError(t, err)
	second, err := p.Process("a.png", pngBytes(t, src))
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestBlend_FixedOpacity(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fillRect(dst, dst.Bounds(), color.NRGBA{A: 255})

	overlay := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fillRect(overlay, overlay.Bounds(), color.NRGBA{R: 255, A: 255})

	blend(dst, overlay, image.Pt(1, 1))

	// 60% of the overlay red over black
	assert.Equal(t, color.NRGBA{R: 153, A: 255}, dst.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{R: 153, A: 255}, dst.NRGBAAt(2, 2))
	// Pixels outside the overlay footprint are untouched
	assert.Equal(t, color.NRGBA{A: 255}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{A: 255}, dst.NRGBAAt(3, 3))
}

func TestBlend_TransparentOverlayPixelsAreSkipped(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fillRect(dst, dst.Bounds(), color.NRGBA{R: 9, G: 9, B: 9, A: 255})

	overlay := image.NewNRGBA(image.Rect(0, 0, 2, 2)) // all transparent

	blend(dst, overlay, image.Pt(0, 0))

	assert.Equal(t, color.NRGBA{R: 9, G: 9, B: 9, A: 255}, dst.NRGBAAt(0, 0))
}

func TestProcess_WithWatermark(t *testing.T) {
	watermark := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	fillRect(watermark, watermark.Bounds(), color.NRGBA{R: 10, G: 10, B: 10, A: 255})

	src := whiteImage(120, 100)
	fillRect(src, image.Rect(0, 0, 100, 100), color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	p := &Pipeline{logger: logrus.New(), watermark: watermark}
	result, err := p.Process("with-mark.png", pngBytes(t, src))

	require.NoError(t, err)
	assert.Equal(t, 100, result.Width)
	assert.Equal(t, 100, result.Height)

	decoded, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)

	// Watermark sits at (3,3) with width 25, scaled height 12 (25% of 100,
	// 3% margin). Inside: 60% dark gray over gray. Far outside: plain gray.
	// JPEG is lossy, so compare loosely.
	inside := color.NRGBAModel.Convert(decoded.At(10, 8)).(color.NRGBA)
	outside := color.NRGBAModel.Convert(decoded.At(80, 80)).(color.NRGBA)
	assert.InDelta(t, 46, int(inside.R), 6)
	assert.InDelta(t, 100, int(outside.R), 6)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		original string
		expected string
	}{
		{"rumah.png", "rumah.jpg"},
		{"foto.webp", "foto.jpg"},
		{"no-extension", "no-extension.jpg"},
		{"dir/nested/photo.jpeg", "photo.jpg"},
		{"dots.in.name.png", "dots.in.name.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, OutputName(tt.original))
	}
}
