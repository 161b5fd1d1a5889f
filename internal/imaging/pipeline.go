// Package imaging converts uploaded listing photos into web-ready files:
// the visible content is cropped out of any blank margins, a brand watermark
// is stamped in the top-left corner and the result is re-encoded as JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for the formats admins actually upload
	_ "image/gif"
	_ "image/png"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDecode indicates the source bytes are not a decodable image. It is
	// fatal to that single file's conversion, never to the whole batch.
	ErrDecode = errors.New("imaging: cannot decode source image")
)

const (
	// WhiteThreshold is the channel value above which a pixel counts as
	// background white during bounding-box detection.
	WhiteThreshold = 245

	// AlphaThreshold is the alpha value below which a pixel counts as
	// background regardless of color.
	AlphaThreshold = 10

	// watermarkWidthRatio scales the watermark to this fraction of the
	// cropped image's width.
	watermarkWidthRatio = 0.25

	// watermarkMarginRatio offsets the watermark from the top-left corner
	// by this fraction of the cropped image's width, on both axes.
	watermarkMarginRatio = 0.03

	// watermarkOpacity is the fixed blend factor: the watermark contributes
	// this share of its own color at each of its pixels.
	watermarkOpacity = 0.6

	// OutputExtension is the canonical extension of converted photos.
	OutputExtension = ".jpg"

	// outputQuality is the JPEG quality factor on a 0-100 scale.
	outputQuality = 80
)

// Result is one converted photo, ready for object-store upload.
type Result struct {
	Name        string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Pipeline converts photos with a fixed watermark overlay. A Pipeline is
// immutable after construction and safe for concurrent use across a batch of
// uploads; each Process call is independent.
type Pipeline struct {
	logger    *logrus.Logger
	watermark image.Image
}

// NewPipeline creates a pipeline using the watermark at watermarkPath. A
// missing or undecodable watermark is logged and compositing is skipped,
// rather than failing every upload.
func NewPipeline(logger *logrus.Logger, watermarkPath string) *Pipeline {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	watermark, err := loadWatermark(watermarkPath)
	if err != nil {
		logger.WithError(err).WithField("path", watermarkPath).
			Warn("Watermark unavailable, photos will be converted without it")
	}

	return &Pipeline{
		logger:    logger,
		watermark: watermark,
	}
}

func loadWatermark(path string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("no watermark path configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode watermark: %w", err)
	}
	return img, nil
}

// Process converts a single photo: decode, crop to the visible bounding box,
// composite the watermark and encode as JPEG. The name of the result is the
// original base name with its extension replaced.
func (p *Pipeline) Process(originalName string, source io.Reader) (*Result, error) {
	src, format, err := image.Decode(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, originalName, err)
	}

	cropped := crop(toNRGBA(src))
	p.stampWatermark(cropped)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: outputQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", originalName, err)
	}

	bounds := cropped.Bounds()
	p.logger.WithFields(logrus.Fields{
		"name":          originalName,
		"source_format": format,
		"width":         bounds.Dx(),
		"height":        bounds.Dy(),
		"bytes":         buf.Len(),
	}).Debug("Converted photo")

	return &Result{
		Name:        OutputName(originalName),
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// OutputName replaces the file's extension with the pipeline's canonical one.
func OutputName(originalName string) string {
	base := filepath.Base(originalName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputExtension
}

// ContentBounds scans every pixel and returns the minimal rectangle holding
// all non-background content. A pixel is background when it is near-white
// (R, G and B all above WhiteThreshold) or near-transparent (alpha below
// AlphaThreshold). An image with no content returns its full bounds, so the
// crop never produces a zero-size output.
func ContentBounds(img *image.NRGBA) image.Rectangle {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
			if a < AlphaThreshold {
				continue
			}
			if r > WhiteThreshold && g > WhiteThreshold && b > WhiteThreshold {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// crop copies the content bounding box into a fresh buffer.
func crop(img *image.NRGBA) *image.NRGBA {
	box := ContentBounds(img)
	if box == img.Bounds() {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	xdraw.Draw(out, out.Bounds(), img, box.Min, xdraw.Src)
	return out
}

// stampWatermark composites the watermark onto the top-left corner of img at
// a fixed opacity. No-op when the watermark failed to load.
func (p *Pipeline) stampWatermark(img *image.NRGBA) {
	if p.watermark == nil {
		return
	}

	width := img.Bounds().Dx()
	wmWidth := int(float64(width) * watermarkWidthRatio)
	if wmWidth < 1 {
		wmWidth = 1
	}

	srcBounds := p.watermark.Bounds()
	wmHeight := wmWidth * srcBounds.Dy() / srcBounds.Dx()
	if wmHeight < 1 {
		wmHeight = 1
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, wmWidth, wmHeight))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), p.watermark, srcBounds, xdraw.Src, nil)

	margin := int(float64(width) * watermarkMarginRatio)
	blend(img, scaled, image.Pt(margin, margin))
}

// blend composites overlay onto dst at offset. Each overlay pixel contributes
// watermarkOpacity of its own color, weighted by its own alpha; pixels
// outside the overlay's footprint are untouched.
func blend(dst, overlay *image.NRGBA, offset image.Point) {
	dstBounds := dst.Bounds()
	for y := 0; y < overlay.Bounds().Dy(); y++ {
		for x := 0; x < overlay.Bounds().Dx(); x++ {
			dx, dy := offset.X+x, offset.Y+y
			if dx < dstBounds.Min.X || dx >= dstBounds.Max.X ||
				dy < dstBounds.Min.Y || dy >= dstBounds.Max.Y {
				continue
			}

			over := overlay.NRGBAAt(x, y)
			if over.A == 0 {
				continue
			}

			alpha := watermarkOpacity * float64(over.A) / 255
			under := dst.NRGBAAt(dx, dy)
			dst.SetNRGBA(dx, dy, color.NRGBA{
				R: mix(over.R, under.R, alpha),
				G: mix(over.G, under.G, alpha),
				B: mix(over.B, under.B, alpha),
				A: under.A,
			})
		}
	}
}

func mix(over, under uint8, alpha float64) uint8 {
	v := float64(over)*alpha + float64(under)*(1-alpha)
	return uint8(v + 0.5)
}

// toNRGBA returns img as a non-premultiplied RGBA buffer anchored at the
// origin, copying only when the source is some other format.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(out, out.Bounds(), img, bounds.Min, xdraw.Src)
	return out
}
