package icon

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// MasterSize is the edge length of the prepared master image. The ICNS
	// encoder derives every smaller representation from this single raster.
	MasterSize = 1024

	// DefaultFillRatio is the fraction of the crop square's side the
	// detected content should occupy.
	DefaultFillRatio = 0.64
)

// Prepare crops src to a square centered on its opaque content and resizes
// the result to the MasterSize×MasterSize RGBA master.
//
// The crop side is chosen so the content fills fillRatio of it, bounded by
// the image's smaller dimension. Values of fillRatio outside (0,1] are the
// caller's responsibility.
func Prepare(src image.Image, fillRatio float64) *image.NRGBA {
	rgba := imaging.Clone(src)
	w := rgba.Rect.Dx()
	h := rgba.Rect.Dy()

	bbox, ok := AlphaBounds(rgba)
	crop := CropBounds(w, h, bbox, ok, fillRatio)

	square := imaging.Crop(rgba, crop)
	if visible := crop.Intersect(image.Rect(0, 0, w, h)); visible != crop {
		// Content wider than the image's smaller dimension pushes the crop
		// square past the edge. Pad the clipped part with transparency so
		// the master stays square instead of stretching.
		canvas := imaging.New(crop.Dx(), crop.Dy(), color.NRGBA{})
		square = imaging.Paste(canvas, square, visible.Min.Sub(crop.Min))
	}

	return imaging.Resize(square, MasterSize, MasterSize, imaging.Lanczos)
}

// AlphaBounds returns the minimal rectangle containing every pixel with a
// non-zero alpha value. ok is false when the image is fully transparent.
func AlphaBounds(img *image.NRGBA) (bbox image.Rectangle, ok bool) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
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
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// CropBounds computes the square crop region for a width×height image whose
// opaque content lies in bbox (hasContent reports whether any was found).
// The square always lies within the image bounds when the content itself
// fits the smaller dimension; it is translated, never shrunk, to get there.
func CropBounds(width, height int, bbox image.Rectangle, hasContent bool, fillRatio float64) image.Rectangle {
	minDim := min(width, height)

	// A fully opaque image gets the same fixed center crop as a fully
	// transparent one; cropping to the whole image would look zoomed out.
	if !hasContent || bbox == image.Rect(0, 0, width, height) {
		side := max(1, int(float64(minDim)*fillRatio))
		return centeredSquare(width, height, side)
	}

	contentW := max(1, bbox.Dx())
	contentH := max(1, bbox.Dy())
	contentSide := max(contentW, contentH)

	side := min(minDim, int(float64(contentSide)/fillRatio))
	side = max(side, contentSide)

	// Centroid and half-side land on half-pixel boundaries; ties round to
	// the even coordinate.
	centerX := float64(bbox.Min.X+bbox.Max.X) / 2
	centerY := float64(bbox.Min.Y+bbox.Max.Y) / 2
	left := int(math.RoundToEven(centerX - float64(side)/2))
	top := int(math.RoundToEven(centerY - float64(side)/2))
	left = max(0, min(width-side, left))
	top = max(0, min(height-side, top))
	return image.Rect(left, top, left+side, top+side)
}

func centeredSquare(width, height, side int) image.Rectangle {
	left := (width - side) / 2
	top := (height - side) / 2
	return image.Rect(left, top, left+side, top+side)
}
