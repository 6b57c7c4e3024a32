package image // package image validates and re-encodes uploaded pictures

import (
	"bytes"
	"errors"
	"fmt"
	gimage "image"
	_ "image/gif" // register the GIF decoder with image.Decode

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WEBP decoder
)

// Limits applied to every upload before any processing happens.  Dimensions
// are checked against the decoded pixels, never the container headers.
const (
	MaxBytes = 5 << 20 // 5MB upload ceiling
	MinSide  = 100     // px
	MaxSide  = 4000    // px

	profileSide = 400  // profile pictures become square thumbnails
	generalSide = 1920 // general images are bounded to this box
)

// Validation errors returned by Process.  The handler maps each of these to
// a 400 with the error text as the message.
var (
	ErrTooLarge   = fmt.Errorf("image exceeds %d bytes", MaxBytes)
	ErrBadFormat  = errors.New("unsupported image format, use JPEG, PNG, WEBP or GIF")
	ErrTooSmall   = fmt.Errorf("image must be at least %dpx on each side", MinSide)
	ErrOversized  = fmt.Errorf("image must be at most %dpx on each side", MaxSide)
	ErrBadVariant = errors.New("unknown upload type, use profile or general")
)

var allowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
}

// Metadata describes the processed image as stored.
type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// Process validates raw upload bytes and re-encodes them as WEBP according
// to the requested variant.  "profile" produces a 400x400 center crop;
// "general" bounds the image to 1920x1920 preserving aspect ratio and never
// enlarges.  Re-encoding from decoded pixels also strips whatever metadata
// the original file carried.
func Process(raw []byte, variant string) ([]byte, Metadata, error) {
	if variant != "profile" && variant != "general" {
		return nil, Metadata{}, ErrBadVariant
	}
	if len(raw) > MaxBytes {
		return nil, Metadata{}, ErrTooLarge
	}

	src, format, err := gimage.Decode(bytes.NewReader(raw))
	if err != nil || !allowedFormats[format] {
		return nil, Metadata{}, ErrBadFormat
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < MinSide || h < MinSide {
		return nil, Metadata{}, ErrTooSmall
	}
	if w > MaxSide || h > MaxSide {
		return nil, Metadata{}, ErrOversized
	}

	var out gimage.Image
	if variant == "profile" {
		out = imaging.Fill(src, profileSide, profileSide, imaging.Center, imaging.Lanczos)
	} else if w > generalSide || h > generalSide {
		out = imaging.Fit(src, generalSide, generalSide, imaging.Lanczos)
	} else {
		out = src
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, out, &webp.Options{Quality: 82}); err != nil {
		return nil, Metadata{}, fmt.Errorf("encode webp: %w", err)
	}

	ob := out.Bounds()
	meta := Metadata{
		Width:  ob.Dx(),
		Height: ob.Dy(),
		Format: "webp",
		Size:   buf.Len(),
	}
	return buf.Bytes(), meta, nil
}
