// =======================
// vash/output.go
// =======================

package vash

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
)

// StdioName is the filename meaning standard input or output.
const StdioName = "-"

// ParseFormat accepts the names taken by --format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// FormatForFilename guesses the format from the extension. "-" is PNG.
func FormatForFilename(name string) (Format, error) {
	if name == StdioName {
		return FormatPNG, nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "cannot guess a format for %q", name)
}

// OutputParameters describes where and how a render is written.
type OutputParameters struct {
	Filename string
	Format   Format
	Width    int
	Height   int
}

// NewOutputParameters validates the image size and settles the format. An
// empty format is guessed from filename.
func NewOutputParameters(filename, format string, width, height int) (*OutputParameters, error) {
	if width < MinImageSize || height < MinImageSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "image size %dx%d is below %dx%d", width, height, MinImageSize, MinImageSize)
	}

	var (
		f   Format
		err error
	)
	if format != "" {
		f, err = ParseFormat(format)
	} else {
		f, err = FormatForFilename(filename)
	}
	if err != nil {
		return nil, err
	}
	return &OutputParameters{Filename: filename, Format: f, Width: width, Height: height}, nil
}

// IsStdout reports whether the image goes to standard output.
func (op *OutputParameters) IsStdout() bool {
	return op.Filename == StdioName
}

// PixelsToImage wraps a packed B,G,R buffer as an RGBA image.
func PixelsToImage(pix []byte, w, h int) (*image.RGBA, error) {
	if len(pix) != w*h*3 {
		return nil, errors.Wrapf(ErrInvalidArgument, "pixel buffer has %d bytes, want %d", len(pix), w*h*3)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := (y*w + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: pix[src+2], G: pix[src+1], B: pix[src], A: 0xff})
		}
	}
	return img, nil
}

// EncodeImage writes a packed B,G,R buffer in format f.
func EncodeImage(w io.Writer, f Format, pix []byte, width, height int) error {
	img, err := PixelsToImage(pix, width, height)
	if err != nil {
		return err
	}

	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", string(f))
	}
	return errors.Wrapf(err, "encoding %s", f)
}

// Render builds the tree for (algo, salt, data) and renders it at w×h.
func Render(algo Algorithm, salt []byte, data io.Reader, w, h int) ([]byte, *Tree, error) {
	tp, err := NewTreeParameters(algo, salt, data)
	if err != nil {
		return nil, nil, err
	}
	tree, err := NewTree(tp)
	if err != nil {
		return nil, nil, err
	}
	ip, err := NewImageParameters(w, h)
	if err != nil {
		return nil, nil, err
	}
	tree.SetGenerationParameters(ip)
	pix, err := tree.GenerateCurrentFrame()
	if err != nil {
		return nil, nil, err
	}
	return pix, tree, nil
}

// CreateImage hashes data with the default salt and returns the picture.
func CreateImage(algo Algorithm, data []byte, w, h int) (image.Image, error) {
	pix, _, err := Render(algo, nil, bytes.NewReader(data), w, h)
	if err != nil {
		return nil, err
	}
	return PixelsToImage(pix, w, h)
}
