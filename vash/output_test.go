package vash

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestFormatForFilename(t *testing.T) {
	cases := map[string]Format{
		"-":             FormatPNG,
		"out.png":       FormatPNG,
		"OUT.PNG":       FormatPNG,
		"a/b/c.jpg":     FormatJPEG,
		"photo.jpeg":    FormatJPEG,
		"legacy.bmp":    FormatBMP,
		"dots.in.a.bmp": FormatBMP,
	}
	for name, want := range cases {
		got, err := FormatForFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"noext", "image.gif", "png"} {
		_, err := FormatForFilename(name)
		assert.True(t, errors.Is(err, ErrUnknownFormat), name)
	}
}

func TestNewOutputParameters(t *testing.T) {
	op, err := NewOutputParameters("x.png", "bmp", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, FormatBMP, op.Format)
	assert.False(t, op.IsStdout())

	op, err = NewOutputParameters(StdioName, "", 4, 4)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, op.Format)
	assert.True(t, op.IsStdout())

	_, err = NewOutputParameters("x.png", "", 3, 10)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = NewOutputParameters("x.png", "tiff", 10, 10)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	_, err = NewOutputParameters("x.gif", "", 10, 10)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestPixelsToImage(t *testing.T) {
	pix := []byte{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	img, err := PixelsToImage(pix, 2, 2)
	require.NoError(t, err)

	c := img.RGBAAt(1, 0)
	assert.Equal(t, [4]uint8{6, 5, 4, 0xff}, [4]uint8{c.R, c.G, c.B, c.A})
	c = img.RGBAAt(0, 1)
	assert.Equal(t, [4]uint8{9, 8, 7, 0xff}, [4]uint8{c.R, c.G, c.B, c.A})

	_, err = PixelsToImage(pix, 3, 3)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestEncodeImage(t *testing.T) {
	pix, _, err := Render(Algorithm11, nil, strings.NewReader("encode"), 24, 16)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeImage(&buf, FormatPNG, pix, 24, 16))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())

	// PNG is lossless, so the decoded pixels match the buffer.
	want, err := PixelsToImage(pix, 24, 16)
	require.NoError(t, err)
	r, g, b, _ := img.At(5, 7).RGBA()
	wr, wg, wb, _ := want.At(5, 7).RGBA()
	assert.Equal(t, [3]uint32{wr, wg, wb}, [3]uint32{r, g, b})

	buf.Reset()
	require.NoError(t, EncodeImage(&buf, FormatJPEG, pix, 24, 16))
	img, err = jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dy())

	buf.Reset()
	require.NoError(t, EncodeImage(&buf, FormatBMP, pix, 24, 16))
	img, err = bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())

	err = EncodeImage(&buf, Format("gif"), pix, 24, 16)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestCreateImage(t *testing.T) {
	img, err := CreateImage(Algorithm1, []byte("foo"), 64, 32)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	_, err = CreateImage("nope", []byte("foo"), 64, 32)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}
