package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressImage_ResizesOversizedJPEG(t *testing.T) {
	data := encodeJPEG(t, testImage(3000, 1000))

	out, err := CompressImage(data)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), ImageMaxEdge)
	assert.LessOrEqual(t, img.Bounds().Dy(), ImageMaxEdge)
	assert.LessOrEqual(t, int64(len(out)), int64(ImageTargetBytes))
}

func TestCompressImage_SmallImagePassesThrough(t *testing.T) {
	data := encodeJPEG(t, testImage(400, 300))

	out, err := CompressImage(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestCompressImage_PreservesPNGFormat(t *testing.T) {
	data := encodePNG(t, testImage(2500, 200))

	out, err := CompressImage(data)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), ImageMaxEdge)
}

func TestCompressImage_RejectsGarbage(t *testing.T) {
	_, err := CompressImage([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestThumbnail(t *testing.T) {
	data := encodePNG(t, testImage(800, 600))

	out, err := Thumbnail(data, 240)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), 240)
	assert.LessOrEqual(t, img.Bounds().Dy(), 240)
}

func TestCompressImageTo_ConfiguredEdge(t *testing.T) {
	data := encodeJPEG(t, testImage(400, 200))

	out, err := CompressImageTo(data, 1<<20, 100)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 100)
	assert.LessOrEqual(t, img.Bounds().Dy(), 100)
}
