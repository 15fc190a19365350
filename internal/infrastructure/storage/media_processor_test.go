package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

func newTestProcessor(t *testing.T) (*MediaProcessor, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	return NewMediaProcessor(store), dir
}

func TestProcessImageWritesAllVariants(t *testing.T) {
	processor, dir := newTestProcessor(t)

	names, err := processor.ProcessImage(context.Background(), testPNG(t, 1000, 600), "kun", "png")
	require.NoError(t, err)
	require.Len(t, names, 4)

	expected := map[string][2]int{
		"kun_image_820.png": {820, 492},
		"kun_image_50.png":  {50, 50},
		"kun_image_288.png": {288, 211},
		"kun_image_440.png": {440, 300},
	}
	for name, dims := range expected {
		assert.Contains(t, names, name)
		img := decodeFile(t, filepath.Join(dir, name))
		assert.Equal(t, dims[0], img.Bounds().Dx(), name)
		assert.Equal(t, dims[1], img.Bounds().Dy(), name)
	}
}

func TestProcessImageExactMinimumWidth(t *testing.T) {
	processor, _ := newTestProcessor(t)

	names, err := processor.ProcessImage(context.Background(), testPNG(t, 820, 400), "presne", "png")
	require.NoError(t, err)
	assert.Len(t, names, 4)
}

func TestProcessImageTooNarrow(t *testing.T) {
	processor, dir := newTestProcessor(t)

	_, err := processor.ProcessImage(context.Background(), testPNG(t, 819, 600), "uzky", "png")
	assert.ErrorIs(t, err, ErrImageTooNarrow)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestProcessImageRejectsNonImage(t *testing.T) {
	processor, _ := newTestProcessor(t)

	_, err := processor.ProcessImage(context.Background(), []byte("not an image at all"), "x", "png")
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestProcessImageRejectsEmptyPayload(t *testing.T) {
	processor, _ := newTestProcessor(t)

	_, err := processor.ProcessImage(context.Background(), nil, "x", "png")
	assert.ErrorIs(t, err, ErrEmptyMedia)
}

func TestProcessAudio(t *testing.T) {
	processor, dir := newTestProcessor(t)

	// minimal ID3v2 header is enough for sniffing
	id3 := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...)
	require.NoError(t, processor.ProcessAudio(context.Background(), id3, "kun_audio.mp3"))

	written, err := os.ReadFile(filepath.Join(dir, "kun_audio.mp3"))
	require.NoError(t, err)
	assert.Equal(t, id3, written)
}

func TestProcessAudioRejectsWrongKind(t *testing.T) {
	processor, _ := newTestProcessor(t)

	err := processor.ProcessAudio(context.Background(), testPNG(t, 10, 10), "kun_audio.mp3")
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestProcessVideoRejectsWrongKind(t *testing.T) {
	processor, _ := newTestProcessor(t)

	err := processor.ProcessVideo(context.Background(), []byte("plain text"), "kun_video.mp4")
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	processor, _ := newTestProcessor(t)
	assert.NoError(t, processor.Remove(context.Background(), "neexistuje.png"))
}
