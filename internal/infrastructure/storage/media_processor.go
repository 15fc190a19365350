package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrImageTooNarrow means the source is narrower than the widest variant.
	ErrImageTooNarrow = errors.New("image is narrower than 820px")
	// ErrKindMismatch means the sniffed content does not match the expected media kind.
	ErrKindMismatch = errors.New("media content does not match its declared kind")
	// ErrEmptyMedia means a zero-length payload.
	ErrEmptyMedia = errors.New("media payload is empty")
	// ErrMediaTooLarge means the payload exceeds the upload size cap.
	ErrMediaTooLarge = errors.New("media payload exceeds the size limit")
)

// MinImageWidth is the width of the largest raster variant.
const MinImageWidth = 820

// fillVariant is a crop-to-fill derivative with exact dimensions.
type fillVariant struct {
	suffix string
	w, h   int
}

var fillVariants = []fillVariant{
	{"image_50", 50, 50},
	{"image_288", 288, 211},
	{"image_440", 440, 300},
}

// MediaProcessor validates and transforms raw media bytes into derivative
// files in the blob store.
type MediaProcessor struct {
	store BlobStore
}

func NewMediaProcessor(store BlobStore) *MediaProcessor {
	return &MediaProcessor{store: store}
}

// ProcessImage writes the four raster variants for one article image:
// 820 x proportional (Lanczos resample) plus three crop-to-fill sizes.
// Returns the blob names written, for compensation on a later failure.
// Variants already written stay in place when a later one fails.
func (p *MediaProcessor) ProcessImage(ctx context.Context, data []byte, base, ext string) ([]string, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMedia
	}
	if !SniffedKindIs(data, "image") {
		return nil, ErrKindMismatch
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() < MinImageWidth {
		return nil, ErrImageTooNarrow
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("unsupported image extension %q: %w", ext, err)
	}

	var written []string

	wide := imaging.Resize(img, MinImageWidth, 0, imaging.Lanczos)
	name := fmt.Sprintf("%s_image_820.%s", base, ext)
	if err := p.encodeAndWrite(ctx, wide, format, name); err != nil {
		return written, err
	}
	written = append(written, name)

	for _, v := range fillVariants {
		resized := imaging.Fill(img, v.w, v.h, imaging.Center, imaging.Lanczos)
		name := fmt.Sprintf("%s_%s.%s", base, v.suffix, ext)
		if err := p.encodeAndWrite(ctx, resized, format, name); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	return written, nil
}

// ProcessAudio re-validates the sniffed kind and writes the payload verbatim.
func (p *MediaProcessor) ProcessAudio(ctx context.Context, data []byte, name string) error {
	return p.processPassthrough(ctx, data, name, "audio")
}

// ProcessVideo re-validates the sniffed kind and writes the payload verbatim.
func (p *MediaProcessor) ProcessVideo(ctx context.Context, data []byte, name string) error {
	return p.processPassthrough(ctx, data, name, "video")
}

// Remove deletes one derivative, used by publish compensation.
func (p *MediaProcessor) Remove(ctx context.Context, name string) error {
	return p.store.Remove(ctx, name)
}

func (p *MediaProcessor) processPassthrough(ctx context.Context, data []byte, name, kind string) error {
	if len(data) == 0 {
		return ErrEmptyMedia
	}
	if !SniffedKindIs(data, kind) {
		return ErrKindMismatch
	}
	return p.store.Write(ctx, name, data)
}

func (p *MediaProcessor) encodeAndWrite(ctx context.Context, img image.Image, format imaging.Format, name string) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return p.store.Write(ctx, name, buf.Bytes())
}

// SniffedKindIs reports whether the payload's true content type starts with
// the given kind (image, audio, video). File extensions and declared
// content types are never trusted.
func SniffedKindIs(data []byte, kind string) bool {
	if len(data) == 0 {
		return false
	}
	return strings.HasPrefix(mimetype.Detect(data).String(), kind+"/")
}
