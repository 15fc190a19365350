package service

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novinky-backend/internal/domains/article/model"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type formPart struct {
	name     string
	filename string
	data     []byte
}

func buildForm(t *testing.T, parts []formPart) *multipart.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		var err error
		var dst interface{ Write([]byte) (int, error) }
		if p.filename != "" {
			dst, err = w.CreateFormFile(p.name, p.filename)
		} else {
			dst, err = w.CreateFormField(p.name)
		}
		require.NoError(t, err)
		_, err = dst.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return multipart.NewReader(&buf, w.Boundary())
}

func validParts(t *testing.T) []formPart {
	return []formPart{
		{name: "title", data: []byte("Příliš žluťoučký kůň")},
		{name: "author", data: []byte("Jan Novák")},
		{name: "text", data: []byte("První odstavec.\n\nDruhý odstavec.")},
		{name: "short_text", data: []byte("Krátce.")},
		{name: "category", data: []byte("republika")},
		{name: "image_description", data: []byte("Kůň na louce")},
		{name: "image", filename: "photo.png", data: pngBytes(t)},
	}
}

func TestParseUpload(t *testing.T) {
	parts := append(validParts(t),
		formPart{name: "related_articles", data: []byte("prvni-clanek.html\r\ndruhy-clanek.html\n")},
		formPart{name: "is_main", data: []byte("on")},
		formPart{name: "mini_text", data: []byte("mini")},
	)

	upload, err := ParseUpload(buildForm(t, parts))
	require.NoError(t, err)

	assert.Equal(t, "Příliš žluťoučký kůň", upload.Title)
	assert.Equal(t, "prilis-zlutoucky-kun", upload.BaseName)
	assert.Equal(t, "republika", upload.CategoryRaw)
	assert.Equal(t, "png", upload.ImageExt)
	assert.NotEmpty(t, upload.ImageData)
	assert.Equal(t, []string{"prvni-clanek.html", "druhy-clanek.html"}, upload.RelatedSlugs)
	assert.True(t, upload.IsMain)
	assert.False(t, upload.IsExclusive)
	assert.False(t, upload.HasVideo)
	assert.False(t, upload.HasAudio)
	assert.Equal(t, "mini", upload.MiniTextRaw)
}

func TestParseUploadMissingRequiredField(t *testing.T) {
	var parts []formPart
	for _, p := range validParts(t) {
		if p.name != "title" {
			parts = append(parts, p)
		}
	}

	_, err := ParseUpload(buildForm(t, parts))
	var fieldErr *model.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

func TestParseUploadControlCharacterFailsField(t *testing.T) {
	parts := validParts(t)
	parts[0] = formPart{name: "title", data: []byte("tit\x00ulek")}

	_, err := ParseUpload(buildForm(t, parts))
	var fieldErr *model.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

func TestParseUploadRejectsNonImagePayload(t *testing.T) {
	parts := validParts(t)
	parts[6] = formPart{name: "image", filename: "photo.png", data: []byte("this is not an image")}

	_, err := ParseUpload(buildForm(t, parts))
	var fieldErr *model.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "image", fieldErr.Field)
}

func TestParseUploadMissingImage(t *testing.T) {
	parts := validParts(t)[:6]

	_, err := ParseUpload(buildForm(t, parts))
	var fieldErr *model.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "image", fieldErr.Field)
}

func TestParseUploadEmptyOptionalMediaIsAbsent(t *testing.T) {
	// browsers send an empty file part when the video input is left blank
	parts := append(validParts(t), formPart{name: "video", filename: "", data: nil})

	upload, err := ParseUpload(buildForm(t, parts))
	require.NoError(t, err)
	assert.False(t, upload.HasVideo)
	assert.Empty(t, upload.VideoData)
}

func TestParseUploadRejectsOversizedMedia(t *testing.T) {
	old := maxMediaPartSize
	maxMediaPartSize = 256
	defer func() { maxMediaPartSize = old }()

	// one byte over the cap must fail, never publish truncated
	parts := append(validParts(t),
		formPart{name: "video", filename: "clip.mp4", data: bytes.Repeat([]byte{0x42}, 257)})

	_, err := ParseUpload(buildForm(t, parts))
	var fieldErr *model.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "video", fieldErr.Field)
	assert.Contains(t, fieldErr.Reason, "size limit")
}

func TestParseUploadAcceptsMediaAtSizeCap(t *testing.T) {
	old := maxMediaPartSize
	maxMediaPartSize = int64(len(pngBytes(t)))
	defer func() { maxMediaPartSize = old }()

	_, err := ParseUpload(buildForm(t, validParts(t)))
	assert.NoError(t, err)
}

func TestParseUploadUnknownFieldIgnored(t *testing.T) {
	parts := append(validParts(t), formPart{name: "csrf_token", data: []byte("abc123")})

	_, err := ParseUpload(buildForm(t, parts))
	assert.NoError(t, err)
}
