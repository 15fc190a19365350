package service

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/internal/infrastructure/storage"
	"novinky-backend/internal/shared/utils"
	"novinky-backend/internal/shared/validation"
)

// Media payloads are read fully into memory before processing.
// 50 MB covers the video uploads the newsroom produces. Variable so
// tests can lower the cap.
var maxMediaPartSize int64 = 50 << 20

// ParseUpload consumes a streaming multipart body and produces a typed
// upload. It fails with a field-identifying error on the first invalid
// part. Required fields missing after the body is exhausted also fail.
func ParseUpload(reader *multipart.Reader) (*model.ArticleUpload, error) {
	upload := &model.ArticleUpload{}

	var (
		hasTitle     bool
		hasText      bool
		hasShortText bool
		hasCategory  bool
		hasImageDesc bool
	)

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, model.NewFieldError("body", err)
		}

		name := part.FormName()
		switch name {
		case "title":
			upload.Title, err = textField(part, name, true)
			hasTitle = err == nil

		case "author":
			upload.Author, err = textField(part, name, true)

		case "text":
			upload.TextRaw, err = textField(part, name, true)
			hasText = err == nil

		case "short_text":
			upload.ShortTextRaw, err = textField(part, name, true)
			hasShortText = err == nil

		case "mini_text":
			upload.MiniTextRaw, err = textField(part, name, false)

		case "category":
			upload.CategoryRaw, err = textField(part, name, true)
			hasCategory = err == nil

		case "image_description":
			upload.ImageDesc, err = textField(part, name, true)
			hasImageDesc = err == nil

		case "related_articles":
			var raw string
			raw, err = textField(part, name, false)
			if err == nil {
				upload.RelatedSlugs = splitRelated(raw)
			}

		case "is_main":
			var raw string
			raw, err = textField(part, name, false)
			upload.IsMain = raw == "on"

		case "is_exclusive":
			var raw string
			raw, err = textField(part, name, false)
			upload.IsExclusive = raw == "on"

		case "image":
			upload.ImageData, upload.ImageExt, err = mediaField(part, name, "image", true)

		case "video":
			upload.VideoData, upload.VideoExt, err = mediaField(part, name, "video", false)
			upload.HasVideo = len(upload.VideoData) > 0

		case "audio":
			upload.AudioData, upload.AudioExt, err = mediaField(part, name, "audio", false)
			upload.HasAudio = len(upload.AudioData) > 0

		default:
			// unknown parts are drained and ignored
			_, err = io.Copy(io.Discard, part)
		}

		part.Close()
		if err != nil {
			return nil, err
		}
	}

	switch {
	case !hasTitle:
		return nil, model.NewFieldError("title", validation.ErrRequired)
	case !hasText:
		return nil, model.NewFieldError("text", validation.ErrRequired)
	case !hasShortText:
		return nil, model.NewFieldError("short_text", validation.ErrRequired)
	case !hasCategory:
		return nil, model.NewFieldError("category", validation.ErrRequired)
	case !hasImageDesc:
		return nil, model.NewFieldError("image_description", validation.ErrRequired)
	case len(upload.ImageData) == 0:
		return nil, model.NewFieldError("image", validation.ErrRequired)
	}

	upload.BaseName = utils.Slugify(upload.Title)
	return upload, nil
}

func textField(part *multipart.Part, name string, required bool) (string, error) {
	data, err := io.ReadAll(part)
	if err != nil {
		return "", model.NewFieldError(name, err)
	}

	value := string(data)
	if err := validation.Text(value, required); err != nil {
		return "", model.NewFieldError(name, err)
	}
	return value, nil
}

// mediaField reads a media part and checks its real content kind
// against the expected one. The declared content type and the file
// extension are not trusted for the kind check; the extension is kept
// only for naming derivatives. An empty optional part means the field
// was left blank in the form.
func mediaField(part *multipart.Part, name, kind string, required bool) ([]byte, string, error) {
	// read one extra byte so a payload at the cap is distinguishable
	// from one that was cut off
	data, err := io.ReadAll(io.LimitReader(part, maxMediaPartSize+1))
	if err != nil {
		return nil, "", model.NewFieldError(name, err)
	}
	if int64(len(data)) > maxMediaPartSize {
		return nil, "", model.NewFieldError(name, storage.ErrMediaTooLarge)
	}

	if len(data) == 0 {
		if required {
			return nil, "", model.NewFieldError(name, storage.ErrEmptyMedia)
		}
		return nil, "", nil
	}

	if !storage.SniffedKindIs(data, kind) {
		return nil, "", model.NewFieldError(name, storage.ErrKindMismatch)
	}

	ext := strings.TrimPrefix(filepath.Ext(part.FileName()), ".")
	if ext == "" {
		ext = defaultExt(kind)
	}
	return data, strings.ToLower(ext), nil
}

func defaultExt(kind string) string {
	switch kind {
	case "image":
		return "jpg"
	case "video":
		return "mp4"
	default:
		return "mp3"
	}
}

func splitRelated(raw string) []string {
	var slugs []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			slugs = append(slugs, line)
		}
	}
	return slugs
}
