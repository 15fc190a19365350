package model

// ArticleUpload is the parsed result of a multipart /create submission.
// Text fields are sanitized but raw; processing into HTML happens when the
// Article entity is derived.
type ArticleUpload struct {
	IsMain      bool
	IsExclusive bool
	Author      string
	Username    string

	Title        string
	TextRaw      string
	ShortTextRaw string
	MiniTextRaw  string
	CategoryRaw  string

	ImageDesc string
	ImageExt  string
	ImageData []byte

	HasVideo  bool
	VideoData []byte
	VideoExt  string

	HasAudio  bool
	AudioData []byte
	AudioExt  string

	RelatedSlugs []string

	// Slug derived from the title, without the .html suffix.
	BaseName string
}
