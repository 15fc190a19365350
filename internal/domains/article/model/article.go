package model

import "time"

// Article is the persisted article entity, keyed by slug.
type Article struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	DateDisplay string    `json:"date_display"`

	TextHTML      string `json:"text_html"`
	ShortTextHTML string `json:"short_text_html"`
	MiniText      string `json:"mini_text"`

	Category Category `json:"category"`

	Image820  string `json:"image_820"`
	Image440  string `json:"image_440"`
	Image288  string `json:"image_288"`
	Image50   string `json:"image_50"`
	ImageDesc string `json:"image_desc"`

	VideoPath string `json:"video_path,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
	HasVideo  bool   `json:"has_video"`
	HasAudio  bool   `json:"has_audio"`

	RelatedSlugs []string `json:"related_slugs"`

	IsMain      bool `json:"is_main"`
	IsExclusive bool `json:"is_exclusive"`

	Views int64 `json:"views"`
}

// Thumbnail is the projection used for related-article strips and
// category listings.
type Thumbnail struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	ShortText   string `json:"short_text"`
	Image288    string `json:"image_288"`
	Image440    string `json:"image_440"`
	IsExclusive bool   `json:"is_exclusive"`
}

// MostReadItem is the minimal shape for the most-read sidebar.
type MostReadItem struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Image50 string `json:"image_50"`
	Views   int64  `json:"views"`
}

// Validity is the persisted per-slug cache state of a rendered article page.
type Validity int

const (
	// ValidityDoesNotExist means the slug was never published.
	ValidityDoesNotExist Validity = iota
	// ValidityValid means the cached static page is current.
	ValidityValid
	// ValidityInvalid means the page must be re-rendered on next read.
	ValidityInvalid
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityInvalid:
		return "invalid"
	default:
		return "does_not_exist"
	}
}
