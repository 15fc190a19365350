package pages

import "novinky-backend/internal/domains/article/model"

// Template identifiers. Each maps to a file under the templates
// directory.
const (
	TemplateIndex    = "index"
	TemplateNews     = "news"
	TemplateCategory = "category"
	TemplateArticle  = "article"
	TemplateSearch   = "search"
)

// IndexPayload feeds the front page: the hero slot plus two secondary
// front-page slots, the newest strip and the most-read sidebar.
type IndexPayload struct {
	Header    HeaderValues
	Hero      *model.Thumbnail
	Secondary []model.Thumbnail
	Newest    []model.Thumbnail
	MostRead  []model.MostReadItem
}

// NewsPayload feeds the cross-category digest.
type NewsPayload struct {
	Header   HeaderValues
	Articles []model.Thumbnail
	MostRead []model.MostReadItem
}

// CategoryPayload feeds one category aggregate.
type CategoryPayload struct {
	Header   HeaderValues
	Category model.Category
	Display  string
	Articles []model.Thumbnail
	MostRead []model.MostReadItem
}

// ArticlePayload feeds a single article page.
type ArticlePayload struct {
	Header   HeaderValues
	Article  *model.Article
	Related  []model.Thumbnail
	MostRead []model.MostReadItem
}

// SearchPayload feeds the live-rendered search result page.
type SearchPayload struct {
	Header  HeaderValues
	Query   string
	Results []model.Thumbnail
}
