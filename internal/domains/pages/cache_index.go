package pages

import (
	"sync"

	"novinky-backend/internal/domains/article/model"
)

// Page names a pre-rendered aggregate page.
type Page string

const (
	PageIndex Page = "index"
	PageNews  Page = "news"
)

// CategoryPage maps a category to its aggregate page.
func CategoryPage(c model.Category) Page {
	return Page(c.String())
}

// AllPages returns every aggregate page, front page first.
func AllPages() []Page {
	pages := []Page{PageIndex, PageNews}
	for _, c := range model.Categories() {
		pages = append(pages, CategoryPage(c))
	}
	return pages
}

// CacheIndex tracks which rendered aggregate pages are current and
// serializes their regeneration. A page marked invalid is re-rendered
// by the next reader; concurrent readers of the same page block on its
// regeneration mutex so the work happens once.
//
// Article pages are keyed by slug and get the same treatment through
// LockSlug; their validity lives in the database, not here.
type CacheIndex struct {
	mu    sync.RWMutex
	valid map[Page]bool

	pageLocks map[Page]*sync.Mutex
	slugLocks sync.Map
}

// NewCacheIndex creates an index with every aggregate page invalid, so
// first reads after startup render fresh content.
func NewCacheIndex() *CacheIndex {
	valid := make(map[Page]bool)
	pageLocks := make(map[Page]*sync.Mutex)
	for _, p := range AllPages() {
		valid[p] = false
		pageLocks[p] = &sync.Mutex{}
	}
	return &CacheIndex{
		valid:     valid,
		pageLocks: pageLocks,
	}
}

// Valid reports whether the rendered file of a page is current.
func (ci *CacheIndex) Valid(page Page) bool {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.valid[page]
}

// Invalidate marks the given pages stale.
func (ci *CacheIndex) Invalidate(pages ...Page) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	for _, p := range pages {
		if _, known := ci.valid[p]; known {
			ci.valid[p] = false
		}
	}
}

// InvalidateAll marks every aggregate page stale.
func (ci *CacheIndex) InvalidateAll() {
	ci.Invalidate(AllPages()...)
}

// Validate marks a page current after its file has been rewritten.
func (ci *CacheIndex) Validate(page Page) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	if _, known := ci.valid[page]; known {
		ci.valid[page] = true
	}
}

// LockPage acquires the regeneration lock of an aggregate page. The
// returned function releases it. Unknown pages share no lock and get a
// fresh one, which keeps callers safe without growing the index.
func (ci *CacheIndex) LockPage(page Page) func() {
	ci.mu.RLock()
	l, ok := ci.pageLocks[page]
	ci.mu.RUnlock()
	if !ok {
		l = &sync.Mutex{}
	}
	l.Lock()
	return l.Unlock
}

// LockSlug acquires the regeneration lock of an article page.
func (ci *CacheIndex) LockSlug(slug string) func() {
	v, _ := ci.slugLocks.LoadOrStore(slug, &sync.Mutex{})
	l := v.(*sync.Mutex)
	l.Lock()
	return l.Unlock
}
