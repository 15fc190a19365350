package pages

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"novinky-backend/internal/domains/article/model"
)

func TestCacheIndexStartsInvalid(t *testing.T) {
	index := NewCacheIndex()
	for _, p := range AllPages() {
		assert.False(t, index.Valid(p), string(p))
	}
}

func TestCacheIndexTransitions(t *testing.T) {
	index := NewCacheIndex()

	index.Validate(PageIndex)
	assert.True(t, index.Valid(PageIndex))

	index.Invalidate(PageIndex)
	assert.False(t, index.Valid(PageIndex))

	index.Validate(PageIndex)
	index.Validate(PageNews)
	index.InvalidateAll()
	assert.False(t, index.Valid(PageIndex))
	assert.False(t, index.Valid(PageNews))
}

func TestCacheIndexInvalidateIsScoped(t *testing.T) {
	index := NewCacheIndex()
	for _, p := range AllPages() {
		index.Validate(p)
	}

	index.Invalidate(PageIndex, PageNews, CategoryPage(model.CategoryFinance))

	assert.False(t, index.Valid(PageIndex))
	assert.False(t, index.Valid(PageNews))
	assert.False(t, index.Valid(CategoryPage(model.CategoryFinance)))
	assert.True(t, index.Valid(CategoryPage(model.CategoryVeda)))
}

func TestCacheIndexIgnoresUnknownPages(t *testing.T) {
	index := NewCacheIndex()
	index.Validate("not-a-page")
	assert.False(t, index.Valid("not-a-page"))
}

func TestLockPageSerializesRegeneration(t *testing.T) {
	index := NewCacheIndex()

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := index.LockPage(PageIndex)
			defer unlock()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestLockSlugIsPerSlug(t *testing.T) {
	index := NewCacheIndex()

	unlockA := index.LockSlug("a.html")
	// a different slug must not block
	unlockB := index.LockSlug("b.html")
	unlockB()
	unlockA()

	// same slug can be re-acquired after release
	unlock := index.LockSlug("a.html")
	unlock()
}
