package pressroom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makePosts(n int) []Post {
	posts := make([]Post, n)
	for i := range posts {
		posts[i] = Post{ID: int64(i + 1), Title: fmt.Sprintf("Post %d", i+1)}
	}
	return posts
}

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("abc"), "non-integer page falls back to the first page")
	assert.Equal(t, 1, ParsePageNumber("2.5"))
	assert.Equal(t, 7, ParsePageNumber("7"))
	assert.Equal(t, -3, ParsePageNumber("-3"), "range clamping happens in Paginate")
}

func TestPaginateFirstAndLastPage(t *testing.T) {
	posts := makePosts(7)

	first := Paginate(posts, 1, 3)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 3, first.NumPages)
	assert.Equal(t, 7, first.Total)
	assert.Len(t, first.Posts, 3)
	assert.Equal(t, "Post 1", first.Posts[0].Title)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	last := Paginate(posts, 3, 3)
	assert.Len(t, last.Posts, 1)
	assert.Equal(t, "Post 7", last.Posts[0].Title)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
}

func TestPaginateOutOfRangeFallsToLastPage(t *testing.T) {
	posts := makePosts(7)

	for _, number := range []int{0, -1, 4, 99} {
		page := Paginate(posts, number, 3)
		assert.Equal(t, 3, page.Number, "page %d should clamp to the last page", number)
		assert.Equal(t, "Post 7", page.Posts[0].Title)
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate(nil, 5, 3)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages, "NumPages is at least 1 even when empty")
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrev())
}

func TestPaginateExactMultiple(t *testing.T) {
	page := Paginate(makePosts(6), 2, 3)
	assert.Equal(t, 2, page.NumPages)
	assert.Len(t, page.Posts, 3)
	assert.Equal(t, "Post 6", page.Posts[2].Title)
}
