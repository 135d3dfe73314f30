package pressroom

import "strconv"

// Page is one window of a paginated post list.
type Page struct {
	Posts    []Post
	Number   int
	NumPages int
	Total    int
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.NumPages }

// PrevNumber returns the previous page number.
func (p Page) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the next page number.
func (p Page) NextNumber() int { return p.Number + 1 }

// ParsePageNumber parses the "page" query parameter. Anything that is not
// an integer falls back to the first page.
func ParsePageNumber(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// Paginate slices posts into the requested page of the given size.
// An out-of-range page number, including zero and negatives, falls back
// to the last page of results. NumPages is at least 1 even when empty.
func Paginate(posts []Post, number, size int) Page {
	if size < 1 {
		size = 1
	}
	total := len(posts)
	numPages := (total + size - 1) / size
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 || number > numPages {
		number = numPages
	}
	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Posts:    posts[start:end],
		Number:   number,
		NumPages: numPages,
		Total:    total,
	}
}
