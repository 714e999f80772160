package view

// Page is pagination metadata for list templates. Prev and Next are nil
// when there is no such page.
type Page struct {
	Count   int  `json:"count"`
	Current int  `json:"current"`
	Prev    *int `json:"prev"`
	Next    *int `json:"next"`
}

func pageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total-1)/perPage + 1
}

// NewPage computes pagination with current clamped to [1, max(Count, 1)].
func NewPage(total, current, perPage int) Page {
	count := pageCount(total, perPage)
	current = min(max(current, 1), max(count, 1))
	return linkPage(count, current)
}

// UnclampedPage keeps the requested page even when it lies past the last
// page, so the caller may render an empty listing.
func UnclampedPage(total, current, perPage int) Page {
	return linkPage(pageCount(total, perPage), max(current, 1))
}

func linkPage(count, current int) Page {
	p := Page{Count: count, Current: current}
	if current > 1 {
		prev := current - 1
		p.Prev = &prev
	}
	if current < count {
		next := current + 1
		p.Next = &next
	}
	return p
}

// Window returns the items of 1-based page. Out-of-range pages yield nil.
func Window[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 || page > pageCount(len(items), perPage) {
		return nil
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	return items[start:end]
}
