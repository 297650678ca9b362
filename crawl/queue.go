package crawl

// Queue is a breadth-first URL queue with deduplication and a size cap.
type Queue struct {
	items   []string
	visited map[string]bool
	idx     int
	limit   int
}

// NewQueue creates an empty Queue that accepts at most limit URLs.
// A non-positive limit means unbounded.
func NewQueue(limit int) *Queue {
	return &Queue{
		visited: make(map[string]bool),
		limit:   limit,
	}
}

// Add enqueues a URL if it hasn't been seen and the queue isn't full.
// It reports whether the URL was added.
func (q *Queue) Add(url string) bool {
	if q.visited[url] || q.Full() {
		return false
	}
	q.visited[url] = true
	q.items = append(q.items, url)
	return true
}

// Full reports whether the queue reached its limit.
func (q *Queue) Full() bool {
	return q.limit > 0 && len(q.items) >= q.limit
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.idx++
	return url
}

// All returns every accepted URL in BFS order.
func (q *Queue) All() []string {
	return q.items
}
