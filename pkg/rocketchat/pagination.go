package rocketchat

import (
	"context"
	"fmt"
	"iter"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// DefaultPageSize is the page size used when none is given.
const DefaultPageSize = 50

// PaginationOptions controls the offset/count window of a paginated listing.
type PaginationOptions struct {
	// Offset of the first item to fetch.
	Offset int
	// Count is the page size. DefaultPageSize when zero.
	Count int
	// MaxCount caps the number of items yielded. Nil means unbounded.
	MaxCount *int
}

// DefaultPaginationOptions returns options starting at offset 0 with the
// default page size and no cap.
func DefaultPaginationOptions() PaginationOptions {
	return PaginationOptions{Count: DefaultPageSize}
}

// Int returns a pointer to n, for PaginationOptions.MaxCount.
func Int(n int) *int {
	return &n
}

// PaginationFromParams pops "offset", "count" and "max_count" from params
// and returns them as options. params is modified in place.
func PaginationFromParams(params Params) (PaginationOptions, error) {
	opts := DefaultPaginationOptions()

	if value, ok := params.Pop("offset"); ok {
		offset, err := cast.ToIntE(value)
		if err != nil {
			return opts, fmt.Errorf("invalid offset: %w", err)
		}

		opts.Offset = offset
	}

	if value, ok := params.Pop("count"); ok {
		count, err := cast.ToIntE(value)
		if err != nil {
			return opts, fmt.Errorf("invalid count: %w", err)
		}

		opts.Count = count
	}

	if value, ok := params.Pop("max_count"); ok && value != nil {
		maxCount, err := cast.ToIntE(value)
		if err != nil {
			return opts, fmt.Errorf("invalid max_count: %w", err)
		}

		opts.MaxCount = &maxCount
	}

	return opts, nil
}

// Or returns o with its unset fields taken from fallback. Zero Offset and
// Count and a nil MaxCount are unset.
func (o PaginationOptions) Or(fallback PaginationOptions) PaginationOptions {
	if o.Offset == 0 {
		o.Offset = fallback.Offset
	}

	if o.Count == 0 {
		o.Count = fallback.Count
	}

	if o.MaxCount == nil {
		o.MaxCount = fallback.MaxCount
	}

	return o
}

// PageFetcher fetches one page and returns the raw JSON body. The params it
// receives already carry "offset" and "count".
type PageFetcher func(ctx context.Context, params Params) ([]byte, error)

// Pager is a single-use forward iterator over a paginated listing. The next
// page is only requested once the caller asks for an item beyond the current
// one.
type Pager[T any] struct {
	ctx     context.Context //nolint:containedctx // bound to the lifetime of one listing
	fetch   PageFetcher
	listKey string
	params  Params

	offset   int
	count    int
	maxCount *int

	page    []T
	index   int
	yielded int
	fetches int
	done    bool
	err     error
}

// NewPager builds a Pager and fetches the first page immediately, so that
// authentication or validation errors are returned here rather than on the
// first call to Next.
func NewPager[T any](ctx context.Context, fetch PageFetcher, listKey string, opts PaginationOptions, params Params) (*Pager[T], error) {
	if opts.Count <= 0 {
		opts.Count = DefaultPageSize
	}

	if opts.Offset < 0 {
		opts.Offset = 0
	}

	pager := &Pager[T]{
		ctx:      ctx,
		fetch:    fetch,
		listKey:  listKey,
		params:   params.Clone(),
		offset:   opts.Offset,
		count:    opts.Count,
		maxCount: opts.MaxCount,
	}

	err := pager.fetchPage()
	if err != nil {
		return nil, err
	}

	return pager, nil
}

// fetchPage requests the page at the current offset and replaces the buffer.
func (p *Pager[T]) fetchPage() error {
	params := Normalize(Params{"offset": p.offset, "count": p.count}, p.params)

	p.fetches++

	body, err := p.fetch(p.ctx, params)
	if err != nil {
		return err
	}

	items, err := extractItems[T](body, p.listKey)
	if err != nil {
		return err
	}

	p.page = items
	p.index = 0

	return nil
}

func (p *Pager[T]) capReached() bool {
	return p.maxCount != nil && p.yielded >= *p.maxCount
}

// HasNext reports whether Next will return an item or an error. It may fetch
// the next page.
func (p *Pager[T]) HasNext() bool {
	if p.err != nil {
		return true
	}

	if p.done || p.capReached() {
		p.done = true

		return false
	}

	if p.index < len(p.page) {
		return true
	}

	// The current page is used up; a short or empty page ends the listing.
	if len(p.page) < p.count {
		p.done = true

		return false
	}

	p.offset += p.count

	err := p.fetchPage()
	if err != nil {
		p.err = err

		return true
	}

	if len(p.page) == 0 {
		p.done = true

		return false
	}

	return true
}

// Next returns the next item. Once a page fetch fails, Next returns that
// error and the pager is finished.
func (p *Pager[T]) Next() (T, error) {
	var zero T

	if !p.HasNext() {
		return zero, ErrNoMoreItems
	}

	if p.err != nil {
		err := p.err
		p.err = nil
		p.done = true

		return zero, err
	}

	item := p.page[p.index]
	p.index++
	p.yielded++

	return item, nil
}

// All drains the pager into a slice.
func (p *Pager[T]) All() ([]T, error) {
	var items []T

	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach calls fn for each remaining item and stops at the first error.
func (p *Pager[T]) ForEach(fn func(T) error) error {
	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// Items returns the remaining items as a range-over-func sequence. Breaking
// out of the loop stops fetching.
func (p *Pager[T]) Items() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for p.HasNext() {
			item, err := p.Next()
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// Fetches returns the number of page requests made so far.
func (p *Pager[T]) Fetches() int {
	return p.fetches
}

// Offset returns the offset of the page currently buffered.
func (p *Pager[T]) Offset() int {
	return p.offset
}

// extractItems decodes the array stored under listKey. A missing key or a
// non-array value is an empty page.
func extractItems[T any](body []byte, listKey string) ([]T, error) {
	result := gjson.GetBytes(body, listKey)
	if !result.Exists() || !result.IsArray() {
		return []T{}, nil
	}

	raw := result.Array()
	items := make([]T, 0, len(raw))

	for i, element := range raw {
		var item T

		err := json.Unmarshal([]byte(element.Raw), &item)
		if err != nil {
			return nil, fmt.Errorf("decoding %s[%d]: %w", listKey, i, err)
		}

		items = append(items, item)
	}

	return items, nil
}
