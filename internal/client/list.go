package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// newPager lists endpoint page by page. params are the binding's own
// parameters; opts adds filters and the pagination window.
func newPager[T any](
	ctx context.Context,
	httpClient *http.Client,
	endpoint, listKey string,
	params rocketchat.Params,
	opts *rocketchat.ListOptions,
) (*rocketchat.Pager[T], error) {
	listParams, err := opts.Params()
	if err != nil {
		return nil, fmt.Errorf("building %s parameters: %w", endpoint, err)
	}

	// offset, count and max_count passed as extra parameters drive the pager
	// and are never sent as-is.
	listParams = rocketchat.Normalize(params, listParams)

	window, err := rocketchat.PaginationFromParams(listParams)
	if err != nil {
		return nil, fmt.Errorf("building %s parameters: %w", endpoint, err)
	}

	fetch := func(ctx context.Context, page rocketchat.Params) ([]byte, error) {
		resp, err := httpClient.Get(ctx, endpoint, page)
		if err != nil {
			return nil, err
		}

		return resp.Body, nil
	}

	pager, err := rocketchat.NewPager[T](ctx, fetch, listKey, opts.PaginationOptions().Or(window), listParams)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", endpoint, err)
	}

	return pager, nil
}
