// Package pagination walks token-paginated listings.
package pagination

import "context"

// Page is one response of a listing call.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// ListFunc fetches the page identified by pageToken. An empty token asks for the
// first page.
type ListFunc[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// Result is the concatenation of every page fetched before the listing ended.
// When a page fetch fails the listing stops, Truncated is set and Err holds the
// failure; Items still carries everything collected before it.
type Result[T any] struct {
	Items     []T
	Pages     int
	Truncated bool
	Err       error
}

// FetchAll follows next-page tokens until the listing omits one or a fetch
// fails. Page order and in-page order are preserved. Failures are returned in
// the result rather than as an error so one broken listing does not abort the
// caller.
func FetchAll[T any](ctx context.Context, list ListFunc[T]) Result[T] {
	var result Result[T]
	token := ""
	for {
		page, err := list(ctx, token)
		if err != nil {
			result.Truncated = true
			result.Err = err
			return result
		}

		result.Pages++
		result.Items = append(result.Items, page.Items...)
		if page.NextPageToken == "" {
			return result
		}
		token = page.NextPageToken
	}
}
