package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 50
	defaultMaxPages = 100
)

// ListOptions are the query parameters shared by list endpoints.
type ListOptions struct {
	Limit    int
	SinceID  int64
	PageInfo string
	Fields   string
}

// Values renders the options as query parameters. A nil receiver is valid
// and yields an empty set.
func (o *ListOptions) Values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.SinceID > 0 {
		params.Set("since_id", strconv.FormatInt(o.SinceID, 10))
	}
	if o.PageInfo != "" {
		params.Set("page_info", o.PageInfo)
	}
	if o.Fields != "" {
		params.Set("fields", o.Fields)
	}
	return params
}

// ListAll walks every page of a list endpoint via cursor pagination,
// invoking fn once per page. key is the envelope key the platform wraps
// list payloads in ("products", "orders", ...). It stops when the Link
// header carries no next cursor, when fn returns an error, or after
// defaultMaxPages pages as a runaway guard.
func ListAll[T any](
	ctx context.Context,
	c *Client,
	path, key string,
	params url.Values,
	fn func([]T) error,
) error {
	if params == nil {
		params = url.Values{}
	}
	if params.Get("limit") == "" {
		params.Set("limit", strconv.Itoa(defaultPageSize))
	}

	for page := 0; page < defaultMaxPages; page++ {
		var envelope map[string]json.RawMessage
		meta, err := c.do(ctx, "GET", path, params, nil, &envelope)
		if err != nil {
			return fmt.Errorf("listing page %d: %w", page, err)
		}

		var items []T
		if raw, ok := envelope[key]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				return fmt.Errorf("decoding %q page %d: %w", key, page, err)
			}
		}

		if len(items) > 0 {
			if err := fn(items); err != nil {
				return err
			}
		}

		if meta.linkNext == "" {
			return nil
		}

		// Cursor requests only accept limit and page_info.
		limit := params.Get("limit")
		params = url.Values{}
		params.Set("limit", limit)
		params.Set("page_info", meta.linkNext)
	}

	return nil
}

// parseLinkNext extracts the next-page cursor from a Link response
// header, or "" when there is no next page.
func parseLinkNext(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < 0 || end <= start+1 {
			continue
		}

		u, err := url.Parse(part[start+1 : end])
		if err != nil {
			continue
		}
		return u.Query().Get("page_info")
	}

	return ""
}
