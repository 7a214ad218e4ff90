package shopify

import (
	"context"
	"fmt"
)

// PagesService exposes the online-store page endpoints.
type PagesService struct {
	client *Client
}

// Page is a static online-store page.
type Page struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Handle      string `json:"handle,omitempty"`
	BodyHTML    string `json:"body_html,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type pageEnvelope struct {
	Page *Page `json:"page"`
}

type pagesEnvelope struct {
	Pages []Page `json:"pages"`
}

// List returns one page of pages.
func (s *PagesService) List(ctx context.Context, opt *ListOptions) ([]Page, error) {
	var env pagesEnvelope
	if err := s.client.Get(ctx, "pages.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	return env.Pages, nil
}

// Get returns a single page by id.
func (s *PagesService) Get(ctx context.Context, id int64) (*Page, error) {
	var env pageEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("pages/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting page %d: %w", id, err)
	}
	return env.Page, nil
}

// Create creates a page.
func (s *PagesService) Create(ctx context.Context, p Page) (*Page, error) {
	var env pageEnvelope
	if err := s.client.Post(ctx, "pages.json", pageEnvelope{Page: &p}, &env); err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return env.Page, nil
}

// Update updates an existing page, matched by p.ID.
func (s *PagesService) Update(ctx context.Context, p Page) (*Page, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("updating page: id is required")
	}
	var env pageEnvelope
	path := fmt.Sprintf("pages/%d.json", p.ID)
	if err := s.client.Put(ctx, path, pageEnvelope{Page: &p}, &env); err != nil {
		return nil, fmt.Errorf("updating page %d: %w", p.ID, err)
	}
	return env.Page, nil
}

// Delete removes a page.
func (s *PagesService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("pages/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting page %d: %w", id, err)
	}
	return nil
}
