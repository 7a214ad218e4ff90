package shopify

import (
	"context"
	"fmt"
)

// BlogsService exposes the blog and article endpoints.
type BlogsService struct {
	client *Client
}

// Blog is an online-store blog.
type Blog struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Handle    string `json:"handle,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Article is a post within a blog.
type Article struct {
	ID          int64  `json:"id,omitempty"`
	BlogID      int64  `json:"blog_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	BodyHTML    string `json:"body_html,omitempty"`
	Tags        string `json:"tags,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type blogEnvelope struct {
	Blog *Blog `json:"blog"`
}

type blogsEnvelope struct {
	Blogs []Blog `json:"blogs"`
}

type articleEnvelope struct {
	Article *Article `json:"article"`
}

type articlesEnvelope struct {
	Articles []Article `json:"articles"`
}

// List returns the shop's blogs.
func (s *BlogsService) List(ctx context.Context, opt *ListOptions) ([]Blog, error) {
	var env blogsEnvelope
	if err := s.client.Get(ctx, "blogs.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return env.Blogs, nil
}

// Get returns a single blog by id.
func (s *BlogsService) Get(ctx context.Context, id int64) (*Blog, error) {
	var env blogEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("blogs/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting blog %d: %w", id, err)
	}
	return env.Blog, nil
}

// Create creates a blog.
func (s *BlogsService) Create(ctx context.Context, b Blog) (*Blog, error) {
	var env blogEnvelope
	if err := s.client.Post(ctx, "blogs.json", blogEnvelope{Blog: &b}, &env); err != nil {
		return nil, fmt.Errorf("creating blog: %w", err)
	}
	return env.Blog, nil
}

// Delete removes a blog.
func (s *BlogsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("blogs/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting blog %d: %w", id, err)
	}
	return nil
}

// ListArticles returns one page of a blog's articles.
func (s *BlogsService) ListArticles(ctx context.Context, blogID int64, opt *ListOptions) ([]Article, error) {
	var env articlesEnvelope
	path := fmt.Sprintf("blogs/%d/articles.json", blogID)
	if err := s.client.Get(ctx, path, opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing articles for blog %d: %w", blogID, err)
	}
	return env.Articles, nil
}

// CreateArticle posts a new article to a blog.
func (s *BlogsService) CreateArticle(ctx context.Context, blogID int64, a Article) (*Article, error) {
	var env articleEnvelope
	path := fmt.Sprintf("blogs/%d/articles.json", blogID)
	if err := s.client.Post(ctx, path, articleEnvelope{Article: &a}, &env); err != nil {
		return nil, fmt.Errorf("creating article on blog %d: %w", blogID, err)
	}
	return env.Article, nil
}

// DeleteArticle removes an article from a blog.
func (s *BlogsService) DeleteArticle(ctx context.Context, blogID, id int64) error {
	path := fmt.Sprintf("blogs/%d/articles/%d.json", blogID, id)
	if err := s.client.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}
	return nil
}
