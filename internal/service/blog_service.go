package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hellokiler/blogbot/internal/ai"
	"github.com/hellokiler/blogbot/internal/models"
	"github.com/hellokiler/blogbot/internal/repository"
)

const (
	// PageSize is the number of posts per category listing page.
	PageSize = 12
	// HomePostsPerCategory bounds each category block on the home view.
	HomePostsPerCategory = 3
)

// ArticleSource generates a categorized article for a topic.
type ArticleSource interface {
	Generate(ctx context.Context, topic string) (ai.Article, error)
}

// PageOutOfRangeError signals that a requested page exceeds the last
// valid page; handlers redirect to LastPage instead of erroring.
type PageOutOfRangeError struct {
	LastPage int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page out of range, last valid page is %d", e.LastPage)
}

// CategoryPage is one page of a category listing.
type CategoryPage struct {
	Category   string
	Blogs      []models.Blog
	Page       int
	TotalPages int
	Total      int
}

// CategoryGroup is one home-view block: a category with its newest posts
// and total count. Groups are ordered by descending post count.
type CategoryGroup struct {
	Category string
	Blogs    []models.Blog
	Total    int
}

// BlogService orchestrates the cached-or-generated article flow and the
// read-only listing views.
type BlogService struct {
	log       *slog.Logger
	blogs     *repository.BlogRepository
	generator ArticleSource
}

func NewBlogService(log *slog.Logger, blogs *repository.BlogRepository, generator ArticleSource) *BlogService {
	return &BlogService{log: log, blogs: blogs, generator: generator}
}

// GetOrGenerate serves the cached article for a topic, generating and
// persisting one on first request. The topic is normalized to lowercase
// before lookup. When a concurrent request wins the insert race, the
// winner's row is re-read and returned.
func (s *BlogService) GetOrGenerate(ctx context.Context, topic string) (*models.Blog, error) {
	query := strings.ToLower(strings.TrimSpace(topic))
	if query == "" {
		return nil, fmt.Errorf("empty topic")
	}

	blog, err := s.blogs.FindByQuery(ctx, query)
	if err == nil {
		return blog, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup blog: %w", err)
	}

	article, err := s.generator.Generate(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	created, err := s.blogs.Create(ctx, &models.Blog{
		Query:    query,
		Title:    article.Title,
		Content:  article.Content,
		Category: article.Category,
	})
	if err == nil {
		s.log.Info("blog generated", "query", query, "category", article.Category)
		return created, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("persist blog: %w", err)
	}

	// A concurrent request generated the same topic first; serve theirs.
	existing, err := s.blogs.FindByQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("re-read blog after conflict: %w", err)
	}
	return existing, nil
}

// CategoryPage returns one page of a category's posts. Pages below 1 are
// clamped to 1; pages beyond the last valid page return
// *PageOutOfRangeError so the handler can redirect.
func (s *BlogService) CategoryPage(ctx context.Context, category string, page int) (*CategoryPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.blogs.CountByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("count category: %w", err)
	}

	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return nil, &PageOutOfRangeError{LastPage: totalPages}
	}

	var blogs []models.Blog
	if total > 0 {
		blogs, err = s.blogs.ListByCategory(ctx, category, (page-1)*PageSize, PageSize)
		if err != nil {
			return nil, fmt.Errorf("list category page: %w", err)
		}
	}

	return &CategoryPage{
		Category:   category,
		Blogs:      blogs,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// Home returns the grouped home view: every category with its newest
// posts, bounded to HomePostsPerCategory, ordered by descending count.
func (s *BlogService) Home(ctx context.Context) ([]CategoryGroup, error) {
	summaries, err := s.blogs.CategorySummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	groups := make([]CategoryGroup, 0, len(summaries))
	for _, summary := range summaries {
		recent, err := s.blogs.RecentByCategory(ctx, summary.Category, HomePostsPerCategory)
		if err != nil {
			return nil, fmt.Errorf("list recent for %q: %w", summary.Category, err)
		}
		groups = append(groups, CategoryGroup{
			Category: summary.Category,
			Blogs:    recent,
			Total:    summary.Total,
		})
	}
	return groups, nil
}
