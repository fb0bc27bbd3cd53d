package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/hellokiler/blogbot/internal/models"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY, raised when an insert violates a
// unique constraint.
const mysqlDuplicateEntry = 1062

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// FindByQuery returns the blog stored under the normalized query string.
// Returns ErrNotFound when no row exists.
func (r *BlogRepository) FindByQuery(ctx context.Context, query string) (*models.Blog, error) {
	const q = `
SELECT id, query, title, content, COALESCE(category, ''), created_at
FROM blogs WHERE query = ?`
	row := r.db.QueryRowContext(ctx, q, query)
	var b models.Blog
	if err := row.Scan(&b.ID, &b.Query, &b.Title, &b.Content, &b.Category, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	return &b, nil
}

// Create inserts a freshly generated blog. A unique-key violation on the
// query column is reported as ErrDuplicate so callers can re-read the row
// written by the concurrent winner.
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	const q = `
INSERT INTO blogs (query, title, content, category)
VALUES (?, ?, ?, NULLIF(?, ''))`
	res, err := r.db.ExecContext(ctx, q, blog.Query, blog.Title, blog.Content, blog.Category)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	blog.ID = id
	return blog, nil
}

// CountByCategory returns the number of posts stored under a category.
func (r *BlogRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	const q = `SELECT COUNT(*) FROM blogs WHERE category = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, q, category).Scan(&count); err != nil {
		return 0, fmt.Errorf("count blogs by category: %w", err)
	}
	return count, nil
}

// ListByCategory returns one page of a category's posts, newest first.
// Offset and limit are raw row bounds; pagination math lives in the
// service layer.
func (r *BlogRepository) ListByCategory(ctx context.Context, category string, offset, limit int) ([]models.Blog, error) {
	const q = `
SELECT id, query, title, content, COALESCE(category, ''), created_at
FROM blogs WHERE category = ?
ORDER BY created_at DESC
LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list blogs by category: %w", err)
	}
	defer rows.Close()
	return scanBlogs(rows)
}

// CategorySummaries enumerates the distinct categories ordered by
// descending post count. Uncategorized rows are excluded.
func (r *BlogRepository) CategorySummaries(ctx context.Context) ([]models.CategorySummary, error) {
	const q = `
SELECT category, COUNT(*) AS total FROM blogs
WHERE category IS NOT NULL
GROUP BY category
ORDER BY total DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list category summaries: %w", err)
	}
	defer rows.Close()

	var out []models.CategorySummary
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.Category, &s.Total); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecentByCategory returns the newest posts for one category, bounded to
// limit rows.
func (r *BlogRepository) RecentByCategory(ctx context.Context, category string, limit int) ([]models.Blog, error) {
	const q = `
SELECT id, query, title, content, COALESCE(category, ''), created_at
FROM blogs WHERE category = ?
ORDER BY created_at DESC
LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, category, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent blogs: %w", err)
	}
	defer rows.Close()
	return scanBlogs(rows)
}

func scanBlogs(rows *sql.Rows) ([]models.Blog, error) {
	var out []models.Blog
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Query, &b.Title, &b.Content, &b.Category, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
