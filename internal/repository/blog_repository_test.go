package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/hellokiler/blogbot/internal/models"
)

func newMock(t *testing.T) (*BlogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBlogRepository(db), mock
}

func TestFindByQuery(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "query", "title", "content", "category", "created_at"}).
		AddRow(7, "go generics", "Go Generics", "# Go Generics\n\nbody", "tech", now)
	mock.ExpectQuery(`SELECT id, query, title, content, COALESCE\(category, ''\), created_at\s+FROM blogs WHERE query = \?`).
		WithArgs("go generics").
		WillReturnRows(rows)

	blog, err := repo.FindByQuery(context.Background(), "go generics")
	if err != nil {
		t.Fatalf("FindByQuery() error: %v", err)
	}
	if blog.ID != 7 || blog.Title != "Go Generics" || blog.Category != "tech" {
		t.Errorf("FindByQuery() = %+v", blog)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFindByQuery_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, query, title, content`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "query", "title", "content", "category", "created_at"}))

	_, err := repo.FindByQuery(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByQuery() error = %v, want ErrNotFound", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO blogs \(query, title, content, category\)`).
		WithArgs("go generics", "Go Generics", "body", "tech").
		WillReturnResult(sqlmock.NewResult(42, 1))

	blog, err := repo.Create(context.Background(), &models.Blog{
		Query:    "go generics",
		Title:    "Go Generics",
		Content:  "body",
		Category: "tech",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if blog.ID != 42 {
		t.Errorf("blog.ID = %d, want 42", blog.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO blogs`).
		WithArgs("go generics", "Go Generics", "body", "tech").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &models.Blog{
		Query:    "go generics",
		Title:    "Go Generics",
		Content:  "body",
		Category: "tech",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Create() error = %v, want ErrDuplicate", err)
	}
}

func TestCountByCategory(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blogs WHERE category = \?`).
		WithArgs("tech").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	count, err := repo.CountByCategory(context.Background(), "tech")
	if err != nil {
		t.Fatalf("CountByCategory() error: %v", err)
	}
	if count != 25 {
		t.Errorf("CountByCategory() = %d, want 25", count)
	}
}

func TestListByCategory(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "query", "title", "content", "category", "created_at"}).
		AddRow(2, "b", "B", "body b", "tech", now).
		AddRow(1, "a", "A", "body a", "tech", now.Add(-time.Hour))
	mock.ExpectQuery(`FROM blogs WHERE category = \?\s+ORDER BY created_at DESC\s+LIMIT \? OFFSET \?`).
		WithArgs("tech", 12, 12).
		WillReturnRows(rows)

	blogs, err := repo.ListByCategory(context.Background(), "tech", 12, 12)
	if err != nil {
		t.Fatalf("ListByCategory() error: %v", err)
	}
	if len(blogs) != 2 || blogs[0].Query != "b" || blogs[1].Query != "a" {
		t.Errorf("ListByCategory() = %+v", blogs)
	}
}

func TestCategorySummaries(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"category", "total"}).
		AddRow("tech", 9).
		AddRow("travel", 4)
	mock.ExpectQuery(`SELECT category, COUNT\(\*\) AS total FROM blogs`).WillReturnRows(rows)

	summaries, err := repo.CategorySummaries(context.Background())
	if err != nil {
		t.Fatalf("CategorySummaries() error: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Category != "tech" || summaries[0].Total != 9 {
		t.Errorf("CategorySummaries() = %+v", summaries)
	}
}

func TestRecentByCategory(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "query", "title", "content", "category", "created_at"}).
		AddRow(5, "x", "X", "body", "travel", now)
	mock.ExpectQuery(`FROM blogs WHERE category = \?\s+ORDER BY created_at DESC\s+LIMIT \?`).
		WithArgs("travel", 3).
		WillReturnRows(rows)

	blogs, err := repo.RecentByCategory(context.Background(), "travel", 3)
	if err != nil {
		t.Fatalf("RecentByCategory() error: %v", err)
	}
	if len(blogs) != 1 || blogs[0].Query != "x" {
		t.Errorf("RecentByCategory() = %+v", blogs)
	}
}
