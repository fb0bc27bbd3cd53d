package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestImageLog(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewImageRepository(db)

	mock.ExpectExec(`INSERT INTO image_urls \(user, query, link, chat_id\)`).
		WithArgs("Alice", "a red fox", "https://img.example.com/out.png", int64(900)).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Log(context.Background(), "Alice", "a red fox", "https://img.example.com/out.png", 900)
	if err != nil {
		t.Fatalf("Log() error: %v", err)
	}
	if id != 3 {
		t.Errorf("Log() = %d, want 3", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
