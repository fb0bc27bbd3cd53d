package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Log appends one generated-image record and returns its row id. Records
// are never updated or deleted.
func (r *ImageRepository) Log(ctx context.Context, user, query, link string, chatID int64) (int64, error) {
	const q = `
INSERT INTO image_urls (user, query, link, chat_id)
VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, user, query, link, chatID)
	if err != nil {
		return 0, fmt.Errorf("insert image record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
