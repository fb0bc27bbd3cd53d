package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type BotConfigRepository struct {
	db *sql.DB
}

func NewBotConfigRepository(db *sql.DB) *BotConfigRepository {
	return &BotConfigRepository{db: db}
}

// FindToken returns the stored token for a bot name, or ErrNotFound.
func (r *BotConfigRepository) FindToken(ctx context.Context, name string) (string, error) {
	const q = `SELECT token FROM bot_configs WHERE name = ?`
	var token string
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("scan bot token: %w", err)
	}
	return token, nil
}

// Upsert stores the token for a bot name, replacing any previous value.
// The single statement is atomic under concurrent webhook calls for the
// same name.
func (r *BotConfigRepository) Upsert(ctx context.Context, name, token string) error {
	const q = `
INSERT INTO bot_configs (name, token) VALUES (?, ?)
ON DUPLICATE KEY UPDATE token = VALUES(token)`
	if _, err := r.db.ExecContext(ctx, q, name, token); err != nil {
		return fmt.Errorf("upsert bot token: %w", err)
	}
	return nil
}
