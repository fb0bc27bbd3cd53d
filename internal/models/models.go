package models

import "time"

// Blog is one cached AI-generated article. A row exists exactly when
// generation for its normalized query has succeeded once; rows are never
// updated or deleted.
type Blog struct {
	ID        int64
	Query     string
	Title     string
	Content   string
	Category  string
	CreatedAt time.Time
}

// BotConfig maps a bot name to its Telegram bearer token.
type BotConfig struct {
	ID    int64
	Name  string
	Token string
}

// ImageURL is one entry in the append-only log of generated images.
type ImageURL struct {
	ID        int64
	User      string
	Query     string
	Link      string
	ChatID    int64
	CreatedAt time.Time
}

// CategorySummary is a category name with its total post count.
type CategorySummary struct {
	Category string
	Total    int
}
