package database

var schema = []string{
	`CREATE TABLE IF NOT EXISTS blogs (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    query VARCHAR(255) NOT NULL UNIQUE,
    title VARCHAR(255) NOT NULL,
    content MEDIUMTEXT NOT NULL,
    category VARCHAR(64),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS bot_configs (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE,
    token TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS image_urls (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    user VARCHAR(255) NOT NULL,
    query VARCHAR(255) NOT NULL,
    link VARCHAR(500) NOT NULL,
    chat_id BIGINT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}
