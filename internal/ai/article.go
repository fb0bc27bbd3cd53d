package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Article is the result of a full blog generation: a one-word category,
// a display title and the markdown body.
type Article struct {
	Category string
	Title    string
	Content  string
}

// ArticleGenerator produces categorized blog articles through two
// sequential completions against a single text provider.
type ArticleGenerator struct {
	provider TextProvider
}

func NewArticleGenerator(provider TextProvider) *ArticleGenerator {
	return &ArticleGenerator{provider: provider}
}

// Generate categorizes the topic, composes the article, and derives the
// display title from the article's first top-level markdown heading. If
// either completion fails the whole operation fails.
func (g *ArticleGenerator) Generate(ctx context.Context, topic string) (Article, error) {
	categoryPrompt := fmt.Sprintf(
		"Categorize this topic into one word (fitness, tech, cooking, travel, business, health, finance, education, lifestyle, etc.): %s",
		topic)
	rawCategory, err := g.provider.Complete(ctx, categoryPrompt)
	if err != nil {
		return Article{}, fmt.Errorf("categorize topic: %w", err)
	}

	articlePrompt := fmt.Sprintf(
		"Write a comprehensive blog article about: %s. Cover all points mentioned in the title. Use markdown headers and provide detailed explanations.",
		topic)
	content, err := g.provider.Complete(ctx, articlePrompt)
	if err != nil {
		return Article{}, fmt.Errorf("compose article: %w", err)
	}

	return Article{
		Category: normalizeCategory(rawCategory),
		Title:    extractTitle(content, topic),
		Content:  content,
	}, nil
}

// normalizeCategory reduces a completion to a single lowercase word.
func normalizeCategory(raw string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,:;!\"'")
}

// extractTitle returns the text of the first "# " heading line, falling
// back to a capitalized form of the topic.
func extractTitle(content, topic string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return titleCase(topic)
}

// titleCase capitalizes the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
