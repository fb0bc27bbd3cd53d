package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/hellokiler/blogbot/internal/service"
)

// warnGeneration is the inline error panel text shown when article
// generation fails.
const warnGeneration = "⚠️ Sorry, I couldn't reach the AI service. Please try again later."

type articlePage struct {
	Title   string
	Content template.HTML
	Error   string
}

type homePage struct {
	Groups []service.CategoryGroup
}

// handleBlogHome renders the category-grouped home view, or redirects to
// the per-topic page when a query parameter is present.
func (s *Server) handleBlogHome(w http.ResponseWriter, r *http.Request) {
	if query := strings.TrimSpace(r.URL.Query().Get("query")); query != "" {
		http.Redirect(w, r, "/blog/post/"+url.PathEscape(query), http.StatusFound)
		return
	}

	groups, err := s.blogs.Home(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.renderPage(w, "home.html", homePage{Groups: groups})
}

// handleBlogPost serves the cached article for the topic, generating one
// on first request. Generation failure renders an inline warning panel
// instead of an HTTP error.
func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	topic, err := url.PathUnescape(raw)
	if err != nil {
		topic = raw
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		http.Redirect(w, r, "/blog", http.StatusFound)
		return
	}

	blog, err := s.blogs.GetOrGenerate(r.Context(), topic)
	if err != nil {
		s.log.Error("blog generation failed", "topic", topic, "err", err)
		s.renderPage(w, "blog.html", articlePage{
			Title: titleFallback(topic),
			Error: warnGeneration,
		})
		return
	}

	s.renderPage(w, "blog.html", articlePage{
		Title:   blog.Title,
		Content: renderMarkdown(blog.Content),
	})
}

// handleCategory renders one page of a category listing. Pages beyond the
// last valid page redirect there; pages below 1 are treated as page 1.
func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	result, err := s.blogs.CategoryPage(r.Context(), name, page)
	if err != nil {
		var oor *service.PageOutOfRangeError
		if errors.As(err, &oor) {
			http.Redirect(w, r, fmt.Sprintf("/blog/category/%s?page=%d", url.PathEscape(name), oor.LastPage), http.StatusFound)
			return
		}
		s.internalError(w, err)
		return
	}

	s.renderPage(w, "category.html", categoryView{
		Page:     result,
		PrevPage: result.Page - 1,
		NextPage: result.Page + 1,
	})
}

type categoryView struct {
	Page     *service.CategoryPage
	PrevPage int
	NextPage int
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("render template", "template", name, "err", err)
	}
}

// titleFallback capitalizes each word of the topic for the error page
// heading.
func titleFallback(topic string) string {
	words := strings.Fields(topic)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
