package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hellokiler/blogbot/internal/repository"
)

// handleWebhook accepts one Telegram-style update for the named bot. The
// calling platform always receives {"ok":true} once processing has run;
// internal failures are relayed to the chat, never surfaced as HTTP
// errors. Only an unknown bot with no supplied token yields a 404.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	botName := chi.URLParam(r, "botName")
	tokenParam := r.URL.Query().Get("token")

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.log.Warn("webhook body decode failed", "bot", botName, "err", err)
	}

	if err := s.webhook.Process(r.Context(), botName, tokenParam, &update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Bot token not found"})
			return
		}
		s.internalError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
