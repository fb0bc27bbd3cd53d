package telegram

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Media kinds accepted by Relay. They mirror the Telegram Bot API send
// methods for file-reference payloads.
const (
	MediaPhoto    = "photo"
	MediaVideo    = "video"
	MediaDocument = "document"
	MediaAudio    = "audio"
	MediaVoice    = "voice"
	MediaSticker  = "sticker"
)

// Sender relays outbound messages to the Telegram Bot API. Clients are
// built lazily per bot token and cached; construction validates the
// token against the API.
type Sender struct {
	log        *slog.Logger
	httpClient *http.Client

	mu   sync.Mutex
	bots map[string]*tgbotapi.BotAPI
}

func NewSender(timeout time.Duration, log *slog.Logger) *Sender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		log:        log,
		httpClient: &http.Client{Timeout: timeout},
		bots:       make(map[string]*tgbotapi.BotAPI),
	}
}

func (s *Sender) bot(token string) (*tgbotapi.BotAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if api, ok := s.bots[token]; ok {
		return api, nil
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, s.httpClient)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	if s.log != nil {
		s.log.Info("telegram client initialized", "bot", api.Self.UserName)
	}
	s.bots[token] = api
	return api, nil
}

// SendMessage relays a plain text message.
func (s *Sender) SendMessage(token string, chatID int64, text string) error {
	api, err := s.bot(token)
	if err != nil {
		return err
	}
	if _, err := api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendPhotoURL relays a photo by remote URL with a caption.
func (s *Sender) SendPhotoURL(token string, chatID int64, url, caption string) error {
	api, err := s.bot(token)
	if err != nil {
		return err
	}
	cfg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	cfg.Caption = caption
	if _, err := api.Send(cfg); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

// Relay forwards a media payload back to the chat by Telegram file id.
func (s *Sender) Relay(token string, chatID int64, kind, fileID, caption string) error {
	api, err := s.bot(token)
	if err != nil {
		return err
	}

	var msg tgbotapi.Chattable
	switch kind {
	case MediaPhoto:
		cfg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		cfg.Caption = caption
		msg = cfg
	case MediaVideo:
		cfg := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
		cfg.Caption = caption
		msg = cfg
	case MediaDocument:
		cfg := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
		cfg.Caption = caption
		msg = cfg
	case MediaAudio:
		cfg := tgbotapi.NewAudio(chatID, tgbotapi.FileID(fileID))
		cfg.Caption = caption
		msg = cfg
	case MediaVoice:
		msg = tgbotapi.NewVoice(chatID, tgbotapi.FileID(fileID))
	case MediaSticker:
		msg = tgbotapi.NewSticker(chatID, tgbotapi.FileID(fileID))
	default:
		return fmt.Errorf("unsupported media kind: %s", kind)
	}

	if _, err := api.Send(msg); err != nil {
		return fmt.Errorf("relay %s: %w", kind, err)
	}
	return nil
}
