package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/hellokiler/blogbot/internal/ai"
	"github.com/hellokiler/blogbot/internal/repository"
	"github.com/hellokiler/blogbot/internal/telegram"
)

// imageTriggerPrefix marks a text message as an image generation request.
const imageTriggerPrefix = "."

// User-facing warning texts. They exist only here, at the reply boundary;
// adapters report failures as errors.
const (
	warnTextFailed  = "⚠️ Sorry, I couldn't reach the AI service. Please try again later."
	warnImageFailed = "⚠️ Failed to generate image. Please try again later."
	msgUnsupported  = "Unsupported message type received."
	imageCaption    = "Here is your generated image"
)

// ImageGenerator produces an image URL for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, width, height int) (string, error)
}

// ChatSender relays outbound messages to the chat platform.
type ChatSender interface {
	SendMessage(token string, chatID int64, text string) error
	SendPhotoURL(token string, chatID int64, url, caption string) error
	Relay(token string, chatID int64, kind, fileID, caption string) error
}

// WebhookService handles one inbound chat update: it resolves the bot's
// token, dispatches the message to text or image generation, and relays
// the result back. Processing failures are swallowed into chat replies;
// only an unresolvable bot token is reported to the caller.
type WebhookService struct {
	log    *slog.Logger
	bots   *repository.BotConfigRepository
	images *repository.ImageRepository
	text   ai.TextProvider
	imgGen ImageGenerator
	sender ChatSender
}

func NewWebhookService(log *slog.Logger, bots *repository.BotConfigRepository, images *repository.ImageRepository, text ai.TextProvider, imgGen ImageGenerator, sender ChatSender) *WebhookService {
	return &WebhookService{
		log:    log,
		bots:   bots,
		images: images,
		text:   text,
		imgGen: imgGen,
		sender: sender,
	}
}

// Process handles one update for the named bot. A token supplied with the
// request is upserted before resolution, so a single call can register a
// bot and immediately serve it. Returns repository.ErrNotFound when no
// token is known for the bot.
func (s *WebhookService) Process(ctx context.Context, botName, tokenParam string, update *tgbotapi.Update) error {
	logr := s.log.With("bot", botName, "correlation_id", uuid.NewString())

	if tokenParam != "" {
		if err := s.bots.Upsert(ctx, botName, tokenParam); err != nil {
			return fmt.Errorf("register bot token: %w", err)
		}
		logr.Info("bot token registered")
	}

	token, err := s.bots.FindToken(ctx, botName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("resolve bot token: %w", err)
	}

	if update == nil || update.Message == nil {
		return nil
	}
	msg := update.Message
	chatID := msg.Chat.ID

	switch {
	case msg.Text != "":
		if strings.HasPrefix(msg.Text, imageTriggerPrefix) {
			s.handleImage(ctx, logr, token, msg)
		} else {
			s.handleText(ctx, logr, token, msg)
		}
	case len(msg.Photo) > 0:
		s.relayFile(logr, token, chatID, telegram.MediaPhoto, msg.Photo[len(msg.Photo)-1].FileID, msg.Caption)
	case msg.Video != nil:
		s.relayFile(logr, token, chatID, telegram.MediaVideo, msg.Video.FileID, msg.Caption)
	case msg.Document != nil:
		s.relayFile(logr, token, chatID, telegram.MediaDocument, msg.Document.FileID, msg.Caption)
	case msg.Audio != nil:
		s.relayFile(logr, token, chatID, telegram.MediaAudio, msg.Audio.FileID, msg.Caption)
	case msg.Voice != nil:
		s.relayFile(logr, token, chatID, telegram.MediaVoice, msg.Voice.FileID, "")
	case msg.Sticker != nil:
		s.relayFile(logr, token, chatID, telegram.MediaSticker, msg.Sticker.FileID, "")
	default:
		s.reply(logr, token, chatID, msgUnsupported)
	}

	return nil
}

// handleImage strips the trigger prefix, generates an image, records it
// and relays the photo. Any failure becomes a warning reply.
func (s *WebhookService) handleImage(ctx context.Context, logr *slog.Logger, token string, msg *tgbotapi.Message) {
	prompt := strings.TrimPrefix(msg.Text, imageTriggerPrefix)
	chatID := msg.Chat.ID

	url, err := s.imgGen.Generate(ctx, prompt, 0, 0)
	if err != nil {
		logr.Error("image generation failed", "err", err)
		s.reply(logr, token, chatID, warnImageFailed)
		return
	}

	if _, err := s.images.Log(ctx, senderName(msg), prompt, url, chatID); err != nil {
		// The image still reaches the user; only the audit row is lost.
		logr.Error("image record insert failed", "err", err)
	}

	if err := s.sender.SendPhotoURL(token, chatID, url, imageCaption); err != nil {
		logr.Error("photo relay failed", "err", err)
	}
}

// handleText completes the prompt against the text backend, sanitizes the
// reply for the chat client's limited markup, and relays it.
func (s *WebhookService) handleText(ctx context.Context, logr *slog.Logger, token string, msg *tgbotapi.Message) {
	reply, err := s.text.Complete(ctx, msg.Text)
	if err != nil {
		logr.Error("text generation failed", "err", err)
		s.reply(logr, token, msg.Chat.ID, warnTextFailed)
		return
	}
	s.reply(logr, token, msg.Chat.ID, sanitizeReply(reply))
}

func (s *WebhookService) relayFile(logr *slog.Logger, token string, chatID int64, kind, fileID, caption string) {
	if err := s.sender.Relay(token, chatID, kind, fileID, caption); err != nil {
		logr.Error("media relay failed", "kind", kind, "err", err)
	}
}

func (s *WebhookService) reply(logr *slog.Logger, token string, chatID int64, text string) {
	if err := s.sender.SendMessage(token, chatID, text); err != nil {
		logr.Error("chat reply failed", "err", err)
	}
}

// sanitizeReply escapes angle brackets and strips backticks before the
// reply reaches a chat client that renders limited markup.
func sanitizeReply(text string) string {
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return strings.ReplaceAll(text, "`", "'")
}

func senderName(msg *tgbotapi.Message) string {
	if msg.From != nil && msg.From.FirstName != "" {
		return msg.From.FirstName
	}
	return "User"
}
