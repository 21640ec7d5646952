package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "crop-doctor/internal/application"
	"crop-doctor/internal/container"
	"crop-doctor/internal/domain/entity"
)

const (
	msgStart = `👋 Hi! I am Crop Doctor.

📸 Send me a photo of a leaf and I will try to name the disease and suggest a remedy.

📋 Commands:
/check — start a new check
/remedy <disease> — look up a remedy
/about <name> — short encyclopedia summary
/help — help
/cancel — cancel the current operation`

	msgHelp = `ℹ️ How to use the bot:

1️⃣ Send a photo of a single leaf
2️⃣ The bot sends it to the plant identification service
3️⃣ You get the disease, a suggested remedy and a short summary

💡 Tips:
• Shoot in daylight, without glare
• Fill the frame with the leaf
• Keep the photo sharp

/remedy and /about without arguments use your last diagnosis.`

	msgAwaitingPhoto   = "📸 Send a photo of the leaf to check."
	msgCancelled       = "❌ Cancelled. Send /check to start again."
	msgSendPhoto       = "📸 Please send a photo of the leaf to check."
	msgUnknownCommand  = "❓ Unknown command. Use /help."
	msgProcessing      = "⏳ Analyzing the leaf..."
	msgBusy            = "⏳ Still analyzing your previous photo, please wait."
	msgNoResult        = "🤷 No disease detected. Try another photo."
	msgPoorImage       = "📷 The photo is not good enough: %s. Please take another one."
	msgProcessingError = "⚠️ Could not analyze the photo. Please try again later."
	msgNoIdentifier    = "⚠️ Photo analysis is not configured on this server. Try /remedy <disease>."
	msgNeedLabel       = "✍️ Tell me what to look up, e.g. /remedy late blight"
)

// Bot представляет Telegram-бота
type Bot struct {
	api        *tgbotapi.BotAPI
	services   *container.Container
	downloader *resty.Client
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	slog.Info("Authorized on Telegram", "account", api.Self.UserName)

	return &Bot{
		api:        api,
		services:   services,
		downloader: resty.New(),
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	user, err := b.services.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		slog.Error("Failed to get user", "user_id", msg.From.ID, "error", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.services.UserService

	switch msg.Command() {
	case "start":
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			slog.Error("Failed to reset user", "user_id", user.ID, "error", err)
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		if _, err := users.BeginCheck(ctx, user.ID, user.ChatID); err != nil {
			slog.Error("Failed to begin check", "user_id", user.ID, "error", err)
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			slog.Error("Failed to cancel", "user_id", user.ID, "error", err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	case "remedy":
		label := argumentOrLast(msg.CommandArguments(), user.LastLabel())
		if label == "" {
			b.sendMessage(msg.Chat.ID, msgNeedLabel)
			return
		}
		b.sendMessage(msg.Chat.ID, formatRemedy(b.services.RemedyResolver.Resolve(label)))

	case "about":
		name := argumentOrLast(msg.CommandArguments(), user.LastLabel())
		if name == "" {
			b.sendMessage(msg.Chat.ID, msgNeedLabel)
			return
		}
		b.sendMessage(msg.Chat.ID, formatDescription(b.services.Descriptions.Describe(ctx, name)))

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	if user.State == entity.StateProcessing {
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	}

	users := b.services.UserService
	if _, err := users.StartProcessing(ctx, user.ID, user.ChatID); err != nil {
		slog.Error("Failed to set processing state", "user_id", user.ID, "error", err)
	}

	var diag *entity.Diagnosis
	defer func() {
		if _, err := users.Finish(ctx, user.ID, user.ChatID, diag); err != nil {
			slog.Error("Failed to finish check", "user_id", user.ID, "error", err)
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Берём фото с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		slog.Error("Failed to download photo", "file_id", photo.FileID, "error", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	slog.Debug("Received photo", "user_id", user.ID, "bytes", len(imageData))

	diag, err = b.services.DiagnosisService.Diagnose(ctx, imageData)
	if err != nil {
		b.sendMessage(msg.Chat.ID, diagnosisErrorMessage(err))
		return
	}

	b.sendMessage(msg.Chat.ID, formatDiagnosis(diag))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	resp, err := b.downloader.R().SetContext(ctx).Get(file.Link(b.api.Token))
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func argumentOrLast(arg, last string) string {
	if arg = strings.TrimSpace(arg); arg != "" {
		return arg
	}
	return last
}

func diagnosisErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoResult):
		return msgNoResult
	case errors.Is(err, entity.ErrPoorImage):
		reason := err.Error()
		if _, after, ok := strings.Cut(reason, entity.ErrPoorImage.Error()+": "); ok {
			reason = after
		}
		return fmt.Sprintf(msgPoorImage, reason)
	case errors.Is(err, app.ErrIdentifierNotConfigured):
		return msgNoIdentifier
	default:
		slog.Error("Diagnosis failed", "error", err)
		return msgProcessingError
	}
}
