package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"crack-meter/internal/container"
	"crack-meter/internal/domain/entity"
	"crack-meter/internal/logger"
	"crack-meter/internal/report"
)

const (
	msgStart = `👋 Привет! Я бот для измерения трещин по фотографии.

📸 Отправьте фото поверхности с трещиной, и я оценю её длину, ширину и глубину.

📋 Команды:
/check — начать измерение
/optics — параметры съёмки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото трещины (как фото или как файл без сжатия)
2️⃣ Бот выделит трещину и посчитает размеры
3️⃣ Вы получите результат: текст + фото с подсветкой трещины

📐 Размеры считаются по параметрам съёмки:
/optics — показать текущие
/optics <пиксель, м> <расстояние, м> <фокус, м> — задать свои
/optics reset — вернуть значения по умолчанию

💡 Рекомендации:
• Снимайте перпендикулярно поверхности
• Освещение должно быть равномерным
• Файл без сжатия даёт более точный результат`

	msgAwaitingPhoto   = "📸 Отправьте фото трещины для измерения."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для нового измерения."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото трещины."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoCrack         = "✅ Трещина не обнаружена."
	msgDegenerate      = "⚠️ Не удалось оценить глубину: снимок слишком тёмный или трещина занимает весь кадр."
	msgInvalidImage    = "⚠️ Не удалось прочитать изображение. Отправьте фото в формате JPEG или PNG."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgNotImage        = "📎 Этот файл не похож на изображение."
	msgOpticsUsage     = "Использование: /optics <пиксель, м> <расстояние, м> <фокус, м> или /optics reset"
	msgOpticsReset     = "🔄 Параметры съёмки сброшены."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.WithField("account", api.Self.UserName).Info("authorized")

	return &Bot{
		api:       api,
		container: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
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

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		// Берём файл с максимальным разрешением
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleImage(ctx, msg, photo.FileID)
		return
	}

	if msg.Document != nil {
		if !isImageDocument(msg.Document) {
			b.sendMessage(msg.Chat.ID, msgNotImage)
			return
		}
		b.handleImage(ctx, msg, msg.Document.FileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	sessions := b.container.SessionService
	userID, chatID := msg.From.ID, msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = sessions.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		_, err = sessions.BeginCheck(ctx, userID, chatID)
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "cancel":
		_, err = sessions.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgCancelled)

	case "optics":
		err = b.handleOptics(ctx, msg)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("failed to update session")
	}
}

// handleOptics показывает, задаёт или сбрасывает параметры съёмки
func (b *Bot) handleOptics(ctx context.Context, msg *tgbotapi.Message) error {
	sessions := b.container.SessionService
	userID, chatID := msg.From.ID, msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch {
	case args == "":
		session, err := sessions.Get(ctx, userID, chatID)
		if err != nil {
			return err
		}
		b.sendMessage(chatID, "📐 "+report.Optics(session.Optics))
		return nil

	case strings.EqualFold(args, "reset"):
		if _, err := sessions.ResetOptics(ctx, userID, chatID); err != nil {
			return err
		}
		b.sendMessage(chatID, msgOpticsReset)
		return nil
	}

	optics, err := parseOptics(args)
	if err != nil {
		b.sendMessage(chatID, msgOpticsUsage)
		return nil
	}
	session, err := sessions.SetOptics(ctx, userID, chatID, optics)
	if err != nil {
		b.sendMessage(chatID, fmt.Sprintf("⚠️ Некорректные параметры: %v", err))
		return nil
	}
	b.sendMessage(chatID, "✅ "+report.Optics(session.Optics))
	return nil
}

// handleImage скачивает снимок и измеряет трещину
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	chatID := msg.Chat.ID
	log := logger.WithField("user_id", msg.From.ID)

	b.sendMessage(chatID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.WithError(err).Error("failed to download photo")
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	log.WithField("bytes", len(imageData)).Debug("photo received")

	out, err := b.container.InspectionService.ProcessCrackPhoto(ctx, msg.From.ID, chatID, imageData)
	if err != nil {
		log.WithError(err).Warn("crack measurement failed")
		b.sendMessage(chatID, failureMessage(err))
		return
	}

	text := resultMessage(out.Analysis)
	if len(out.Highlighted) == 0 {
		b.sendMessage(chatID, text)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "crack.jpg", Bytes: out.Highlighted})
	photo.Caption = text
	if _, err := b.api.Send(photo); err != nil {
		log.WithError(err).Error("failed to send photo")
		b.sendMessage(chatID, text)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.WithError(err).WithField("chat_id", chatID).Error("failed to send message")
	}
}

func isImageDocument(doc *tgbotapi.Document) bool {
	return strings.HasPrefix(doc.MimeType, "image/")
}

// parseOptics разбирает "<пиксель> <расстояние> <фокус>" в метрах
func parseOptics(args string) (entity.OpticalConstants, error) {
	fields := strings.Fields(strings.ReplaceAll(args, ",", "."))
	if len(fields) != 3 {
		return entity.OpticalConstants{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return entity.OpticalConstants{}, fmt.Errorf("invalid number %q", f)
		}
		values[i] = v
	}

	return entity.OpticalConstants{
		PixelSize:      values[0],
		ObjectDistance: values[1],
		FocalLength:    values[2],
	}, nil
}

func resultMessage(a *entity.Analysis) string {
	return fmt.Sprintf("📏 Результат измерения (контуров: %d)\n\n%s\n📐 %s",
		len(a.Contours), report.Text(a.Result), report.Optics(a.Optics))
}

func failureMessage(err error) string {
	var (
		noCrack    *entity.NoCrackDetectedError
		degenerate *entity.DegenerateModelError
		invalid    *entity.InvalidImageError
	)
	switch {
	case errors.As(err, &noCrack):
		return msgNoCrack
	case errors.As(err, &degenerate):
		return msgDegenerate
	case errors.As(err, &invalid):
		return msgInvalidImage
	default:
		return msgProcessingError
	}
}
