package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Giterapeuta/app-emagrecimento/internal/audio"
	"github.com/Giterapeuta/app-emagrecimento/internal/breathing"
	"github.com/Giterapeuta/app-emagrecimento/internal/database"
	"github.com/Giterapeuta/app-emagrecimento/internal/gemini"
	"github.com/Giterapeuta/app-emagrecimento/internal/scheduler"
	"github.com/Giterapeuta/app-emagrecimento/internal/services"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	db       *database.Database
	services *services.ServiceManager
	gemini   *gemini.Client
	handlers map[string]func(*tgbotapi.Message)

	controller *breathing.Controller
	narrator   *audio.Narrator
	patterns   []breathing.Pattern

	sessionMu    sync.Mutex
	sessionMsgID int
}

func NewBot(token string, chatID int64, db *database.Database, serviceManager *services.ServiceManager,
	geminiClient *gemini.Client, patterns []breathing.Pattern) (*Bot, error) {

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar bot: %v", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		db:       db,
		services: serviceManager,
		gemini:   geminiClient,
		handlers: make(map[string]func(*tgbotapi.Message)),
		patterns: patterns,
	}

	bot.controller = breathing.New(bot.handlePhaseChange, serviceManager.Stats.RecordPause)
	bot.narrator = audio.NewNarrator(geminiClient, bot)

	bot.registerHandlers()
	log.Printf("🤖 Bot inicializado: %s", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/respirar"] = b.handleBreathe
	b.handlers["/painel"] = b.handleDashboard
	b.handlers["/lembretes"] = b.handleReminders
	b.handlers["/silencio"] = b.handleMuteToggle
	b.handlers["/ajuda"] = b.handleHelp
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

// SendNotification entrega o alerta de um lembrete disparado.
// Implementa services.NotificationSender.
func (b *Bot) SendNotification(n scheduler.Notification) error {
	message := fmt.Sprintf("🔔 <b>%s</b>\n\n%s", n.Title, n.Message)
	return b.SendMessage(message)
}

// SendVoice envia a narração sintetizada como arquivo de áudio.
// Implementa audio.VoiceSender.
func (b *Bot) SendVoice(wav []byte, caption string) error {
	file := tgbotapi.FileBytes{Name: "narracao.wav", Bytes: wav}
	msg := tgbotapi.NewAudio(b.chatID, file)
	msg.Caption = caption
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.controller.Stop()
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		b.SendMessage("⛔ Acesso negado")
		return
	}

	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if len(msg.Photo) > 0 {
		b.handlePhoto(msg)
		return
	}

	text := msg.Text
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/lembrete ") {
		b.handleAddReminder(msg)
		return
	}

	if strings.HasPrefix(text, "/hora ") {
		b.handleChangeReminderTime(msg)
		return
	}

	if strings.HasPrefix(text, "/") {
		parts := strings.Fields(text)
		command := parts[0]

		if handler, exists := b.handlers[command]; exists {
			handler(msg)
		} else {
			b.SendMessageOrLogError("❌ Comando desconhecido. Use /ajuda")
		}
		return
	}

	b.handleChat(msg)
}

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func(bot *tgbotapi.BotAPI, c tgbotapi.Chattable) {
		_, err := bot.Request(c)
		if err != nil {
			log.Printf("⚠️ Erro ao responder callback: %v", err)
		}
	}(b.bot, tgbotapi.NewCallback(callback.ID, ""))

	if callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	log.Printf("Callback recebido: %s", data)

	switch {
	case strings.HasPrefix(data, "breathe_start_"):
		b.handleStartBreathing(strings.TrimPrefix(data, "breathe_start_"))
	case data == "breathe_done":
		b.handleConcludeBreathing()
	case data == "breathe_stop":
		b.handleStopBreathing()
	case strings.HasPrefix(data, "rem_toggle_"):
		b.handleToggleReminder(strings.TrimPrefix(data, "rem_toggle_"))
	case strings.HasPrefix(data, "rem_del_"):
		b.handleDeleteReminder(strings.TrimPrefix(data, "rem_del_"))
	case data == "rem_add":
		b.handleQuickAddReminder()
	}
}

// handlePhaseChange atualiza a mensagem da sessão ativa a cada fase.
func (b *Bot) handlePhaseChange(phase breathing.Phase) {
	b.sessionMu.Lock()
	msgID := b.sessionMsgID
	b.sessionMu.Unlock()
	if msgID == 0 {
		return
	}

	pattern, active := b.controller.Pattern()
	if !active {
		return
	}

	edit := tgbotapi.NewEditMessageText(b.chatID, msgID, breathingSessionText(pattern, phase))
	edit.ParseMode = "HTML"
	markup := breathingKeyboard()
	edit.ReplyMarkup = &markup

	if _, err := b.bot.Request(edit); err != nil {
		log.Printf("⚠️ Erro ao atualizar fase: %v", err)
	}
}

func (b *Bot) patternByKey(key string) (breathing.Pattern, bool) {
	for _, p := range b.patterns {
		if p.Key == key {
			return p, true
		}
	}
	return breathing.Pattern{}, false
}
