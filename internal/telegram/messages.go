package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Giterapeuta/app-emagrecimento/internal/breathing"
	"github.com/Giterapeuta/app-emagrecimento/internal/scheduler"
)

func (b *Bot) SendMessageOrLogError(message string) {
	if err := b.SendMessage(message); err != nil {
		log.Printf("❌ Erro ao enviar mensagem: %v", err)
	}
}

func breathingSessionText(pattern breathing.Pattern, phase breathing.Phase) string {
	return fmt.Sprintf(
		"🌬️ <b>%s</b>\n<i>%s</i>\n\n%s <b>%s</b>",
		pattern.Name,
		pattern.Description,
		phaseEmoji(phase),
		phase,
	)
}

func breathingKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Concluir", "breathe_done"),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Parar", "breathe_stop"),
		),
	)
}

func phaseEmoji(phase breathing.Phase) string {
	switch phase {
	case breathing.PhaseInhale:
		return "🫁"
	case breathing.PhaseHold:
		return "⏸"
	case breathing.PhaseExhale:
		return "💨"
	default:
		return "🌙"
	}
}

func reminderTypeName(t scheduler.ReminderType) string {
	if t == scheduler.ReminderPause {
		return "Pausa para respirar"
	}
	return "Registro de bem-estar"
}

func reminderStatusEmoji(r scheduler.Reminder) string {
	if r.Enabled {
		return "🔔"
	}
	return "🔕"
}
