package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Giterapeuta/app-emagrecimento/internal/breathing"
	"github.com/Giterapeuta/app-emagrecimento/internal/database"
	"github.com/Giterapeuta/app-emagrecimento/internal/gemini"
	"github.com/Giterapeuta/app-emagrecimento/internal/scheduler"
	"github.com/Giterapeuta/app-emagrecimento/internal/utils"
)

// handlers.go - comandos e callbacks do bot

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	message := `Olá! Sou Gizele Anastacio, sua Terapeuta Comportamental. Estou aqui para te apoiar na sua jornada de bem-estar e equilíbrio com a comida. Como você está se sentindo em relação à sua alimentação hoje?

Comandos disponíveis:
/respirar - Pausa de respiração guiada
/painel - Painel de bem-estar
/lembretes - Gerenciar lembretes
/lembrete HH:mm pausa|registro - Adicionar lembrete
/silencio - Ligar/desligar narração
/ajuda - Ajuda

Ou simplesmente me conte como foi seu dia. 💜`

	b.SendMessageOrLogError(message)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	message := `🌿 <b>Gizele Anastacio - Bem-estar</b>

Converse comigo livremente sobre sua alimentação e suas emoções. Quando você mencionar uma refeição ou como se sente, eu registro no seu painel.

/respirar - Escolher uma técnica de respiração
/painel - Pausas, humor e refeições conscientes
/lembretes - Listar, ativar e remover lembretes
/lembrete 08:30 pausa - Lembrete de pausa às 08:30
/lembrete 20:00 registro - Lembrete de registro às 20:00
/hora 10:00 10:30 - Mover um lembrete de horário
/silencio - Silenciar ou reativar a narração das pausas

Você também pode me enviar uma foto para personalizar seu perfil.`

	b.SendMessageOrLogError(message)
}

// handleChat encaminha texto livre para a conversa com a Gizele.
func (b *Bot) handleChat(msg *tgbotapi.Message) {
	typing := tgbotapi.NewChatAction(b.chatID, tgbotapi.ChatTyping)
	if _, err := b.bot.Request(typing); err != nil {
		log.Printf("⚠️ Erro ao enviar ação de digitação: %v", err)
	}

	reply, err := b.gemini.SendMessage(context.Background(), msg.Text)
	if err != nil {
		if errors.Is(err, gemini.ErrBusy) {
			b.SendMessageOrLogError("⏳ Ainda estou escrevendo a resposta anterior. Um instante!")
			return
		}
		log.Printf("❌ Erro no chat: %v", err)
		b.SendMessageOrLogError("Houve um problema na conexão.")
		return
	}

	b.SendMessageOrLogError(reply)

	classification := b.services.Classifier.Classify(msg.Text)
	b.services.Stats.Apply(classification)
}

// handlePhoto guarda a foto de perfil enviada pelo usuário.
func (b *Bot) handlePhoto(msg *tgbotapi.Message) {
	largest := msg.Photo[len(msg.Photo)-1]
	repo := database.NewRepository(b.db)
	if err := repo.SetProfileValue(database.ProfilePhoto, largest.FileID); err != nil {
		b.SendMessageOrLogError("❌ Erro ao salvar a foto")
		return
	}
	b.SendMessageOrLogError("📸 Foto de perfil atualizada!")
}

// Breathing handlers

func (b *Bot) handleBreathe(msg *tgbotapi.Message) {
	var message strings.Builder
	message.WriteString("🌬️ <b>Pausa para Respirar</b>\n\nEscolha uma técnica:\n\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range b.patterns {
		message.WriteString(fmt.Sprintf("<b>%s</b>\n<i>%s</i>\n\n", p.Name, p.Description))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name, "breathe_start_"+p.Key),
		))
	}

	listMsg := tgbotapi.NewMessage(b.chatID, message.String())
	listMsg.ParseMode = "HTML"
	listMsg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := b.bot.Send(listMsg); err != nil {
		log.Printf("❌ Erro ao enviar técnicas: %v", err)
	}
}

func (b *Bot) handleStartBreathing(key string) {
	pattern, ok := b.patternByKey(key)
	if !ok {
		b.SendMessageOrLogError("❌ Técnica desconhecida")
		return
	}

	// Start encerra sozinho uma sessão anterior; basta trocar a mensagem.
	b.controller.Start(pattern)

	sessionMsg := tgbotapi.NewMessage(b.chatID, breathingSessionText(pattern, breathing.PhaseInhale))
	sessionMsg.ParseMode = "HTML"
	sessionMsg.ReplyMarkup = breathingKeyboard()

	sent, err := b.bot.Send(sessionMsg)
	if err != nil {
		log.Printf("❌ Erro ao iniciar sessão: %v", err)
		b.controller.Stop()
		return
	}

	b.sessionMu.Lock()
	b.sessionMsgID = sent.MessageID
	b.sessionMu.Unlock()

	b.narrator.PlayGuide(context.Background(), pattern.GuideText, pattern.Name)
}

func (b *Bot) handleConcludeBreathing() {
	if !b.controller.Conclude() {
		b.SendMessageOrLogError("ℹ️ Nenhuma sessão de respiração ativa")
		return
	}
	b.closeSessionMessage("✅ <b>Pausa concluída!</b>\n\nRespirar é um ato de cuidado. Como você está se sentindo agora?")
}

func (b *Bot) handleStopBreathing() {
	if !b.controller.Stop() {
		b.SendMessageOrLogError("ℹ️ Nenhuma sessão de respiração ativa")
		return
	}
	b.closeSessionMessage("🌙 Sessão encerrada. Quando quiser, estarei aqui.")
}

func (b *Bot) closeSessionMessage(text string) {
	b.sessionMu.Lock()
	msgID := b.sessionMsgID
	b.sessionMsgID = 0
	b.sessionMu.Unlock()

	if msgID == 0 {
		return
	}

	edit := tgbotapi.NewEditMessageText(b.chatID, msgID, text)
	edit.ParseMode = "HTML"
	if _, err := b.bot.Request(edit); err != nil {
		log.Printf("⚠️ Erro ao encerrar mensagem da sessão: %v", err)
	}
}

// Dashboard handler

func (b *Bot) handleDashboard(msg *tgbotapi.Message) {
	summary, err := b.services.Stats.Summary()
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao carregar o painel")
		return
	}

	var message strings.Builder
	message.WriteString("📊 <b>Painel de Bem-estar</b>\n\n")
	message.WriteString(fmt.Sprintf("🌬️ Pausas concluídas: <b>%d</b>\n", summary.Pauses))
	message.WriteString(fmt.Sprintf("💜 Humor médio: <b>%s</b>\n", utils.FormatAvgMood(summary.AvgMood)))
	message.WriteString(fmt.Sprintf("🍽️ Refeições conscientes: <b>%d/%d</b>\n", summary.MindfulMeals, summary.TotalMeals))

	if len(summary.MoodScores) >= 2 {
		message.WriteString(fmt.Sprintf("\nTendência de humor:\n<code>%s</code>\n", utils.MoodSparkline(summary.MoodScores)))
	} else {
		message.WriteString("\n<i>Continue conversando para gerar tendência de humor.</i>\n")
	}

	b.SendMessageOrLogError(message.String())
}

// Reminder handlers

func (b *Bot) handleReminders(msg *tgbotapi.Message) {
	b.sendReminderList()
}

func (b *Bot) sendReminderList() {
	repo := b.services.Repository()
	reminders, err := repo.Reminders()
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao carregar lembretes")
		return
	}

	var message strings.Builder
	message.WriteString("⏰ <b>Lembretes</b>\n\n")
	if len(reminders) == 0 {
		message.WriteString("<i>Nenhum lembrete configurado.</i>\n")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range reminders {
		message.WriteString(fmt.Sprintf("%s <b>%s</b> - %s\n", reminderStatusEmoji(r), r.Time, reminderTypeName(r.Type)))

		toggleLabel := "🔕 Desativar " + r.Time
		if !r.Enabled {
			toggleLabel = "🔔 Ativar " + r.Time
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggleLabel, "rem_toggle_"+r.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Remover", "rem_del_"+r.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Novo lembrete (12:00)", "rem_add"),
	))
	message.WriteString("\nPara um horário específico: /lembrete HH:mm pausa|registro")

	listMsg := tgbotapi.NewMessage(b.chatID, message.String())
	listMsg.ParseMode = "HTML"
	listMsg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := b.bot.Send(listMsg); err != nil {
		log.Printf("❌ Erro ao enviar lembretes: %v", err)
	}
}

func (b *Bot) handleAddReminder(msg *tgbotapi.Message) {
	parts := strings.Fields(msg.Text)
	if len(parts) != 3 {
		b.SendMessageOrLogError("❌ Use: /lembrete HH:mm pausa|registro")
		return
	}

	clock, err := scheduler.ValidateClock(parts[1])
	if err != nil {
		b.SendMessageOrLogError("❌ " + err.Error())
		return
	}

	var kind scheduler.ReminderType
	switch strings.ToLower(parts[2]) {
	case "pausa", "pause":
		kind = scheduler.ReminderPause
	case "registro", "log":
		kind = scheduler.ReminderLog
	default:
		b.SendMessageOrLogError("❌ Tipo inválido. Use 'pausa' ou 'registro'")
		return
	}

	reminder, err := b.services.Repository().AddReminder(clock, kind)
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao salvar lembrete")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf("✅ Lembrete de %s criado para %s", reminderTypeName(reminder.Type), reminder.Time))
}

// handleChangeReminderTime muda o horário do primeiro lembrete que
// coincide com o horário antigo informado.
func (b *Bot) handleChangeReminderTime(msg *tgbotapi.Message) {
	parts := strings.Fields(msg.Text)
	if len(parts) != 3 {
		b.SendMessageOrLogError("❌ Use: /hora HH:mm-antigo HH:mm-novo")
		return
	}

	oldClock, err := scheduler.ValidateClock(parts[1])
	if err != nil {
		b.SendMessageOrLogError("❌ " + err.Error())
		return
	}
	newClock, err := scheduler.ValidateClock(parts[2])
	if err != nil {
		b.SendMessageOrLogError("❌ " + err.Error())
		return
	}

	repo := b.services.Repository()
	reminders, err := repo.Reminders()
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao carregar lembretes")
		return
	}

	for _, r := range reminders {
		if r.Time == oldClock {
			if err := repo.UpdateReminderTime(r.ID, newClock); err != nil {
				b.SendMessageOrLogError("❌ Erro ao atualizar horário")
				return
			}
			b.SendMessageOrLogError(fmt.Sprintf("⏰ Lembrete movido de %s para %s", oldClock, newClock))
			return
		}
	}

	b.SendMessageOrLogError(fmt.Sprintf("❌ Nenhum lembrete às %s", oldClock))
}

func (b *Bot) handleQuickAddReminder() {
	// Mesmo padrão do original: novo lembrete nasce às 12:00, tipo pausa.
	if _, err := b.services.Repository().AddReminder("12:00", scheduler.ReminderPause); err != nil {
		b.SendMessageOrLogError("❌ Erro ao criar lembrete")
		return
	}
	b.sendReminderList()
}

func (b *Bot) handleToggleReminder(id string) {
	enabled, err := b.services.Repository().ToggleReminder(id)
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao atualizar lembrete")
		return
	}
	if enabled {
		b.SendMessageOrLogError("🔔 Lembrete ativado")
	} else {
		b.SendMessageOrLogError("🔕 Lembrete desativado")
	}
	b.sendReminderList()
}

func (b *Bot) handleDeleteReminder(id string) {
	if err := b.services.Repository().DeleteReminder(id); err != nil {
		b.SendMessageOrLogError("❌ Erro ao remover lembrete")
		return
	}
	b.SendMessageOrLogError("🗑 Lembrete removido")
	b.sendReminderList()
}

// Mute handler

func (b *Bot) handleMuteToggle(msg *tgbotapi.Message) {
	if b.narrator.ToggleMute() {
		b.SendMessageOrLogError("🔇 Narração silenciada")
	} else {
		b.SendMessageOrLogError("🔊 Narração reativada")
	}
}
