package app

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Giterapeuta/app-emagrecimento/internal/config"
	"github.com/Giterapeuta/app-emagrecimento/internal/database"
	"github.com/Giterapeuta/app-emagrecimento/internal/gemini"
	"github.com/Giterapeuta/app-emagrecimento/internal/services"
	"github.com/Giterapeuta/app-emagrecimento/internal/telegram"
	"github.com/Giterapeuta/app-emagrecimento/internal/web"
)

type Application struct {
	config     *config.Config
	db         *database.Database
	bot        *telegram.Bot
	services   *services.ServiceManager
	web        *web.Server
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	patterns, err := config.LoadPatterns(cfg.Patterns.Path)
	if err != nil {
		db.Close()
		return nil, err
	}

	serviceManager := services.NewServiceManager(db)
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey)

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, db, serviceManager, geminiClient, patterns)
	if err != nil {
		db.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		config:     cfg,
		db:         db,
		bot:        bot,
		services:   serviceManager,
		web:        web.NewServer(serviceManager.Stats),
		cron:       cron.New(),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Iniciando aplicação...")

	if err := a.services.Repository().EnsureDefaultReminders(); err != nil {
		log.Printf("⚠️ Erro ao semear lembretes padrão: %v", err)
	}

	go a.bot.Start(a.ctx)

	go func() {
		if err := a.web.Run(":" + a.config.Server.Port); err != nil {
			log.Printf("⚠️ Erro no servidor web: %v", err)
		}
	}()

	a.cron.Start()

	log.Printf("✅ Aplicação iniciada. Bot: @%s", a.bot.GetUsername())
	log.Printf("🌐 API disponível na porta: %s", a.config.Server.Port)

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Parando aplicação...")

	a.cancelFunc()
	a.cron.Stop()

	if err := a.db.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar BD: %v", err)
	}

	log.Println("✅ Aplicação parada")
	return nil
}

func (a *Application) setupCronJobs() {
	// Verificação de lembretes a cada 10 segundos; o agendador garante
	// no máximo um disparo por minuto.
	_, err := a.cron.AddFunc("@every 10s", func() {
		a.services.Notification.CheckReminders()
	})
	if err != nil {
		panic(err)
	}
}
