// Package main is the entry point for the TrapoBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/audit"
	"github.com/TrapoCloud/TrapoBotGo/internal/commands"
	"github.com/TrapoCloud/TrapoBotGo/internal/commands/mod"
	"github.com/TrapoCloud/TrapoBotGo/internal/events"
	"github.com/TrapoCloud/TrapoBotGo/internal/moderation"
	"github.com/TrapoCloud/TrapoBotGo/internal/nickname"
	"github.com/TrapoCloud/TrapoBotGo/internal/tickets"
	"github.com/TrapoCloud/TrapoBotGo/pkg/config"
	"github.com/TrapoCloud/TrapoBotGo/pkg/database"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/errors"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/mqtt"
	"github.com/TrapoCloud/TrapoBotGo/pkg/web"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando TrapoBot Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				return
			}
		}
	})

	// Initialize database (audit archive)
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database - it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			if err := db.Disconnect(); err != nil {
				return
			}
		}
	}()
	auditService := database.NewAuditService(db)

	// Initialize MQTT
	mqttClientID := "trapobot"
	if !cfg.IsProd() {
		mqttClientID = "trapobot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Moderation wiring: ticket registry, audit fanout, pipeline and the
	// nickname migration engine
	registry := tickets.NewRegistry(
		tickets.NewDiscordProvider(discordClient.Session),
		cfg.TicketCategoryName,
	)

	modLogSink := audit.NewChannelSink(discordClient.Session, cfg.LogChannelName)
	auditFanout := audit.NewFanout(
		modLogSink,
		audit.NewArchiveSink(auditService),
		audit.NewTelemetrySink(mqttClient, mqtt.TopicModeration),
	)

	pipeline := moderation.NewPipeline(
		moderation.NewWarningLedger(),
		registry,
		moderation.NewDiscordNotifier(discordClient.Session),
		moderation.NewDiscordEnforcer(discordClient.Session),
		auditFanout,
	)

	// One rename per second keeps the bulk migration under the API limits
	liveHub := web.NewLiveHub()
	engine := nickname.NewEngine(
		nickname.NewDiscordDirectory(discordClient.Session),
		rate.NewLimiter(rate.Every(time.Second), 1),
		cfg.NicknamePrefix,
		nickname.MultiSink{
			nickname.NewTelemetrySink(mqttClient, mqtt.TopicMigration),
			liveHub,
		},
		auditFanout,
	)

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook)
	web.SetupAPIRoutes(webServer, registry, engine, liveHub)
	webServer.StartAsync(cfg.Port)

	// Register commands and events
	commands.RegisterAll(discordClient, mod.Deps{
		Pipeline: pipeline,
		Ledger:   pipeline.Ledger,
		Engine:   engine,
	}, registry)

	events.RegisterAll(discordClient, events.Deps{
		Tickets: registry,
		ModLog:  modLogSink,
	})

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		if err := discordClient.Stop(); err != nil {
			return
		}
	}(discordClient)

	logger.Success("TrapoBot Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando TrapoBot Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
