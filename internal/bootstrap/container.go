package bootstrap

import (
	"fmt"

	"chat-reactions-be/internal/config"
	"chat-reactions-be/internal/controller"
	"chat-reactions-be/internal/pkg/logger"
	"chat-reactions-be/internal/repository/unitofwork"
	"chat-reactions-be/internal/service"
	"chat-reactions-be/pkg/bus"
	"chat-reactions-be/pkg/chat/notifier"
	"chat-reactions-be/pkg/chat/reply"
	"chat-reactions-be/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReactionController controller.IReactionController
	ReplyController    controller.IReplyController

	// Background Services (exposed for main.go to run)
	CleanerService service.ICleanerService

	Logger    logger.ILogger
	Publisher bus.Publisher
	Registry  *prometheus.Registry
}

// NewContainer connects the configured bus and assembles the application.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	publisher, err := bus.New(bus.Options{
		Driver:       cfg.Bus.Driver,
		NatsURL:      cfg.Bus.NatsURL,
		NatsStream:   cfg.Bus.NatsStream,
		RedisURL:     cfg.Bus.RedisURL,
		RedisChannel: cfg.Bus.RedisChannel,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s bus: %w", cfg.Bus.Driver, err)
	}
	sysLogger.Info("BOOTSTRAP", "Event bus connected", map[string]interface{}{"driver": cfg.Bus.Driver})

	return Assemble(db, cfg, publisher, sysLogger), nil
}

// Assemble wires repositories, services and controllers around an already
// connected publisher.
func Assemble(db *gorm.DB, cfg *config.Config, publisher bus.Publisher, sysLogger logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// 2. Notifier (own log file so delivery noise stays out of the main log)
	notifyLogger := sysLogger
	if cfg.App.NotifyLogFilePath != "" {
		notifyLogger = logger.NewIsolatedLogger(cfg.App.NotifyLogFilePath)
	}
	n := notifier.New(publisher, notifyLogger, m, notifier.Options{
		Concurrency: cfg.Bus.NotifyConcurrency,
		Timeout:     cfg.Bus.PublishTimeout,
	})

	// 3. Services
	reactionService := service.NewReactionService(uowFactory, n)
	replyService := service.NewReplyService(uowFactory, reply.NewResolver(), n)
	cleanerService := service.NewCleanerService(uowFactory, sysLogger, m)

	// 4. Controllers
	return &Container{
		ReactionController: controller.NewReactionController(reactionService),
		ReplyController:    controller.NewReplyController(replyService),
		CleanerService:     cleanerService,
		Logger:             sysLogger,
		Publisher:          publisher,
		Registry:           registry,
	}
}
