package wire

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goquote/internal/chat/handler"
	"goquote/internal/chat/service"
	"goquote/internal/common"
	"goquote/internal/config"
	"goquote/internal/dbmongo"
	"goquote/internal/dbmysql"
	"goquote/internal/home"
	"goquote/internal/logger"
	"goquote/internal/metrics"
	"goquote/internal/quote"
	"goquote/internal/slotstore"
)

// Application is everything cmd/quote-svc needs to serve.
type Application struct {
	Config   *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Bridge   *quote.Bridge
	Handler  *handler.HTTPHandler
	GRPC     *handler.GRPCHandler
}

func ProvideConfig() *config.Config {
	return config.LoadConfig()
}

func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func ProvideQuoteMetrics(reg *prometheus.Registry) *metrics.QuoteMetrics {
	return metrics.NewQuoteMetrics(reg)
}

func ProvideSlotStorage(cfg *config.Config, log *zap.Logger) (common.SlotStorage, func(), error) {
	return slotstore.Open(cfg.Storage, log)
}

func ProvideBus(cfg *config.Config, log *zap.Logger, m *metrics.QuoteMetrics) (*quote.Bus, func()) {
	bus := quote.NewBus(cfg.Quote.Workers, cfg.Quote.ChannelBufferSize, log, m)
	return bus, bus.Shutdown
}

func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewMySQL(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func ProvideMongo(cfg *config.Config, log *zap.Logger) (*dbmongo.MongoClient, func(), error) {
	client, err := dbmongo.NewMongoConnection(context.Background(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(ctx); err != nil {
			log.Warn("mongo_disconnect_failed", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

func ProvideHTTPHandler(
	cfg *config.Config,
	chat service.ChatService,
	quotes *quote.Service,
	attachments service.AttachmentStore,
	homeStore *home.Store,
	reg *prometheus.Registry,
	log *zap.Logger,
) *handler.HTTPHandler {
	return handler.NewHTTPHandler(chat, quotes, attachments, homeStore, []byte(cfg.Auth.JWTSecret), reg, log)
}
