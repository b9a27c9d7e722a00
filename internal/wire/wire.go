//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"goquote/internal/chat/cache"
	"goquote/internal/chat/handler"
	"goquote/internal/chat/repository"
	"goquote/internal/chat/service"
	"goquote/internal/common"
	"goquote/internal/dbmongo"
	"goquote/internal/home"
	"goquote/internal/quote"
)

func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideRegistry,
		ProvideQuoteMetrics,
		ProvideSlotStorage,
		ProvideBus,
		wire.Bind(new(common.Subject), new(*quote.Bus)),
		quote.NewBridge,
		cache.NewPostCache,
		wire.Bind(new(common.PostLookup), new(*cache.PostCache)),
		wire.Bind(new(common.FileLookup), new(*cache.PostCache)),
		wire.Bind(new(common.UserLookup), new(*cache.PostCache)),
		quote.NewService,
		ProvideDatabase,
		repository.NewPostRepository,
		ProvideMongo,
		dbmongo.NewAttachmentStorage,
		wire.Bind(new(service.AttachmentStore), new(*dbmongo.AttachmentStorage)),
		service.NewChatService,
		home.NewStore,
		ProvideHTTPHandler,
		handler.NewGRPCHandler,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
