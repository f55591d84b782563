package pollengine

import (
	"log/slog"

	httpadapter "livepoll/contexts/engagement/poll-engine/adapters/http"
	"livepoll/contexts/engagement/poll-engine/adapters/memory"
	"livepoll/contexts/engagement/poll-engine/application/commands"
	"livepoll/contexts/engagement/poll-engine/application/queries"
	"livepoll/contexts/engagement/poll-engine/domain/entities"
	"livepoll/contexts/engagement/poll-engine/domain/identity"
	"livepoll/contexts/engagement/poll-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Polls       ports.PollRepository
	Publisher   ports.UpdatePublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	TokenSecret []byte
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	tokens := identity.TokenCodec{Secret: deps.TokenSecret}
	pollUseCase := commands.PollUseCase{
		Polls:  deps.Polls,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Polls:     deps.Polls,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		Tokens:    tokens,
		Logger:    deps.Logger,
	}
	queryUseCase := queries.PollQueryUseCase{
		Polls:  deps.Polls,
		Tokens: tokens,
	}
	return Module{
		Handler: httpadapter.Handler{
			Polls:   pollUseCase,
			Votes:   voteUseCase,
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Poll, publisher ports.UpdatePublisher, secret []byte, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Polls:       store,
		Publisher:   publisher,
		Clock:       store,
		IDGen:       store,
		TokenSecret: secret,
		Logger:      logger,
	})
	module.Store = store
	return module
}
