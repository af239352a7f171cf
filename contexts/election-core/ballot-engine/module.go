package ballotengine

import (
	"log/slog"

	httpadapter "quorum/contexts/election-core/ballot-engine/adapters/http"
	"quorum/contexts/election-core/ballot-engine/adapters/memory"
	"quorum/contexts/election-core/ballot-engine/adapters/policy"
	"quorum/contexts/election-core/ballot-engine/application/commands"
	"quorum/contexts/election-core/ballot-engine/application/queries"
	"quorum/contexts/election-core/ballot-engine/domain/entities"
	"quorum/contexts/election-core/ballot-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Admin     ports.AdminPolicy
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	workflowUseCase := commands.WorkflowUseCase{
		Elections: deps.Elections,
		Admin:     deps.Admin,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	registrationUseCase := commands.RegistrationUseCase{
		Elections: deps.Elections,
		Admin:     deps.Admin,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	proposalUseCase := commands.ProposalUseCase{
		Elections: deps.Elections,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	tallyUseCase := commands.TallyUseCase{
		Elections: deps.Elections,
		Admin:     deps.Admin,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Elections: deps.Elections,
	}
	return Module{
		Handler: httpadapter.Handler{
			Workflow:     workflowUseCase,
			Registration: registrationUseCase,
			Proposals:    proposalUseCase,
			Tally:        tallyUseCase,
			Results:      resultsUseCase,
			Logger:       deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Election, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Elections: store,
		Admin:     policy.OwnerPolicy{},
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
