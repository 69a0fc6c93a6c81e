package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	candsvc "github.com/meetitmo/backend/internal/services/candidates"
	matchsvc "github.com/meetitmo/backend/internal/services/matching"
	"github.com/meetitmo/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	Tokens           TokenParser
	CandidateService *candsvc.Service
	MatchingService  *matchsvc.Service
	Logger           *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	candidateHandler := handlers.NewCandidateHandler(deps.CandidateService, deps.Logger)
	interactionHandler := handlers.NewInteractionHandler(deps.MatchingService, deps.Logger)
	listsHandler := handlers.NewListsHandler(deps.MatchingService, deps.Logger)

	r.NotFound(handlers.NotFound)
	r.Get("/healthz", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.Tokens, deps.Logger))

		r.Get("/random_person", candidateHandler.RandomPerson)
		r.Post("/like_person", interactionHandler.Like)
		r.Post("/dislike_person", interactionHandler.Dislike)
		r.Post("/superlike_person", interactionHandler.Superlike)
		r.Post("/block_person", interactionHandler.Block)
		r.Get("/liked_me", listsHandler.LikedMe)
		r.Get("/conversations", listsHandler.Conversations)
	})
}
