package di

import (
	"net/http"

	"giftguru-backend/internal/interfaces/http/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/google/wire"
)

// SuperSet combines all provider sets for the complete application.
var SuperSet = wire.NewSet(
	ConfigProviders,
	DomainProviders,
	InfrastructureProviders,
	ApplicationProviders,
	InterfaceProviders,
	provideContainer,
)

// ConfigProviders builds the ambient stack: logging, tracing and metrics.
var ConfigProviders = wire.NewSet(
	provideLogger,
	provideTracerProvider,
	provideMetrics,
)

// DomainProviders builds the matcher and enrichment components.
var DomainProviders = wire.NewSet(
	provideIndexConfig,
	provideMatcher,
	providePicker,
	provideEnricher,
)

// InfrastructureProviders builds the external product source and the
// feedback sink.
var InfrastructureProviders = wire.NewSet(
	provideProductSource,
	provideExternalSearcher,
	provideSourceStatus,
	provideFeedbackSink,
)

// ApplicationProviders builds the use case services.
var ApplicationProviders = wire.NewSet(
	provideRecommendationService,
	provideFeedbackService,
)

// InterfaceProviders builds the HTTP handlers and router.
var InterfaceProviders = wire.NewSet(
	handlers.NewRecommendationHandler,
	handlers.NewFeedbackHandler,
	provideHealthHandler,
	SetupRouter,
	wire.Bind(new(http.Handler), new(*chi.Mux)),
)
