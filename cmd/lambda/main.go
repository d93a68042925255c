package main

import (
	"context"
	"log"

	"giftguru-backend/internal/config"
	"giftguru-backend/internal/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var chiLambda *chiadapter.ChiLambdaV2

func init() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Catalog watching needs a long-lived process.
	cfg.Catalog.Watch = false

	container, _, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	if err := container.Start(ctx); err != nil {
		container.Logger.Fatal("Failed to start container", zap.Error(err))
	}

	router, ok := container.Router.(*chi.Mux)
	if !ok {
		log.Fatalf("Unexpected router type %T", container.Router)
	}
	chiLambda = chiadapter.NewV2(router)

	container.Logger.Info("Service initialized successfully")
}

// Handler proxies API Gateway v2 events through the chi router.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
