//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"giftguru-backend/internal/config"

	"github.com/google/wire"
)

// InitializeContainer builds the application graph for cfg.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
