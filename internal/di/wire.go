//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"guestbook/internal/admin"
	"guestbook/internal/config"
	"guestbook/internal/message"
)

// This is just a declaration — wire generates the real body
func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		config.LoadConfig,
		provideMySQL,
		provideMongo,
		provideMediaStorage,
		provideObjectStore,
		message.LimitsFromConfig,
		message.NewMessageRepository,
		message.NewSubmissionService,
		message.NewHandler,
		admin.NewAdminRepository,
		admin.NewAuthService,
		admin.NewModerationService,
		admin.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil // dummy for compilation
}
