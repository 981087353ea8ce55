package services

import (
	"log/slog"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/mails"
	"yamdb/proj/internal/services/auth"
	"yamdb/proj/internal/services/catalog"
	"yamdb/proj/internal/services/reviews"
	"yamdb/proj/internal/services/users"
	dbmodels "yamdb/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Users   *users.UserService
	Catalog *catalog.CatalogService
	Reviews *reviews.ReviewService
}

func New(log *slog.Logger, cfg *config.Config, models *dbmodels.Models, taskExecutor auth.TaskExecutor) *Services {
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	return &Services{
		Auth:    auth.New(log, models.Users, mailer, taskExecutor, cfg.AppSecret, cfg.Tokens.AccessTTL),
		Users:   users.New(log, models.Users),
		Catalog: catalog.New(log, models.Categories, models.Genres, models.Titles),
		Reviews: reviews.New(log, models.Reviews, models.Comments, models.Titles),
	}
}
