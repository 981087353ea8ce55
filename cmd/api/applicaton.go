package main

import (
	"log/slog"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"yamdb/proj/internal/api/tasks"
	"yamdb/proj/internal/config"
	"yamdb/proj/internal/lib/validator"
	"yamdb/proj/internal/services"
	"yamdb/proj/internal/storage/postgres"
	dbmodels "yamdb/proj/internal/storage/postgres/models"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
	bgTasks      *tasks.BackgroundTasks
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	models := dbmodels.New(storage)
	bgTasks := tasks.New(log, cfg.BgTasks.MaxWorkers, cfg.BgTasks.MaxQueueSize)
	validate := govalidator.New(govalidator.WithRequiredStructEnabled())
	validator.Register(validate, cfg.BannedNames)
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		Http:         &Http{log, cfg},
		services:     services.New(log, cfg, models, bgTasks),
		validator:    validate,
		queryDecoder: queryDecoder,
		bgTasks:      bgTasks,
	}
}
