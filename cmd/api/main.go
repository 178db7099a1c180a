package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pulse-api/infrastructure/repository"
	"github.com/vfg2006/sales-pulse-api/infrastructure/storage"
	"github.com/vfg2006/sales-pulse-api/internal/api"
	"github.com/vfg2006/sales-pulse-api/internal/config"
	"github.com/vfg2006/sales-pulse-api/internal/scheduler"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/uploading"
	"github.com/vfg2006/sales-pulse-api/pkg/log"
)

func main() {
	// Formato inicial até a configuração ser lida
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	uploadRepo := repository.NewUploadRepository(pgConn)
	fileStore := storage.NewLocalFileStore(cfg.Upload.Dir)

	uploadService := uploading.NewService(uploadRepo, fileStore, cfg.Forecast.HorizonDays)

	uploadRetentionService := scheduler.NewUploadRetentionService(uploadService, cfg)
	if err := uploadRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de retenção de uploads")
	} else {
		logrus.Info("Agendador de retenção de uploads iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		uploadService,
		uploadRetentionService,
		pgConn,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
