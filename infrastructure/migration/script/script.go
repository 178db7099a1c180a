package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pulse-api/internal/config"
)

var statements = []struct {
	name string
	sql  string
}{
	{
		name: "tabela uploads",
		sql: `
		CREATE TABLE IF NOT EXISTS uploads (
			id         BIGSERIAL PRIMARY KEY,
			filename   TEXT        NOT NULL,
			file_path  TEXT        NOT NULL,
			mapping    JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "índice uploads.created_at",
		sql:  `CREATE INDEX IF NOT EXISTS uploads_created_at_idx ON uploads (created_at DESC)`,
	},
}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range statements {
		logrus.Infof("Aplicando %s...", stmt.name)
		if _, err := tx.ExecContext(ctx, stmt.sql); err != nil {
			logrus.WithError(err).Errorf("ERRO ao aplicar %s", stmt.name)
			return err
		}
	}
	return nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()
	if err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return createSchema(ctx, tx)
	}); err != nil {
		logrus.WithError(err).Error("Migração revertida")
		os.Exit(1)
	}

	logrus.Infof("Migração concluída em %v!", time.Since(startTime))
}
