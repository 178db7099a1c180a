package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Upload          Upload          `mapstructure:",squash"`
	Forecast        Forecast        `mapstructure:",squash"`
	Analytics       Analytics       `mapstructure:",squash"`
	UploadRetention UploadRetention `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type Upload struct {
	Dir       string `mapstructure:"upload_dir"`
	MaxSizeMB int64  `mapstructure:"upload_max_size_mb"`
}

type Forecast struct {
	HorizonDays int `mapstructure:"forecast_horizon_days"`
}

type Analytics struct {
	RateLimitRPS float64 `mapstructure:"analytics_rate_limit_rps"`
	Burst        int     `mapstructure:"analytics_rate_limit_burst"`
}

type UploadRetention struct {
	CronSchedule string `mapstructure:"upload_retention_cron"`
	Days         int    `mapstructure:"upload_retention_days"`
	Enabled      bool   `mapstructure:"upload_retention_enabled"`
}

// MaxSizeBytes é o limite do corpo multipart do upload
func (u Upload) MaxSizeBytes() int64 {
	return u.MaxSizeMB << 20
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_pulse?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 32)

	viper.SetDefault("FORECAST_HORIZON_DAYS", 30)

	viper.SetDefault("ANALYTICS_RATE_LIMIT_RPS", 5)
	viper.SetDefault("ANALYTICS_RATE_LIMIT_BURST", 10)

	// Defaults para a limpeza de uploads antigos
	viper.SetDefault("UPLOAD_RETENTION_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("UPLOAD_RETENTION_DAYS", 30)          // Mantém 30 dias de uploads
	viper.SetDefault("UPLOAD_RETENTION_ENABLED", false)    // Habilitar limpeza automática

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	if err := decode(config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func decode(config *Config) error {
	return viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
}

func (c *Config) validate() error {
	if c.Upload.Dir == "" {
		return fmt.Errorf("config: UPLOAD_DIR não pode ser vazio")
	}
	if c.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("config: UPLOAD_MAX_SIZE_MB deve ser positivo, recebido %d", c.Upload.MaxSizeMB)
	}
	if c.Forecast.HorizonDays <= 0 {
		return fmt.Errorf("config: FORECAST_HORIZON_DAYS deve ser positivo, recebido %d", c.Forecast.HorizonDays)
	}
	if c.UploadRetention.Enabled && c.UploadRetention.Days <= 0 {
		return fmt.Errorf("config: UPLOAD_RETENTION_DAYS deve ser positivo com a retenção habilitada")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando variáveis de ambiente")
}
