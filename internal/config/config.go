package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey é retornado quando a chave do modelo de linguagem não foi configurada
var ErrMissingAPIKey = errors.New("config: OPENAI_API_KEY não configurada")

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Narrative   Narrative   `mapstructure:",squash"`
	Forecast    Forecast    `mapstructure:",squash"`
	Spreadsheet Spreadsheet `mapstructure:",squash"`
	Upload      Upload      `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Narrative configura o cliente de chat completion usado para o comentário
type Narrative struct {
	APIKey        string        `mapstructure:"openai_api_key"`
	BaseURL       string        `mapstructure:"openai_base_url"`
	Model         string        `mapstructure:"openai_model"`
	Timeout       time.Duration `mapstructure:"narrative_timeout"`
	RecentRecords int           `mapstructure:"narrative_recent_records"`
}

type Forecast struct {
	DefaultHorizonMonths int `mapstructure:"forecast_default_horizon_months"`
	MaxHorizonMonths     int `mapstructure:"forecast_max_horizon_months"`
	DaysPerMonth         int `mapstructure:"forecast_days_per_month"`
	MinDistinctDates     int `mapstructure:"forecast_min_distinct_dates"`
}

type Spreadsheet struct {
	DateColumn  string `mapstructure:"spreadsheet_date_column"`
	ValueColumn string `mapstructure:"spreadsheet_value_column"`
}

type Upload struct {
	MaxBytes int64 `mapstructure:"upload_max_bytes"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_MODEL", "gpt-4")
	viper.SetDefault("NARRATIVE_TIMEOUT", "60s")
	viper.SetDefault("NARRATIVE_RECENT_RECORDS", 60) // Últimos 60 registros enviados ao modelo

	viper.SetDefault("FORECAST_DEFAULT_HORIZON_MONTHS", 12)
	viper.SetDefault("FORECAST_MAX_HORIZON_MONTHS", 24)
	viper.SetDefault("FORECAST_DAYS_PER_MONTH", 30) // Aproximação: meses * 30 dias
	viper.SetDefault("FORECAST_MIN_DISTINCT_DATES", 2)

	viper.SetDefault("SPREADSHEET_DATE_COLUMN", "Date")
	viper.SetDefault("SPREADSHEET_VALUE_COLUMN", "Revenue")

	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20) // 10 MiB
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Narrative.BaseURL = strings.TrimRight(config.Narrative.BaseURL, "/")

	return config, nil
}

// Validate verifica a configuração uma única vez na inicialização.
// A ausência da chave da API é fatal: o processo não deve aceitar uploads sem ela.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Narrative.APIKey) == "" {
		return ErrMissingAPIKey
	}

	return c.ValidateForecast()
}

// ValidateForecast verifica apenas os parâmetros da previsão (usado pela CLI sem comentário)
func (c *Config) ValidateForecast() error {
	if c.Forecast.MaxHorizonMonths < 1 {
		return fmt.Errorf("config: FORECAST_MAX_HORIZON_MONTHS deve ser positivo")
	}

	if c.Forecast.DefaultHorizonMonths < 1 || c.Forecast.DefaultHorizonMonths > c.Forecast.MaxHorizonMonths {
		return fmt.Errorf("config: FORECAST_DEFAULT_HORIZON_MONTHS deve estar entre 1 e %d", c.Forecast.MaxHorizonMonths)
	}

	if c.Forecast.DaysPerMonth < 1 {
		return fmt.Errorf("config: FORECAST_DAYS_PER_MONTH deve ser positivo")
	}

	if c.Forecast.MinDistinctDates < 2 {
		return fmt.Errorf("config: FORECAST_MIN_DISTINCT_DATES deve ser no mínimo 2")
	}

	if c.Spreadsheet.DateColumn == "" || c.Spreadsheet.ValueColumn == "" {
		return fmt.Errorf("config: nomes das colunas da planilha são obrigatórios")
	}

	return nil
}

// Addr retorna o endereço host:porta do servidor HTTP
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
