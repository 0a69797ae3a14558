package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config junta todo lo configurable del servicio. Se carga desde
// configs/whiskerverse.json (opcional) con override por env.
type Config struct {
	Port string

	// DSN de Postgres. Vacío => repos in-memory (modo dev).
	DBDSN string

	// Único actor autorizado para operaciones admin (reset de timers).
	AdminPlayerID string

	// Cooldowns por acción, en segundos.
	Cooldowns map[string]int

	// Verificador de tokens de la plataforma de chat (opcional; sin
	// esto el middleware corre en modo dev con header de debug).
	GatewayBaseURL string
	GatewayAPIKey  string

	LogLevel  string
	LogFormat string
	AppName   string
}

// DefaultCooldowns son los cooldowns si no hay config.
var DefaultCooldowns = map[string]int{
	"encounter": 300,
	"train":     600,
}

// Load lee la config. El archivo es opcional; env siempre pisa.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("app_name", "whiskerverse")
	v.SetDefault("cooldowns", DefaultCooldowns)

	v.SetConfigName("whiskerverse")
	v.SetConfigType("json")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// Sin archivo está bien (dev); cualquier otra falla no.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("db_dsn", "DB_DSN")
	_ = v.BindEnv("admin_player_id", "ADMIN_PLAYER_ID")
	_ = v.BindEnv("gateway_base_url", "GATEWAY_BASE_URL")
	_ = v.BindEnv("gateway_api_key", "GATEWAY_API_KEY")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_format", "LOG_FORMAT")
	_ = v.BindEnv("app_name", "APP_NAME")

	cfg := Config{
		Port:           strings.TrimSpace(v.GetString("port")),
		DBDSN:          strings.TrimSpace(v.GetString("db_dsn")),
		AdminPlayerID:  strings.TrimSpace(v.GetString("admin_player_id")),
		Cooldowns:      toCooldowns(v.GetStringMap("cooldowns")),
		GatewayBaseURL: strings.TrimSpace(v.GetString("gateway_base_url")),
		GatewayAPIKey:  strings.TrimSpace(v.GetString("gateway_api_key")),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		AppName:        v.GetString("app_name"),
	}

	if len(cfg.Cooldowns) == 0 {
		cfg.Cooldowns = DefaultCooldowns
	}

	return cfg, nil
}

// CooldownSeconds devuelve el cooldown de una acción (default si no
// está configurada).
func (c Config) CooldownSeconds(action string) int {
	if s, ok := c.Cooldowns[action]; ok {
		return s
	}
	if s, ok := DefaultCooldowns[action]; ok {
		return s
	}
	return 0
}

func toCooldowns(raw map[string]any) map[string]int {
	out := make(map[string]int, len(raw))
	for k, v := range raw {
		out[strings.ToLower(k)] = cast.ToInt(v)
	}
	return out
}
