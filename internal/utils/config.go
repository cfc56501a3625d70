package utils

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	PostgresHost     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.PostgresHost +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=5432 sslmode=disable TimeZone=UTC"
}

type ServerConfig struct {
	Port string
}

type AdminConfig struct {
	Username string
	Password string
}

// TokenConfig carries the signing secret and both token lifetimes. The
// secret is loaded once at startup and stays constant for the lifetime
// of the process.
type TokenConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type DiscordConfig struct {
	BaseURL  string
	BotToken string
	GuildID  string
	Timeout  time.Duration
}

type Config struct {
	Database *DatabaseConfig
	Server   *ServerConfig
	Admin    *AdminConfig
	Token    *TokenConfig
	Discord  *DiscordConfig
}

var ErrMissingSecretKey = errors.New("SECRET_KEY must be set")

func LoadConfig(dotenvPath string) (*Config, error) {
	// a missing .env file is fine in deployed environments, real env vars win anyway
	_ = godotenv.Load(dotenvPath)

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, ErrMissingSecretKey
	}

	dbCfg := &DatabaseConfig{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
	}
	serverCfg := &ServerConfig{
		Port: getEnv("SERVER_PORT", "8000"),
	}
	adminCfg := &AdminConfig{
		Username: os.Getenv("ADMIN_USERNAME"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	tokenCfg := &TokenConfig{
		Secret:          secret,
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 15*24*time.Hour),
	}
	discordCfg := &DiscordConfig{
		BaseURL:  getEnv("DISCORD_API_URL", "https://discord.com/api/v10"),
		BotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		GuildID:  os.Getenv("DISCORD_GUILD_ID"),
		Timeout:  getDurationEnv("DISCORD_TIMEOUT", 10*time.Second),
	}

	cfg := &Config{dbCfg, serverCfg, adminCfg, tokenCfg, discordCfg}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
