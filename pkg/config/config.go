package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	AppEnv  string `mapstructure:"APP_ENV"`
	AppName string `mapstructure:"APP_NAME"`
	Server  struct {
		Addr         string        `mapstructure:"ADDR"`
		ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
		WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
		IdleTimeout  time.Duration `mapstructure:"IDLE_TIMEOUT"`
	} `mapstructure:"HTTP_SERVER"`
	Database struct {
		Type string `mapstructure:"TYPE"`
		DSN  string `mapstructure:"DSN"`
	} `mapstructure:"DATABASE"`
	Sync struct {
		Interval     time.Duration `mapstructure:"INTERVAL"`
		FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`
	} `mapstructure:"SYNC"`
	Sources struct {
		Github struct {
			BaseURL string `mapstructure:"BASE_URL"`
			Token   string `mapstructure:"TOKEN"`
		} `mapstructure:"GITHUB"`
		Discord struct {
			BaseURL  string `mapstructure:"BASE_URL"`
			BotToken string `mapstructure:"BOT_TOKEN"`
			GuildID  string `mapstructure:"GUILD_ID"`
		} `mapstructure:"DISCORD"`
		Discourse struct {
			BaseURL string `mapstructure:"BASE_URL"`
		} `mapstructure:"DISCOURSE"`
		Youtube struct {
			BaseURL string `mapstructure:"BASE_URL"`
			APIKey  string `mapstructure:"API_KEY"`
		} `mapstructure:"YOUTUBE"`
		Reddit struct {
			BaseURL string `mapstructure:"BASE_URL"`
		} `mapstructure:"REDDIT"`
	} `mapstructure:"SOURCES"`
	Badges struct {
		ExtraRules []ExpressionRule `mapstructure:"EXTRA_RULES"`
	} `mapstructure:"BADGES"`
}

// ExpressionRule is a badge rule configured as a CEL expression evaluated
// against the derived contribution stats.
type ExpressionRule struct {
	ID          string `mapstructure:"ID"`
	Name        string `mapstructure:"NAME"`
	Description string `mapstructure:"DESCRIPTION"`
	Expression  string `mapstructure:"EXPRESSION"`
}

var Module = fx.Module("config", fx.Provide(LoadConfig))

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/virtuoso")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		zap.L().Info("[config] no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "virtuoso")

	v.SetDefault("HTTP_SERVER.ADDR", ":3000")
	v.SetDefault("HTTP_SERVER.READ_TIMEOUT", 15*time.Second)
	v.SetDefault("HTTP_SERVER.WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("HTTP_SERVER.IDLE_TIMEOUT", 60*time.Second)

	v.SetDefault("DATABASE.TYPE", "sqlite")
	v.SetDefault("DATABASE.DSN", "community.db")

	v.SetDefault("SYNC.INTERVAL", time.Hour)
	v.SetDefault("SYNC.FETCH_TIMEOUT", 5*time.Second)

	v.SetDefault("SOURCES.GITHUB.BASE_URL", "https://api.github.com")
	v.SetDefault("SOURCES.DISCORD.BASE_URL", "https://discord.com/api/v10")
	v.SetDefault("SOURCES.DISCOURSE.BASE_URL", "https://forum.freecodecamp.org")
	v.SetDefault("SOURCES.YOUTUBE.BASE_URL", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("SOURCES.REDDIT.BASE_URL", "https://www.reddit.com")
}
