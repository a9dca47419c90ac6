package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	Game     Game    `yaml:"game"`
	AI       AI      `yaml:"ai"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	StatsKey string `yaml:"stats-key" env:"REDIS_STATS_KEY" env-default:"tttStats"`
}

type Game struct {
	TurnSeconds int           `yaml:"turn-seconds" env:"GAME_TURN_SECONDS" env-default:"10"`
	BotDelay    time.Duration `yaml:"bot-delay" env:"GAME_BOT_DELAY" env-default:"1s"`
	PlayerXName string        `yaml:"player-x-name" env:"GAME_PLAYER_X_NAME" env-default:"Player X"`
	PlayerOName string        `yaml:"player-o-name" env:"GAME_PLAYER_O_NAME" env-default:"Player O"`
}

type AI struct {
	Enabled    bool   `yaml:"enabled" env:"AI_ENABLED" env-default:"false"`
	Difficulty string `yaml:"difficulty" env:"AI_DIFFICULTY" env-default:"easy"`
	Mark       string `yaml:"mark" env:"AI_MARK" env-default:"O"`
	Name       string `yaml:"name" env:"AI_NAME" env-default:"Computer (AI)"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage.Driver {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}

	if that.Game.TurnSeconds <= 0 {
		return fmt.Errorf("turn-seconds must be positive, got %d", that.Game.TurnSeconds)
	}

	if _, err := that.AIConfig(); err != nil {
		return err
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Players - configured names, cut to entity.MaxNameLength.
func (that *Config) Players() entity.Players {
	return entity.Players{
		X: entity.TruncateName(that.Game.PlayerXName),
		O: entity.TruncateName(that.Game.PlayerOName),
	}
}

func (that *Config) AIConfig() (entity.AIConfig, error) {
	difficulty, err := entity.ParseDifficulty(that.AI.Difficulty)
	if err != nil {
		return entity.AIConfig{}, fmt.Errorf("ai difficulty: %w", err)
	}

	mark, err := entity.ParseMark(that.AI.Mark)
	if err != nil {
		return entity.AIConfig{}, fmt.Errorf("ai mark: %w", err)
	}

	return entity.AIConfig{
		Enabled:    that.AI.Enabled,
		Difficulty: difficulty,
		Mark:       mark,
	}, nil
}
