package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis      Redis   `yaml:"redis"`
	Bot        Bot     `yaml:"bot"`
	History    History `yaml:"history"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Bot struct {
	ThinkDelay        time.Duration `yaml:"think-delay" env:"BOT_THINK_DELAY" env-default:"750ms"`
	EasyRandomRate    float64       `yaml:"easy-random-rate" env:"BOT_EASY_RANDOM_RATE" env-default:"0.3"`
	MediumMistakeRate float64       `yaml:"medium-mistake-rate" env:"BOT_MEDIUM_MISTAKE_RATE" env-default:"0.2"`
	DefaultDifficulty string        `yaml:"default-difficulty" env:"BOT_DEFAULT_DIFFICULTY" env-default:"medium"`
}

type History struct {
	// 0 keeps every finished game
	Limit int `yaml:"limit" env:"HISTORY_LIMIT" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
