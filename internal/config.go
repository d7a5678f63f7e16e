package internal

import "time"

type Config struct {
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,default=info"`
	Host             string        `env:"HOST,default=localhost"`
	Port             int           `env:"PORT,default=8080"`
	LimitMessages    *int          `env:"LIMIT_MESSAGES"`
	RoomIdleTTL      time.Duration `env:"ROOM_IDLE_TTL,default=30m"`
	EvictionInterval time.Duration `env:"EVICTION_INTERVAL,default=5m"`
}
