package server

import (
	"time"
)

type Config struct {
	Port            int           `yaml:"port"`
	AntidosBuckets  int           `yaml:"antidosBuckets"`
	AntidosPeriod   time.Duration `yaml:"antidosPeriod"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		AntidosBuckets:  64,
		AntidosPeriod:   10 * time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    64 << 10,
	}
}
