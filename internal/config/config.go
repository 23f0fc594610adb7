package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server     Server     `json:"server"`
	Database   Database   `json:"database"`
	Assessment Assessment `json:"assessment"`
	Logging    Logging    `json:"logging"`
}

// Server represents HTTP server configuration
type Server struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// Database represents database configuration
type Database struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	User         string        `json:"user"`
	Password     string        `json:"password"`
	DBName       string        `json:"db_name"`
	SSLMode      string        `json:"ssl_mode"`
	MaxOpenConns int           `json:"max_open_conns"`
	MaxIdleConns int           `json:"max_idle_conns"`
	MaxLifetime  time.Duration `json:"max_lifetime"`
}

// Assessment represents engine and worker configuration
type Assessment struct {
	// RefreshSchedule is the cron expression for the stale-run refresh worker.
	RefreshSchedule string `json:"refresh_schedule"`
	// RefreshBatchSize caps how many stale runs one worker tick recomputes.
	RefreshBatchSize int `json:"refresh_batch_size"`
}

// Logging represents logger configuration
type Logging struct {
	Level string `json:"level"`
}

// Load loads configuration from an optional JSON file with environment
// variable overrides.
func Load(configPath string) (*Config, error) {
	config := &Config{
		Server: Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: Database{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "greenledger_esg",
			SSLMode: "disable",
		},
		Assessment: Assessment{
			RefreshSchedule:  "*/5 * * * *",
			RefreshBatchSize: 50,
		},
		Logging: Logging{
			Level: "info",
		},
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DATABASE_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = p
		}
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if schedule := os.Getenv("ASSESSMENT_REFRESH_SCHEDULE"); schedule != "" {
		config.Assessment.RefreshSchedule = schedule
	}
	if batch := os.Getenv("ASSESSMENT_REFRESH_BATCH_SIZE"); batch != "" {
		if n, err := strconv.Atoi(batch); err == nil {
			config.Assessment.RefreshBatchSize = n
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// DSN returns the postgres connection string
func (c *Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the listen address
func (c *Server) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
