package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Sales     SalesConfig
	Purchases PurchasesConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type SalesConfig struct {
	TxTimeout time.Duration
	// MaxNumberAttempts bounds bill-number regeneration on a unique-index
	// collision within one recording transaction.
	MaxNumberAttempts int
}

type PurchasesConfig struct {
	TxTimeout         time.Duration
	MaxNumberAttempts int
	// MaxRetryAttempts bounds whole-transaction retries on deadlock. Only
	// purchases retry; stock increments are commutative.
	MaxRetryAttempts int
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "menvy")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "menvy")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SALES_TX_TIMEOUT", "5s")
	viper.SetDefault("SALES_MAX_NUMBER_ATTEMPTS", 3)
	viper.SetDefault("PURCHASES_TX_TIMEOUT", "5s")
	viper.SetDefault("PURCHASES_MAX_NUMBER_ATTEMPTS", 3)
	viper.SetDefault("PURCHASES_MAX_RETRY_ATTEMPTS", 3)

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	salesTxTimeout, err := time.ParseDuration(viper.GetString("SALES_TX_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	purchasesTxTimeout, err := time.ParseDuration(viper.GetString("PURCHASES_TX_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Sales: SalesConfig{
			TxTimeout:         salesTxTimeout,
			MaxNumberAttempts: viper.GetInt("SALES_MAX_NUMBER_ATTEMPTS"),
		},
		Purchases: PurchasesConfig{
			TxTimeout:         purchasesTxTimeout,
			MaxNumberAttempts: viper.GetInt("PURCHASES_MAX_NUMBER_ATTEMPTS"),
			MaxRetryAttempts:  viper.GetInt("PURCHASES_MAX_RETRY_ATTEMPTS"),
		},
	}

	return cfg, nil
}
