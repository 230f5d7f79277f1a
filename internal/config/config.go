package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DB       *Postgres `yaml:"database"`
	RMQ      *RabbitMQ `yaml:"rabbitmq"`
	Order    *Order    `yaml:"order_service"`
	Product  *Product  `yaml:"product_service"`
	Customer *Customer `yaml:"customer_service"`
	Mail     *Mail     `yaml:"mail"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQ struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	VHost    string `yaml:"vhost"`
}

type Order struct {
	Port         int    `yaml:"port"`
	CatalogURL   string `yaml:"catalog_url"`
	DirectoryURL string `yaml:"directory_url"`
}

type Product struct {
	Port int `yaml:"port"`
}

type Customer struct {
	Port int `yaml:"port"`
}

type Mail struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	From     string `yaml:"from"`
	Password string `yaml:"password"`
}

// LoadConfig reads a YAML config file and fills the gaps from the
// environment so a partial file still yields a usable config.
func LoadConfig(configPath string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	fillNilSections(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	fillNilSections(cfg)
	return cfg
}

func fillNilSections(cfg *Config) {
	if cfg.DB == nil {
		cfg.DB = &Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "admin"),
			Password: getEnv("POSTGRES_PASSWORD", "admin"),
			Database: getEnv("POSTGRES_DBNAME", "samgyupmasaya_db"),
		}
	}
	if cfg.RMQ == nil {
		cfg.RMQ = &RabbitMQ{
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		}
	}
	if cfg.Order == nil {
		cfg.Order = &Order{
			Port:         getEnvInt("ORDER_SERVICE_PORT", 5003),
			CatalogURL:   getEnv("PRODUCT_SERVICE_URL", "http://localhost:5002"),
			DirectoryURL: getEnv("CUSTOMER_SERVICE_URL", "http://localhost:5004"),
		}
	}
	if cfg.Product == nil {
		cfg.Product = &Product{Port: getEnvInt("PRODUCT_SERVICE_PORT", 5002)}
	}
	if cfg.Customer == nil {
		cfg.Customer = &Customer{Port: getEnvInt("CUSTOMER_SERVICE_PORT", 5004)}
	}
	if cfg.Mail == nil {
		cfg.Mail = &Mail{
			Host:     getEnv("MAIL_HOST", "smtp.gmail.com"),
			Port:     getEnv("MAIL_PORT", "587"),
			From:     getEnv("RESTAURANT_EMAIL", ""),
			Password: getEnv("RESTAURANT_PASS", ""),
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
