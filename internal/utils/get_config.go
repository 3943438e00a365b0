package utils

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigFile = "config.yaml"
	defaultBucket     = "product-images"
	defaultPort       = "8080"
	defaultLogFile    = "./logs/app.log"
)

type Config struct {
	// Database configuration
	DatabaseURL string `yaml:"DATABASE_URL" envconfig:"DATABASE_URL"`
	DBUser      string `yaml:"DB_USER" envconfig:"DB_USER"`
	DBName      string `yaml:"DB_NAME" envconfig:"DB_NAME"`
	DBPassword  string `yaml:"DB_PASSWORD" envconfig:"DB_PASSWORD"`
	DBPort      string `yaml:"DB_PORT" envconfig:"DB_PORT"`
	DBHost      string `yaml:"DB_HOST" envconfig:"DB_HOST"`
	DBSSLMode   string `yaml:"DB_SSLMODE" envconfig:"DB_SSLMODE"`

	// Server
	AppURL  string `yaml:"APP_URL" envconfig:"APP_URL"`
	Port    string `yaml:"PORT" envconfig:"PORT"`
	LogFile string `yaml:"LOG_FILE" envconfig:"LOG_FILE"`

	CORSOrigins string `yaml:"CORS_ORIGINS" envconfig:"CORS_ORIGINS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" envconfig:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" envconfig:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" envconfig:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" envconfig:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" envconfig:"SMTP_AUTH_PASSWORD"`

	// Object storage (S3 or any S3 compatible endpoint)
	AWSS3Bucket    string `yaml:"AWS_S3_BUCKET" envconfig:"AWS_S3_BUCKET"`
	AWSS3Region    string `yaml:"AWS_S3_REGION" envconfig:"AWS_S3_REGION"`
	AWSS3Endpoint  string `yaml:"AWS_S3_ENDPOINT" envconfig:"AWS_S3_ENDPOINT"`
	AWSS3PublicURL string `yaml:"AWS_S3_PUBLIC_URL" envconfig:"AWS_S3_PUBLIC_URL"`
	AWSAccessKey   string `yaml:"AWS_ACCESS_KEY" envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey   string `yaml:"AWS_SECRET_KEY" envconfig:"AWS_SECRET_KEY"`
}

var config Config

// LoadConfig reads config.yaml when present and then applies process environment
// overrides. CONFIG_FILE selects a different yaml file.
func LoadConfig() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}

	loaded, err := loadConfig(path)
	if err != nil {
		log.Errorf("error loading configuration: %v", err)
	}
	config = loaded
}

func loadConfig(path string) (Config, error) {
	var cfg Config

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return applyDefaults(cfg), err
		}
	case errors.Is(err, os.ErrNotExist):
		log.Infof("%s not found, using environment only", path)
	default:
		return applyDefaults(cfg), err
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return applyDefaults(cfg), err
	}
	return applyDefaults(cfg), nil
}

func applyDefaults(cfg Config) Config {
	if cfg.AWSS3Bucket == "" {
		cfg.AWSS3Bucket = defaultBucket
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	return cfg
}

func GetConfig(key string) string {
	switch key {
	case "DATABASE_URL":
		return config.DatabaseURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "APP_URL":
		return config.AppURL
	case "PORT":
		return config.Port
	case "LOG_FILE":
		return config.LogFile
	case "CORS_ORIGINS":
		return config.CORSOrigins
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_S3_PUBLIC_URL":
		return config.AWSS3PublicURL
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
