// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RabbitMQConnection      string `yaml:"rabbitmq_connection"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	PaymentProvider         `yaml:"payment_provider"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":9000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// PaymentProvider структура для настройки платёжного провайдера
type PaymentProvider struct {
	SecretKey string `yaml:"secret_key" env:"PAYMENT_SECRET_KEY"`
	APIURL    string `yaml:"api_url" env-default:"https://api.stripe.com/v1"`
	Currency  string `yaml:"currency" env-default:"usd"`
}

// SMTP структура для настройки почтового транспорта уведомлений
type SMTP struct {
	SMTPHost string `yaml:"host"`
	SMTPPort string `yaml:"port"`
	SMTPUser string `yaml:"user"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RabbitMQConnection: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"PaymentProvider:\n"+
			"  APIURL: %s\n"+
			"  Currency: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.RabbitMQConnection,
		c.AddressRedis,
		c.User,
		c.DB,
		c.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.APIURL,
		c.Currency,
	)
}
