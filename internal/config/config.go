package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

// SMTPConfig настройка исходящей почты. При enabled=false письма
// не отправляются, а пишутся в лог (режим симуляции).
type SMTPConfig struct {
	Enabled    bool          `yaml:"enabled" env-default:"false"`
	Host       string        `yaml:"host" env-default:"localhost"`
	Port       int           `yaml:"port" env-default:"587"`
	Username   string        `yaml:"-" env:"SMTP_USERNAME"`
	Password   string        `yaml:"-" env:"SMTP_PASSWORD"`
	From       string        `yaml:"from" env-default:"noreply@pingscomm.example"`
	FromName   string        `yaml:"from_name" env-default:"Pings Communications"`
	AdminEmail string        `yaml:"admin_email" env-required:"true"`
	Timeout    time.Duration `yaml:"timeout" env-default:"10s"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// DSN собирает строку подключения к Postgres. Дополнительные параметры
// (например x-migrations-table) передаются парами ключ=значение.
func (d DatabaseConfig) DSN(params ...string) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
	for _, param := range params {
		dsn += "&" + param
	}
	return dsn
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}
