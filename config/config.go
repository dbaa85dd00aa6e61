package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8085"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"restaurant"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`

	RedisHost    string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort    string `env:"REDIS_PORT" envDefault:"6379"`
	MirrorPrefix string `env:"MIRROR_PREFIX" envDefault:"mirror:"`

	// Event publishing is disabled when no broker is configured.
	KafkaBroker string `env:"KAFKA_BROKER"`
	KafkaTopic  string `env:"KAFKA_TOPIC" envDefault:"bridge-events"`

	JWTSecret     string `env:"JWT_SECRET,required"`
	LoginPath     string `env:"LOGIN_PATH" envDefault:"login.html"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8085"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func MustInitPostgres(cfg Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
}
