package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"payout_dashboard/internal/config/connections/mongo"
	"payout_dashboard/internal/config/connections/postgres"
	"payout_dashboard/internal/config/connections/s3"
)

// Config holds the service's connections. Postgres is the payout
// store and is required: without it the process refuses to start.
// Mongo (upload audit trail) and S3 (raw file archive) are optional —
// when unconfigured the matching side channel is simply off.
type Config struct {
	Port     string
	Postgres *postgres.Postgres
	Mongo    *mongo.Mongo
	S3       *s3.S3
}

// Init loads .env, connects Postgres (fatal on failure) and tries
// Mongo/S3 (warn and continue on failure).
func Init(ctx context.Context) *Config {
	_ = godotenv.Load()
	port := getenv("SERVER_PORT", "8080")

	pg, err := connectPostgres(ctx)
	if err != nil {
		log.Fatalf("❌ Postgres connect error: %v", err)
	}

	cfg := &Config{Port: port, Postgres: pg}

	if mg, err := connectMongo(ctx); err != nil {
		log.Printf("[CONFIG][WARN] mongo unavailable, upload audit disabled: %v", err)
	} else {
		cfg.Mongo = mg
	}

	if s3c, err := connectS3(); err != nil {
		log.Printf("[CONFIG][WARN] s3 unavailable, raw-file archive disabled: %v", err)
	} else {
		cfg.S3 = s3c
	}

	return cfg
}

func connectPostgres(ctx context.Context) (*postgres.Postgres, error) {
	info := postgres.ConnectionInfo{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getenv("PG_HOST", "127.0.0.1"),
		Port:     getenv("PG_PORT", "5432"),
		User:     getenv("PG_USER", "postgres"),
		Password: os.Getenv("PG_PASSWORD"),
		DB:       getenv("PG_DB", "payouts"),
		SSLMode:  getenv("PG_SSLMODE", "disable"),
	}
	if info.URL == "" && os.Getenv("PG_HOST") == "" {
		return nil, errors.New("DATABASE_URL (or PG_HOST) not set")
	}
	return postgres.NewConnection(ctx, info)
}

func connectMongo(ctx context.Context) (*mongo.Mongo, error) {
	if os.Getenv("MONGO_HOST") == "" {
		return nil, errors.New("MONGO_HOST not set")
	}
	return mongo.NewConnection(ctx, mongo.ConnectionInfo{
		Scheme:     getenv("MONGO_SCHEME", "mongodb"),
		User:       os.Getenv("MONGO_USER"),
		Password:   os.Getenv("MONGO_PASSWORD"),
		Host:       os.Getenv("MONGO_HOST"),
		Port:       getenv("MONGO_PORT", "27017"),
		DB:         getenv("MONGO_DB", "payout_dashboard"),
		AuthSource: getenv("MONGO_AUTH_SOURCE", "admin"),
	})
}

func connectS3() (*s3.S3, error) {
	if os.Getenv("AWS_ENDPOINT") == "" {
		return nil, errors.New("AWS_ENDPOINT not set")
	}
	return s3.NewConnection(s3.ConnectionInfo{
		Endpoint:  os.Getenv("AWS_ENDPOINT"),
		AccessKey: getenv("AWS_ACCESS_KEY_ID", "minioadmin"),
		SecretKey: getenv("AWS_SECRET_ACCESS_KEY", "minioadmin"),
		Region:    getenv("AWS_DEFAULT_REGION", "us-east-1"),
		Bucket:    getenv("AWS_BUCKET", "payout-uploads"),
		UseSSL:    getenv("AWS_USE_SSL", "false") == "true",
	})
}

// CheckConnections pings whatever is configured; required pieces that
// fail make the whole check fail.
func (c *Config) CheckConnections(ctx context.Context) error {
	var errs []error

	if c.Postgres == nil || c.Postgres.Pool == nil {
		errs = append(errs, errors.New("postgres not initialized"))
	} else if err := c.Postgres.Pool.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("postgres ping failed: %w", err))
	}

	if c.Mongo != nil {
		if err := c.Mongo.Client.Ping(ctx, nil); err != nil {
			errs = append(errs, fmt.Errorf("mongo ping failed: %w", err))
		}
	}

	if c.S3 != nil {
		if ok, err := c.S3.Client.BucketExists(ctx, c.S3.Bucket); err != nil {
			errs = append(errs, fmt.Errorf("s3 bucket check failed: %w", err))
		} else if !ok {
			errs = append(errs, fmt.Errorf("s3 bucket %q not found", c.S3.Bucket))
		}
	}

	return errors.Join(errs...)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
