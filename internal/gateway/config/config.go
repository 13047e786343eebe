package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	UpstreamAPI string
	ObjectCache ObjectCacheConfig
	Store       StoreConfig
	Bitstream   BitstreamConfig
}

type ObjectCacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// StoreConfig selects the relationship store backend: postgres when a DSN
// is set, sqlite when a path is set, in-memory otherwise.
type StoreConfig struct {
	PostgresDSN string
	SQLitePath  string
}

type BitstreamConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8082", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:        *port,
		Env:         env,
		UpstreamAPI: strings.TrimSpace(os.Getenv("REPOSITORY_API_URL")),
		ObjectCache: loadObjectCacheConfig(),
		Store: StoreConfig{
			PostgresDSN: strings.TrimSpace(os.Getenv("RELATIONSHIP_PG_DSN")),
			SQLitePath:  strings.TrimSpace(os.Getenv("RELATIONSHIP_SQLITE_PATH")),
		},
		Bitstream: loadBitstreamConfig(env),
	}, nil
}

func loadObjectCacheConfig() ObjectCacheConfig {
	cfg := ObjectCacheConfig{
		TTL:        2 * time.Minute,
		MaxEntries: 2048,
	}
	if raw := strings.TrimSpace(os.Getenv("OBJECT_CACHE_TTL_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.TTL = time.Duration(secs) * time.Second
		}
	}
	if raw := strings.TrimSpace(os.Getenv("OBJECT_CACHE_MAX_ENTRIES")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MaxEntries = n
		}
	}
	return cfg
}

func loadBitstreamConfig(env string) BitstreamConfig {
	endpoint := resolveBitstreamEndpoint(env)
	return BitstreamConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("BITSTREAM_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("BITSTREAM_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("BITSTREAM_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("BITSTREAM_S3_BUCKET")), "reposit-bitstreams"),
		UseSSL:    resolveBitstreamUseSSL(env),
	}
}

func resolveBitstreamEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("BITSTREAM_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("BITSTREAM_S3_ENDPOINT"))
}

func resolveBitstreamUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("BITSTREAM_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
