package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RepositoryDriver != RepositoryPostgres {
		t.Fatalf("unexpected RepositoryDriver: %q", cfg.RepositoryDriver)
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("unexpected SessionStore: %q", cfg.SessionStore)
	}
	if cfg.AuthJWTSecret != devJWTSecret {
		t.Fatalf("expected dev JWT secret fallback")
	}
	if cfg.AuthTokenTTL != 24*time.Hour {
		t.Fatalf("unexpected AuthTokenTTL: %s", cfg.AuthTokenTTL)
	}
	if cfg.DefaultLanguage != "pt-BR" {
		t.Fatalf("unexpected DefaultLanguage: %q", cfg.DefaultLanguage)
	}
	if !cfg.SwaggerEnabled || !cfg.MetricsEnabled || !cfg.CacheEnabled {
		t.Fatalf("expected swagger, metrics and cache enabled by default in dev")
	}
	if cfg.ImportWorkers != 4 {
		t.Fatalf("unexpected ImportWorkers: %d", cfg.ImportWorkers)
	}
}

func TestLoad_JWTSecretRequiredOutsideDev(t *testing.T) {
	for _, env := range []string{EnvStage, EnvProd} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)
			t.Setenv("AUTH_JWT_SECRET", "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error without AUTH_JWT_SECRET in %s", env)
			}

			t.Setenv("AUTH_JWT_SECRET", "s3cret")
			cfg, err := Load()
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.AuthJWTSecret != "s3cret" {
				t.Fatalf("unexpected AuthJWTSecret")
			}
		})
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("AUTH_JWT_SECRET", "s3cret")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("explicit value wins", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("AUTH_JWT_SECRET", "s3cret")
		t.Setenv("SWAGGER_ENABLED", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true")
		}
	})
}

func TestLoad_RepositoryDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REPOSITORY_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown REPOSITORY_DRIVER")
	}

	t.Setenv("REPOSITORY_DRIVER", "Memory")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RepositoryDriver != RepositoryMemory {
		t.Fatalf("unexpected RepositoryDriver: %q", cfg.RepositoryDriver)
	}
}

func TestLoad_SessionStoreRedis(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SessionStore != SessionStoreRedis || cfg.RedisAddr != "redis:6379" || cfg.RedisDB != 2 {
		t.Fatalf("unexpected redis config: %+v", cfg)
	}

	t.Setenv("REDIS_DB", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative REDIS_DB")
	}
}

func TestLoad_StorageRequiresBucketAndKeys(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_ENABLED", "true")
	t.Setenv("STORAGE_BUCKET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without STORAGE_BUCKET")
	}

	t.Setenv("STORAGE_BUCKET", "knights")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without storage keys")
	}

	t.Setenv("STORAGE_ACCESS_KEY", "ak")
	t.Setenv("STORAGE_SECRET_KEY", "sk")
	t.Setenv("STORAGE_CIRCUIT_OPEN_TIMEOUT", "45s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageCircuitOpenTimeout != 45*time.Second {
		t.Fatalf("unexpected StorageCircuitOpenTimeout: %s", cfg.StorageCircuitOpenTimeout)
	}
	if cfg.StorageCircuitFailureCount != 5 {
		t.Fatalf("unexpected StorageCircuitFailureCount: %d", cfg.StorageCircuitFailureCount)
	}
}

func TestLoad_AdminPasswordRequiredWithEmail(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without ADMIN_PASSWORD")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "arena-api")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "arena-api" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty CORS_ALLOWED_ORIGINS")
	}
}

func TestLoad_InvalidDurationsAndInts(t *testing.T) {
	tests := map[string]string{
		"CACHE_TTL":         "0s",
		"APP_READ_TIMEOUT":  "soon",
		"AUTH_BCRYPT_COST":  "3",
		"IMPORT_WORKERS":    "0",
		"DB_MAX_OPEN_CONNS": "many",
		"METRICS_ENABLED":   "perhaps",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
