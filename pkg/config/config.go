package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del dashboard (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	DB      DBConfig
	Mock    MockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuración del backend REST consumido por el dashboard.
type APIConfig struct {
	BaseURL  string
	Timeout  time.Duration // 0 = sin timeout propio, se deja al transporte
	PageSize int           // tamaño fijo de página del catálogo
}

// Tipos de almacenamiento del token persistido.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// SessionConfig configuración de la sesión del navegador.
type SessionConfig struct {
	Store      string // memory | redis | postgres
	CookieName string
	IdleTTL    time.Duration // inactividad tras la cual el holder se descarta de memoria
	Secure     bool
}

// RedisConfig conexión a Redis (solo con SESSION_STORE=redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// DBConfig configuración de PostgreSQL (solo con SESSION_STORE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MockConfig configuración del backend de desarrollo (cmd/mockapi).
type MockConfig struct {
	Port      int
	JWTSecret string
	TokenTTL  time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, SESSION_STORE, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ox-dashboard"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		API: APIConfig{
			BaseURL:  strings.TrimRight(getString(v, "API_URL", "http://localhost:3001"), "/"),
			Timeout:  time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 0)) * time.Second,
			PageSize: getInt(v, "PRODUCTS_PAGE_SIZE", 10),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getString(v, "SESSION_STORE", StoreMemory)),
			CookieName: getString(v, "SESSION_COOKIE", "sid"),
			IdleTTL:    time.Duration(getInt(v, "SESSION_IDLE_MINUTES", 30)) * time.Minute,
			Secure:     getString(v, "SESSION_COOKIE_SECURE", "false") == "true",
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "oxdash"),
			TTL:      time.Duration(getInt(v, "REDIS_TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ox_dashboard"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Mock: MockConfig{
			Port:      getInt(v, "MOCK_API_PORT", 3001),
			JWTSecret: getString(v, "MOCK_JWT_SECRET", "dev-secret"),
			TokenTTL:  time.Duration(getInt(v, "MOCK_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		},
	}

	if cfg.API.PageSize <= 0 {
		return nil, fmt.Errorf("config: PRODUCTS_PAGE_SIZE debe ser mayor que cero")
	}
	switch cfg.Session.Store {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return nil, fmt.Errorf("config: SESSION_STORE desconocido %q", cfg.Session.Store)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
