package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Storage backends selectable with STORE_BACKEND
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

const devJWTSecret = "default_super_secret_key"

var DefaultDepartments = []string{
	"Operations",
	"Finance",
	"IT",
	"Marketing",
	"HR",
	"Legal",
	"Real Estate",
	"Construction",
	"Merchandising",
	"Supply Chain",
}

type Config struct {
	AppName  string `mapstructure:"app_name"`
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	Port     int    `mapstructure:"port"`

	StoreBackend string `mapstructure:"store_backend"`
	SeedFixtures bool   `mapstructure:"seed_fixtures"`

	// PostgreSQL
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSslMode  string `mapstructure:"db_sslmode"`

	// MongoDB
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	DepartmentList string `mapstructure:"departments"`  // comma separated
	CORSOrigins    string `mapstructure:"cors_origins"` // comma separated
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "storeflow")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("port", 8080)

	v.SetDefault("store_backend", BackendMemory)
	v.SetDefault("seed_fixtures", true)

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "storeflow")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "storeflow")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", "24h")

	v.SetDefault("departments", strings.Join(DefaultDepartments, ","))
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
}

// Load reads envFile (if present) into the process environment and builds the Config from
// environment variables, falling back to defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Debug().Str("file", envFile).Msg("No env file found, using environment variables")
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendMemory, BackendPostgres, BackendMongo:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: must be memory, postgres or mongo", c.StoreBackend)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required when APP_ENV=production")
		}
		c.JWTSecret = devJWTSecret // development fallback only
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("invalid JWT_TTL %s", c.JWTTTL)
	}
	if len(c.Departments()) == 0 {
		return fmt.Errorf("DEPARTMENTS must list at least one department")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// PostgresDSN builds the connection URL for the gorm postgres driver
func (c *Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return dsn.String()
}

func (c *Config) Departments() []string {
	return splitList(c.DepartmentList)
}

func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins)
}

func splitList(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
