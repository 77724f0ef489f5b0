package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Port        int           `yaml:"port"`
	CorsOrigins []string      `yaml:"cors_origins"`
	JwtTTL      time.Duration `yaml:"jwt_ttl"`
	Storage     string        `yaml:"storage"` // "pg" or "memory"
	Pg          Pg            `yaml:"pg"`
	LogLevel    string        `yaml:"log_level"`
	LogJSON     bool          `yaml:"log_json"`
	HTTPS       bool          `yaml:"https"`
	// LoginPerMinute is the per-ip budget of POST /login
	LoginPerMinute int `yaml:"login_per_minute"`
}

type Pg struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	JwtKey        string `yaml:"jwt_key"`
	PgPassword    string `yaml:"pg_password"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

// New builds a Config without reading files or the environment.
func New(public Public, private Private) *Config {
	return &Config{public, private}
}

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func (c *Config) PgPassword() string {
	return c.private.PgPassword
}

func (c *Config) AdminEmail() string {
	return c.private.AdminEmail
}

func (c *Config) AdminPassword() string {
	return c.private.AdminPassword
}

// PgDSN is the lib/pq connection string of the configured database.
func (c *Config) PgDSN() string {
	pg := c.Public.Pg
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, pg.Port, pg.User, c.private.PgPassword, pg.Dbname)
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, then applies
// environment overrides (a .env file in the working directory is loaded
// first if present). It panics when a required value is missing.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{public, private}
	cfg.applyEnv()
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Public.Port = port
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Public.CorsOrigins = splitList(v)
	}
	if v := os.Getenv("STORAGE"); v != "" {
		c.Public.Storage = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		c.Public.Pg.Host = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Public.Pg.Port = port
		}
	}
	if v := os.Getenv("DATABASE_USER"); v != "" {
		c.Public.Pg.User = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		c.Public.Pg.Dbname = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.private.PgPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.private.JwtKey = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		c.private.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.private.AdminPassword = v
	}
}

func (c *Config) setDefaults() {
	if c.Public.Port == 0 {
		c.Public.Port = 8000
	}
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = 30 * time.Minute
	}
	if c.Public.Storage == "" {
		c.Public.Storage = "pg"
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.LoginPerMinute == 0 {
		c.Public.LoginPerMinute = 10
	}
}

func (c *Config) validate() error {
	var missing []string
	if c.private.JwtKey == "" {
		missing = append(missing, "jwt_key")
	}
	switch c.Public.Storage {
	case "pg":
		if c.Public.Pg.Host == "" {
			missing = append(missing, "pg.host")
		}
		if c.Public.Pg.Dbname == "" {
			missing = append(missing, "pg.dbname")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage %q, expected pg or memory", c.Public.Storage)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config values: %s", strings.Join(missing, ", "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
