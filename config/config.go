package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

// DefaultSheetURL is the published spreadsheet the site reads from.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRxJ4VI4bE5o7PXX7C4g_k_x8OO7tAnRYgGF0zGE9SCa5K6H9F1N6m78pEWldMa07sI7VqSDVlUgXb7/pub"

const (
	SheetSourceCSV = "csv"
	SheetSourceAPI = "api"

	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Sheets   SheetsConfig
	Admin    AdminConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SheetsConfig struct {
	Source        string
	BaseURL       string
	GIDs          sheets.Tabs
	SpreadsheetID string
	APIKey        string
	Titles        sheets.Tabs
	Timeout       time.Duration
	RateLimit     float64
	WarmCron      string
}

type AdminConfig struct {
	Password   string
	TextsStore string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "portfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Sheets: SheetsConfig{
			Source:  strings.ToLower(getEnv("SHEET_SOURCE", SheetSourceCSV)),
			BaseURL: getEnv("SHEET_BASE_URL", DefaultSheetURL),
			GIDs: optionalTabs(map[sheets.Table]string{
				sheets.TableWorks:     getEnv("SHEET_GID_WORKS", "0"),
				sheets.TableSkills:    os.Getenv("SHEET_GID_SKILLS"),
				sheets.TableTools:     os.Getenv("SHEET_GID_TOOLS"),
				sheets.TableEquipment: os.Getenv("SHEET_GID_EQUIPMENT"),
				sheets.TableTexts:     os.Getenv("SHEET_GID_TEXTS"),
			}),
			SpreadsheetID: getEnv("SHEET_ID", ""),
			APIKey:        getEnv("GOOGLE_API_KEY", ""),
			Titles: optionalTabs(map[sheets.Table]string{
				sheets.TableWorks:     getEnv("SHEET_TAB_WORKS", "works"),
				sheets.TableSkills:    getEnv("SHEET_TAB_SKILLS", "skills"),
				sheets.TableTools:     getEnv("SHEET_TAB_TOOLS", "tools"),
				sheets.TableEquipment: getEnv("SHEET_TAB_EQUIPMENT", "equipment"),
				sheets.TableTexts:     getEnv("SHEET_TAB_TEXTS", "texts"),
			}),
			Timeout:   getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
			RateLimit: getEnvAsFloat("FETCH_RATE", 2),
			WarmCron:  getEnv("WARM_CRON", ""),
		},
		Admin: AdminConfig{
			Password:   getEnv("ADMIN_PASSWORD", ""),
			TextsStore: strings.ToLower(getEnv("TEXTS_STORE", StoreMemory)),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Sheets.Source {
	case SheetSourceCSV:
		if c.Sheets.BaseURL == "" {
			return fmt.Errorf("SHEET_BASE_URL is required when SHEET_SOURCE=csv")
		}
	case SheetSourceAPI:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("SHEET_ID is required when SHEET_SOURCE=api")
		}
	default:
		return fmt.Errorf("SHEET_SOURCE must be %q or %q, got %q", SheetSourceCSV, SheetSourceAPI, c.Sheets.Source)
	}

	switch c.Admin.TextsStore {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when TEXTS_STORE=redis")
		}
	case StorePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required when TEXTS_STORE=postgres")
		}
	default:
		return fmt.Errorf("TEXTS_STORE must be memory, redis or postgres, got %q", c.Admin.TextsStore)
	}

	if c.Sheets.Timeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Sheets.RateLimit < 0 {
		return fmt.Errorf("FETCH_RATE must not be negative")
	}

	return nil
}

func optionalTabs(m map[sheets.Table]string) sheets.Tabs {
	tabs := make(sheets.Tabs, len(m))
	for t, id := range m {
		if id = strings.TrimSpace(id); id != "" {
			tabs[t] = id
		}
	}
	return tabs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
