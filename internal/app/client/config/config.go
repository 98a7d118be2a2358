package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultViewAddress    = "localhost:8090"
	defaultLogLevel       = "info"
	defaultEnv            = EnvLocal
	defaultConfigDir      = ".doctracker"
	defaultRequestTimeout = 30
	defaultPageSize       = 15
	defaultPageSizes      = "15,25,50"
	defaultPendingStatus  = "รอดำเนินการ"
	defaultExportDir      = "."
	defaultEnumTTL        = 300
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	TokenPath      string        `mapstructure:"token_path"`
	CachePath      string        `mapstructure:"cache_path"`
	RequestTimeout time.Duration `mapstructure:"-"`
	PageSize       int           `mapstructure:"page_size"`
	PageSizes      []int         `mapstructure:"-"`
	DefaultStatus  string        `mapstructure:"default_status"`
	ExportDir      string        `mapstructure:"export_dir"`
	Location       *time.Location
	ViewAddress    string        `mapstructure:"view_address"`
	RequireAuth    bool          `mapstructure:"require_auth"`
	CacheEnabled   bool          `mapstructure:"cache_enabled"`
	EnumTTL        time.Duration `mapstructure:"-"`
}

// MustLoad загружает конфигурацию клиента и паникует при ошибке
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, необязательный YAML-файл и переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func Load(configFile string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)
	v.SetDefault("PAGE_SIZE", defaultPageSize)
	v.SetDefault("PAGE_SIZES", defaultPageSizes)
	v.SetDefault("DEFAULT_STATUS", defaultPendingStatus)
	v.SetDefault("EXPORT_DIR", defaultExportDir)
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("VIEW_ADDRESS", defaultViewAddress)
	v.SetDefault("REQUIRE_AUTH", false)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("ENUM_TTL_SECONDS", defaultEnumTTL)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	if configFile == "" {
		candidate := filepath.Join(homeDir, defaultConfigDir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("чтение файла конфигурации %s: %w", configFile, err)
		}
	}

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("создание директории конфигурации: %w", err)
	}

	pageSizes, err := parsePageSizes(v.GetString("PAGE_SIZES"))
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("неизвестный часовой пояс %q: %w", v.GetString("TIMEZONE"), err)
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		ServerAddress:  v.GetString("SERVER_ADDRESS"),
		EnableTLS:      v.GetBool("ENABLE_TLS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		TokenPath:      filepath.Join(configDir, "token"),
		CachePath:      filepath.Join(configDir, "documents.db"),
		RequestTimeout: time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		PageSize:       v.GetInt("PAGE_SIZE"),
		PageSizes:      pageSizes,
		DefaultStatus:  v.GetString("DEFAULT_STATUS"),
		ExportDir:      v.GetString("EXPORT_DIR"),
		Location:       loc,
		ViewAddress:    v.GetString("VIEW_ADDRESS"),
		RequireAuth:    v.GetBool("REQUIRE_AUTH"),
		CacheEnabled:   v.GetBool("CACHE_ENABLED"),
		EnumTTL:        time.Duration(v.GetInt("ENUM_TTL_SECONDS")) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

func parsePageSizes(raw string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(part, "%d", &n); err != nil || n <= 0 {
			return nil, fmt.Errorf("page_sizes: некорректный размер страницы %q", part)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("page_sizes не может быть пустым")
	}
	return sizes, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("app_env: неизвестное окружение %q", c.Env)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	found := false
	for _, n := range c.PageSizes {
		if n == c.PageSize {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("page_size %d не входит в page_sizes %v", c.PageSize, c.PageSizes)
	}
	if c.DefaultStatus == "" {
		return fmt.Errorf("default_status не может быть пустым")
	}
	return nil
}

// BaseURL возвращает адрес сервиса документов со схемой
func (c *Config) BaseURL() string {
	if strings.HasPrefix(c.ServerAddress, "http://") || strings.HasPrefix(c.ServerAddress, "https://") {
		return strings.TrimRight(c.ServerAddress, "/")
	}
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + strings.TrimRight(c.ServerAddress, "/")
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
