package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Адрес эндпоинта с метриками сети
	MetricsURL string
	// Адрес HTTP-сервера дашборда
	ServerAddress string
	// Каталог для PNG-копий графиков, пустая строка отключает экспорт
	ExportDir string
	// Печатать кадр дашборда в терминал после каждой отрисовки
	Console bool
	// Отбрасывать снапшоты, пришедшие позже более нового
	Ordered bool
	// Таймаут одного запроса, 0 означает без ограничения
	FetchTimeout time.Duration
	LogLevel     string
	ChartWidth   int
	ChartHeight  int
}

// fileConfig описывает формат файла конфигурации (JSON или YAML).
// Поля указаны как указатели для различения отсутствующих значений.
type fileConfig struct {
	MetricsURL   *string `json:"metrics_url" yaml:"metrics_url"`
	Address      *string `json:"address" yaml:"address"`
	ExportDir    *string `json:"export_dir" yaml:"export_dir"`
	Console      *bool   `json:"console" yaml:"console"`
	Ordered      *bool   `json:"ordered" yaml:"ordered"`
	FetchTimeout *string `json:"fetch_timeout" yaml:"fetch_timeout"`
	LogLevel     *string `json:"log_level" yaml:"log_level"`
	ChartWidth   *int    `json:"chart_width" yaml:"chart_width"`
	ChartHeight  *int    `json:"chart_height" yaml:"chart_height"`
}

func defaults() *Config {
	return &Config{
		MetricsURL:    "http://localhost:5000/api/metrics",
		ServerAddress: "localhost:8080",
		LogLevel:      "info",
		ChartWidth:    640,
		ChartHeight:   260,
	}
}

func findConfigPath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-c" || arg == "-config" || arg == "--config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if strings.HasPrefix(arg, "-c=") {
			return strings.TrimPrefix(arg, "-c=")
		}
		if strings.HasPrefix(arg, "-config=") || strings.HasPrefix(arg, "--config=") {
			if idx := strings.Index(arg, "="); idx != -1 {
				return arg[idx+1:]
			}
		}
	}
	return ""
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.MetricsURL != nil && *fc.MetricsURL != "" {
		cfg.MetricsURL = *fc.MetricsURL
	}
	if fc.Address != nil && *fc.Address != "" {
		cfg.ServerAddress = *fc.Address
	}
	if fc.ExportDir != nil {
		cfg.ExportDir = *fc.ExportDir
	}
	if fc.Console != nil {
		cfg.Console = *fc.Console
	}
	if fc.Ordered != nil {
		cfg.Ordered = *fc.Ordered
	}
	if fc.FetchTimeout != nil && *fc.FetchTimeout != "" {
		if d, err := time.ParseDuration(*fc.FetchTimeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if fc.LogLevel != nil && *fc.LogLevel != "" {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.ChartWidth != nil && *fc.ChartWidth > 0 {
		cfg.ChartWidth = *fc.ChartWidth
	}
	if fc.ChartHeight != nil && *fc.ChartHeight > 0 {
		cfg.ChartHeight = *fc.ChartHeight
	}
}

// Parse собирает конфигурацию: значения по умолчанию, затем файл
// конфигурации, затем флаги, затем переменные окружения.
func Parse(args []string, getenv func(string) string) (*Config, error) {
	cfg := defaults()

	configPath := findConfigPath(args)
	if configPath == "" {
		configPath = getenv("CONFIG")
	}
	if configPath != "" {
		fc, err := loadFile(configPath)
		if err != nil {
			return nil, err
		}
		applyFile(cfg, fc)
	}

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPathFlag string
	fs.StringVar(&configPathFlag, "c", configPath, "Path to JSON or YAML config file")
	fs.StringVar(&configPathFlag, "config", configPath, "Path to JSON or YAML config file")

	fs.StringVar(&cfg.MetricsURL, "u", cfg.MetricsURL, "Metrics endpoint URL")
	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Dashboard HTTP server address")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "Directory for chart PNG export")
	fs.BoolVar(&cfg.Console, "tui", cfg.Console, "Print a console frame after every render")
	fs.BoolVar(&cfg.Ordered, "ordered", cfg.Ordered, "Drop snapshots older than the last applied one")
	fs.DurationVar(&cfg.FetchTimeout, "t", cfg.FetchTimeout, "Fetch timeout (0 = none)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.IntVar(&cfg.ChartWidth, "chart-width", cfg.ChartWidth, "Chart width in pixels")
	fs.IntVar(&cfg.ChartHeight, "chart-height", cfg.ChartHeight, "Chart height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if v := getenv("METRICS_URL"); v != "" {
		cfg.MetricsURL = v
	}
	if v := getenv("ADDRESS"); v != "" {
		cfg.ServerAddress = v
	}
	if v := getenv("EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := getenv("CONSOLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Console = b
		}
	}
	if v := getenv("ORDERED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Ordered = b
		}
	}
	if v := getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("fetch timeout must not be negative: %s", cfg.FetchTimeout)
	}
	if cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0 {
		return nil, fmt.Errorf("chart size must be positive: %dx%d", cfg.ChartWidth, cfg.ChartHeight)
	}
	return cfg, nil
}

// NewConfig читает аргументы процесса и окружение.
func NewConfig() (*Config, error) {
	return Parse(os.Args[1:], os.Getenv)
}
