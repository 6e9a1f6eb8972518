package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// timerLayout is the wall-clock form of TIMER_START, read in TIMER_TZ.
const timerLayout = "2006-01-02T15:04:05"

// Reserved filter values that cannot be used as category names.
var reservedCategories = []string{"All", "已隐藏"}

type Config struct {
	ListenAddr    string
	APIBaseURL    string
	AdminPath     string
	TimerStart    time.Time
	Categories    []string
	CacheDir      string
	SessionSecret string
	APITimeout    time.Duration
	LogLevel      string
	LogFile       string
	// ConfigFile is the YAML file the values were read from, if any.
	ConfigFile string
}

// settings holds raw values before validation. The yaml tags are the keys
// accepted in the config file.
type settings struct {
	ListenAddr    string   `yaml:"listen_addr"`
	APIBaseURL    string   `yaml:"api_base_url"`
	AdminPath     string   `yaml:"admin_path"`
	TimerStart    string   `yaml:"timer_start"`
	TimerTZ       string   `yaml:"timer_tz"`
	Categories    []string `yaml:"categories"`
	CacheDir      string   `yaml:"cache_dir"`
	SessionSecret string   `yaml:"session_secret"`
	APITimeout    string   `yaml:"api_timeout"`
	LogLevel      string   `yaml:"log_level"`
	LogFile       string   `yaml:"log_file"`
}

func defaults() settings {
	return settings{
		ListenAddr: ":8080",
		APIBaseURL: "http://localhost:5000",
		AdminPath:  "/super-admin-panel",
		TimerStart: "2025-02-14T20:00:00",
		TimerTZ:    "Local",
		Categories: []string{"游戏", "活动"},
		CacheDir:   "/data/cache",
		APITimeout: "10s",
		LogLevel:   "info",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// PHOTOWALL_CONFIG, then environment variables. A .env file in the working
// directory is loaded first; it never overrides variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	s := defaults()
	path := os.Getenv("PHOTOWALL_CONFIG")
	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return nil, err
		}
	}
	s.mergeEnv()

	cfg, err := s.build()
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = path
	return cfg, nil
}

func (s *settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	for dst, src := range map[*string]string{
		&s.ListenAddr:    file.ListenAddr,
		&s.APIBaseURL:    file.APIBaseURL,
		&s.AdminPath:     file.AdminPath,
		&s.TimerStart:    file.TimerStart,
		&s.TimerTZ:       file.TimerTZ,
		&s.CacheDir:      file.CacheDir,
		&s.SessionSecret: file.SessionSecret,
		&s.APITimeout:    file.APITimeout,
		&s.LogLevel:      file.LogLevel,
		&s.LogFile:       file.LogFile,
	} {
		if src != "" {
			*dst = src
		}
	}
	if len(file.Categories) > 0 {
		s.Categories = file.Categories
	}
	return nil
}

func (s *settings) mergeEnv() {
	s.ListenAddr = getEnv("LISTEN_ADDR", s.ListenAddr)
	s.APIBaseURL = getEnv("API_BASE_URL", s.APIBaseURL)
	s.AdminPath = getEnv("ADMIN_PATH", s.AdminPath)
	s.TimerStart = getEnv("TIMER_START", s.TimerStart)
	s.TimerTZ = getEnv("TIMER_TZ", s.TimerTZ)
	s.CacheDir = getEnv("CACHE_DIR", s.CacheDir)
	s.SessionSecret = getEnv("SESSION_SECRET", s.SessionSecret)
	s.APITimeout = getEnv("API_TIMEOUT", s.APITimeout)
	s.LogLevel = getEnv("LOG_LEVEL", s.LogLevel)
	s.LogFile = getEnv("LOG_FILE", s.LogFile)
	if v, ok := os.LookupEnv("CATEGORIES"); ok {
		s.Categories = strings.Split(v, ",")
	}
}

func (s *settings) build() (*Config, error) {
	if err := validateBaseURL(s.APIBaseURL); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(s.AdminPath, "/") || s.AdminPath == "/" {
		return nil, fmt.Errorf("ADMIN_PATH %q must be an absolute path other than /", s.AdminPath)
	}

	loc, err := loadLocation(s.TimerTZ)
	if err != nil {
		return nil, err
	}
	start, err := time.ParseInLocation(timerLayout, s.TimerStart, loc)
	if err != nil {
		return nil, fmt.Errorf("parse TIMER_START: %w", err)
	}

	categories, err := parseCategories(s.Categories)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(s.APITimeout)
	if err != nil {
		return nil, fmt.Errorf("parse API_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", timeout)
	}

	return &Config{
		ListenAddr:    s.ListenAddr,
		APIBaseURL:    strings.TrimRight(s.APIBaseURL, "/"),
		AdminPath:     s.AdminPath,
		TimerStart:    start,
		Categories:    categories,
		CacheDir:      s.CacheDir,
		SessionSecret: s.SessionSecret,
		APITimeout:    timeout,
		LogLevel:      strings.ToLower(s.LogLevel),
		LogFile:       s.LogFile,
	}, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q must be an http or https URL", raw)
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load TIMER_TZ: %w", err)
	}
	return loc, nil
}

// parseCategories trims names and drops blanks. Duplicates and the reserved
// filter values are rejected.
func parseCategories(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if slices.Contains(reservedCategories, c) {
			return nil, fmt.Errorf("category %q is reserved", c)
		}
		if slices.Contains(out, c) {
			return nil, fmt.Errorf("category %q listed twice", c)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one category is required")
	}
	return out, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
