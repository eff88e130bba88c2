package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vaughan0/go-ini"

	"github.com/Segren/registration/internal/jsonlog"
	"github.com/Segren/registration/internal/metrics"
)

var (
	buildTime string
	version   string
)

type config struct {
	port       int
	env        string
	configFile string
	logLevel   string
	//для конфигурации кол-ва запросов в секунду и во время бурста
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	csrf struct {
		key            string
		authKey        []byte
		trustedOrigins []string
	}
	displayVersion bool
}

var (
	instance *config
	once     sync.Once
)

// singleton
func GetConfig() *config {
	once.Do(func() {
		instance = &config{}
		flag.IntVar(&instance.port, "port", 4000, "HTTP server port")
		flag.StringVar(&instance.env, "env", "development", "Environment (development|staging|production)")
		flag.StringVar(&instance.configFile, "config", "", "Path to INI config file")
		flag.StringVar(&instance.logLevel, "log-level", "info", "Minimum log level (info|error|fatal|off)")

		flag.Float64Var(&instance.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
		flag.IntVar(&instance.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
		flag.BoolVar(&instance.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

		flag.StringVar(&instance.csrf.key, "csrf-key", "", "CSRF auth key, 64 hex characters")
		flag.Func("trusted-origins", "Trusted CSRF origins (space separated)", func(val string) error {
			instance.csrf.trustedOrigins = strings.Fields(val)
			return nil
		})

		// булево для отображения версии проекта и выхода
		flag.BoolVar(&instance.displayVersion, "version", false, "Display version information and exit")

		flag.Parse()
	})
	return instance
}

type application struct {
	config        config
	logger        *jsonlog.Logger
	templateCache map[string]*template.Template
	metrics       *metrics.Metrics
	clock         func() time.Time
}

func main() {
	cfg := GetConfig()

	if cfg.displayVersion {
		fmt.Printf("Registration version:\t%s\n", version)
		fmt.Printf("Build time:\t%s\n", buildTime)
		os.Exit(0)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	if cfg.configFile != "" {
		file, err := loadConfigFile(cfg.configFile)
		if err != nil {
			logger.PrintFatal(err, nil)
		}

		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		err = applyConfigFile(cfg, file, explicit)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
	}

	logger = jsonlog.New(os.Stdout, jsonlog.ParseLevel(cfg.logLevel))

	authKey, generated, err := loadCSRFKey(cfg.env, cfg.csrf.key, os.Getenv("REGISTRATION_CSRF_KEY"))
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	if generated {
		logger.PrintInfo("using random CSRF key, set REGISTRATION_CSRF_KEY to keep tokens valid across restarts", nil)
	}
	cfg.csrf.authKey = authKey

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	app := &application{
		config:        *cfg,
		logger:        logger,
		templateCache: templateCache,
		metrics:       metrics.New(),
		clock:         time.Now,
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func loadConfigFile(path string) (ini.File, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	file, err := ini.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	return file, nil
}

// значения из файла применяются только для флагов, не заданных явно
func applyConfigFile(cfg *config, file ini.File, explicit map[string]bool) error {
	if v, ok := file.Get("server", "port"); ok && !explicit["port"] {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config server.port: %w", err)
		}
		cfg.port = port
	}

	if v, ok := file.Get("server", "env"); ok && !explicit["env"] {
		cfg.env = v
	}

	if v, ok := file.Get("log", "level"); ok && !explicit["log-level"] {
		cfg.logLevel = v
	}

	if v, ok := file.Get("limiter", "rps"); ok && !explicit["limiter-rps"] {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config limiter.rps: %w", err)
		}
		cfg.limiter.rps = rps
	}

	if v, ok := file.Get("limiter", "burst"); ok && !explicit["limiter-burst"] {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config limiter.burst: %w", err)
		}
		cfg.limiter.burst = burst
	}

	if v, ok := file.Get("limiter", "enabled"); ok && !explicit["limiter-enabled"] {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config limiter.enabled: %w", err)
		}
		cfg.limiter.enabled = enabled
	}

	if v, ok := file.Get("csrf", "trusted_origins"); ok && !explicit["trusted-origins"] {
		cfg.csrf.trustedOrigins = strings.Fields(v)
	}

	return nil
}

// ключ берется из флага, потом из окружения; в production он обязателен
func loadCSRFKey(env, flagKey, envKey string) ([]byte, bool, error) {
	keyHex := flagKey
	if keyHex == "" {
		keyHex = envKey
	}

	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, false, errors.New("CSRF key must be 64 hex characters (32 bytes)")
		}
		return key, false, nil
	}

	if env == "production" {
		return nil, false, errors.New("CSRF key is required in production: set -csrf-key or REGISTRATION_CSRF_KEY")
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate CSRF key: %w", err)
	}

	return key, true, nil
}
