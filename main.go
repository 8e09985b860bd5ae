package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"

	"croprec/db"
	qhttp "croprec/http"
	"croprec/inference"
	"croprec/ml"
	"croprec/monitoring"
)

type Config struct {
	Http struct {
		Port           int `yaml:"port"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
	Model struct {
		Path  string `yaml:"path"`
		Watch bool   `yaml:"watch"`
	} `yaml:"model"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

func main() {
	config, err := loadConfig("config.yaml")
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(config)
	defer logger.Sync()

	store, err := db.Open(config.Database.Path)
	if err != nil {
		logger.Fatal("failed to open prediction store", zap.Error(err))
	}
	defer store.Close()
	logger.Info("prediction store ready", zap.String("path", config.Database.Path))

	// The artifact is loaded exactly once here; a missing or corrupt file
	// blocks startup rather than failing per-request.
	model, err := ml.LoadModel(config.Model.Path)
	if err != nil {
		logger.Fatal("failed to load model artifact", zap.String("path", config.Model.Path), zap.Error(err))
	}
	logger.Info("model artifact loaded",
		zap.String("path", config.Model.Path),
		zap.Int("classes", len(model.Classes())))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := monitoring.NewHub(logger)
	go hub.Run(ctx)

	svc, err := inference.NewService(model, store, hub, config.Cache.Size, logger)
	if err != nil {
		logger.Fatal("failed to build inference service", zap.Error(err))
	}

	if config.Model.Watch {
		if err := ml.Watch(ctx, config.Model.Path, logger, svc.Reload); err != nil {
			logger.Fatal("failed to watch model artifact", zap.Error(err))
		}
	}

	serverConfig := qhttp.DefaultServerConfig()
	if config.Http.Port > 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds > 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}

	handlers := qhttp.NewHandlers(svc, store, hub, logger)
	server := qhttp.NewServer(serverConfig, handlers, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	if config.Model.Path == "" {
		config.Model.Path = "model.json"
	}
	if config.Database.Path == "" {
		config.Database.Path = "croprec.db"
	}
	return &config, nil
}

func newLogger(config *Config) *zap.Logger {
	level, err := zapcore.ParseLevel(config.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	sink := zapcore.AddSync(os.Stdout)
	if config.Log.File != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.Log.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}))
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, level)
	return zap.New(core)
}
