package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Hobrus/netpulse/internal/app/dashboard"
	"github.com/Hobrus/netpulse/internal/app/dashboard/config"
	"github.com/Hobrus/netpulse/internal/pkg/buildinfo"
)

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	return logger, nil
}

func run() error {
	buildinfo.PrintSelf()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(logOutput(cfg.Console), cfg.LogLevel)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	d, err := dashboard.NewDashboard(cfg, logger, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return d.Run(ctx)
}

// logOutput keeps log records off stdout while the console view draws there.
func logOutput(console bool) io.Writer {
	if console {
		return os.Stderr
	}
	return os.Stdout
}

// Точка входа дашборда состояния сети.
func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}
