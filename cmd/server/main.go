package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/tgdialogs/internal/buildinfo"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
	"github.com/dmitrijs2005/tgdialogs/internal/server"
	"github.com/dmitrijs2005/tgdialogs/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)})
	logger := logging.NewSlogLogger(slog.New(handler))

	app := server.NewApp(cfg, logger)
	app.Run(ctx)

}
