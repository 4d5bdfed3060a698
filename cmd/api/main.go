package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/FarukBas12/servistakip-sub000/internal/config"
	"github.com/FarukBas12/servistakip-sub000/internal/database"
	"github.com/FarukBas12/servistakip-sub000/internal/export"
	appHttp "github.com/FarukBas12/servistakip-sub000/internal/http"
	authHandler "github.com/FarukBas12/servistakip-sub000/internal/http/auth"
	exportHandler "github.com/FarukBas12/servistakip-sub000/internal/http/export"
	projectHandler "github.com/FarukBas12/servistakip-sub000/internal/http/project"
	stockHandler "github.com/FarukBas12/servistakip-sub000/internal/http/stock"
	userHandler "github.com/FarukBas12/servistakip-sub000/internal/http/user"
	"github.com/FarukBas12/servistakip-sub000/internal/importer"
	csvParser "github.com/FarukBas12/servistakip-sub000/internal/importer/csv"
	xlsxParser "github.com/FarukBas12/servistakip-sub000/internal/importer/xlsx"
	"github.com/FarukBas12/servistakip-sub000/internal/project"
	projectStore "github.com/FarukBas12/servistakip-sub000/internal/project/store"
	"github.com/FarukBas12/servistakip-sub000/internal/stock"
	stockStore "github.com/FarukBas12/servistakip-sub000/internal/stock/store"
	"github.com/FarukBas12/servistakip-sub000/internal/user"
	userStore "github.com/FarukBas12/servistakip-sub000/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		stockService   = stock.NewService(stockStore.New(db))
		userService    = user.NewService(userStore.New(db))
		projectService = project.NewService(projectStore.New(db))
		importService  = importer.NewService(xlsxParser.New(), csvParser.New())
		exportService  = export.NewService(stockService)
	)

	var (
		authH    = authHandler.NewHandler(userService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		stockH   = stockHandler.NewHandler(stockService, importService)
		exportH  = exportHandler.NewHandler(exportService)
		projectH = projectHandler.NewHandler(projectService)
		userH    = userHandler.NewHandler(userService)
	)

	router := appHttp.New(cfg.Auth.JWTSecret, authH, stockH, exportH, projectH, userH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
