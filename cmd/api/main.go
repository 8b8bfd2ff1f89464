package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/eldermuller/dindin/internal/auth"
	"github.com/eldermuller/dindin/internal/category"
	categoryStore "github.com/eldermuller/dindin/internal/category/store"
	"github.com/eldermuller/dindin/internal/config"
	"github.com/eldermuller/dindin/internal/database"
	dindinHttp "github.com/eldermuller/dindin/internal/http"
	categoryHandler "github.com/eldermuller/dindin/internal/http/category"
	txHandler "github.com/eldermuller/dindin/internal/http/transaction"
	userHandler "github.com/eldermuller/dindin/internal/http/user"
	"github.com/eldermuller/dindin/internal/transaction"
	txStore "github.com/eldermuller/dindin/internal/transaction/store"
	"github.com/eldermuller/dindin/internal/user"
	userStore "github.com/eldermuller/dindin/internal/user/store"
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

	categories := categoryStore.New(db)

	var (
		authService        = auth.NewService(cfg.JWT.Secret, cfg.JWT.TTL)
		userService        = user.NewService(userStore.New(db))
		categoryService    = category.NewService(categories)
		transactionService = transaction.NewService(txStore.New(db), categories)
	)

	var (
		userH        = userHandler.NewHandler(userService, authService)
		categoryH    = categoryHandler.NewHandler(categoryService)
		transactionH = txHandler.NewHandler(transactionService)
	)

	router := dindinHttp.New(authService, userH, categoryH, transactionH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
