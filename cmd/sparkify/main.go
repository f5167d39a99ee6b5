// Package main запускает загрузку данных sparkify в PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sparkify/internal/app"
	"sparkify/internal/config"
)

// Коды выхода
const (
	exitOK        = 0
	exitError     = 1
	exitMalformed = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return exitError
	}

	// Создание контекста
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	cli := newCLI(cfg)
	defer cli.sync()

	if err := cli.root().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if app.IsMalformed(err) {
			return exitMalformed
		}
		return exitError
	}

	return exitOK
}
