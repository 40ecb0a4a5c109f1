// Command mockapi sirve el backend simulado (OTP, empresas y catálogo) para desarrollo local.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/ox-dashboard/internal/mockapi"
	"github.com/jhoicas/ox-dashboard/pkg/config"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}).Named("mockapi")

	srv := mockapi.New(mockapi.Config{
		Secret:   cfg.Mock.JWTSecret,
		TokenTTL: cfg.Mock.TokenTTL,
		Logger:   log,
	})
	app := srv.App()

	addr := fmt.Sprintf(":%d", cfg.Mock.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", addr).Msg("backend simulado escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
