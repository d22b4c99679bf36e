package http

import (
	"context"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v3"

	"shopfront/internal/stubapi/config"
	"shopfront/internal/stubapi/http/handlers"
	"shopfront/internal/stubapi/shop"
	"shopfront/internal/stubapi/tokens"
)

// Server - HTTP сервер тестового API.
type Server struct {
	app  *fiber.App
	addr string
}

// NewServer собирает приложение fiber с маршрутами магазина.
func NewServer(cfg *config.HTTPConfig, store *shop.Store, issuer *tokens.Issuer, onReset handlers.ResetNotifier) *Server {
	app := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	SetupRouter(app, handlers.NewHandler(store, issuer, onReset), issuer)

	return &Server{app: app, addr: cfg.GetAddress()}
}

// ListenAndServe слушает адрес из конфигурации до остановки сервера.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve обслуживает соединения ln до остановки сервера.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов до отмены ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
