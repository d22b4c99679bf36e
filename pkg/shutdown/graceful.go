// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shopfront/pkg/logger"
)

// Hook освобождает ресурс при завершении.
type Hook func(context.Context) error

const (
	msgShutdownStarted  = "shutdown started"
	msgShutdownTimedOut = "shutdown timed out"
	msgHookFailed       = "shutdown hook failed"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM либо отмены ctx,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()

	logger.Log(ctx).Info(ctx, msgShutdownStarted, zap.Duration("timeout", timeout))

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и возвращает их ошибки, объединенные errors.Join.
// Если хуки не уложились в timeout, к ошибкам добавляется context.DeadlineExceeded.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wgp  sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, hook := range hooks {
		wgp.Add(1)
		go func() {
			defer wgp.Done()
			if err := hook(ctx); err != nil {
				logger.Log(ctx).Error(ctx, msgHookFailed, zap.Int("hook", i), zap.Error(err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("hook %d: %w", i, err))
				mu.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Log(ctx).Warn(ctx, msgShutdownTimedOut)
		mu.Lock()
		defer mu.Unlock()
		return errors.Join(append(errs, ctx.Err())...)
	}

	return errors.Join(errs...)
}
