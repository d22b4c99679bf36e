package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopfront/internal/storefront/apiclient"
	"shopfront/internal/storefront/app"
	"shopfront/internal/storefront/app/services"
	"shopfront/internal/storefront/config"
	"shopfront/pkg/logger"
)

// MsgSessionExpired печатается, когда сессию не удалось восстановить.
const MsgSessionExpired = `session expired, run "storefront login"`

// EnvPassword - переменная окружения с паролем для login и register.
const EnvPassword = "STOREFRONT_PASSWORD"

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// cli хранит состояние одного запуска команды.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath  string
	showMetrics bool

	log *logger.Logger
	app *app.App
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(logger.NewRequestIDContext(ctx, ""))
	if c.showMetrics {
		c.writeMetrics()
	}
	return c.exitCode(err)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Command line client for the shop API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to YAML config (or set CONFIG_PATH)")
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print client metrics to stderr on exit")

	root.AddCommand(
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newPasswordResetCmd(c),
		newCartCmd(c),
		newCheckoutCmd(c),
		newBuyNowCmd(c),
		newOrdersCmd(c),
		newProductCmd(c),
		newSearchCmd(c),
		newWishlistCmd(c),
		newProfileCmd(c),
	)
	return root
}

// setup загружает конфигурацию, настраивает логгер и собирает клиент.
func (c *cli) setup(ctx context.Context) error {
	cfg, err := config.Load(ctx, c.configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobalLogger(log)
	c.log = log

	c.app, err = app.New(ctx, cfg)
	return err
}

func (c *cli) close() {
	if c.app != nil {
		if err := c.app.Close(); err != nil {
			fmt.Fprintf(c.stderr, "failed to close session store: %v\n", err)
		}
	}
	if c.log != nil {
		if err := c.log.Sync(); err != nil {
			msg := err.Error()
			if !strings.Contains(msg, ErrSyncStderr) && !strings.Contains(msg, ErrSyncStdout) {
				fmt.Fprintf(c.stderr, "failed to sync logger: %v\n", err)
			}
		}
	}
}

func (c *cli) exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, services.ErrInvalidCredentials):
		fmt.Fprintf(c.stderr, "error: %v\n", services.ErrInvalidCredentials)
	case apiclient.IsAuthExpired(err):
		fmt.Fprintln(c.stderr, MsgSessionExpired)
	default:
		if httpErr, ok := apiclient.AsHTTPError(err); ok {
			fmt.Fprintf(c.stderr, "error: %d %s\n", httpErr.StatusCode, httpErr.Detail())
		} else {
			fmt.Fprintf(c.stderr, "error: %v\n", err)
		}
	}
	return 1
}

func (c *cli) writeMetrics() {
	if c.app == nil {
		return
	}
	families, err := c.app.Registry.Gather()
	if err != nil {
		c.log.Warn(context.Background(), "failed to gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(c.stderr, mf); err != nil {
			return
		}
	}
}

// print выводит v на stdout в виде JSON с отступами.
func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// password берет пароль из флага или из переменной окружения.
func password(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvPassword)
}
