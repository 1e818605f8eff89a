package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/relay/internal/auth"
	"github.com/Versifine/relay/internal/bot"
	"github.com/Versifine/relay/internal/config"
	"github.com/Versifine/relay/internal/dispatch"
	"github.com/Versifine/relay/internal/event"
	"github.com/Versifine/relay/internal/logger"
	"github.com/Versifine/relay/internal/step"
	"github.com/ztrue/tracerr"
	"golang.org/x/time/rate"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		err = tracerr.Wrap(err)
		slog.Error("Session ended", "error", err.Error(), slog.Any("stacktrace", tracerr.StackTrace(err)))
		stop()
		_ = logger.Close()
		os.Exit(1)
	}
	slog.Info("Shut down")
}

func run(ctx context.Context, cfg *config.Config) error {
	provider, err := newProvider(ctx, cfg.Bot)
	if err != nil {
		return err
	}

	bus := event.NewBus()
	bus.Subscribe(event.EventChatRelay, event.ChatEventHandler)
	bus.Subscribe(event.EventLogin, func(raw any) {
		e := raw.(*event.LoginEvent)
		slog.Info("Logged in",
			"username", e.Username,
			"uuid", e.UUID,
			"version", e.Version,
			"encrypted", e.Encrypted,
			"threshold", e.Threshold,
			"mods", e.Mods,
		)
	})
	bus.Subscribe(event.EventDisconnect, func(raw any) {
		slog.Info("Kicked", "reason", raw.(event.DisconnectEvent).Reason)
	})

	steps := step.New()
	client := bot.NewClient(bot.Options{
		Host:            cfg.Server.Host,
		Port:            uint16(cfg.Server.Port),
		FallbackVersion: cfg.Protocol.FallbackVersion,
		Provider:        provider,
		Steps:           steps,
		Bus:             bus,
	})
	srv, err := client.ConnectTo(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	env := dispatch.Env{
		Out:           srv.Out(),
		Steps:         steps,
		Username:      srv.Username,
		EchoMarker:    cfg.Chat.EchoMarker,
		SettingsDelay: dispatch.DefaultSettingsDelay,
		Bus:           bus,
	}
	if cfg.Chat.RatePerSecond > 0 {
		env.ChatLimiter = rate.NewLimiter(rate.Limit(cfg.Chat.RatePerSecond), cfg.Chat.Burst)
	}
	return srv.Serve(ctx, dispatch.Default(env))
}

func newProvider(ctx context.Context, cfg config.BotConfig) (auth.Provider, error) {
	switch cfg.Auth {
	case config.AuthOffline:
		return auth.NewOffline(cfg.Username), nil
	case config.AuthMicrosoft:
		p, err := auth.LoginMicrosoft(ctx, cfg.ClientID, cfg.Username)
		if err != nil {
			return nil, fmt.Errorf("microsoft login: %w", err)
		}
		return p, nil
	}
	return nil, errors.New("unknown auth mode " + cfg.Auth)
}
