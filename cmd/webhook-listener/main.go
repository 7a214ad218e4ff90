// Package main runs a standalone webhook listener: it receives event
// deliveries from the platform, verifies their signatures, and logs them.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storekit/shopify-go/internal/config"
	"github.com/storekit/shopify-go/internal/listener"
	"github.com/storekit/shopify-go/internal/notify"
	"github.com/storekit/shopify-go/pkg/logger"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(listener.Recovery(log))
	e.Use(listener.RequestLog(log))
	e.Use(listener.Metrics())

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Webhook.DiscordWebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Webhook.DiscordWebhookURL)
	}

	l := listener.New(cfg.Webhook.Secret, log, forwardEvent(notifier))
	l.Register(e)

	log.Info("starting webhook listener", "addr", cfg.Webhook.Listen)

	go func() {
		if err := e.Start(cfg.Webhook.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listener error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down listener")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down listener: %w", err)
	}

	log.Info("listener stopped")
	return nil
}

// forwardEvent adapts a notifier into the listener's event handler.
func forwardEvent(notifier notify.Notifier) listener.EventHandler {
	return func(ev listener.Event) error {
		return notifier.SendEvent(context.Background(), &notify.EventPayload{
			Topic:   ev.Topic,
			Shop:    ev.Shop,
			Summary: eventSummary(ev.Body),
			Bytes:   len(ev.Body),
		})
	}
}

// eventSummary pulls a short identifier out of the delivery body. Bodies
// that are not JSON objects summarize to the empty string.
func eventSummary(body []byte) string {
	var fields struct {
		Name   string `json:"name"`
		Title  string `json:"title"`
		Email  string `json:"email"`
		ID     int64  `json:"id"`
		Handle string `json:"handle"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	switch {
	case fields.Name != "":
		return fields.Name
	case fields.Title != "":
		return fields.Title
	case fields.Email != "":
		return fields.Email
	case fields.ID != 0:
		return fmt.Sprintf("id %d", fields.ID)
	default:
		return fields.Handle
	}
}
