package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shoppos/internal/apiclient"
	"shoppos/internal/cartsync"
	"shoppos/internal/channel"
	"shoppos/internal/config"
	"shoppos/internal/display"
	"shoppos/internal/logger"
)

// Customer-facing display client. Connects to the relay under the
// terminal's session key and renders whatever the terminal broadcasts.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New("display", cfg.LogLevel)

	if cfg.SessionKey == "" {
		log.Error("SESSION_KEY is required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	engine := cartsync.NewEngine(log)
	api := apiclient.New(cfg.APIURL, log)
	view := display.New(engine, api, log)
	view.OnRender(render)

	ch := channel.New(cfg.RelayURL, log)
	ch.OnMessage(func(msg cartsync.Message) {
		engine.Apply(msg)
	})
	if err := ch.Open(ctx, cfg.SessionKey); err != nil {
		log.Error("connect relay", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	log.Info("display connected", "session", cfg.SessionKey)
	<-ctx.Done()
	log.Info("display stopped")
}

func render(v display.View) {
	switch v.Mode {
	case display.ModeEmpty:
		fmt.Println("\n  Welcome! Your items will appear here.")
	case display.ModeCart:
		fmt.Println()
		for _, item := range v.Items {
			marker := "  "
			if v.JustAdded != nil && v.JustAdded.ID == item.ID {
				marker = "> "
			}
			fmt.Printf("%s%-30s x%-3d %10.0f\n", marker, item.Name, item.Quantity, item.Price*float64(item.Quantity))
		}
		fmt.Printf("  %-34s %10.0f\n", "Subtotal", v.Subtotal)
		fmt.Printf("  %-34s %10.0f\n", "Tax", v.Tax)
		fmt.Printf("  %-34s %10.0f\n", "Total", v.Total)
	case display.ModePayment:
		fmt.Printf("\n  Pay %.0f with %s\n", v.Total, v.PaymentMethod)
		if v.PaymentInfo != nil {
			fmt.Printf("  Scan to pay: %s\n", v.PaymentInfo.ImageURL)
		}
	}
}
