package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/osokin/shortly/internal/bot"
	"github.com/osokin/shortly/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	b, err := bot.New(cfg.Bot)
	if err != nil {
		panic(err)
	}

	if err := b.Run(ctx); err != nil {
		panic(err)
	}
}
