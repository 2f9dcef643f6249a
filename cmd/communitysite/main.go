package main

import (
	"os"
	"os/signal"
	"syscall"

	communitysite "github.com/eringen/communitysite"
)

func main() {
	cfg := communitysite.ConfigFromEnv()
	log := communitysite.NewLogger(cfg.LogLevel, cfg.Env)

	app := communitysite.New(cfg, log)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		_ = app.Echo.Close()
	}()

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	_ = app.Close()
}
