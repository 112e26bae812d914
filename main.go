package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"betreport/cmd"
	"betreport/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "report":
			cfg := config.Get()
			cmd.SetupLogging(cfg)
			if err := cmd.RunReport(ctx, cfg, os.Args[2:], os.Stdout); err != nil {
				log.Fatalf("Report error: %v", err)
			}
			return
		case "games":
			cmd.RunGames(os.Stdout)
			return
		case "bot":
		default:
			log.Fatalf("unknown command %q\n%s\n       betreport games\n       betreport [bot]", os.Args[1], cmd.ReportUsage)
		}
	}

	// Normal bot operation
	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
