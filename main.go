package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cantina/cmd"
	"cantina/database"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrateCommand(os.Args[2:]); err != nil {
			log.Fatal("migrate: ", err)
		}
		return
	}

	// The bot runs until SIGINT/SIGTERM cancels the context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("cantina: ", err)
	}
}

func runMigrateCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cantina migrate <up|down|status> [steps]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migrate subcommand %q", args[0])
	}
}
