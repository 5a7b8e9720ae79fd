// Command migrate applies, reverts or lists the database schema migrations.
//
//	migrate up|down|status
package main

import (
	"context"
	"fmt"
	"os"

	"dsa_arena/internal/platform/config"
	"dsa_arena/internal/platform/database"
	"dsa_arena/internal/platform/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cmd, cfg, log); err != nil {
		log.Error("Migration command failed", "command", cmd, "error", err)
		log.Sync()
		os.Exit(1)
	}
	log.Info("Migration command finished", "command", cmd)
}

func run(cmd string, cfg *config.Config, log *logger.Logger) error {
	switch cmd {
	case "up", "down", "status":
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", cmd)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db, log)

	m := database.NewMigrator(db)
	switch cmd {
	case "up":
		return m.Migrate(ctx)
	case "down":
		return m.Rollback(ctx)
	case "status":
		migrations, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, mig := range migrations {
			state := "pending"
			if mig.IsApplied {
				state = "applied " + mig.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%03d %-24s %s\n", mig.Version, mig.Name, state)
		}
	}
	return nil
}
