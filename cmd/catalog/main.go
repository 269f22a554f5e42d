package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/database"
	"github.com/mroshb/filmorate/internal/metrics"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/repositories/memory"
	"github.com/mroshb/filmorate/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	stats := flag.Bool("stats", false, "print store operation counters after the command")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	logger.Init()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		logger.Fatal("Production security validation failed", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open store", err)
	}
	logger.Info("Store ready", "backend", cfg.Backend, "env", cfg.AppEnv)

	a := newApp(store, cfg.PopularDefaultCount, os.Stdout)
	if err := a.run(flag.Args()); err != nil {
		logger.Error("Command failed", "command", flag.Arg(0), "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *stats {
		printStats()
	}
}

func openStore(cfg *config.Config) (repositories.Store, error) {
	if cfg.Backend == config.BackendMemory {
		return memory.NewStore(), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := database.SeedReferenceData(db); err != nil {
		return nil, err
	}
	return repositories.NewGormStore(db), nil
}

func printStats() {
	counters, err := metrics.Counters()
	if err != nil {
		logger.Warn("Failed to gather metrics", "error", err)
		return
	}
	for key, value := range counters {
		fmt.Fprintf(os.Stderr, "%s\t%.0f\n", key, value)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: catalog [-stats] <command> [args]

Commands:
  import <file.xlsx> [-popular N]  import films from a workbook
  popular [-count N]               most liked films
  films                            all films
  users                            all users
  genres                           genre catalogue
  ratings                          rating catalogue
  friends <userID>                 friends of a user
  common <userID> <otherID>        friends two users share
  user <email> <login> <YYYY-MM-DD> [name]
                                   register a user
  like | unlike <filmID> <userID>  add or remove a like
  friend | unfriend <userID> <friendID>
                                   send or withdraw a friend request

STORAGE_BACKEND selects "memory" (default) or "postgres".
The memory backend keeps state for one invocation only; use postgres to combine commands.
`)
}
