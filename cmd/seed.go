package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tmorrow/highroad/internal/seed"
	"github.com/tmorrow/highroad/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled starter dataset",
	Long: `Seed upserts the bundled states, countries, dispensaries and hotels
into the database. It is idempotent: rows are matched by slug, so running
it again refreshes the bundled records without duplicating them.`,
	Run: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	log.Println("Connecting to database...")
	db, err := store.NewDB(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	seeder := seed.NewSeeder(
		store.NewStateStore(db),
		store.NewCountryStore(db),
		store.NewDispensaryStore(db),
		store.NewHotelStore(db),
	)

	log.Println("Seeding database...")
	stats, err := seeder.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Seed cancelled")
			os.Exit(1)
		}
		log.Fatalf("Seed failed: %v", err)
	}
	seeder.PrintSummary(stats)

	if stats.Failed > 0 {
		os.Exit(1)
	}
}
