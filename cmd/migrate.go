package cmd

import (
	"context"
	"log"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/tmorrow/highroad/internal/migrations"
	"github.com/tmorrow/highroad/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("DATABASE_URL environment variable is required")
		}

		db, err := store.NewDB(dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		goose.SetBaseFS(migrations.Migrations)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("Failed to set goose dialect: %v", err)
		}

		if err := goose.UpContext(context.Background(), db, "."); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		log.Println("Migrations applied")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
