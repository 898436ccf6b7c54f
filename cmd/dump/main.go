package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sqlbench/internal/engine"
	"sqlbench/internal/errs"
	"sqlbench/internal/logger"
	"sqlbench/internal/repositories"
	"sqlbench/internal/services"
)

var (
	databaseURL string
	outputFile  string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write a replayable SQL export of the connected database",
	Long: `dump connects to the database, introspects its schema and writes a
single SQL script that recreates every table, row and sequence position
when replayed on an empty database.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&databaseURL, "db-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (defaults to DATABASE_URL)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time budget for the export")
}

func run(cmd *cobra.Command, args []string) error {
	if databaseURL == "" {
		return fmt.Errorf("--db-url or DATABASE_URL must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.New(logger.Config{Level: "warn", Format: "console", Output: os.Stderr})

	db, err := engine.Connect(ctx, databaseURL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close connection: %v\n", err)
		}
	}()

	schemaService := services.NewSchemaService(repositories.NewSchemaRepository(db, log), log)
	exportService := services.NewExportService(schemaService, repositories.NewTableRepository(db), log)

	result, err := exportService.Generate(ctx)
	if err != nil {
		if !errs.IsExportPartial(err) {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if outputFile == "" {
		fmt.Print(result.Script)
		return nil
	}

	if err := os.WriteFile(outputFile, []byte(result.Script), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", outputFile, len(result.Script))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
