package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/kiosk"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "timeclock",
	Short: "Shared time-clock terminal and admin tools",
	Long:  `Timeclock runs the shared clock-in terminal and the administrative tasks of the timeclock backend.`,
}

var kioskCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Start the clock-in terminal",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")

		cfg, err := kiosk.LoadConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading kiosk config: %v\n", err)
			os.Exit(1)
		}

		if server, _ := cmd.Flags().GetString("server"); server != "" {
			cfg.ServerURL = server
		}

		if err := kiosk.Run(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default: 1 step)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid argument: %s (expected number of steps)\n", args[0])
				os.Exit(1)
			}
			steps = n
		}

		cfg := mustLoadConfig()

		if err := database.MigrateDown(cfg.DatabaseURL(), steps); err != nil {
			fmt.Fprintf(os.Stderr, "Error rolling back migrations: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rolled back %d migration(s).\n", steps)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schema version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		status, err := database.GetMigrationStatus(cfg.DatabaseURL())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading migration status: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Current version: %d\n", status.CurrentVersion)
		fmt.Printf("Latest version:  %d\n", status.LatestVersion)
		if status.Dirty {
			fmt.Println("State: dirty (a migration failed, fix it and force the version)")
		} else if status.Pending {
			fmt.Println("State: pending migrations")
		} else {
			fmt.Println("State: up to date")
		}
	},
}

func init() {
	kioskCmd.Flags().StringP("config", "c", "", "Kiosk config file (default ~/.timeclock/kiosk.toml)")
	kioskCmd.Flags().String("server", "", "Override the API server URL")

	reportCmd.Flags().StringP("export", "o", "", "Write the report as an XLSX file instead of printing it")
	reportCmd.Flags().Bool("events", false, "Also list the raw clock events")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	rootCmd.AddCommand(kioskCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
