package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/repositories"
	"github.com/chrisdamba/cafesim/internal/repositories/sqlite"
	"github.com/chrisdamba/cafesim/internal/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile         string
	commentDataFile string
	personaDataFile string
	resume          bool
)

var rootCmd = &cobra.Command{
	Use:   "cafesim",
	Short: "Simulates the daily life of a small specialty café",
	Long: `cafesim is a CLI tool that simulates a neighborhood café: customers
arrive on daily and seasonal rhythms, drinks are dialed in and scored,
regulars build a relationship with the counter, and every step is
emitted as an event stream for data pipelines to consume.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if commentDataFile != "" {
			if err := cfg.LoadCommentData(commentDataFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading comment data: %v\n", err)
				os.Exit(1)
			}
		}
		if personaDataFile != "" {
			if err := cfg.LoadPersonaData(personaDataFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading persona data: %v\n", err)
				os.Exit(1)
			}
		}

		sim := simulator.NewSimulator(cfg)

		if cfg.SessionDB != "" {
			sessions, err := sqlite.NewSessionRepository(cfg.SessionDB)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
				os.Exit(1)
			}
			defer sessions.Close()
			sim.Sessions = sessions

			if resume {
				name := cfg.SessionName
				if name == "" {
					name = "default"
				}
				snapshot, err := sessions.Load(cmd.Context(), name)
				switch {
				case errors.Is(err, repositories.ErrSessionNotFound):
					fmt.Fprintf(os.Stderr, "No session %q to resume, starting fresh\n", name)
				case err != nil:
					fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
					os.Exit(1)
				default:
					sim.Restore(snapshot)
				}
			}
		}

		sim.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int("seed", 42, "Random seed for the simulation")
	rootCmd.Flags().String("start-date", time.Now().Format(time.RFC3339), "Start date for the simulation")
	rootCmd.Flags().Int("days", 7, "Number of days to simulate")
	rootCmd.Flags().Int("initial-customers", 25, "Initial number of customers in the neighborhood")
	rootCmd.Flags().Float64("initial-money", 500, "Opening cash balance")
	rootCmd.Flags().Float64("customer-growth-rate", 0.02, "Base daily rate of new customers discovering the café")
	rootCmd.Flags().Float64("visit-frequency", 0.15, "Average visits per customer per day")
	rootCmd.Flags().Float64("brew-skill", 0.7, "Barista skill from 0 (new hire) to 1 (champion)")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Bool("postgres-enabled", false, "Write events to Postgres instead of files")
	rootCmd.Flags().String("postgres-conn-str", "", "Postgres connection string")
	rootCmd.Flags().String("output-file", "", "Output base path (if not using Kafka or Postgres)")
	rootCmd.Flags().String("output-folder", "cafe_output", "Folder under the output path for generated data")
	rootCmd.Flags().String("output-format", "json", "Output format: json, csv or parquet")
	rootCmd.Flags().String("output-destination", "local", "Where parquet output lands: local or s3")
	rootCmd.Flags().Bool("continuous", false, "Pace the simulation in real time for live sinks")
	rootCmd.Flags().String("session-db", "", "SQLite file for saved sessions")
	rootCmd.Flags().String("session-name", "default", "Name of the session to save or resume")
	rootCmd.Flags().Bool("auto-save", true, "Checkpoint the session at every day close")

	rootCmd.Flags().BoolVar(&resume, "resume", false, "Resume the named session instead of starting fresh")
	rootCmd.Flags().StringVar(&commentDataFile, "comment-data", "", "TSV file of customer comment templates")
	rootCmd.Flags().StringVar(&personaDataFile, "persona-data", "", "TSV file of customer personas")

	// flag names are dashed, config keys are underscored
	bindings := map[string]string{
		"seed":                 "seed",
		"start_date":           "start-date",
		"days":                 "days",
		"initial_customers":    "initial-customers",
		"initial_money":        "initial-money",
		"customer_growth_rate": "customer-growth-rate",
		"visit_frequency":      "visit-frequency",
		"brew_skill":           "brew-skill",
		"kafka_enabled":        "kafka-enabled",
		"kafka_broker_list":    "kafka-broker-list",
		"postgres_enabled":     "postgres-enabled",
		"postgres_conn_str":    "postgres-conn-str",
		"output_file_path":     "output-file",
		"output_folder":        "output-folder",
		"output_format":        "output-format",
		"output_destination":   "output-destination",
		"continuous":           "continuous",
		"session_db":           "session-db",
		"session_name":         "session-name",
		"auto_save":            "auto-save",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
