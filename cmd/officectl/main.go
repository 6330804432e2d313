// Command officectl runs maintenance tasks and reports against the
// OfficeHub database.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	mongoURI string
	dbName   string
	verbose  bool
	timeout  time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "officectl",
	Short: "OfficeHub maintenance and reporting",
	Long: `officectl talks to the OfficeHub MongoDB database directly.

Connection settings come from --mongo-uri and --db, falling back to
OFFICEHUB_MONGO_URI and OFFICEHUB_MONGO_DATABASE (a .env file in the
working directory is read first).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		mongoURI = firstNonEmpty(mongoURI, os.Getenv("OFFICEHUB_MONGO_URI"), "mongodb://localhost:27017")
		dbName = firstNonEmpty(dbName, os.Getenv("OFFICEHUB_MONGO_DATABASE"), "officehub")

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI")
	rootCmd.PersistentFlags().StringVar(&dbName, "db", "", "MongoDB database name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time limit for the command")

	rootCmd.AddCommand(indexesCmd, rescoreCmd, reportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// withDB connects, runs fn against the configured database and disconnects.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *mongo.Database) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("disconnect failed", zap.Error(err))
		}
	}()
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping %s: %w", mongoURI, err)
	}
	logger.Debug("connected", zap.String("db", dbName))
	return fn(ctx, client.Database(dbName))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
