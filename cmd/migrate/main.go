package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"halcon-service/config"
	"halcon-service/internal/store"
	"halcon-service/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the pawn schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(gooseCommand("up", "Apply all pending migrations"))
	rootCmd.AddCommand(gooseCommand("down", "Roll back the latest migration"))
	rootCmd.AddCommand(gooseCommand("status", "Show the status of each migration"))
	rootCmd.AddCommand(gooseCommand("version", "Print the current schema version"))
	rootCmd.AddCommand(gooseCommand("redo", "Roll back and reapply the latest migration"))
	rootCmd.AddCommand(toCmd)
}

func gooseCommand(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), command, func(ctx context.Context, s *store.Store) error {
				return store.Migrate(ctx, s.GetDB().DB, command)
			})
		},
	}
}

var toCmd = &cobra.Command{
	Use:   "to VERSION",
	Short: "Migrate up or down to VERSION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), "to "+args[0], func(ctx context.Context, s *store.Store) error {
			return store.MigrateTo(ctx, s.GetDB().DB, args[0])
		})
	},
}

// withStore loads config, opens the pool and closes it once fn returns
func withStore(parent context.Context, name string, fn func(context.Context, *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := util.InitLogger(cfg.Server.Env, cfg.Observ.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer util.SyncLogger()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := store.NewStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer s.Close()

	if err := fn(ctx, s); err != nil {
		return err
	}
	util.GetLogger().Info("Migration command finished", zap.String("command", name))
	return nil
}
