package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/pkg/config"
	"github.com/kkh1902/promptsave-sub001/pkg/firebase"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/spf13/cobra"
)

// InitCommands registers every promptctl sub-command on rootCmd
func InitCommands(rootCmd *cobra.Command) {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update relational tables and MongoDB indexes",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	deleteUserCmd := &cobra.Command{
		Use:   "delete-user <uid>",
		Short: "Run the account deletion cascade for a Firebase UID",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteUser,
	}
	deleteUserCmd.Flags().Duration("timeout", 2*time.Minute, "Deadline for the whole cascade")

	rootCmd.AddCommand(migrateCmd, deleteUserCmd)
}

// setup loads configuration and opens both databases
func setup() (*config.Config, logger.Logger, *config.DB, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	db, err := config.InitDB(cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}
	return cfg, log, db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := setup()
	if err != nil {
		return err
	}
	defer db.CloseDB(log)

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		return fmt.Errorf("relational migration failed: %w", err)
	}
	log.Info("Relational tables migrated")

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	gallery := repositories.NewMongoGalleryRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := gallery.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("index creation failed: %w", err)
	}
	log.Info("Gallery indexes ensured")
	return nil
}

func runDeleteUser(cmd *cobra.Command, args []string) error {
	uid := args[0]
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("invalid timeout flag: %w", err)
	}

	cfg, log, db, err := setup()
	if err != nil {
		return err
	}
	defer db.CloseDB(log)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket, log)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	accounts := services.NewAccountService(
		repositories.NewPostgresAccountRepository(db.Postgres),
		repositories.NewMongoGalleryRepository(db.Mongo.Database(cfg.MongoDatabase)),
		firebaseApp.AuthClient,
		log,
	)

	// The operator acts as the account owner
	report, deleteErr := accounts.DeleteAccount(ctx, uid, uid)
	if report != nil {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}
	return deleteErr
}
