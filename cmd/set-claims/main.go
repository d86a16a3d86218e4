package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fireboot/internal/config"
	"fireboot/internal/firebase"
	"fireboot/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		uid    string
		claims string
	)
	cmd := &cobra.Command{
		Use:          "set-claims",
		Short:        "Set custom claims on a Firebase user with the admin credential",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), uid, claims)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "target firebase uid")
	cmd.Flags().StringVar(&claims, "claims", `{"roles":["admin"],"admin":true}`, "claims as a JSON object")
	_ = cmd.MarkFlagRequired("uid")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, uid, rawClaims string) error {
	_ = godotenv.Load()
	if ctx == nil {
		ctx = context.Background()
	}

	var claims map[string]any
	if err := json.Unmarshal([]byte(rawClaims), &claims); err != nil || claims == nil {
		return errors.New("--claims must be a JSON object")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// A one-shot tool has nothing to degrade to.
	cfg.Admin.Policy = config.PolicyFail
	admin, err := firebase.NewBootstrapper(firebase.NewSDK(), log).InitializeAdminSide(ctx, cfg.Admin)
	if err != nil {
		return err
	}
	authClient, err := admin.AuthClient()
	if err != nil {
		return err
	}
	if err := authClient.SetCustomUserClaims(ctx, uid, claims); err != nil {
		return fmt.Errorf("SetCustomUserClaims: %w", err)
	}

	log.Info("custom claims set", zap.String("uid", uid), zap.Any("claims", claims))
	return nil
}
