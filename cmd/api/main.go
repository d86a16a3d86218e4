package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"fireboot/internal/config"
	"fireboot/internal/firebase"
	"fireboot/internal/handlers"
	apihttp "fireboot/internal/http"
	"fireboot/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "api",
		Short:         "Serve the Firebase-backed API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := godotenv.Load(envFile)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return serve() },
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Initialize Firebase handles and serve HTTP",
		RunE:  func(cmd *cobra.Command, _ []string) error { return serve() },
	})
	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Initialize Firebase handles and print their state",
		RunE:  func(cmd *cobra.Command, _ []string) error { return check(cmd) },
	})
	return root
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	app := fx.New(
		fx.Supply(cfg, log),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(
			firebase.NewSDK,
			firebase.NewBootstrapper,
			provideHandles,
			provideUploads,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	if err := app.Err(); err != nil {
		var cerr *firebase.ConfigError
		if errors.As(err, &cerr) {
			log.Fatal("firebase admin configuration invalid", zap.String("variable", cerr.Var), zap.Error(cerr))
		}
		log.Fatal("startup aborted", zap.Error(err))
	}
	app.Run()
	return nil
}

func provideHandles(lc fx.Lifecycle, b *firebase.Bootstrapper, cfg config.Config, log *zap.Logger) (*firebase.Handles, error) {
	h, err := b.Initialize(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			h.Close(log)
			return nil
		},
	})
	return h, nil
}

func provideUploads(lc fx.Lifecycle, cfg config.Config, h *firebase.Handles, log *zap.Logger) *handlers.Uploads {
	u := handlers.NewUploads(context.Background(), cfg, h, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return u.Close() },
	})
	return u
}

func provideRouter(cfg config.Config, h *firebase.Handles, b *firebase.Bootstrapper, u *handlers.Uploads, log *zap.Logger) http.Handler {
	return apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:     cfg,
		Handles: h,
		Status:  b,
		Uploads: u,
		Log:     log,
	})
}

func startServer(lc fx.Lifecycle, cfg config.Config, router http.Handler, log *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("api listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("listen failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

// check runs the same initialization as serve and prints one row per handle.
func check(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b := firebase.NewBootstrapper(firebase.NewSDK(), log)
	h, initErr := b.Initialize(ctx, cfg)
	if initErr == nil {
		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, _ = h.Client.Analytics.Await(waitCtx)
		cancel()
		defer h.Close(log)
	}

	status := b.Status()
	names := make([]string, 0, len(status))
	for n := range status {
		names = append(names, n)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tSTATE")
	for _, n := range names {
		fmt.Fprintf(tw, "%s\t%s\n", n, status[n])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return initErr
}
