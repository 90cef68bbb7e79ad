package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/danielpatrickdp/coaching-policy/internal/config"
	"github.com/danielpatrickdp/coaching-policy/internal/eval"
	"github.com/danielpatrickdp/coaching-policy/internal/logging"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
	"github.com/danielpatrickdp/coaching-policy/internal/store"
	"github.com/danielpatrickdp/coaching-policy/internal/transport"
)

// #region main

func main() {
	cfgPath := flag.String("config", "coaching_policy.yaml", "path to YAML config")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.NewLogger(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("policyd stopped", zap.Error(err))
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(cfg *config.Config, logger *zap.Logger) error {
	st, err := store.NewStore(cfg.DB)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	artifact, err := activeArtifact(cfg, st, logger)
	if err != nil {
		return err
	}

	srv, err := transport.NewServer(transport.ServerConfig{
		Tables:      artifact.Tables,
		Prior:       artifact.Belief,
		Policy:      cfg.PolicyConfig(),
		Seed:        cfg.Seed,
		MaxSessions: cfg.MaxSessions,
		DB:          st.DB(),
		VersionID:   artifact.VersionID,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	gs := grpc.NewServer()
	transport.RegisterPolicyServiceServer(gs, srv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("policyd listening",
			zap.String("addr", lis.Addr().String()),
			zap.String("db", cfg.DB),
			zap.String("version_id", artifact.VersionID),
		)
		if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Int("sessions", srv.Sessions()))
		gs.GracefulStop()
		return nil
	})
	return g.Wait()
}

// activeArtifact loads the active policy version. On an empty store it
// compiles the configured reward table, gates it through the eval harness and
// saves it as the first version.
func activeArtifact(cfg *config.Config, st *store.Store, logger *zap.Logger) (store.Artifact, error) {
	a, err := st.Active()
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.Artifact{}, fmt.Errorf("load active version: %w", err)
	}

	logger.Info("no active policy version, compiling", zap.String("rewards", sourceName(cfg.Rewards)))
	table, err := config.LoadRewards(cfg.Rewards)
	if err != nil {
		return store.Artifact{}, err
	}
	tables, err := reward.CompileAll(table)
	if err != nil {
		return store.Artifact{}, fmt.Errorf("compile rewards: %w", err)
	}
	bel, err := cfg.Belief()
	if err != nil {
		return store.Artifact{}, err
	}
	result := eval.NewHarness(eval.DefaultConfig()).Run(tables, bel)
	if !result.Passed {
		return store.Artifact{}, fmt.Errorf("compiled policy failed eval: %s", result.Reason)
	}
	return st.SaveArtifact(store.Artifact{
		Source:      sourceName(cfg.Rewards),
		Belief:      bel,
		Tables:      tables,
		MetricsJSON: result.JSON(),
	})
}

func sourceName(path string) string {
	if path == "" {
		return "default"
	}
	return path
}

// #endregion run
