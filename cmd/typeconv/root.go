package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wippyai/typeconv/convert"
	"github.com/wippyai/typeconv/guest"
	"github.com/wippyai/typeconv/internal/config"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix for environment variables overriding flags,
// e.g. TYPECONV_LOG_LEVEL.
const EnvPrefix = "TYPECONV"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
	types  *typeNames
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: zap.NewNop(),
		types:  newTypeNames(),
	}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "typeconv",
		Short: "Inspect and run primitive array conversions",
		Long: `typeconv drives the converter registry: it lists the primitive kinds,
shows which converters a type pair selects and in which order, and converts
YAML values between slices, containers and guest memory lists.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to configuration file (YAML format)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("guest", false, "Register the WebAssembly guest list converters")
	for _, name := range []string{"config", "log-level", "guest"} {
		cobra.CheckErr(a.v.BindPFlag(name, flags.Lookup(name)))
	}

	root.AddCommand(newKindsCmd())
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newInteractiveCmd(a))

	return root
}

// setup loads the configuration and applies flag and environment overrides.
func (a *app) setup() error {
	var opts []config.Option
	if path := a.v.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}
	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return err
	}

	if lvl := a.v.GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if a.v.GetBool("guest") {
		if cfg.Guest == nil {
			cfg.Guest = &config.GuestConfig{}
		}
		cfg.Guest.Enabled = true
	}

	level, err := cfg.ZapLevel()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	convert.SetLogger(logger)
	return nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// session is an engine built from the configuration along with the
// resources it holds.
type session struct {
	engine *convert.Engine
	memory *guest.Memory
	reader *sdkmetric.ManualReader
	meters *sdkmetric.MeterProvider
}

// open builds a fresh registry from the builtins, plus the guest converters
// when enabled, with configured priorities and exclusions applied.
func (a *app) open(ctx context.Context, withStats bool) (*session, error) {
	s := &session{}

	descs := convert.Builtins()
	if g := a.cfg.Guest; g != nil && g.Enabled {
		mem, err := guest.NewMemoryWithConfig(ctx, &guest.Config{MemoryLimitPages: g.MemoryLimitPages})
		if err != nil {
			return nil, fmt.Errorf("failed to create guest memory: %w", err)
		}
		s.memory = mem
		descs = append(descs, guest.Converters(mem)...)
	}

	descs, err := a.cfg.Apply(descs)
	if err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	registry := convert.NewRegistry()
	if err := registry.RegisterAll(descs...); err != nil {
		s.close(ctx)
		return nil, err
	}

	opts := []convert.Option{
		convert.WithRegistry(registry),
		convert.WithBuiltins(false),
		convert.WithLogger(a.logger),
	}
	if withStats {
		s.reader = sdkmetric.NewManualReader()
		s.meters = sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))
		opts = append(opts, convert.WithMeterProvider(s.meters))
	}

	s.engine, err = convert.New(opts...)
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	a.logger.Debug("engine ready",
		zap.Int("converters", registry.Len()),
		zap.Bool("guest", s.memory != nil),
	)
	return s, nil
}

func (s *session) close(ctx context.Context) {
	if s.meters != nil {
		_ = s.meters.Shutdown(ctx)
	}
	if s.memory != nil {
		_ = s.memory.Close(ctx)
	}
}
