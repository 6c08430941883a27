// Package cli implements the homestead command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/homestead/internal/backup"
	"github.com/mesh-intelligence/homestead/internal/logging"
	"github.com/mesh-intelligence/homestead/internal/paths"
	"github.com/mesh-intelligence/homestead/internal/sqlite"
	"github.com/mesh-intelligence/homestead/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries flag values and the resources opened for one command run.
type app struct {
	configDirFlag string
	dataDirFlag   string
	logLevelFlag  string
	jsonMode      bool

	configDir string
	dataDir   string
	cfg       *viper.Viper
	logger    *zap.Logger
	logCloser io.Closer
	store     *sqlite.Store
	now       func() time.Time
}

func newApp() *app {
	return &app{logger: zap.NewNop(), now: time.Now}
}

// NewRootCmd creates the top-level "homestead" command with every
// subcommand registered.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "homestead",
		Short: "Track properties, assets, expenses, and upkeep",
		Long: "Homestead keeps a local record of your properties, rooms, assets,\n" +
			"workers, expenses, bills, maintenance, and renovations.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDirFlag, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.dataDirFlag, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	pf.StringVar(&a.logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		a.versionCmd(),
		a.initCmd(),
		a.schemaCmd(),
		a.propertyCmd(),
		a.maintenanceCmd(),
		a.expenseCmd(),
		a.exportCmd(),
		a.importCmd(),
	)
	return root
}

// setup resolves directories, reads the config file, and builds the
// logger. The store itself is opened on first use.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.configDirFlag)
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := paths.ResolveDataDir(a.dataDirFlag, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}

	level := cfg.GetString(cfgKeyLogLevel)
	if a.logLevelFlag != "" {
		level = a.logLevelFlag
	}
	opts := logging.Options{
		Level:      level,
		Format:     cfg.GetString(cfgKeyLogFormat),
		MaxSizeMB:  cfg.GetInt(cfgKeyLogMaxSize),
		MaxBackups: cfg.GetInt(cfgKeyLogMaxBackups),
	}
	if cfg.GetBool(cfgKeyLogToFile) {
		opts.File = paths.LogFile(dataDir)
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	a.configDir, a.dataDir, a.cfg = configDir, dataDir, cfg
	a.logger, a.logCloser = logger, closer
	return nil
}

// openStore returns the store for this run, creating it on first call.
func (a *app) openStore() *sqlite.Store {
	if a.store == nil {
		b := sqlite.NewBackend(types.Config{Backend: types.BackendSQLite, DataDir: a.dataDir},
			sqlite.WithLogger(a.logger))
		a.store = sqlite.NewStore(b)
	}
	return a.store
}

// close releases the store and the log file. It is safe to call twice.
func (a *app) close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

// Execute runs the CLI and exits with a code reflecting the failure class.
func Execute() {
	a := newApp()
	root := a.rootCmd()
	err := root.ExecuteContext(context.Background())
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "homestead:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode separates mistakes the user can fix from system failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrIntegrity),
		errors.Is(err, errUsage),
		errors.Is(err, backup.ErrNotEmpty),
		errors.Is(err, backup.ErrMalformed):
		return exitUserError
	default:
		return exitSysError
	}
}

// errUsage marks bad flag or argument values.
var errUsage = errors.New("invalid usage")
