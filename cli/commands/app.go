// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cliconfig "github.com/scenebrush/scenebrush/cli/config"
	"github.com/scenebrush/scenebrush/cli/keystore"
	"github.com/scenebrush/scenebrush/config"
	"github.com/scenebrush/scenebrush/core"
	"github.com/scenebrush/scenebrush/dispatch"
	"github.com/scenebrush/scenebrush/runner"

	// Provider registration.
	_ "github.com/scenebrush/scenebrush/providers/google"
	_ "github.com/scenebrush/scenebrush/providers/gptgod"
	_ "github.com/scenebrush/scenebrush/providers/openrouter"
	_ "github.com/scenebrush/scenebrush/providers/yunwu"
)

// hostTick is how often the CLI drains the host queue while a job runs.
const hostTick = 50 * time.Millisecond

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*cliconfig.Config, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer

	cfgFile  string
	provider string
	verbose  bool
	cfg      *cliconfig.Config

	genStructure string
	genReference string
	genPrompt    string
	genColorMode bool
	genWidth     int
	genHeight    int
	genOutput    string

	editSource    string
	editMask      string
	editReference string
	editPrompt    string
	editFinalize  bool
	editWidth     int
	editHeight    int
	editOutput    string

	setBaseURL string
	setModel   string
	setType    string
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  cliconfig.LoadConfig,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "scenebrush",
		Short: "Scenebrush - AI image generation for rendered scenes",
		Long: `Scenebrush turns rendered structure images (depth maps or colour renders)
into finished images through AI image-generation backends.

Use it to manage provider credentials, pick a backend, and run generate or
edit calls against it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.scenebrush/config.yaml)")
	root.PersistentFlags().StringVar(&a.provider, "provider", "", "provider name (google, yunwu, openrouter, gptgod)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newGenerateCommand())
	root.AddCommand(a.newEditCommand())
	root.AddCommand(a.newProvidersCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	path := a.cfgFile
	if path == "" {
		path = cliconfig.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.provider == "" && cfg.DefaultProvider != "" {
		a.provider = cfg.DefaultProvider
	}
	return nil
}

func (a *App) logger() core.Logger {
	if a.verbose {
		return log.New(a.stderr, "scenebrush: ", log.LstdFlags)
	}
	return core.NopLogger
}

func (a *App) openStore() *config.Store {
	dir := a.cfg.StoreDir
	if dir == "" {
		dir = cliconfig.DefaultStoreDir()
	}
	return config.NewStore(dir, config.WithLogger(a.logger()))
}

// keyedSource wraps the store so entries without a stored API key fall back
// to the encrypted keystore, then to a <PROVIDER>_API_KEY environment
// variable.
type keyedSource struct {
	store *config.Store
	app   *App
}

func (s *keyedSource) ProviderConfig(name string) (core.ProviderConfig, error) {
	cfg, err := s.store.ProviderConfig(name)
	if err != nil {
		return core.ProviderConfig{}, err
	}
	if !cfg.APIKey.IsEmpty() {
		return cfg, nil
	}

	if ks, err := s.app.newKeystore(); err == nil {
		if key, err := ks.Get(cfg.Name); err == nil && key != "" {
			cfg.APIKey = core.NewSecret(key)
			return cfg, nil
		}
	}

	envName := strings.ToUpper(cfg.Name) + "_API_KEY"
	if key := os.Getenv(envName); key != "" {
		cfg.APIKey = core.NewSecret(key)
	}
	return cfg, nil
}

// runJob executes one dispatch call through the background coordinator,
// draining the host queue until the result lands, the way an embedding host
// would on its event-loop tick. The dispatcher handed to run emits its
// status strings through the coordinator's host queue, so they print from
// the drain loop rather than the worker goroutine.
func (a *App) runJob(ctx context.Context, run func(ctx context.Context, d *dispatch.Dispatcher) (*core.ImageResult, error)) (*core.ImageResult, error) {
	queue := runner.NewHostQueue()
	coord := runner.NewCoordinator(queue, runner.WithLogger(a.logger()))
	d := a.newDispatcher(a.statusSink(coord))

	done := false
	var res *core.ImageResult
	var jobErr error
	coord.Start(ctx, func(ctx context.Context) (*core.ImageResult, error) {
		return run(ctx, d)
	}, func(r *core.ImageResult, err error) {
		res, jobErr = r, err
		done = true
	})

	for !done {
		queue.Drain()
		if !done {
			time.Sleep(hostTick)
		}
	}
	return res, jobErr
}

// statusSink adapts status strings into host-queue posts. The worker
// goroutine never writes to stdout itself.
func (a *App) statusSink(coord *runner.Coordinator) dispatch.StatusFunc {
	return func(status string) {
		coord.Post(func() { a.printStatus(status) })
	}
}

func (a *App) newDispatcher(status dispatch.StatusFunc) *dispatch.Dispatcher {
	return dispatch.New(
		&keyedSource{store: a.openStore(), app: a},
		dispatch.WithLogger(a.logger()),
		dispatch.WithStatus(status),
	)
}

// writeResult writes the final image to the output path.
func (a *App) writeResult(res *core.ImageResult, output, doneMsg string) error {
	if err := os.WriteFile(output, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(a.stdout, "%s Wrote %d bytes to %s\n", doneMsg, len(res.Data), output)
	return nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
