package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rlstats/config"
	"github.com/s0up4200/rlstats/filter"
	"github.com/s0up4200/rlstats/output"
	"github.com/s0up4200/rlstats/rocketleague"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Build information, set from main
	version   = "dev"
	buildTime = "unknown"

	// Global flags
	tokenFlag    string
	dryRun       bool
	rawResponse  bool
	queryExpr    string
	filterExpr   string
	compact      bool
	outputFormat string
	verbose      bool

	filterCompiler = filter.NewCompiler(filter.WithCache(32))
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rlstats",
	Short: "Query the official Rocket League stats API",
	Long: `rlstats is a command line client for the official Rocket League stats API.

It fetches player population, regions, skill and stat leaderboards, player
skills, titles and stat values. Results are printed as JSON or as a table and
can be narrowed with a filter expression or a jq query.

The API token is read from --token, ROCKETLEAGUE_API_TOKEN,
ROCKETLEAGUE_API_KEY, the config file or the OS keyring (rlstats auth login).`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the build information reported by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.config/rlstats/config.yaml)")
	flags.StringVar(&tokenFlag, "token", "", "API token (overrides config and keyring)")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "print the request and an equivalent curl command without sending it")
	flags.BoolVar(&rawResponse, "raw", false, "print the raw HTTP response instead of decoding it")
	flags.StringVarP(&queryExpr, "query", "q", "", "jq expression applied to the result")
	flags.StringVarP(&filterExpr, "filter", "f", "", `filter rows, e.g. 'value > 100 and icontains(user_name, "rl")'`)
	flags.BoolVar(&compact, "compact", false, "print compact JSON")
	flags.StringVarP(&outputFormat, "output", "o", "json", "output format (json, table)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line flags override the config file
	if cmd.Flags().Changed("token") {
		cfg.API.Token = tokenFlag
	}
	if cmd.Flags().Changed("output") {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		cfg.Output.Format = string(format)
	}
	if cmd.Flags().Changed("compact") {
		cfg.Output.Compact = compact
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Debug.Request = dryRun
	}
	if cmd.Flags().Changed("raw") {
		cfg.Debug.Response = rawResponse
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())

	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("Loaded config")
	}

	return nil
}

// setupLogger configures the zerolog logger. Color is only used when the
// output is a terminal.
func setupLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(w).With().Timestamp().Logger()
	}

	// Console format
	consoleOut := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(w),
	}

	return zerolog.New(consoleOut).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newClient builds a stats API client from the loaded configuration
func newClient() (*rocketleague.Client, error) {
	token, err := cfg.ResolveToken()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not read token from keyring, continuing without it")
		token = ""
	}
	if token == "" && !cfg.Debug.Request {
		logger.Warn().Msg("No API token configured, requests will be rejected (run 'rlstats auth login')")
	}

	opts := []rocketleague.Option{
		rocketleague.WithBaseURL(cfg.API.BaseURL),
		rocketleague.WithTimeout(cfg.API.Timeout),
		rocketleague.WithDebugRequest(cfg.Debug.Request),
		rocketleague.WithDebugResponse(cfg.Debug.Response),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, rocketleague.WithUserAgent(cfg.API.UserAgent))
	}

	client, err := rocketleague.NewClient(token, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Debug().
		Str("api_root", client.APIRoot()).
		Str("mode", client.Mode().String()).
		Msg("Client ready")

	return client, nil
}
