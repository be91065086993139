package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/smartspend-dev/spendcsv/internal/buildinfo"
	"github.com/smartspend-dev/spendcsv/internal/categorize"
	"github.com/smartspend-dev/spendcsv/internal/config"
	"github.com/smartspend-dev/spendcsv/internal/export"
	"github.com/smartspend-dev/spendcsv/internal/importer"
	"github.com/smartspend-dev/spendcsv/internal/logging"
)

// ErrNoFilePath is returned when spendcsv is run without an input file.
// The JSON error has already been written when it is returned.
var ErrNoFilePath = errors.New("no file path provided")

// noFilePathJSON is the exact line the web backend receives.
const noFilePathJSON = `{"error": "No file path provided"}`

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

// annotationDotenv marks commands that load a .env file before config.
const annotationDotenv = "spendcsv/dotenv"

// app holds what every command needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	format     string

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "spendcsv <file>",
		Short:   "Normalize and categorize a bank transaction export",
		Long:    "Reads a bank CSV (or XLSX) export and prints its transactions as a JSON array,\nor {\"error\": ...} when the file cannot be processed.",
		Version: buildinfo.String(),
		Args:    cobra.ArbitraryArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProcess(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.Flags().StringVar(&a.format, "format", formatJSON, "output format for transactions: json or csv")

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newCategoriesCommand(a))

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	if cmd.Annotations[annotationDotenv] == "true" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
	}

	path := a.configPath
	if path == "" {
		path = config.Find(".")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) pipeline() (*importer.Pipeline, error) {
	c, err := categorize.New(a.cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("building categorizer: %w", err)
	}
	return importer.NewPipeline(c, importer.DefaultRegistry()), nil
}

func (a *app) runProcess(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if err := writeLine(out, []byte(noFilePathJSON)); err != nil {
			return err
		}
		return ErrNoFilePath
	}

	if a.format != formatJSON && a.format != formatCSV {
		return fmt.Errorf("unknown format %q", a.format)
	}

	p, err := a.pipeline()
	if err != nil {
		return err
	}
	ctx := logging.WithLogger(cmd.Context(), a.logger)
	res := p.Process(ctx, args[0])

	if res.OK() && a.format == formatCSV {
		return export.WriteTransactions(out, res.Transactions)
	}

	// Processing failures are reported in the JSON body only.
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return writeLine(out, data)
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
