// Package main provides the CLI entry point for tblstruct-go.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct"
	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/output"
)

var (
	configPath string
	verbose    bool
	outputPath string
	pretty     bool
	format     string
	tablesDir  string
	noHeaders  bool
	normalize  bool
	workers    int
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tblstruct [input.json...]",
		Short: "Reconstruct tables from document extraction block graphs",
		Long: `tblstruct-go rebuilds the tables found in the block graph JSON of a
document text and table extraction service and outputs them as JSON, CSV,
XLSX or a text preview. Several input files are treated as the result pages
of one analysis job.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML configuration file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&noHeaders, "no-headers", false, "Keep header rows in the table body")
	pf.BoolVar(&normalize, "normalize", false, "Apply Unicode NFKC normalization to line text")
	pf.IntVar(&workers, "workers", 1, "Number of tables normalized concurrently")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv, xlsx, text")
	rootCmd.Flags().StringVar(&tablesDir, "tables-dir", "", "Directory for per-table output files")

	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

// loadConfig reads --config (if any) and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (tblstruct.Config, error) {
	cfg := tblstruct.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = tblstruct.LoadConfig(configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("no-headers") {
		promote := !noHeaders
		cfg.PromoteHeaders = &promote
	}
	if flags.Changed("normalize") {
		cfg.NormalizeText = normalize
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("tables-dir") {
		cfg.Output.TablesDir = tablesDir
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := output.ValidateFormat(cfg.Output.Format); err != nil {
		return err
	}

	// Validate input files exist
	for _, inputPath := range args {
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", inputPath)
		}
	}

	opts := cfg.Options()
	opts.Logger = logger

	prog := newProgress(logger)
	set, extractErr := tblstruct.ExtractFiles(args, opts)
	if set == nil {
		return fmt.Errorf("extraction failed: %w", extractErr)
	}
	failed := tblstruct.TableErrors(extractErr)
	for _, e := range failed {
		logger.Error("table failed", "table", e.TableID, "err", e.Err)
	}
	prog.done(fmt.Sprintf("Reconstructed %d tables", len(set.TableIDs)))

	data, err := output.Render(set, cfg.Output.Format, cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	// Write output
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if cfg.Output.TablesDir == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	// Write per-table files
	if cfg.Output.TablesDir != "" {
		if err := writeTableFiles(set, cfg.Output.TablesDir, cfg.Output.Format, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write table files: %w", err)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d tables failed: %w", len(failed), set.Stats.Tables, failed[0])
	}
	return nil
}

func writeTableFiles(set *models.TableSet, dir, format string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, table := range set.Ordered() {
		data, err := output.RenderTable(&table, format, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, tableFileName(i, table.ID)+output.Extension(format))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

// tableFileName builds a file name such as "table_01_<id>" that sorts in document order.
func tableFileName(i int, id string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, id)
	return fmt.Sprintf("table_%02d_%s", i+1, safe)
}
