package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/filingcheck/internal/report"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
	"github.com/hyperifyio/filingcheck/internal/validation"
)

var version = "0.1.0"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd := &cobra.Command{
		Use:   "filingcheck",
		Short: "Inline XBRL filing validator",
		Long: `filingcheck inspects a generated regulatory filing document and decides
whether it is structurally sound and substantively complete enough to
submit, reporting every defect with a stable code and location.`,
		Version: version,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runValidation loads the document and rule config named by the command's
// flags and runs the full pipeline once.
func runValidation(cmd *cobra.Command, path string) (*validation.Result, error) {
	sizeFlag, _ := cmd.Flags().GetString("size")
	size, err := taxonomy.ParseEntitySize(sizeFlag)
	if err != nil {
		return nil, err
	}

	cfg := taxonomy.Default()
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		cfg, err = taxonomy.Load(configPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("config", configPath).Msg("loaded rule config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	res := validation.New(cfg).Validate(string(data), size)
	log.Info().
		Str("run", res.RunID).
		Bool("valid", res.Valid).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Int("placeholders", len(res.Placeholders)).
		Dur("elapsed", res.Stats.Elapsed).
		Msg("validation complete")
	return res, nil
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a filing document; exits non-zero when it must not be submitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runValidation(cmd, args[0])
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				fmt.Print(report.Render(res))
			}
			if !res.Valid {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().String("size", "micro", "entity size tier: micro, small, medium or large")
	cmd.Flags().String("config", "", "path to a YAML rule-config file overriding the defaults")
	cmd.Flags().Bool("json", false, "emit the raw validation result as JSON")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <document>",
		Short: "Render the human-readable validation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runValidation(cmd, args[0])
			if err != nil {
				return err
			}
			if pdfPath, _ := cmd.Flags().GetString("pdf"); pdfPath != "" {
				if err := report.WritePDF(res, pdfPath); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
				log.Info().Str("out", pdfPath).Msg("wrote PDF report")
				return nil
			}
			fmt.Print(report.Render(res))
			return nil
		},
	}
	cmd.Flags().String("size", "micro", "entity size tier: micro, small, medium or large")
	cmd.Flags().String("config", "", "path to a YAML rule-config file overriding the defaults")
	cmd.Flags().String("pdf", "", "also write the report as a PDF to this path")
	return cmd
}
