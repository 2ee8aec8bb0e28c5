package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/client"
	"github.com/Aashish23092/finstatement-extractor/config"
	"github.com/Aashish23092/finstatement-extractor/logger"
	"github.com/Aashish23092/finstatement-extractor/report"
	"github.com/Aashish23092/finstatement-extractor/resolver"
	"github.com/Aashish23092/finstatement-extractor/service"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "finextract",
		Short: "Korean financial statement account extractor",
		Long: `finextract reads a financial statement (Markdown, text, PDF or a
scanned image) and maps its line items onto the 75 standardized accounts.

Accounts that no stage resolves are reported as N/A.`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(accountsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract account values from a document",
		Long: `Run the staged resolution over a document and print one row per account.

Formats:
  table  aligned text (default)
  json   rows, summary and derived metrics
  csv    UTF-8 CSV with BOM
  xlsx   Excel workbook (requires --output)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			thresholdsFile, _ := cmd.Flags().GetString("thresholds")
			useAI, _ := cmd.Flags().GetBool("ai")
			password, _ := cmd.Flags().GetString("password")

			if input == "" {
				return fmt.Errorf("--input is required")
			}
			if format == "xlsx" && output == "" {
				return fmt.Errorf("--output is required for xlsx")
			}

			_ = godotenv.Load()
			cfg := config.LoadConfig()
			log := logger.New(cfg.LogLevel)

			if thresholdsFile == "" {
				thresholdsFile = cfg.ThresholdsFile
			}
			thresholds, err := config.LoadThresholds(thresholdsFile)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			svc, err := newService(ctx, cfg, thresholds, useAI, log)
			if err != nil {
				return err
			}

			extraction, err := svc.Extract(ctx, service.Document{
				Filename: filepath.Base(input),
				Data:     data,
				Password: password,
			}, useAI)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			out := io.Writer(os.Stdout)
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := writeExtraction(out, format, extraction); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(os.Stderr, "Wrote %s (%d/%d accounts resolved)\n",
					output, extraction.Summary.Found, extraction.Summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "Statement file (.md, .txt, .pdf, .png, .jpg)")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, json, csv, xlsx")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("thresholds", "", "YAML file overriding stage thresholds")
	cmd.Flags().Bool("ai", false, "Ask the AI fallback for accounts left unresolved")
	cmd.Flags().String("password", "", "Password for encrypted PDFs")

	return cmd
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the standardized account catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeAccounts(cmd.OutOrStdout(), catalog.All())
		},
	}
}

// newService wires the pipeline. The Gemini client is only built when the
// run asks for it and the configuration allows it.
func newService(ctx context.Context, cfg *config.Config, thresholds resolver.Thresholds, useAI bool, log zerolog.Logger) (*service.ExtractionService, error) {
	var ai service.AIExtractor
	if useAI {
		if !cfg.AI.Usable() {
			return nil, fmt.Errorf("AI fallback requested but AI_FALLBACK_ENABLED or GEMINI_API_KEY is not set")
		}
		gemini, err := client.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		ai = gemini
	}

	return service.NewExtractionService(
		resolver.New(thresholds, log),
		client.NewTesseractClient(cfg.TesseractDataPath),
		service.NewPDFProcessor(),
		ai,
		cfg.AI,
		log,
	), nil
}

func writeExtraction(w io.Writer, format string, e *service.Extraction) error {
	switch format {
	case "table":
		return writeTable(w, e)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			RunID       string         `json:"run_id"`
			Filename    string         `json:"filename"`
			Rows        []report.Row   `json:"rows"`
			Summary     report.Summary `json:"summary"`
			AIUsed      bool           `json:"ai_used"`
			ProcessedAt time.Time      `json:"processed_at"`
		}{e.RunID, e.Filename, e.Rows, e.Summary, e.AIUsed, e.ProcessedAt})
	case "csv":
		return report.WriteCSV(w, e.Rows)
	case "xlsx":
		return report.WriteXLSX(w, e.Rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeTable(w io.Writer, e *service.Extraction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tACCOUNT\tVALUE\tSOURCE\tCONFIDENCE")
	for _, r := range e.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n", r.ID, r.Name, r.Value, r.Source, r.Confidence)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := e.Summary
	fmt.Fprintf(w, "\nResolved %d of %d accounts (%.1f%%)\n", s.Found, s.Total, s.Rate)
	for _, o := range e.Derived {
		if !o.Applied() {
			continue
		}
		fmt.Fprintf(w, "  computed #%d = %s\n", o.TargetID, o.Value)
	}
	return nil
}

func writeAccounts(w io.Writer, accounts []catalog.AccountDefinition) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tALIASES")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", a.ID, a.Name, a.Category, len(a.Aliases))
	}
	return tw.Flush()
}
