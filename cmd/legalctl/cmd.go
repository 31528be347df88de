package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	appdocs "github.com/bryanwahyu/automaton-legal/internal/application/documents"
	"github.com/bryanwahyu/automaton-legal/internal/bootstrap"
	"github.com/bryanwahyu/automaton-legal/internal/config"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/pkg/logger"
)

type analyzeOptions struct {
	configPath  string
	docType     string
	regulations []string
	issue       string
	audience    string
	plan        bool
	provider    string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "legalctl",
		Short:         "Run the legal compliance pipeline from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newAnalyzeCmd(), newRegulationsCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Extract clauses, check compliance and print the risk heatmap as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", envOr("CONFIG_PATH", "config.yaml"), "path to config.yaml")
	f.StringVar(&opts.docType, "type", "contract", "document type (contract, policy, agreement)")
	f.StringSliceVar(&opts.regulations, "regulations", nil, "regulations to check (default GDPR,HIPAA,CCPA)")
	f.StringVar(&opts.issue, "issue", "", "issue id to explain after analysis")
	f.StringVar(&opts.audience, "audience", "executive", "explanation audience (executive, engineer, legal)")
	f.BoolVar(&opts.plan, "plan", false, "also build a remediation plan")
	f.StringVar(&opts.provider, "provider", "", "override ai.provider (openai, mock)")
	return cmd
}

func newRegulationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regulations",
		Short: "List regulations with built-in descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			regs := analysis.KnownRegulations()
			names := make([]string, 0, len(regs))
			for n := range regs {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", n, regs[n])
			}
			return nil
		},
	}
}

type analyzeReport struct {
	DocumentID  string                            `json:"doc_id"`
	Clauses     analysis.ClauseExtractionResult   `json:"clauses"`
	Compliance  analysis.ComplianceAnalysisResult `json:"compliance"`
	Heatmap     analysis.Heatmap                  `json:"heatmap"`
	Explanation *analysis.Explanation             `json:"explanation,omitempty"`
	Plan        *analysis.RemediationPlan         `json:"remediation_plan,omitempty"`
}

func runAnalyze(ctx context.Context, out io.Writer, path string, opts analyzeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.provider != "" {
		cfg.AI.Provider = opts.provider
	}
	// log ke stderr supaya stdout tetap JSON bersih
	logger.InitWriter(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := app.Documents.Upload(ctx, appdocs.UploadCommand{
		Filename: filepath.Base(path),
		DocType:  opts.docType,
		Data:     data,
	})
	if err != nil {
		return err
	}

	report := analyzeReport{DocumentID: doc.ID}
	if report.Clauses, err = app.Analysis.RunClauseExtraction(ctx, doc.ID); err != nil {
		return describe(err)
	}
	if report.Compliance, err = app.Analysis.RunComplianceAnalysis(ctx, doc.ID, opts.regulations); err != nil {
		return describe(err)
	}
	if report.Heatmap, err = app.Analysis.RiskHeatmap(ctx, doc.ID); err != nil {
		return describe(err)
	}
	if opts.issue != "" {
		exp, err := app.Analysis.ExplainIssue(ctx, doc.ID, opts.issue, analysis.ParseAudience(opts.audience))
		if err != nil {
			return describe(err)
		}
		report.Explanation = &exp
	}
	if opts.plan {
		plan, err := app.Analysis.RemediationPlan(ctx, doc.ID)
		if err != nil {
			return describe(err)
		}
		report.Plan = &plan
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
