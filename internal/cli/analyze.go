package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/credo-scan/credo/internal/config"
	"github.com/credo-scan/credo/internal/model"
	"github.com/credo-scan/credo/internal/pipeline"
)

var (
	outJSON   string
	outMD     string
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	noCache   bool
	noFooter  bool
	noRobots  bool
	llmFlag   bool
	llmModel  string
	promptVer string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url|file|->",
	Short: "Analyze a single article and score its credibility",
	Long: `Analyze scores one article:
- Segment the text into sentences
- Apply deterministic linguistic heuristics
- Optionally ask an LLM to assess the main claims (cached, with a
  deterministic mock fallback when no credential is available)
- Blend both branches into a 0-100 credibility score

The source may be a URL, a plain-text file, or "-" for stdin.

Example:
  credo analyze https://example.com/story
  credo analyze article.txt --json report.json --md report.md
  credo analyze article.txt --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")

	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the LLM response cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmFlag, "llm", false, "enable the LLM analysis branch")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	analyzeCmd.Flags().StringVar(&promptVer, "prompt-version", "v1", "prompt version tag (part of the cache key)")
}

// buildConfig assembles configuration from defaults and flags. The
// API key is read from the environment here and nowhere else; it never
// lands in a config file or a cache entry.
func buildConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = defaultCacheDir()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmFlag {
		cfg.LLM.Model = llmModel
		cfg.LLM.PromptVersion = promptVer
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", source)
		fmt.Fprintf(os.Stderr, "LLM branch: %v\n", llmFlag)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	opts := model.Options{
		UseLLM:        llmFlag,
		ModelName:     llmModel,
		PromptVersion: promptVer,
	}
	if !llmFlag {
		opts.ModelName = ""
		opts.PromptVersion = ""
	}

	runner := p.NewSourceRunner(opts)
	article, err := runner.LoadSource(ctx, source)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d bytes of text\n", len(article.RawText))
	}

	rep, err := p.Analyze(ctx, article, opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidOptions) {
			return err
		}
		return fmt.Errorf("analyze: %w", err)
	}

	if err := p.RenderReport(rep, article, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
