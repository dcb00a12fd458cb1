package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cdpbot/internal/chunker"
	"cdpbot/internal/config"
	"cdpbot/internal/docsource"
	"cdpbot/internal/domain"
	"cdpbot/internal/embedding/tfidf"
	"cdpbot/internal/index"
	"cdpbot/internal/repl"
	"cdpbot/internal/service"
	"cdpbot/internal/textproc"
	"cdpbot/internal/tui"
	"cdpbot/internal/vectorstore/memory"
)

type rootOptions struct {
	configPath string
	source     string
	useTUI     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cdpbot",
		Short: "Answer how-to questions about Customer Data Platforms",
		Long: `Answers questions about Segment, mParticle, Lytics and Zeotap by
retrieving the most similar documentation fragments.
Questions containing "compare" or "difference" get one section per platform named.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assistant, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if opts.useTUI {
				_, err := tea.NewProgram(tui.New(assistant), tea.WithContext(cmd.Context())).Run()
				return err
			}
			return repl.New(assistant, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()).Run()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file (default ./config.yaml, then ~/.config/cdpbot/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "documentation source: stub, file or web (overrides config)")
	cmd.Flags().BoolVar(&opts.useTUI, "tui", false, "run the full-screen chat interface")
	cmd.AddCommand(newAskCmd(opts))
	return cmd
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			response, err := assistant.Respond(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("answer failed: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), response)
			return err
		},
	}
}

func setup(cmd *cobra.Command, opts *rootOptions) (*service.Assistant, *zap.Logger, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := newLogger(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	assistant, err := buildAssistant(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return assistant, logger, nil
}

func loadConfig(opts *rootOptions) (*config.AppConfig, error) {
	var cfg *config.AppConfig
	var err error
	if opts.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if opts.source != "" {
		cfg.Source.Type = opts.source
		cfg.ApplyDefaults()
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// buildAssistant assembles components via interfaces.
func buildAssistant(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*service.Assistant, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "sentence", "":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		return nil, fmt.Errorf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var fetcher domain.Fetcher
	switch cfg.Source.Type {
	case "stub", "":
		fetcher = docsource.Stub{}
	case "file":
		if cfg.Source.File == nil {
			return nil, fmt.Errorf("file source config missing")
		}
		fetcher = docsource.NewFileFetcher(cfg.Source.File.Dir, ch)
	case "web":
		if cfg.Source.Web == nil {
			return nil, fmt.Errorf("web source config missing")
		}
		fetcher = docsource.NewWebFetcher(ch, docsource.WithTimeout(time.Duration(cfg.Source.Web.TimeoutSecs)*time.Second))
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source.Type)
	}

	idx := index.New(
		textproc.NewNormalizer(),
		func() domain.Vectorizer { return tfidf.NewVectorizer() },
		func() domain.VectorStore { return memory.NewStorage() },
	)
	source := docsource.NewRecovering(fetcher, logger.Named("docsource"))
	return service.NewAssistant(ctx, source, idx, cfg.PlatformSources(), cfg.Retrieval.TopK, logger.Named("assistant"))
}
