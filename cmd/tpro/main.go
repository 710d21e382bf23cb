package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trafficpro/internal/config"
	"trafficpro/internal/oracle"
	"trafficpro/internal/share"
	"trafficpro/internal/store"
	"trafficpro/internal/tui"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	configPath string
	link       string

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd launches the dashboard TUI. With --link it opens the read-only
// client view the link points at instead of the manager board.
var rootCmd = &cobra.Command{
	Use:   "tpro",
	Short: "TrafficPro - painel de gestão de tráfego pago",
	Long: `TrafficPro é o painel da agência para gestão de projetos de tráfego pago.

Acompanha cada cliente pelo pipeline Implementation -> Validation ->
Pre-Scale -> Scale, guarda os relatórios de métricas e usa a Gemini para
diagnóstico estratégico e extração de métricas de screenshots.

Sem argumentos abre o quadro kanban do gestor. Com --link abre a visão
somente leitura que o cliente recebe.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if apiKey != "" {
			cfg.Gemini.APIKey = apiKey
		}

		zc := zap.NewProductionConfig()
		if lvl, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if cfg.Logging.File != "" {
			zc.OutputPaths = []string{cfg.Logging.File}
		} else {
			// Keep stderr clear while the TUI owns the terminal.
			zc.OutputPaths = []string{os.DevNull}
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

// shareCmd prints the read-only client link for a project without starting
// the TUI.
var shareCmd = &cobra.Command{
	Use:   "share [project-id]",
	Short: "Imprime o link somente leitura de um projeto",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := store.New(logger)
		s.Seed()
		if _, ok := s.Get(args[0]); !ok {
			return fmt.Errorf("project %q not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), share.Link(cfg.Share.Origin, args[0]))
		return nil
	},
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := store.New(logger)
	s.Seed()

	deps := tui.Deps{
		Store:       s,
		ShareOrigin: cfg.Share.Origin,
		Log:         logger,
	}

	if cfg.Gemini.APIKey != "" {
		adv, err := oracle.New(ctx, oracle.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		deps.Advisor = adv
	} else {
		logger.Info("no Gemini API key, assistant features disabled")
	}

	if link != "" {
		id, ok := share.ProjectID(link)
		if !ok {
			return fmt.Errorf("not a recognized share link: %s", link)
		}
		return tui.RunClientView(ctx, deps, id, os.Stdout)
	}
	return tui.Run(ctx, deps, os.Stdout)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	rootCmd.Flags().StringVar(&link, "link", "", "Open the client view for a share link instead of the manager board")

	rootCmd.AddCommand(shareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
