package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"MoonSentinel/internal/config"
	"MoonSentinel/internal/display"
	"MoonSentinel/internal/logger"
	"MoonSentinel/internal/model"
	"MoonSentinel/internal/notifier"
	"MoonSentinel/internal/scheduler"
	"MoonSentinel/internal/server"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "moonsentinel",
		Short: "MoonSentinel - moon phase vs price correlation",
		Long: `MoonSentinel aligns an asset's daily closes with the moon's illumination,
computes their Pearson correlation and tells the story behind the number.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = os.Getenv("CONFIG_PATH")
			}
			if path == "" {
				path = config.DefaultPath
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}
			if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newBotCmd(opts))
	rootCmd.AddCommand(newPeriodsCmd())

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file path (default $CONFIG_PATH or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	return rootCmd
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		period  string
		asJSON  bool
		csvPath string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one correlation analysis",
		Example: `  moonsentinel analyze --period 1y
  moonsentinel analyze --period "3 Months" --json
  moonsentinel analyze --csv aligned.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.cfg.DefaultPeriod()
			if period != "" {
				parsed, err := model.ParsePeriod(period)
				if err != nil {
					return err
				}
				p = parsed
			}

			a, err := newApp(opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := a.analyzer.Run(ctx, p)
			if err != nil {
				return err
			}

			if csvPath != "" {
				if err := display.WriteCSVFile(csvPath, report.AlignedRecords); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
				log.Info().Str("path", csvPath).Int("rows", len(report.AlignedRecords)).Msg("aligned records exported")
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return display.Render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "", "Lookback period: 1mo, 3mo, 6mo, 1y, 2y (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the aligned records to this CSV file")
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = opts.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.analyzer, opts.cfg.DefaultPeriod(), opts.cfg.Server.CORSOrigins)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func newBotCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and scheduled reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := cfg.ValidateBot(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

			sched := scheduler.NewScheduler(ctx, a.analyzer, tn, cfg.DefaultPeriod())
			if err := sched.Register(cfg.Schedule.AnalysisCron, cfg.SchedulePeriod()); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info().Msg("telegram polling started")

			if os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("RUN_ON_START enabled, executing scheduled analysis now")
				go sched.RunNow(cfg.SchedulePeriod())
			}

			log.Info().Msg("MoonSentinel bot is running. Press Ctrl+C to stop.")
			<-ctx.Done()
			log.Info().Msg("shutdown signal received, stopping...")
			return nil
		},
	}
}

func newPeriodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List supported analysis periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range model.Periods {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s\n", p, p.Label()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
