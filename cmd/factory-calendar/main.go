package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tufanunal/factory-planner-360-sub000/internal/config"
	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
	"github.com/tufanunal/factory-planner-360-sub000/internal/server"
	"github.com/tufanunal/factory-planner-360-sub000/internal/storage"
	"github.com/tufanunal/factory-planner-360-sub000/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "factory-calendar",
		Short: "Factory calendar and shift scheduling",
		Long:  "Working-day calendars, holidays and rotating shift schedules for the factory operations dashboard",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger()
				}
			} else {
				initLogger()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scheduleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			svc, err := openService(cfg)
			if err != nil {
				return err
			}

			e := server.New(svc, logger)

			go func() {
				logger.Info("HTTP API listening", zap.String("addr", cfg.Server.Listen))
				if err := e.Start(cfg.Server.Listen); err != nil {
					logger.Warn("HTTP server stopped", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(ctx)
		},
	}
}

func scheduleCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the active calendar's schedule for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			svc, err := openService(cfg)
			if err != nil {
				return err
			}

			first := dateutil.StartOfDay(time.Now())
			if month != "" {
				first, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month, want YYYY-MM: %w", err)
				}
			}
			first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
			last := first.AddDate(0, 1, -1)

			cal := svc.ActiveCalendar()
			days, err := svc.EffectiveSchedule(cal.ID, first, last)
			if err != nil {
				return err
			}

			fmt.Printf("Calendar %q (%s), %s\n", cal.Name, cal.CountryCode, first.Format("January 2006"))
			workdays := 0
			for _, day := range days {
				mark := "off"
				if day.IsWorkday {
					mark = "work"
					workdays++
				}
				line := fmt.Sprintf("  %s  %-4s", day.Date, mark)
				if day.HolidayName != "" {
					line += "  " + day.HolidayName
				}
				for _, shift := range day.Shifts {
					if shift.IsActive {
						line += fmt.Sprintf("  [%s]", shift.Name)
					}
				}
				fmt.Println(line)
			}
			fmt.Printf("Working days: %d of %d\n", workdays, len(days))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to print (YYYY-MM, default current)")
	return cmd
}

// openService builds the store selected by config and loads the registry.
func openService(cfg *config.Config) (*schedule.Service, error) {
	var store schedule.Store
	switch cfg.Storage.Type {
	case "sqlite":
		s, err := storage.NewSqliteStore(cfg.Storage.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		store = s
	case "memory":
		store = storage.NewMemoryStore()
	default:
		store = storage.NewFileStore(cfg.Storage.Path, logger)
	}

	svc := schedule.NewService(store, logger)
	if err := svc.Open(context.Background(), cfg.Calendar.Seed()); err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	return svc, nil
}

// initLogger initializes a console logger
func initLogger() {
	logger, _ = zap.NewProduction()
}

// initFileLogger initializes a file logger with rotation
func initFileLogger(logFile, logLevel string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writer,
		level,
	)

	return zap.New(core), nil
}
