package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielledeleo/gitleaf"
	"github.com/danielledeleo/gitleaf/internal/config"
	"github.com/danielledeleo/gitleaf/internal/server"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gitleaf",
	Short:         "Serve markdown articles from a git-tracked directory",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

var renderCmd = &cobra.Command{
	Use:   "render [name]",
	Short: "Render one article to stdout",
	Long: `Renders the article with the given literal name, or the default article
when no name is given, and writes the HTML page to stdout. A missing article
prints the not-found page.`,
	Args: cobra.MaximumNArgs(1),
	RunE: render,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates and whether each is overridden on disk",
	Args:  cobra.NoArgs,
	RunE:  templates,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "path to the configuration file")
	rootCmd.AddCommand(serveCmd, renderCmd, templatesCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("gitleaf failed", "error", err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := config.SetupConfig(configPath, true)

	app, err := server.NewApp(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Host,
		Handler: app.Router(),
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server starting", "url", "http://"+cfg.Host, "articles", cfg.ArticlesPath())

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
	return nil
}

func render(cmd *cobra.Command, args []string) error {
	cfg := config.SetupConfig(configPath, false)

	app, err := server.NewApp(cfg)
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	page, err := app.Pages.Render(cmd.Context(), name)
	if err != nil {
		return err
	}
	slog.Debug("rendered", "article", page.Name, "outcome", page.Outcome)

	_, err = fmt.Fprint(cmd.OutOrStdout(), page.HTML)
	return err
}

func templates(cmd *cobra.Command, args []string) error {
	cfg := config.SetupConfig(configPath, false)

	entries, err := gitleaf.ListContentFiles(cfg.BaseDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%-8s %s\n", e.Source, e.Path)
	}
	if n := len(gitleaf.ContentOverrides(entries)); n > 0 {
		fmt.Fprintf(out, "%d overridden\n", n)
	}
	return nil
}
