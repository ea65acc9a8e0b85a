package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/radhe-ai/ravi/internal/activity"
	"github.com/radhe-ai/ravi/internal/config"
	"github.com/radhe-ai/ravi/internal/export"
	"github.com/radhe-ai/ravi/internal/help"
	"github.com/radhe-ai/ravi/internal/insight"
	"github.com/radhe-ai/ravi/internal/web"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "ravi: %v\n", err)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
		return errUsage
	}

	if hasFlag(args[1:], "--help") || hasFlag(args[1:], "-h") {
		if c, ok := help.Lookup(args[0]); ok {
			fmt.Fprint(stdout, help.FormatTerminal(c))
			return nil
		}
	}

	switch args[0] {
	case "help", "--help", "-h":
		if len(args) > 1 {
			c, ok := help.Lookup(args[1])
			if !ok {
				return fmt.Errorf("unknown command: %s", args[1])
			}
			fmt.Fprint(stdout, help.FormatTerminal(c))
			return nil
		}
		fmt.Fprint(stdout, help.FormatUsage(help.TopLevel, help.Subcommands))
		return nil

	case "version":
		fmt.Fprintf(stdout, "ravi %s\n", help.Version)
		return nil

	case "init":
		path, action, err := config.WriteDefault()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s\n", action, path)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store := activity.SampleStore()

	switch args[0] {
	case "serve":
		if addr := flagValue(args[1:], "--addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		return serve(cfg, store)

	case "logs":
		view, ok := activity.ParseView(firstArg(args[1:]))
		if !ok && firstArg(args[1:]) != "" {
			fmt.Fprintf(stderr, "ravi: unknown view %q, showing overview\n", firstArg(args[1:]))
		}
		return printLogs(stdout, store.View(view), hasFlag(args[1:], "--json"))

	case "insight":
		requester, err := newRequester(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, requester.Request(context.Background(), store.All()))
		return nil

	case "export":
		path, err := export.WriteFile(firstArg(args[1:]), store.All())
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(stdout, "exported %d records to %s\n", store.Len(), path)
		return nil

	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		fmt.Fprint(stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
		return errUsage
	}
}

// newRequester reads the credential once and fixes the insight strategy.
func newRequester(cfg config.Config) (*insight.Requester, error) {
	gen, err := insight.NewGenerator(cfg.Insight, cfg.APIKey(), &http.Client{Timeout: cfg.Insight.Timeout()})
	if err != nil {
		return nil, err
	}
	if gen == nil {
		log.Printf("%s not set; insights run in demo mode", cfg.Insight.APIKeyEnv)
	}
	return insight.New(gen, cfg.Insight.Timeout()), nil
}

func serve(cfg config.Config, store *activity.Store) error {
	requester, err := newRequester(cfg)
	if err != nil {
		return err
	}

	tmpl, err := web.LoadTemplates(cfg.Server.TemplatesDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := tmpl.Watch(ctx); err != nil {
		return err
	}

	handler := web.NewHandler(store, requester, tmpl)
	server := web.NewServer(web.ServerConfig{
		Address:      cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}, web.NewRouter(handler, cfg.Server.Compress))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("ravi listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-shutdownCh:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	return nil
}

func printLogs(w io.Writer, records []activity.Record, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, r := range records {
		line := insight.FormatLine(r)
		if r.Missed() {
			line += " [missed]"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// firstArg returns the first positional argument, skipping flags.
func firstArg(args []string) string {
	for _, a := range args {
		if len(a) > 0 && a[0] != '-' {
			return a
		}
	}
	return ""
}
