// Command agent runs canned inventory questions through the agent and prints
// each answer. It is the quickest way to see the tools working end to end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dileep-u-k/inventory-agent/internal/agent"
	"github.com/dileep-u-k/inventory-agent/internal/bootstrap"
	"github.com/dileep-u-k/inventory-agent/internal/config"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	prompt := flag.String("prompt", "", "run a single prompt instead of the configured ones")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *prompt, logger, os.Stdout); err != nil {
		logger.Fatalf("❌ %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, prompt string, logger logging.Logger, out io.Writer) error {
	client, err := bootstrap.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	if client == nil {
		return errors.New("no LLM provider configured: set OPENAI_API_KEY or GEMINI_API_KEY")
	}

	store, err := bootstrap.OpenStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	prompts := cfg.Agent.Prompts
	if prompt != "" {
		prompts = []string{prompt}
	}
	return runPrompts(ctx, bootstrap.NewAgent(client, store, cfg, logger), prompts, out)
}

// runPrompts asks each prompt in turn and stops at the first failure.
func runPrompts(ctx context.Context, ag *agent.Agent, prompts []string, out io.Writer) error {
	for i, p := range prompts {
		resp, err := ag.Run(ctx, p, nil)
		if err != nil {
			return fmt.Errorf("prompt %d %q failed: %w", i+1, p, err)
		}
		fmt.Fprintf(out, "=== %d. %s\n%s\n", i+1, p, resp.Content)
		if len(resp.ToolsCalled) > 0 {
			fmt.Fprintf(out, "(tools: %v, tokens: %d)\n", resp.ToolsCalled, resp.Usage.TotalTokens)
		}
		fmt.Fprintln(out)
	}
	return nil
}
