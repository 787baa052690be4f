package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dileep-u-k/inventory-agent/internal/llm"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

const (
	statusUnknown      = "unknown"
	statusOnline       = "online"
	statusOffline      = "offline"
	statusUnconfigured = "unconfigured"

	healthCheckInterval = 5 * time.Minute
	healthCheckTimeout  = 30 * time.Second
)

// healthMonitor periodically sends a tiny prompt to the configured model and
// remembers whether it answered.
type healthMonitor struct {
	client llm.LLMClient
	model  string
	logger logging.Logger
	status atomic.Value
}

func newHealthMonitor(client llm.LLMClient, model string, logger logging.Logger) *healthMonitor {
	m := &healthMonitor{client: client, model: model, logger: logger}
	m.status.Store(statusUnknown)
	return m
}

// Status returns the result of the latest check.
func (m *healthMonitor) Status() string {
	return m.status.Load().(string)
}

// check sends one health prompt and records the outcome.
func (m *healthMonitor) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	config := &llm.GenerationConfig{Model: m.model, MaxTokens: 5}
	prompt := []llm.Message{{Role: llm.RoleUser, Content: "How many grams are in an ounce?"}}
	_, err := m.client.Generate(ctx, prompt, config, nil)

	if err != nil {
		m.status.Store(statusOffline)
		m.logger.Warnf("health check for %s failed: %v", m.model, err)
		return
	}
	m.status.Store(statusOnline)
	m.logger.Debugf("health check for %s: online", m.model)
}

// run checks immediately and then on every tick until ctx is done.
func (m *healthMonitor) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Infof("health checker started for %s", m.model)
	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}
