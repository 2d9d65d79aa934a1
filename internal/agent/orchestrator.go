// Package agent answers free-text shipping questions by combining a
// language-model reply with a tracking lookup.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abureyko/shipping-agent/internal/a2a"
	"github.com/abureyko/shipping-agent/internal/config/provider"
	"github.com/abureyko/shipping-agent/internal/schema"
)

// Settings configures the language-model call made for every request.
type Settings struct {
	SystemPrompt string
	Chat         schema.ChatOptions
}

// SettingsFromConfig builds Settings from the LLM configuration section.
func SettingsFromConfig(cfg provider.LLMConfig) Settings {
	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = provider.DefaultSystemPrompt
	}
	return Settings{
		SystemPrompt: prompt,
		Chat:         schema.NewChatOptions("", cfg.MaxTokens, cfg.Temperature),
	}
}

// Response is the orchestrator's answer. Tracking is nil when the request
// contains no tracking number.
type Response struct {
	LLM      string        `json:"llm"`
	Tracking *a2a.Envelope `json:"tracking"`
}

// Orchestrator is stateless across calls: each HandleUserRequest is an
// independent transaction.
type Orchestrator struct {
	provider schema.LLMProvider
	track    schema.Tool
	settings Settings
}

// NewOrchestrator wires a language-reply provider and the track_package tool.
func NewOrchestrator(provider schema.LLMProvider, track schema.Tool, settings Settings) *Orchestrator {
	return &Orchestrator{provider: provider, track: track, settings: settings}
}

// HandleUserRequest runs the language-model call and, when text contains a
// tracking number, the tracking lookup concurrently. A failure of either
// fails the whole request.
func (o *Orchestrator) HandleUserRequest(ctx context.Context, text string) (Response, error) {
	requestID := uuid.NewString()
	number, found := ExtractTrackingNumber(text)
	slog.Info("Handling user request", "request_id", requestID, "tracking_number", number)

	var (
		reply    string
		envelope *a2a.Envelope
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		conversation := schema.NewMessages()
		conversation.AddSystem(o.settings.SystemPrompt)
		conversation.AddUser(text)

		resp, err := o.provider.Chat(gctx, conversation, o.settings.Chat)
		if err != nil {
			return fmt.Errorf("llm reply: %w", err)
		}
		reply = resp.Content
		return nil
	})
	if found {
		g.Go(func() error {
			res, err := o.track.Execute(gctx, map[string]any{"tracking_number": number})
			if err != nil {
				return err
			}
			env := a2a.ToEnvelope(res)
			envelope = &env
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("User request failed", "request_id", requestID, "err", err)
		return Response{}, err
	}
	return Response{LLM: reply, Tracking: envelope}, nil
}
