package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abureyko/shipping-agent/internal/config/provider"
	"github.com/abureyko/shipping-agent/internal/providers"
	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tools"
	"github.com/abureyko/shipping-agent/internal/tracking"
)

func newDemoOrchestrator() *Orchestrator {
	track := tools.NewTrackPackageTool(tracking.NewClient(tracking.Options{}), "gdeposylka.ru")
	return NewOrchestrator(providers.NewMockProvider(), track, SettingsFromConfig(provider.DefaultLLMConfig()))
}

func TestHandleUserRequest_WithTrackingNumber(t *testing.T) {
	resp, err := newDemoOrchestrator().HandleUserRequest(context.Background(), "Please track number 1234567890")
	require.NoError(t, err)

	require.NotNil(t, resp.Tracking)
	assert.Equal(t, "1234567890", resp.Tracking.Structured["trackingNumber"])
	assert.Equal(t, "in_transit", resp.Tracking.Structured["status"])
	assert.Equal(t, true, resp.Tracking.Meta["demo"])
	assert.Equal(t, "success", resp.Tracking.Status)
	assert.Equal(t, "[Mock LLM response for]: Please track number 1234567890", resp.LLM)
}

func TestHandleUserRequest_WithoutTrackingNumber(t *testing.T) {
	resp, err := newDemoOrchestrator().HandleUserRequest(context.Background(), "What's the weather today?")
	require.NoError(t, err)

	assert.Nil(t, resp.Tracking)
	assert.NotEmpty(t, resp.LLM)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"llm":"[Mock LLM response for]: What's the weather today?","tracking":null}`, string(data))
}

type capturingProvider struct {
	got  schema.Messages
	opts schema.ChatOptions
	err  error
}

func (p *capturingProvider) DefaultModel() string { return "test" }

func (p *capturingProvider) Chat(_ context.Context, messages schema.Messages, opts schema.ChatOptions) (schema.LLMResponse, error) {
	p.got = messages
	p.opts = opts
	return schema.LLMResponse{Content: "ok"}, p.err
}

func TestHandleUserRequest_PromptShape(t *testing.T) {
	llm := &capturingProvider{}
	o := NewOrchestrator(llm, tools.NewTrackPackageTool(tracking.NewClient(tracking.Options{}), ""),
		SettingsFromConfig(provider.DefaultLLMConfig()))

	_, err := o.HandleUserRequest(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "You are a shipping assistant.", llm.got.System())
	assert.Equal(t, "hello", llm.got.LastUser())
	assert.Equal(t, 1024, llm.opts.MaxTokens)
	assert.Equal(t, 0.2, llm.opts.Temperature)
}

type failingTool struct{ schema.Tool }

func (failingTool) Execute(context.Context, map[string]any) (*schema.ToolResult, error) {
	return nil, schema.NewToolError(schema.CodeUpstreamFailure, "API error (status 503): unavailable", tracking.ErrUpstream)
}

func TestHandleUserRequest_Failures(t *testing.T) {
	t.Run("tracking failure", func(t *testing.T) {
		o := NewOrchestrator(providers.NewMockProvider(), failingTool{}, Settings{})
		_, err := o.HandleUserRequest(context.Background(), "track 1234567890")
		require.Error(t, err)
		assert.Equal(t, schema.CodeUpstreamFailure, schema.AsToolError(err).Code)
	})

	t.Run("llm failure", func(t *testing.T) {
		boom := errors.New("rate limited")
		o := NewOrchestrator(&capturingProvider{err: boom}, failingTool{}, Settings{})
		_, err := o.HandleUserRequest(context.Background(), "no numbers here")
		assert.ErrorIs(t, err, boom)
	})
}

func TestExtractTrackingNumber(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"Please track number 1234567890", "1234567890", true},
		{"12345678", "12345678", true},
		{"short 1234567 only", "", false},
		{"first 11111111 then 22222222", "11111111", true},
		{"RA123456789CN", "123456789", true},
		{"What's the weather today?", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractTrackingNumber(tt.text)
		assert.Equal(t, tt.wantOK, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestExtractTrackingNumber_Properties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	digitRun := gen.RegexMatch(`[0-9]{8,24}`)
	shortRun := gen.RegexMatch(`[0-9]{0,7}`)

	properties.Property("a maximal run of eight or more digits is extracted", prop.ForAll(
		func(prefix, run, suffix string) bool {
			got, ok := ExtractTrackingNumber(prefix + " " + run + " " + suffix)
			return ok && got == run
		},
		gen.AlphaString(),
		digitRun,
		gen.AlphaString(),
	))

	properties.Property("text without a long digit run yields nothing", prop.ForAll(
		func(words []string, run string) bool {
			text := strings.Join(append(words, run), " ")
			_, ok := ExtractTrackingNumber(text)
			return !ok
		},
		gen.SliceOf(gen.AlphaString()),
		shortRun,
	))

	properties.TestingRun(t)
}

func ExampleExtractTrackingNumber() {
	number, ok := ExtractTrackingNumber("Where is my parcel 80080012345678?")
	fmt.Println(number, ok)
	// Output: 80080012345678 true
}
