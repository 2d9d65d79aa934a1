// Package dependency wires core shipping-agent services using go.uber.org/dig.
package dependency

import (
	"path/filepath"

	"go.uber.org/dig"

	"github.com/abureyko/shipping-agent/internal/agent"
	"github.com/abureyko/shipping-agent/internal/config"
	"github.com/abureyko/shipping-agent/internal/mcp"
	"github.com/abureyko/shipping-agent/internal/providers"
	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/tools"
	"github.com/abureyko/shipping-agent/internal/tracking"
	"github.com/abureyko/shipping-agent/internal/watch"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider     schema.LLMProvider
	tracker      *tracking.Client
	registry     *tools.Registry
	orchestrator *agent.Orchestrator
	mcpServer    *mcp.Server
	watcher      *watch.Watcher
}

func (c *Container) Provider() schema.LLMProvider         { return c.provider }
func (c *Container) Tracker() *tracking.Client            { return c.tracker }
func (c *Container) Registry() *tools.Registry            { return c.registry }
func (c *Container) Orchestrator() *agent.Orchestrator    { return c.orchestrator }
func (c *Container) MCPServer() *mcp.Server               { return c.mcpServer }
func (c *Container) Watcher() *watch.Watcher              { return c.watcher }
func (c *Container) Tool(name tools.ToolName) schema.Tool { return c.registry.GetTool(name) }

// Version is a named string type so dig can distinguish the build version
// from plain strings.
type Version string

// WatchStorePath is where the watch list is persisted; empty keeps it in memory.
type WatchStorePath string

// New builds and wires all core services from cfg.
func New(cfg *config.Config, version string) (*Container, error) {
	return NewWithWatchStore(cfg, version, WatchStorePath(filepath.Join(config.DataDir(), "watch", "watches.json")))
}

// NewWithWatchStore is New with an explicit watch store location.
func NewWithWatchStore(cfg *config.Config, version string, storePath WatchStorePath) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() Version { return Version(version) }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() WatchStorePath { return storePath }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(newTracker); err != nil {
		return nil, err
	}
	if err := d.Provide(newRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newOrchestrator); err != nil {
		return nil, err
	}
	if err := d.Provide(newMCPServer); err != nil {
		return nil, err
	}
	if err := d.Provide(newWatcher); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		tracker *tracking.Client,
		registry *tools.Registry,
		orchestrator *agent.Orchestrator,
		mcpServer *mcp.Server,
		watcher *watch.Watcher,
	) {
		result = &Container{
			provider:     provider,
			tracker:      tracker,
			registry:     registry,
			orchestrator: orchestrator,
			mcpServer:    mcpServer,
			watcher:      watcher,
		}
	})
	if err != nil {
		// Unwrap dig's construction trace so ToolErrors reach the caller.
		return nil, dig.RootCause(err)
	}
	return result, nil
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	return providers.New(providers.ParamsFromConfig(cfg.LLM))
}

func newTracker(cfg *config.Config) *tracking.Client {
	return tracking.NewClient(tracking.Options{
		APIKey:       cfg.Tracking.APIKey,
		BaseURL:      cfg.Tracking.BaseURL,
		PathTemplate: cfg.Tracking.PathTemplate,
		Timeout:      cfg.Tracking.TimeoutDuration(),
	})
}

func newRegistry(cfg *config.Config, tracker *tracking.Client) *tools.Registry {
	return tools.NewTrackingRegistry(tracker, cfg.Tracking, nil)
}

func newOrchestrator(cfg *config.Config, p schema.LLMProvider, reg *tools.Registry) *agent.Orchestrator {
	return agent.NewOrchestrator(p, reg.GetTool(tools.ToolTrackPackage), agent.SettingsFromConfig(cfg.LLM))
}

func newMCPServer(cfg *config.Config, reg *tools.Registry, v Version) *mcp.Server {
	list := reg.AllTools()
	return mcp.NewServer(cfg.Server, &list, string(v))
}

func newWatcher(cfg *config.Config, reg *tools.Registry, path WatchStorePath) (*watch.Watcher, error) {
	return watch.NewWatcher(reg.GetTool(tools.ToolTrackPackage), cfg.Tracking.WatchSchedule, string(path))
}
