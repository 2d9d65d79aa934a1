package tools

import (
	"github.com/abureyko/shipping-agent/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolTrackPackage          ToolName = "track_package"
	ToolEstimateDeliveryTime  ToolName = "estimate_delivery_time"
	ToolListSupportedCarriers ToolName = "list_supported_carriers"
)

// Registry holds a set of named tools and exposes them for execution.
type Registry struct {
	tools map[string]schema.Tool
}

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name ToolName) schema.Tool {
	return r.tools[string(name)]
}

func (r *Registry) AllTools() ToolList {
	list := ToolList{tools: make(map[string]schema.Tool, len(r.tools))}
	for k, t := range r.tools {
		list.tools[k] = t
	}
	return list
}
