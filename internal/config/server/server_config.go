package server

const (
	TransportStreamableHTTP = "streamable-http"
	TransportStdio          = "stdio"
)

// ServerConfig holds tool-host server settings.
type ServerConfig struct {
	Name      string `json:"name"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Transport string `json:"transport"`
	Path      string `json:"path"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:      "shipping-agent",
		Host:      "0.0.0.0",
		Port:      8000,
		Transport: TransportStreamableHTTP,
		Path:      "/mcp",
	}
}
