package config

const (
	// DefaultAPIURL is the Ghost Inspector API base URL
	DefaultAPIURL = "https://api.ghostinspector.com/v1"
	// DefaultTunnelProto is the tunnel protocol used when none is configured
	DefaultTunnelProto = "http"
	// DefaultEnvFile is the dotenv file loaded at startup when present
	DefaultEnvFile = ".env"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default log encoding
	DefaultLogFormat = "console"
)

// Environment variables read at startup
const (
	EnvAPIKey         = "GHOST_INSPECTOR_API_KEY"
	EnvOrganizationID = "GHOST_INSPECTOR_ORGANIZATION_ID"
	EnvAPIURL         = "GHOST_INSPECTOR_API_URL"
	EnvTunnelPort     = "NGROK_TUNNEL_PORT"
	EnvTunnelProto    = "NGROK_TUNNEL_PROTO"
	EnvTunnelBindTLS  = "NGROK_TUNNEL_BIND_TLS"
	EnvNgrokAuthtoken = "NGROK_AUTHTOKEN"
)

// SupportedProtos are the tunnel protocols the ngrok dialer can open
var SupportedProtos = []string{"http", "tcp", "tls"}
