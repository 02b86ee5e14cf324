package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "DIGEST_CONFIG"
	youtubeKeyEnv   = "YOUTUBE_API_KEY"
	searchKeyEnv    = "GOOGLE_PSE_API_KEY"
	searchEngineEnv = "GOOGLE_PSE_CX"
	geminiKeyEnv    = "GEMINI_API_KEY"
	openAIKeyEnv    = "OPENAI_API_KEY"
	githubTokenEnv  = "GITHUB_TOKEN"
	oracleEnv       = "DIGEST_ORACLE"
	logLevelEnv     = "LOG_LEVEL"
	httpAddrEnv     = "DIGEST_HTTP_ADDR"
)

// Oracle backends.
const (
	OracleGemini = "gemini"
	OracleOpenAI = "openai"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig  `yaml:"logging"`
	Server    ServerConfig   `yaml:"server"`
	Providers ProviderConfig `yaml:"providers"`
	Oracle    OracleConfig   `yaml:"oracle"`
	Images    ImageConfig    `yaml:"images"`
}

// LoggingConfig selects slog level and handler format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig describes the HTTP API listener.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// ProviderConfig groups settings for the six search providers.
type ProviderConfig struct {
	YouTube YouTubeConfig  `yaml:"youtube"`
	Search  SearchConfig   `yaml:"search"`
	Onion   EndpointConfig `yaml:"onion"`
	Arxiv   EndpointConfig `yaml:"arxiv"`
	GitHub  GitHubConfig   `yaml:"github"`
}

// EndpointConfig is the common shape of a keyless provider.
type EndpointConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// YouTubeConfig configures the video provider; APIKey is mandatory.
type YouTubeConfig struct {
	EndpointConfig `yaml:",inline"`
	APIKey         string `yaml:"apiKey"`
}

// SearchConfig configures the web and news providers; both values are mandatory for web.
type SearchConfig struct {
	EndpointConfig `yaml:",inline"`
	APIKey         string `yaml:"apiKey"`
	EngineID       string `yaml:"engineId"`
}

// GitHubConfig configures repository search; Token is optional.
type GitHubConfig struct {
	EndpointConfig `yaml:",inline"`
	Token          string `yaml:"token"`
}

// OracleConfig defines how to contact the selection model.
type OracleConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	Endpoint    string        `yaml:"endpoint"`
	APIKey      string        `yaml:"apiKey"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ImageConfig parameterizes generated image locators.
type ImageConfig struct {
	Endpoint string `yaml:"endpoint"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg, err := Parse(raw)
			if err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, err
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(youtubeKeyEnv); v != "" {
		c.Providers.YouTube.APIKey = v
	}
	if v := os.Getenv(searchKeyEnv); v != "" {
		c.Providers.Search.APIKey = v
	}
	if v := os.Getenv(searchEngineEnv); v != "" {
		c.Providers.Search.EngineID = v
	}
	if v := os.Getenv(githubTokenEnv); v != "" {
		c.Providers.GitHub.Token = v
	}
	if v := os.Getenv(oracleEnv); v != "" {
		c.Oracle.Provider = v
		if v == OracleOpenAI && c.Oracle.Model == defaultGeminiModel {
			c.Oracle.Model = defaultOpenAIModel
		}
	}

	// The oracle key follows the selected backend.
	switch c.Oracle.Provider {
	case OracleOpenAI:
		if v := os.Getenv(openAIKeyEnv); v != "" {
			c.Oracle.APIKey = v
		}
	default:
		if v := os.Getenv(geminiKeyEnv); v != "" {
			c.Oracle.APIKey = v
		}
	}
}

func mergeEndpoint(base, override EndpointConfig) EndpointConfig {
	if override.Endpoint != "" {
		base.Endpoint = override.Endpoint
	}
	if override.Timeout > 0 {
		base.Timeout = override.Timeout
	}
	return base
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Server.Address != "" {
		base.Server.Address = override.Server.Address
	}

	p, o := &base.Providers, override.Providers
	p.YouTube.EndpointConfig = mergeEndpoint(p.YouTube.EndpointConfig, o.YouTube.EndpointConfig)
	if o.YouTube.APIKey != "" {
		p.YouTube.APIKey = o.YouTube.APIKey
	}
	p.Search.EndpointConfig = mergeEndpoint(p.Search.EndpointConfig, o.Search.EndpointConfig)
	if o.Search.APIKey != "" {
		p.Search.APIKey = o.Search.APIKey
	}
	if o.Search.EngineID != "" {
		p.Search.EngineID = o.Search.EngineID
	}
	p.Onion = mergeEndpoint(p.Onion, o.Onion)
	p.Arxiv = mergeEndpoint(p.Arxiv, o.Arxiv)
	p.GitHub.EndpointConfig = mergeEndpoint(p.GitHub.EndpointConfig, o.GitHub.EndpointConfig)
	if o.GitHub.Token != "" {
		p.GitHub.Token = o.GitHub.Token
	}

	if override.Oracle.Provider != "" {
		base.Oracle.Provider = override.Oracle.Provider
		if override.Oracle.Provider == OracleOpenAI && override.Oracle.Model == "" {
			base.Oracle.Model = defaultOpenAIModel
		}
	}
	if override.Oracle.Model != "" {
		base.Oracle.Model = override.Oracle.Model
	}
	if override.Oracle.Endpoint != "" {
		base.Oracle.Endpoint = override.Oracle.Endpoint
	}
	if override.Oracle.APIKey != "" {
		base.Oracle.APIKey = override.Oracle.APIKey
	}
	if override.Oracle.Temperature > 0 {
		base.Oracle.Temperature = override.Oracle.Temperature
	}
	if override.Oracle.Timeout > 0 {
		base.Oracle.Timeout = override.Oracle.Timeout
	}

	if override.Images.Endpoint != "" {
		base.Images.Endpoint = override.Images.Endpoint
	}
	if override.Images.Width > 0 {
		base.Images.Width = override.Images.Width
	}
	if override.Images.Height > 0 {
		base.Images.Height = override.Images.Height
	}

	return base
}

const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultTimeout     = 20 * time.Second
)

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Server:  ServerConfig{Address: ":8080"},
		Providers: ProviderConfig{
			YouTube: YouTubeConfig{EndpointConfig: EndpointConfig{
				Endpoint: "https://www.googleapis.com/youtube/v3/search",
				Timeout:  defaultTimeout,
			}},
			Search: SearchConfig{EndpointConfig: EndpointConfig{
				Endpoint: "https://www.googleapis.com/customsearch/v1",
				Timeout:  defaultTimeout,
			}},
			Onion: EndpointConfig{Endpoint: "https://ahmia.fi/search/", Timeout: defaultTimeout},
			Arxiv: EndpointConfig{Endpoint: "https://export.arxiv.org/api/query", Timeout: defaultTimeout},
			GitHub: GitHubConfig{EndpointConfig: EndpointConfig{
				Endpoint: "https://api.github.com/search/repositories",
				Timeout:  defaultTimeout,
			}},
		},
		Oracle: OracleConfig{
			Provider:    OracleGemini,
			Model:       defaultGeminiModel,
			Temperature: 0.3,
			Timeout:     60 * time.Second,
		},
		Images: ImageConfig{
			Endpoint: "https://image.pollinations.ai",
			Width:    1024,
			Height:   600,
		},
	}
}
