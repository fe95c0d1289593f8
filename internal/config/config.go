package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Shell   ShellConfig   `yaml:"shell"`
	Sitemap SitemapConfig `yaml:"sitemap"`
	Preview PreviewConfig `yaml:"preview"`
}

// SiteConfig identifies the public site the generated pages belong to.
type SiteConfig struct {
	Origin      string `yaml:"origin"` // e.g. https://www.example.com (no trailing slash)
	Name        string `yaml:"name"`   // site/brand name used in titles and Organization schema
	Description string `yaml:"description,omitempty"`
	Logo        string `yaml:"logo,omitempty"` // path or URL used in Organization schema
}

// ContentConfig locates authored project content.
type ContentConfig struct {
	Root string `yaml:"root"` // directory holding <builder>/<builder>-<slug>.json files
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// ShellConfig locates the HTML shell template and the bundler manifest.
type ShellConfig struct {
	Template string `yaml:"template"` // HTML template containing the injection markers
	Manifest string `yaml:"manifest"` // bundler manifest mapping entries to compiled files
	Entry    string `yaml:"entry"`    // source entry point to resolve in the manifest
}

// SitemapConfig carries the fixed per-URL policy values.
type SitemapConfig struct {
	ChangeFreq string `yaml:"changefreq"`
	Priority   string `yaml:"priority"`
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Port int `yaml:"port"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env if present; missing file is fine, authored env wins either way.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Origin == "" {
		c.Site.Origin = os.Getenv("SITEGEN_ORIGIN")
	}
	if c.Site.Name == "" {
		c.Site.Name = "Project Marketing Site"
	}
	if c.Content.Root == "" {
		c.Content.Root = "./content"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./dist"
	}
	if c.Shell.Template == "" {
		c.Shell.Template = "./index.html"
	}
	if c.Shell.Manifest == "" {
		c.Shell.Manifest = "./dist/.vite/manifest.json"
	}
	if c.Shell.Entry == "" {
		c.Shell.Entry = "src/main.tsx"
	}
	if c.Sitemap.ChangeFreq == "" {
		c.Sitemap.ChangeFreq = "weekly"
	}
	if c.Sitemap.Priority == "" {
		c.Sitemap.Priority = "0.8"
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = 4173
	}
}

// Validate checks for configuration values the build cannot proceed without.
func (c *Config) Validate() error {
	if c.Site.Origin == "" {
		return fmt.Errorf("site.origin is required (or set SITEGEN_ORIGIN)")
	}
	if len(c.Site.Origin) > 0 && c.Site.Origin[len(c.Site.Origin)-1] == '/' {
		c.Site.Origin = c.Site.Origin[:len(c.Site.Origin)-1]
	}
	if c.Content.Root == "" {
		return fmt.Errorf("content.root is required")
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# sitegen configuration
site:
  origin: https://www.example.com
  name: Example Homes
  description: New residential projects across the city
  logo: /images/logo.png

content:
  root: ./content

output:
  directory: ./dist
  clean: false

shell:
  template: ./index.html
  manifest: ./dist/.vite/manifest.json
  entry: src/main.tsx

sitemap:
  changefreq: weekly
  priority: "0.8"

preview:
  port: 4173
`
	if err := os.WriteFile(configPath, []byte(example), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
