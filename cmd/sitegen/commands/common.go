package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build        BuildCmd        `cmd:"" help:"Run the full build pipeline: pages, hub pages, sitemap, link injection"`
	Discover     DiscoverCmd     `cmd:"" help:"Discover project documents and print resolved identities without building"`
	Prerender    PrerenderCmd    `cmd:"" help:"Emit per-project HTML pages (strict identity contract)"`
	BuilderPages BuilderPagesCmd `cmd:"" name:"builder-pages" help:"Emit builder hub pages"`
	Sitemap      SitemapCmd      `cmd:"" help:"Emit sitemap.xml"`
	Inject       InjectCmd       `cmd:"" help:"Run the link injection pass over already-emitted pages"`
	Verify       VerifyCmd       `cmd:"" help:"Verify internal links in emitted pages resolve"`
	Preview      PreviewCmd      `cmd:"" help:"Serve the emitted site locally and rebuild on content changes"`
	Init         InitCmd         `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel honors the verbose flag and the SITEGEN_LOG_LEVEL override.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("SITEGEN_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
