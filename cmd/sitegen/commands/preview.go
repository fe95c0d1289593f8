package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitegen/internal/preview"
)

// PreviewCmd serves the emitted site locally and rebuilds on content changes.
type PreviewCmd struct {
	Port int `short:"p" help:"Port to serve on (overrides config)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p.Port != 0 {
		cfg.Preview.Port = p.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return preview.NewServer(cfg).Run(ctx)
}
