package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// DiscoverCmd lists resolved project identities without building anything.
// Files that do not resolve are reported and skipped, not fatal.
type DiscoverCmd struct {
	Builder string `short:"b" help:"Only list projects for this builder"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	disc, err := content.Discover(cfg.Content.Root)
	if err != nil {
		return err
	}

	shown := 0
	for _, rec := range disc.Records {
		if d.Builder != "" && rec.Builder != d.Builder {
			continue
		}
		layout := "flat"
		if rec.FileName == "" {
			layout = "legacy"
		}
		fmt.Printf("%-40s builder=%-20s slug=%-20s layout=%s\n", rec.PublicSlug, rec.Builder, rec.Slug, layout)
		shown++
	}
	for _, file := range disc.Skipped {
		fmt.Printf("SKIP %s (no resolvable identity)\n", file)
	}
	fmt.Printf("%d projects, %d skipped\n", shown, len(disc.Skipped))
	return nil
}
