package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/pipeline"
)

// The stage commands run a single slice of the pipeline; 'build' runs all
// of them in a fixed order (project pages, hub pages, sitemap, inject).

// PrerenderCmd emits per-project HTML pages. Every discovered file must
// resolve to an identity; a miss is fatal here, unlike the tolerant stages.
type PrerenderCmd struct{}

func (p *PrerenderCmd) Run(_ *Global, root *CLI) error {
	return runStages(root, pipeline.Stages{ProjectPages: true}, "project pages emitted")
}

// BuilderPagesCmd emits one hub page per builder.
type BuilderPagesCmd struct{}

func (b *BuilderPagesCmd) Run(_ *Global, root *CLI) error {
	return runStages(root, pipeline.Stages{HubPages: true}, "builder hub pages emitted")
}

// SitemapCmd emits sitemap.xml.
type SitemapCmd struct{}

func (s *SitemapCmd) Run(_ *Global, root *CLI) error {
	return runStages(root, pipeline.Stages{Sitemap: true}, "sitemap entries written")
}

// InjectCmd runs the link injection pass over already-emitted pages.
type InjectCmd struct{}

func (i *InjectCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	result, err := pipeline.NewService().Run(context.Background(), pipeline.Request{
		Config: cfg,
		Stages: pipeline.Stages{Inject: true},
	})
	if err != nil {
		return err
	}
	fmt.Printf("OK: %d pages injected\n", result.Injected)
	return nil
}

func runStages(root *CLI, stages pipeline.Stages, what string) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	result, err := pipeline.NewService().Run(context.Background(), pipeline.Request{
		Config: cfg,
		Stages: stages,
	})
	if err != nil {
		return err
	}
	fmt.Printf("OK: %d %s (%d projects)\n", result.Pages, what, result.Projects)
	return nil
}
