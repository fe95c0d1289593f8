package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SkipInject bool `help:"Skip the post-emit link injection pass"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	stages := pipeline.AllStages()
	if b.SkipInject {
		stages.Inject = false
	}

	result, err := pipeline.NewService().Run(context.Background(), pipeline.Request{
		Config: cfg,
		Stages: stages,
	})
	if err != nil {
		return err
	}

	fmt.Printf("OK: %d projects, %d builders, %d pages emitted, %d pages injected\n",
		result.Projects, result.Builders, result.Pages, result.Injected)
	return nil
}
