package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/linkverify"
)

// VerifyCmd checks that internal links in emitted pages resolve to emitted
// files. Exits non-zero when broken links are found.
type VerifyCmd struct{}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	broken, err := linkverify.VerifyOutput(cfg.Output.Directory, cfg.Site.Origin)
	if err != nil {
		return err
	}
	if len(broken) > 0 {
		for _, b := range broken {
			fmt.Printf("BROKEN %s -> %s\n", b.Page, b.Link.URL)
		}
		return fmt.Errorf("%d broken internal links", len(broken))
	}
	fmt.Println("OK: no broken internal links")
	return nil
}
