package site

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strings"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

// manifestEntry matches one entry of a Vite-style build manifest.
type manifestEntry struct {
	File string   `json:"file"`
	CSS  []string `json:"css,omitempty"`
}

// EntryAssets are the compiled assets resolved for the configured source
// entry point.
type EntryAssets struct {
	Script string
	CSS    []string
}

// ResolveEntry reads the build manifest and looks up the configured entry.
//
// Pure lookup: a missing manifest file or a manifest without the entry is a
// fatal configuration error. No fallback filename guessing — a stale
// manifest must fail the build rather than link a non-existent script.
func ResolveEntry(manifestPath, entry string) (*EntryAssets, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, sgerrors.ManifestNotFound(manifestPath, err)
	}

	var manifest map[string]manifestEntry
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.CategoryConfig, sgerrors.SeverityFatal, "failed to parse build manifest").
			WithContext("path", manifestPath)
	}

	me, ok := manifest[entry]
	if !ok || me.File == "" {
		return nil, sgerrors.ManifestEntryMissing(manifestPath, entry)
	}
	return &EntryAssets{Script: me.File, CSS: me.CSS}, nil
}

// Tags renders the script and stylesheet tags substituted into the shell's
// entry slot.
func (a *EntryAssets) Tags() string {
	var sb strings.Builder
	for _, css := range a.CSS {
		fmt.Fprintf(&sb, `<link rel="stylesheet" href="/%s">`+"\n", html.EscapeString(css))
	}
	fmt.Fprintf(&sb, `<script type="module" src="/%s"></script>`, html.EscapeString(a.Script))
	return sb.String()
}
