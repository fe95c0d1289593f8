package site

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/content"
	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/seo"
)

// Emitter writes the static site. All placement, ordering and substitution
// are pure functions of the input documents, so re-running with identical
// inputs reproduces the output byte for byte (aside from the sitemap's
// lastmod date).
type Emitter struct {
	outputRoot string
	shell      *Shell
	assets     *EntryAssets
	synth      *seo.Synthesizer
	recorder   metrics.Recorder

	// now is the clock used for sitemap lastmod; overridable in tests.
	now func() time.Time
}

func NewEmitter(outputRoot string, shell *Shell, assets *EntryAssets, synth *seo.Synthesizer) *Emitter {
	return &Emitter{
		outputRoot: filepath.Clean(outputRoot),
		shell:      shell,
		assets:     assets,
		synth:      synth,
		recorder:   metrics.NoopRecorder{},
		now:        time.Now,
	}
}

// SetRecorder injects a metrics recorder (optional). Returns the emitter for chaining.
func (e *Emitter) SetRecorder(r metrics.Recorder) *Emitter {
	if r == nil {
		e.recorder = metrics.NoopRecorder{}
		return e
	}
	e.recorder = r
	return e
}

// EmitProjectPage writes outputRoot/<publicSlug>/index.html.
func (e *Emitter) EmitProjectPage(rec content.ProjectRecord, block seo.Block) error {
	payload, err := payloadScript(rec.Payload)
	if err != nil {
		return sgerrors.InternalError("failed to serialize project payload", err).
			WithContext("public_slug", rec.PublicSlug)
	}
	doc := e.shell.Render(block.RenderHead(), payload, e.assets.Tags())
	if err := e.writeFile(filepath.Join(rec.PublicSlug, "index.html"), []byte(doc)); err != nil {
		return err
	}
	e.recorder.AddPagesEmitted("project", 1)
	slog.Info("Emitted project page", logfields.PublicSlug(rec.PublicSlug))
	return nil
}

// hubPayload is the JSON document embedded into a builder hub page.
type hubPayload struct {
	Builder  string       `json:"builder"`
	Projects []hubProject `json:"projects"`
}

type hubProject struct {
	Name       string `json:"name"`
	PublicSlug string `json:"publicSlug"`
	Locality   string `json:"locality,omitempty"`
	City       string `json:"city,omitempty"`
	Image      string `json:"image"`
}

// EmitHubPage writes outputRoot/<builder>/index.html listing the builder's
// projects.
func (e *Emitter) EmitHubPage(builder string, projects []content.ProjectRecord, block seo.Block) error {
	hp := hubPayload{Builder: builder, Projects: make([]hubProject, 0, len(projects))}
	for _, p := range projects {
		hp.Projects = append(hp.Projects, hubProject{
			Name:       p.DisplayName(),
			PublicSlug: p.PublicSlug,
			Locality:   p.Locality,
			City:       p.City,
			Image:      seo.PreviewImage(p.Hero.VideoID, p.Hero.Images, p.PublicSlug),
		})
	}
	raw, err := json.Marshal(hp)
	if err != nil {
		return sgerrors.InternalError("failed to serialize hub payload", err).
			WithContext("builder", builder)
	}
	payload, err := payloadScript(raw)
	if err != nil {
		return sgerrors.InternalError("failed to serialize hub payload", err).
			WithContext("builder", builder)
	}

	doc := e.shell.Render(block.RenderHead(), payload, e.assets.Tags())
	if err := e.writeFile(filepath.Join(builder, "index.html"), []byte(doc)); err != nil {
		return err
	}
	e.recorder.AddPagesEmitted("hub", 1)
	slog.Info("Emitted builder hub page", logfields.Builder(builder), logfields.Count(len(projects)))
	return nil
}

// payloadScript embeds the authored document as an inert JSON script tag.
// json.Compact re-validates the payload and HTMLEscape keeps "</script>"
// sequences out of the script body.
func payloadScript(raw json.RawMessage) (string, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", err
	}
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, compact.Bytes())
	return `<script id="sitegen-data" type="application/json">` + escaped.String() + `</script>`, nil
}

// writeFile creates the parent directory recursively and writes the file.
// Directory creation must succeed before any write.
func (e *Emitter) writeFile(rel string, data []byte) error {
	path := filepath.Join(e.outputRoot, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return sgerrors.EmitFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return sgerrors.EmitFailed(path, err)
	}
	return nil
}
