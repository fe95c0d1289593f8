// Package pipeline provides the canonical build execution pipeline for
// sitegen. All execution paths (CLI, preview rebuilds, tests) route through
// Service.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/faq"
	"git.home.luguber.info/inful/sitegen/internal/inject"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/seo"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// Stages selects which emission stages a run performs. The standalone CLI
// commands run single stages; build and preview run all of them.
type Stages struct {
	ProjectPages bool
	HubPages     bool
	Sitemap      bool
	Inject       bool
}

// AllStages returns the full pipeline selection.
func AllStages() Stages {
	return Stages{ProjectPages: true, HubPages: true, Sitemap: true, Inject: true}
}

// strictIdentity reports whether discovery misses are fatal for this
// selection. Prerendering requires every discovered file to yield an
// identity, because every page must get SEO synthesized for it; the other
// stages skip and continue.
func (s Stages) strictIdentity() bool { return s.ProjectPages }

func (s Stages) needsShell() bool { return s.ProjectPages || s.HubPages }

// Request contains all inputs required to execute a run.
type Request struct {
	Config *config.Config

	// Stages selects the emission stages; the zero value means all.
	Stages Stages
}

// Result contains the outcome of a run.
type Result struct {
	BuildID   string
	Projects  int
	Builders  int
	Pages     int
	Injected  int
	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Service executes the build pipeline: discover → guard → merge → synthesize
// → emit → inject. Stages are strictly sequential; the first fatal error
// aborts the run and no partial output is considered valid.
type Service struct {
	recorder metrics.Recorder
}

func NewService() *Service {
	return &Service{recorder: metrics.NoopRecorder{}}
}

// SetRecorder injects a metrics recorder (optional). Returns the service for chaining.
func (s *Service) SetRecorder(r metrics.Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Run executes the selected stages.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Stages == (Stages{}) {
		req.Stages = AllStages()
	}
	result := &Result{
		BuildID:   uuid.NewString(),
		StartTime: time.Now(),
	}
	log := slog.With(logfields.BuildID(result.BuildID))
	log.Info("Starting site build",
		logfields.Path(req.Config.Content.Root),
		slog.String("output", req.Config.Output.Directory))

	err := s.run(ctx, req, result, log)
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
	if err != nil {
		s.recorder.IncBuildOutcome("failed")
		return result, err
	}
	s.recorder.IncBuildOutcome("success")
	log.Info("Site build complete",
		logfields.Count(result.Projects),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

func (s *Service) run(ctx context.Context, req Request, result *Result, log *slog.Logger) error {
	cfg := req.Config

	// Configuration is resolved before any per-project processing: a missing
	// marker or manifest entry must fail before the first write.
	var (
		shell  *site.Shell
		assets *site.EntryAssets
		err    error
	)
	if req.Stages.needsShell() {
		if shell, err = s.stageShell(cfg, log); err != nil {
			return err
		}
		if assets, err = s.stageManifest(cfg, log); err != nil {
			return err
		}
	}

	records, err := s.stageDiscover(cfg, req.Stages.strictIdentity(), log)
	if err != nil {
		return err
	}
	result.Projects = len(records)
	result.Builders = len(content.GroupByBuilder(records))

	if err := s.stageGuard(records, log); err != nil {
		return err
	}

	if cfg.Output.Clean && req.Stages == AllStages() {
		if err := os.RemoveAll(cfg.Output.Directory); err != nil {
			return sgerrors.EmitFailed(cfg.Output.Directory, err)
		}
	}

	synth := seo.NewSynthesizer(seo.Site{
		Origin:      cfg.Site.Origin,
		Name:        cfg.Site.Name,
		Description: cfg.Site.Description,
		Logo:        cfg.Site.Logo,
	})
	emitter := site.NewEmitter(cfg.Output.Directory, shell, assets, synth).SetRecorder(s.recorder)

	pages, err := s.stageEmit(ctx, req, records, synth, emitter, log)
	if err != nil {
		return err
	}
	result.Pages = pages

	if req.Stages.Inject {
		injected, err := s.stageInject(cfg, records, log)
		if err != nil {
			return err
		}
		result.Injected = injected
	}

	if req.Stages == AllStages() {
		return s.writeReport(cfg.Output.Directory, result)
	}
	return nil
}

func (s *Service) stageShell(cfg *config.Config, log *slog.Logger) (*site.Shell, error) {
	defer s.observeStage("shell", time.Now())
	shell, err := site.LoadShell(cfg.Shell.Template)
	if err != nil {
		s.recorder.IncStageResult("shell", metrics.ResultFatal)
		return nil, err
	}
	s.recorder.IncStageResult("shell", metrics.ResultSuccess)
	log.Debug("Shell template validated", logfields.Path(cfg.Shell.Template))
	return shell, nil
}

func (s *Service) stageManifest(cfg *config.Config, log *slog.Logger) (*site.EntryAssets, error) {
	defer s.observeStage("manifest", time.Now())
	assets, err := site.ResolveEntry(cfg.Shell.Manifest, cfg.Shell.Entry)
	if err != nil {
		s.recorder.IncStageResult("manifest", metrics.ResultFatal)
		return nil, err
	}
	s.recorder.IncStageResult("manifest", metrics.ResultSuccess)
	log.Debug("Manifest entry resolved", logfields.File(assets.Script))
	return assets, nil
}

// stageDiscover collects the project set. An empty set is always fatal: a
// build that discovers zero valid projects must abort rather than silently
// emit an empty site.
func (s *Service) stageDiscover(cfg *config.Config, strict bool, log *slog.Logger) ([]content.ProjectRecord, error) {
	defer s.observeStage("discover", time.Now())
	disc, err := content.Discover(cfg.Content.Root)
	if err != nil {
		s.recorder.IncStageResult("discover", metrics.ResultFatal)
		return nil, err
	}
	if len(disc.Skipped) > 0 {
		if strict {
			s.recorder.IncStageResult("discover", metrics.ResultFatal)
			return nil, sgerrors.IdentityUnresolved(disc.Skipped[0])
		}
		for _, file := range disc.Skipped {
			log.Warn("Content file does not resolve to an identity, skipping", logfields.File(file))
		}
	}
	if len(disc.Records) == 0 {
		s.recorder.IncStageResult("discover", metrics.ResultFatal)
		return nil, sgerrors.NoProjectsDiscovered(cfg.Content.Root)
	}
	s.recorder.IncStageResult("discover", metrics.ResultSuccess)
	log.Info("Discovered projects", logfields.Count(len(disc.Records)))
	return disc.Records, nil
}

func (s *Service) stageGuard(records []content.ProjectRecord, log *slog.Logger) error {
	defer s.observeStage("guard", time.Now())
	if err := content.Guard(records); err != nil {
		s.recorder.IncStageResult("guard", metrics.ResultFatal)
		return err
	}
	s.recorder.IncStageResult("guard", metrics.ResultSuccess)
	log.Debug("Project set passed invariant guard", logfields.Count(len(records)))
	return nil
}

func (s *Service) stageEmit(ctx context.Context, req Request, records []content.ProjectRecord, synth *seo.Synthesizer, emitter *site.Emitter, log *slog.Logger) (int, error) {
	defer s.observeStage("emit", time.Now())
	cfg := req.Config
	pages := 0

	if req.Stages.ProjectPages {
		n, err := s.emitProjectPages(ctx, cfg, records, synth, emitter)
		if err != nil {
			s.recorder.IncStageResult("emit", metrics.ResultFatal)
			return pages, err
		}
		pages += n
	}

	if req.Stages.HubPages {
		groups := content.GroupByBuilder(records)
		builders := make([]string, 0, len(groups))
		for builder := range groups {
			builders = append(builders, builder)
		}
		sort.Strings(builders)
		for _, builder := range builders {
			block := synth.HubBlock(builder, groups[builder])
			if err := emitter.EmitHubPage(builder, groups[builder], block); err != nil {
				s.recorder.IncStageResult("emit", metrics.ResultFatal)
				return pages, err
			}
			pages++
		}
	}

	if req.Stages.Sitemap {
		policy := site.SitemapPolicy{ChangeFreq: cfg.Sitemap.ChangeFreq, Priority: cfg.Sitemap.Priority}
		if err := emitter.EmitSitemap(records, policy); err != nil {
			s.recorder.IncStageResult("emit", metrics.ResultFatal)
			return pages, err
		}
		pages++
	}

	s.recorder.IncStageResult("emit", metrics.ResultSuccess)
	log.Info("Emission complete", logfields.Count(pages))
	return pages, nil
}

// emitProjectPages merges the FAQ tiers and writes one page per project.
// Builder tier files are read once per builder.
func (s *Service) emitProjectPages(ctx context.Context, cfg *config.Config, records []content.ProjectRecord, synth *seo.Synthesizer, emitter *site.Emitter) (int, error) {
	universal, err := faq.LoadTier(filepath.Join(cfg.Content.Root, "global", "faq.json"))
	if err != nil {
		return 0, sgerrors.ContentReadError("global/faq.json", err)
	}

	pages := 0
	builderFaqs := make(map[string][]faq.FaqItem)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		bf, ok := builderFaqs[rec.Builder]
		if !ok {
			bf, err = faq.LoadTier(filepath.Join(cfg.Content.Root, "builders", rec.Builder, "builder_faq.json"))
			if err != nil {
				return pages, sgerrors.ContentReadError(filepath.Join("builders", rec.Builder, "builder_faq.json"), err)
			}
			builderFaqs[rec.Builder] = bf
		}

		merged := faq.Merge(universal, bf, rec.Faqs)
		block := synth.ProjectBlock(rec, merged)
		if err := emitter.EmitProjectPage(rec, block); err != nil {
			return pages, err
		}
		pages++
	}
	return pages, nil
}

func (s *Service) stageInject(cfg *config.Config, records []content.ProjectRecord, log *slog.Logger) (int, error) {
	defer s.observeStage("inject", time.Now())
	injector := inject.NewInjector(cfg.Output.Directory).SetRecorder(s.recorder)
	injected, err := injector.Run(records)
	if err != nil {
		s.recorder.IncStageResult("inject", metrics.ResultFatal)
		return injected, err
	}
	s.recorder.IncStageResult("inject", metrics.ResultSuccess)
	return injected, nil
}

// report is the build summary written alongside the emitted site.
type report struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Projects    int       `json:"projects"`
	Builders    int       `json:"builders"`
	Pages       int       `json:"pages"`
	Injected    int       `json:"injected"`
	DurationMS  int64     `json:"duration_ms"`
}

func (s *Service) writeReport(outputDir string, result *Result) error {
	r := report{
		BuildID:     result.BuildID,
		GeneratedAt: time.Now().UTC(),
		Projects:    result.Projects,
		Builders:    result.Builders,
		Pages:       result.Pages,
		Injected:    result.Injected,
		DurationMS:  time.Since(result.StartTime).Milliseconds(),
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return sgerrors.InternalError("failed to marshal build report", err)
	}
	path := filepath.Join(outputDir, "build-report.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return sgerrors.EmitFailed(path, err)
	}
	return nil
}

func (s *Service) observeStage(stage string, start time.Time) {
	s.recorder.ObserveStageDuration(stage, time.Since(start))
}
