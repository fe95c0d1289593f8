package content

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// Reserved top-level directories under the content root that hold shared
// tier content rather than per-builder projects.
var reservedRoots = map[string]bool{
	"global":   true,
	"builders": true,
}

// DiscoveryResult is the outcome of one discovery pass. Records holds every
// file that resolved to a valid identity; Skipped names the files that did
// not. Callers with a strict contract (prerender, full build) treat a
// non-empty Skipped as fatal; tolerant callers log and continue.
type DiscoveryResult struct {
	Records []ProjectRecord
	Skipped []string
}

// Discover walks the content root and builds the project set fresh for this
// run. Two layouts are supported:
//
//	<root>/<builder>/<builder>-<slug>.json   flat file; FileName is tracked
//	<root>/<builder>/<slug>/project.json     legacy folder; no FileName
//
// The walk is a pure fold over sorted directory listings, so the returned
// order is deterministic for a given tree.
func Discover(contentRoot string) (*DiscoveryResult, error) {
	info, err := os.Stat(contentRoot)
	if err != nil || !info.IsDir() {
		return nil, sgerrors.ContentRootMissing(contentRoot)
	}

	builders, err := os.ReadDir(contentRoot)
	if err != nil {
		return nil, sgerrors.ContentReadError(contentRoot, err)
	}

	result := &DiscoveryResult{}
	for _, builderDir := range builders {
		if !builderDir.IsDir() || reservedRoots[builderDir.Name()] || strings.HasPrefix(builderDir.Name(), ".") {
			continue
		}
		if err := discoverBuilder(contentRoot, builderDir.Name(), result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func discoverBuilder(contentRoot, builder string, result *DiscoveryResult) error {
	dir := filepath.Join(contentRoot, builder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return sgerrors.ContentReadError(dir, err)
	}

	for _, entry := range entries {
		switch {
		case !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json"):
			rel := filepath.Join(builder, entry.Name())
			rec, ok, err := loadRecord(filepath.Join(dir, entry.Name()), entry.Name())
			if err != nil {
				return err
			}
			if !ok {
				slog.Debug("Skipping content file without identity", logfields.File(rel))
				result.Skipped = append(result.Skipped, rel)
				continue
			}
			result.Records = append(result.Records, rec)

		case entry.IsDir():
			// Legacy folder layout: identity comes from the document alone,
			// so no FileName is tracked and the filename check is bypassed.
			path := filepath.Join(dir, entry.Name(), "project.json")
			if _, err := os.Stat(path); err != nil {
				continue
			}
			rel := filepath.Join(builder, entry.Name(), "project.json")
			rec, ok, err := loadRecord(path, "")
			if err != nil {
				return err
			}
			if !ok {
				slog.Debug("Skipping legacy project without identity", logfields.File(rel))
				result.Skipped = append(result.Skipped, rel)
				continue
			}
			result.Records = append(result.Records, rec)
		}
	}
	return nil
}

// loadRecord reads one content file and resolves it into a ProjectRecord.
// A document without a resolvable identity returns ok=false, not an error.
func loadRecord(path, fileName string) (ProjectRecord, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectRecord{}, false, sgerrors.ContentReadError(path, err)
	}

	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ProjectRecord{}, false, sgerrors.ContentReadError(path, err)
	}

	id, ok := ResolveIdentity(doc)
	if !ok {
		return ProjectRecord{}, false, nil
	}

	rec := newRecord(id, doc, data)
	rec.FileName = fileName
	return rec, true, nil
}
