package content

import (
	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

// Guard validates a whole collected project set before anything is emitted.
// It fails fast on the first violation; a set that fails the guard must not
// produce any output.
//
// Two invariants are enforced:
//  1. public slugs are globally unique,
//  2. for flat-file records, the source file name equals "<publicSlug>.json".
//
// The zero-projects policy is deliberately the caller's responsibility: the
// guard validates the records it is given, the pipeline decides that an empty
// set is fatal.
func Guard(records []ProjectRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.PublicSlug]; dup {
			return sgerrors.DuplicatePublicSlug(rec.PublicSlug)
		}
		seen[rec.PublicSlug] = struct{}{}

		if rec.FileName != "" {
			expected := rec.PublicSlug + ".json"
			if rec.FileName != expected {
				return sgerrors.FileNameMismatch(rec.PublicSlug, expected, rec.FileName)
			}
		}
	}
	return nil
}

// GroupByBuilder partitions records per builder, preserving discovery order
// within each group. Used for hub pages and sibling link injection.
func GroupByBuilder(records []ProjectRecord) map[string][]ProjectRecord {
	groups := make(map[string][]ProjectRecord)
	for _, rec := range records {
		groups[rec.Builder] = append(groups[rec.Builder], rec)
	}
	return groups
}
