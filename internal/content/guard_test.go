package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

func record(builder, slug, fileName string) ProjectRecord {
	return ProjectRecord{
		ProjectIdentity: ProjectIdentity{
			Slug:       slug,
			Builder:    builder,
			PublicSlug: builder + "-" + slug,
		},
		FileName: fileName,
	}
}

func TestGuardAcceptsValidSet(t *testing.T) {
	records := []ProjectRecord{
		record("alpha", "tower", "alpha-tower.json"),
		record("beta", "heights", "beta-heights.json"),
		record("alpha", "park", ""), // legacy layout, no filename tracked
	}
	require.NoError(t, Guard(records))
}

func TestGuardRejectsDuplicatePublicSlug(t *testing.T) {
	records := []ProjectRecord{
		record("x", "a", ""),
		record("x", "a", ""),
	}

	err := Guard(records)
	require.Error(t, err)
	assert.True(t, sgerrors.IsCategory(err, sgerrors.CategoryValidation))
	assert.Contains(t, err.Error(), "duplicate")
	assert.Contains(t, err.Error(), "x-a")

	var sge *sgerrors.SiteGenError
	require.ErrorAs(t, err, &sge)
	assert.Equal(t, "x-a", sge.Context["public_slug"])
}

func TestGuardRejectsFileNameMismatch(t *testing.T) {
	rec := record("x", "a", "x-b.json")

	err := Guard([]ProjectRecord{rec})
	require.Error(t, err)

	// The message itself must name both files, not just the context map.
	assert.Contains(t, err.Error(), "x-a.json")
	assert.Contains(t, err.Error(), "x-b.json")

	var sge *sgerrors.SiteGenError
	require.ErrorAs(t, err, &sge)
	assert.Equal(t, "x-a.json", sge.Context["expected"])
	assert.Equal(t, "x-b.json", sge.Context["actual"])
}

func TestGuardSkipsFileNameCheckForLegacyRecords(t *testing.T) {
	// No FileName tracked means the folder-based legacy layout was used and
	// the consistency check does not apply.
	require.NoError(t, Guard([]ProjectRecord{record("x", "a", "")}))
}

func TestGuardEmptySetPasses(t *testing.T) {
	// The zero-projects policy belongs to the pipeline caller, not the guard.
	require.NoError(t, Guard(nil))
}

func TestGroupByBuilder(t *testing.T) {
	records := []ProjectRecord{
		record("alpha", "one", ""),
		record("beta", "two", ""),
		record("alpha", "three", ""),
	}

	groups := GroupByBuilder(records)
	require.Len(t, groups, 2)
	assert.Len(t, groups["alpha"], 2)
	assert.Equal(t, "alpha-one", groups["alpha"][0].PublicSlug)
	assert.Equal(t, "alpha-three", groups["alpha"][1].PublicSlug)
}
