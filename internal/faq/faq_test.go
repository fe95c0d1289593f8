package faq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProjectTierWins(t *testing.T) {
	universal := []FaqItem{{Question: "Q1", Answer: "U"}}
	builder := []FaqItem{{Question: "Q1", Answer: "B"}}
	project := []FaqItem{{Question: "Q1", Answer: "P"}}

	merged := Merge(universal, builder, project)
	require.Len(t, merged, 1)
	assert.Equal(t, "P", merged[0].Answer)
	assert.Equal(t, TierProject, merged[0].Tier)
}

func TestMergeBuilderBeatsUniversal(t *testing.T) {
	universal := []FaqItem{{Question: "Q1", Answer: "U"}}
	builder := []FaqItem{{Question: "Q1", Answer: "B"}}

	merged := Merge(universal, builder, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "B", merged[0].Answer)
	assert.Equal(t, TierBuilder, merged[0].Tier)
}

func TestMergeDedupIsCaseInsensitive(t *testing.T) {
	universal := []FaqItem{{Question: "What is RERA?", Answer: "U"}}
	project := []FaqItem{{Question: "what is rera?", Answer: "P"}}

	merged := Merge(universal, nil, project)
	require.Len(t, merged, 1)
	// Winning tier's casing is preserved.
	assert.Equal(t, "what is rera?", merged[0].Question)
	assert.Equal(t, "P", merged[0].Answer)
}

func TestMergeDedupTrimsWhitespace(t *testing.T) {
	universal := []FaqItem{{Question: "  Q1  ", Answer: "U"}}
	project := []FaqItem{{Question: "Q1", Answer: "P"}}

	merged := Merge(universal, nil, project)
	require.Len(t, merged, 1)
	assert.Equal(t, "P", merged[0].Answer)
}

func TestMergeOrderIsTierPriorityThenAuthored(t *testing.T) {
	universal := []FaqItem{{Question: "U1", Answer: "u1"}, {Question: "U2", Answer: "u2"}}
	builder := []FaqItem{{Question: "B1", Answer: "b1"}}
	project := []FaqItem{{Question: "P1", Answer: "p1"}, {Question: "P2", Answer: "p2"}}

	merged := Merge(universal, builder, project)
	questions := make([]string, 0, len(merged))
	for _, item := range merged {
		questions = append(questions, item.Question)
	}
	assert.Equal(t, []string{"P1", "P2", "B1", "U1", "U2"}, questions)

	// Deterministic across runs given identical inputs.
	again := Merge(universal, builder, project)
	assert.Equal(t, merged, again)
}

func TestMergeNormalizesCategory(t *testing.T) {
	merged := Merge(nil, nil, []FaqItem{
		{Question: "Q1", Answer: "A"},
		{Question: "Q2", Answer: "A", Category: "  Legal  "},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, "General", merged[0].Category)
	assert.Equal(t, "Legal", merged[1].Category)
}

func TestMergeDropsEmptyQuestions(t *testing.T) {
	merged := Merge(nil, nil, []FaqItem{{Question: "   ", Answer: "A"}})
	assert.Empty(t, merged)
}

func TestLoadTierMissingFileIsEmpty(t *testing.T) {
	items, err := LoadTier(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadTierReadsFaqs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"faqs":[{"question":"Q","answer":"A"}]}`), 0o644))

	items, err := LoadTier(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Q", items[0].Question)
}

func TestLoadTierMalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	_, err := LoadTier(path)
	assert.Error(t, err)
}
