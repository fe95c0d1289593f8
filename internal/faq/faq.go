// Package faq merges tiered FAQ content (universal, builder, project) into a
// single deduplicated, deterministically ordered set per project.
package faq

import (
	"encoding/json"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Tier identifies the source tier an FAQ item was authored in.
type Tier string

const (
	TierUniversal Tier = "universal"
	TierBuilder   Tier = "builder"
	TierProject   Tier = "project"
)

// FaqItem is a single authored question/answer pair.
type FaqItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// ResolvedFaqItem is an FaqItem with a normalized category and its source
// tier attached.
type ResolvedFaqItem struct {
	FaqItem
	Tier Tier
}

// tierFile matches the on-disk shape {"faqs": [...]} of tier source files.
type tierFile struct {
	Faqs []FaqItem `json:"faqs"`
}

// LoadTier reads a tier source file. A missing file is an empty tier, never
// an error; a present but unparseable file is a content defect.
func LoadTier(path string) ([]FaqItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var tf tierFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	return tf.Faqs, nil
}

var foldCaser = cases.Fold()

// dedupKey is the normalized question text used for cross-tier matching:
// whitespace-trimmed and case-folded. Stored question text keeps the winning
// tier's original casing.
func dedupKey(question string) string {
	return foldCaser.String(strings.TrimSpace(question))
}

// Merge combines the three tiers into one deduplicated set.
//
// When the same normalized question appears in multiple tiers the
// highest-priority occurrence wins (project > builder > universal). Output
// order is deterministic: tier priority descending, then authored order
// within the tier. Items with an empty question are dropped.
func Merge(universal, builder, project []FaqItem) []ResolvedFaqItem {
	resolved := make([]ResolvedFaqItem, 0, len(universal)+len(builder)+len(project))
	appendTier := func(items []FaqItem, tier Tier) {
		for _, item := range items {
			resolved = append(resolved, resolve(item, tier))
		}
	}
	// Highest priority first so the keyed pass below keeps first-seen. This
	// also fixes the output order: tier priority descending, authored order
	// within each tier.
	appendTier(project, TierProject)
	appendTier(builder, TierBuilder)
	appendTier(universal, TierUniversal)

	seen := make(map[string]struct{}, len(resolved))
	merged := make([]ResolvedFaqItem, 0, len(resolved))
	for _, item := range resolved {
		key := dedupKey(item.Question)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}

// resolve normalizes a raw item for one tier: category trimmed with a
// "General" default, tier tagged.
func resolve(item FaqItem, tier Tier) ResolvedFaqItem {
	category := strings.TrimSpace(item.Category)
	if category == "" {
		category = "General"
	}
	return ResolvedFaqItem{
		FaqItem: FaqItem{
			Question: strings.TrimSpace(item.Question),
			Answer:   item.Answer,
			Category: category,
		},
		Tier: tier,
	}
}
