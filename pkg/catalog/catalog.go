package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Catalog holds the validated tier-to-feature and tier-to-limit tables.
// It is immutable after construction; lookups are safe for concurrent use.
type Catalog struct {
	tiers      map[Tier]TierDefinition
	categories map[string][]FeatureCode
}

// New validates and normalizes a Definition into an immutable Catalog.
// Missing warning thresholds default to DefaultWarnThreshold, a missing
// kind defaults to LimitHard and a missing reset period to ResetNever.
func New(def Definition) (*Catalog, error) {
	tiers := make(map[Tier]TierDefinition, len(def.Tiers))

	for tier, td := range def.Tiers {
		if !knownTier(tier) {
			return nil, errors.Join(ErrUnknownTier, fmt.Errorf("tier %q", tier))
		}

		limits := make(map[UsageType]UsageLimit, len(td.Limits))
		for usage, ul := range td.Limits {
			normalized, err := normalizeLimit(tier, usage, ul)
			if err != nil {
				return nil, err
			}
			limits[usage] = normalized
		}

		tiers[tier] = TierDefinition{
			Features: slices.Clone(td.Features),
			Limits:   limits,
		}
	}

	categories := make(map[string][]FeatureCode, len(def.Categories))
	for name, codes := range def.Categories {
		categories[name] = slices.Clone(codes)
	}

	return &Catalog{tiers: tiers, categories: categories}, nil
}

func knownTier(t Tier) bool {
	switch t {
	case TierFree, TierStarter, TierProfessional, TierEnterprise:
		return true
	}
	// TierCustom tenants have no catalog entry; their entitlements
	// come entirely from per-tenant add-ons.
	return false
}

func normalizeLimit(tier Tier, usage UsageType, ul UsageLimit) (UsageLimit, error) {
	if ul.Limit < Unlimited {
		return ul, errors.Join(ErrInvalidLimit,
			fmt.Errorf("tier %s, usage %s: limit %d", tier, usage, ul.Limit))
	}

	switch ul.Kind {
	case LimitSoft, LimitHard:
	case "":
		ul.Kind = LimitHard
	default:
		return ul, errors.Join(ErrUnknownLimitKind,
			fmt.Errorf("tier %s, usage %s: kind %q", tier, usage, ul.Kind))
	}

	switch ul.Reset {
	case ResetMonthly, ResetDaily, ResetNever:
	case "":
		ul.Reset = ResetNever
	default:
		return ul, errors.Join(ErrUnknownResetPeriod,
			fmt.Errorf("tier %s, usage %s: reset %q", tier, usage, ul.Reset))
	}

	if ul.OverageRate < 0 {
		return ul, errors.Join(ErrInvalidOverageRate,
			fmt.Errorf("tier %s, usage %s: rate %f", tier, usage, ul.OverageRate))
	}

	if ul.WarnThreshold == 0 {
		ul.WarnThreshold = DefaultWarnThreshold
	}
	if ul.WarnThreshold < 0 || ul.WarnThreshold > 1 {
		return ul, errors.Join(ErrInvalidWarnThreshold,
			fmt.Errorf("tier %s, usage %s: threshold %f", tier, usage, ul.WarnThreshold))
	}

	return ul, nil
}

// Features returns the feature codes included in a tier.
// Unknown tiers, including TierCustom, yield an empty slice.
func (c *Catalog) Features(tier Tier) []FeatureCode {
	td, exists := c.tiers[tier]
	if !exists {
		return nil
	}
	return slices.Clone(td.Features)
}

// HasFeature reports whether a tier includes the given feature code.
func (c *Catalog) HasFeature(tier Tier, code FeatureCode) bool {
	td, exists := c.tiers[tier]
	if !exists {
		return false
	}
	return slices.Contains(td.Features, code)
}

// Limit returns the usage limit configured for a tier and usage type.
// The second return value is false when no limit is configured,
// which callers must treat as unlimited.
func (c *Catalog) Limit(tier Tier, usage UsageType) (UsageLimit, bool) {
	td, exists := c.tiers[tier]
	if !exists {
		return UsageLimit{}, false
	}
	ul, exists := td.Limits[usage]
	return ul, exists
}

// Limits returns all usage limits configured for a tier.
func (c *Catalog) Limits(tier Tier) map[UsageType]UsageLimit {
	td, exists := c.tiers[tier]
	if !exists {
		return nil
	}
	return maps.Clone(td.Limits)
}

// MinimumTierFor returns the cheapest paid tier that includes the feature,
// walking UpgradePath in ascending price order. The second return value is
// false when no upgradeable tier offers the feature.
func (c *Catalog) MinimumTierFor(code FeatureCode) (Tier, bool) {
	for _, tier := range UpgradePath {
		if c.HasFeature(tier, code) {
			return tier, true
		}
	}
	return "", false
}

// Category returns the feature codes registered under a category name.
func (c *Catalog) Category(name string) []FeatureCode {
	return slices.Clone(c.categories[name])
}

// Tiers returns the tiers with a catalog entry, in no particular order.
func (c *Catalog) Tiers() []Tier {
	return slices.Collect(maps.Keys(c.tiers))
}
