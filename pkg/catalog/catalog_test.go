package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// Test helpers
func createTestDefinition() catalog.Definition {
	return catalog.Definition{
		Tiers: map[catalog.Tier]catalog.TierDefinition{
			catalog.TierFree: {
				Features: []catalog.FeatureCode{catalog.FeatureParentPortal},
				Limits: map[catalog.UsageType]catalog.UsageLimit{
					catalog.UsageStudents: {Limit: 50, Kind: catalog.LimitHard, Reset: catalog.ResetNever},
				},
			},
			catalog.TierStarter: {
				Features: []catalog.FeatureCode{
					catalog.FeatureParentPortal,
					catalog.FeatureBulkImport,
				},
				Limits: map[catalog.UsageType]catalog.UsageLimit{
					catalog.UsageStudents: {Limit: 200, Kind: catalog.LimitHard, Reset: catalog.ResetNever},
					catalog.UsageAITokens: {Limit: 10000, Kind: catalog.LimitSoft, Reset: catalog.ResetMonthly, OverageRate: 0.002},
				},
			},
			catalog.TierProfessional: {
				Features: []catalog.FeatureCode{
					catalog.FeatureParentPortal,
					catalog.FeatureBulkImport,
					catalog.FeatureAIGrading,
				},
				Limits: map[catalog.UsageType]catalog.UsageLimit{
					catalog.UsageStudents: {Limit: 1000, Kind: catalog.LimitHard, Reset: catalog.ResetNever},
					catalog.UsageAITokens: {Limit: 50000, Kind: catalog.LimitSoft, Reset: catalog.ResetMonthly, OverageRate: 0.001},
				},
			},
			catalog.TierEnterprise: {
				Features: []catalog.FeatureCode{
					catalog.FeatureParentPortal,
					catalog.FeatureBulkImport,
					catalog.FeatureAIGrading,
					catalog.FeatureWhiteLabel,
				},
				Limits: map[catalog.UsageType]catalog.UsageLimit{
					catalog.UsageStudents: {Limit: catalog.Unlimited},
				},
			},
		},
		Categories: map[string][]catalog.FeatureCode{
			catalog.CategoryAI: {catalog.FeatureAIGrading},
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid definition", func(t *testing.T) {
		t.Parallel()

		cat, err := catalog.New(createTestDefinition())

		require.NoError(t, err)
		assert.NotNil(t, cat)
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers["platinum"] = catalog.TierDefinition{}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrUnknownTier)
		assert.Nil(t, cat)
	})

	t.Run("custom tier has no catalog entry", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierCustom] = catalog.TierDefinition{}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrUnknownTier)
		assert.Nil(t, cat)
	})

	t.Run("unknown limit kind", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierFree].Limits[catalog.UsageTeachers] = catalog.UsageLimit{Limit: 5, Kind: "squishy"}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrUnknownLimitKind)
		assert.Nil(t, cat)
	})

	t.Run("unknown reset period", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierFree].Limits[catalog.UsageTeachers] = catalog.UsageLimit{Limit: 5, Reset: "weekly"}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrUnknownResetPeriod)
		assert.Nil(t, cat)
	})

	t.Run("limit below unlimited sentinel", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierFree].Limits[catalog.UsageTeachers] = catalog.UsageLimit{Limit: -2}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrInvalidLimit)
		assert.Nil(t, cat)
	})

	t.Run("negative overage rate", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierFree].Limits[catalog.UsageTeachers] = catalog.UsageLimit{Limit: 5, OverageRate: -0.1}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrInvalidOverageRate)
		assert.Nil(t, cat)
	})

	t.Run("warn threshold above one", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierFree].Limits[catalog.UsageTeachers] = catalog.UsageLimit{Limit: 5, WarnThreshold: 1.5}

		cat, err := catalog.New(def)

		assert.ErrorIs(t, err, catalog.ErrInvalidWarnThreshold)
		assert.Nil(t, cat)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		def.Tiers[catalog.TierFree].Limits[catalog.UsageTeachers] = catalog.UsageLimit{Limit: 5}

		cat, err := catalog.New(def)
		require.NoError(t, err)

		ul, ok := cat.Limit(catalog.TierFree, catalog.UsageTeachers)
		require.True(t, ok)
		assert.Equal(t, catalog.LimitHard, ul.Kind)
		assert.Equal(t, catalog.ResetNever, ul.Reset)
		assert.InDelta(t, catalog.DefaultWarnThreshold, ul.WarnThreshold, 0.0001)
	})

	t.Run("definition mutations do not leak in", func(t *testing.T) {
		t.Parallel()

		def := createTestDefinition()
		cat, err := catalog.New(def)
		require.NoError(t, err)

		def.Tiers[catalog.TierFree].Limits[catalog.UsageStudents] = catalog.UsageLimit{Limit: 9999}

		ul, ok := cat.Limit(catalog.TierFree, catalog.UsageStudents)
		require.True(t, ok)
		assert.Equal(t, int64(50), ul.Limit)
	})
}

func TestCatalog_Features(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New(createTestDefinition())
	require.NoError(t, err)

	t.Run("known tier", func(t *testing.T) {
		t.Parallel()

		features := cat.Features(catalog.TierStarter)

		assert.ElementsMatch(t, []catalog.FeatureCode{
			catalog.FeatureParentPortal,
			catalog.FeatureBulkImport,
		}, features)
	})

	t.Run("custom tier yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, cat.Features(catalog.TierCustom))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		features := cat.Features(catalog.TierFree)
		require.NotEmpty(t, features)
		features[0] = "mutated"

		assert.Equal(t, catalog.FeatureParentPortal, cat.Features(catalog.TierFree)[0])
	})
}

func TestCatalog_HasFeature(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New(createTestDefinition())
	require.NoError(t, err)

	assert.True(t, cat.HasFeature(catalog.TierProfessional, catalog.FeatureAIGrading))
	assert.False(t, cat.HasFeature(catalog.TierStarter, catalog.FeatureAIGrading))
	assert.False(t, cat.HasFeature(catalog.TierCustom, catalog.FeatureAIGrading))
	assert.False(t, cat.HasFeature(catalog.TierFree, "no_such_feature"))
}

func TestCatalog_MinimumTierFor(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New(createTestDefinition())
	require.NoError(t, err)

	t.Run("cheapest tier wins", func(t *testing.T) {
		t.Parallel()

		tier, ok := cat.MinimumTierFor(catalog.FeatureBulkImport)

		require.True(t, ok)
		assert.Equal(t, catalog.TierStarter, tier)
	})

	t.Run("mid tier feature", func(t *testing.T) {
		t.Parallel()

		tier, ok := cat.MinimumTierFor(catalog.FeatureAIGrading)

		require.True(t, ok)
		assert.Equal(t, catalog.TierProfessional, tier)
	})

	t.Run("enterprise only feature", func(t *testing.T) {
		t.Parallel()

		tier, ok := cat.MinimumTierFor(catalog.FeatureWhiteLabel)

		require.True(t, ok)
		assert.Equal(t, catalog.TierEnterprise, tier)
	})

	t.Run("free never suggested", func(t *testing.T) {
		t.Parallel()

		// parent_portal exists on every tier including free; the hint
		// must still point at the cheapest paid tier.
		tier, ok := cat.MinimumTierFor(catalog.FeatureParentPortal)

		require.True(t, ok)
		assert.Equal(t, catalog.TierStarter, tier)
	})

	t.Run("unknown feature", func(t *testing.T) {
		t.Parallel()

		tier, ok := cat.MinimumTierFor("no_such_feature")

		assert.False(t, ok)
		assert.Empty(t, tier)
	})
}

func TestCatalog_Limit(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New(createTestDefinition())
	require.NoError(t, err)

	t.Run("configured limit", func(t *testing.T) {
		t.Parallel()

		ul, ok := cat.Limit(catalog.TierProfessional, catalog.UsageAITokens)

		require.True(t, ok)
		assert.Equal(t, int64(50000), ul.Limit)
		assert.Equal(t, catalog.LimitSoft, ul.Kind)
		assert.InDelta(t, 0.001, ul.OverageRate, 0.00001)
	})

	t.Run("unconfigured means unlimited", func(t *testing.T) {
		t.Parallel()

		_, ok := cat.Limit(catalog.TierProfessional, catalog.UsageSMSMessages)

		assert.False(t, ok)
	})

	t.Run("unlimited sentinel", func(t *testing.T) {
		t.Parallel()

		ul, ok := cat.Limit(catalog.TierEnterprise, catalog.UsageStudents)

		require.True(t, ok)
		assert.True(t, ul.IsUnlimited())
	})
}

func TestCatalog_Category(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New(createTestDefinition())
	require.NoError(t, err)

	assert.Equal(t, []catalog.FeatureCode{catalog.FeatureAIGrading}, cat.Category(catalog.CategoryAI))
	assert.Empty(t, cat.Category("no_such_category"))
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	t.Run("all paid tiers present", func(t *testing.T) {
		t.Parallel()

		assert.ElementsMatch(t, []catalog.Tier{
			catalog.TierFree,
			catalog.TierStarter,
			catalog.TierProfessional,
			catalog.TierEnterprise,
		}, cat.Tiers())
	})

	t.Run("feature sets grow with tier", func(t *testing.T) {
		t.Parallel()

		for _, tier := range []catalog.Tier{catalog.TierStarter, catalog.TierProfessional, catalog.TierEnterprise} {
			for _, code := range cat.Features(prevTier(tier)) {
				assert.Truef(t, cat.HasFeature(tier, code), "tier %s missing %s from the tier below", tier, code)
			}
		}
	})

	t.Run("ai category covers every ai feature", func(t *testing.T) {
		t.Parallel()

		codes := cat.Category(catalog.CategoryAI)

		assert.ElementsMatch(t, []catalog.FeatureCode{
			catalog.FeatureAILessonPlan,
			catalog.FeatureAIGrading,
			catalog.FeatureAIOCR,
			catalog.FeatureAIChatTutor,
		}, codes)
	})

	t.Run("free student limit is hard", func(t *testing.T) {
		t.Parallel()

		ul, ok := cat.Limit(catalog.TierFree, catalog.UsageStudents)

		require.True(t, ok)
		assert.Equal(t, int64(50), ul.Limit)
		assert.Equal(t, catalog.LimitHard, ul.Kind)
	})
}

func prevTier(t catalog.Tier) catalog.Tier {
	switch t {
	case catalog.TierStarter:
		return catalog.TierFree
	case catalog.TierProfessional:
		return catalog.TierStarter
	case catalog.TierEnterprise:
		return catalog.TierProfessional
	}
	return catalog.TierFree
}
