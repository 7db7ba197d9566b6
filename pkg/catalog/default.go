package catalog

// DefaultDefinition returns the built-in SchoolDesk plan tables. Deployments
// that need different numbers can start from this value, adjust it and pass
// the result to New or NewInMemSource.
func DefaultDefinition() Definition {
	return Definition{
		Tiers: map[Tier]TierDefinition{
			TierFree: {
				Features: []FeatureCode{
					FeatureParentPortal,
				},
				Limits: map[UsageType]UsageLimit{
					UsageStudents:        {Limit: 50, Kind: LimitHard, Reset: ResetNever},
					UsageTeachers:        {Limit: 5, Kind: LimitHard, Reset: ResetNever},
					UsageStorageMB:       {Limit: 512, Kind: LimitHard, Reset: ResetNever},
					UsageDocumentUploads: {Limit: 100, Kind: LimitHard, Reset: ResetMonthly},
				},
			},
			TierStarter: {
				Features: []FeatureCode{
					FeatureParentPortal,
					FeatureBulkImport,
					FeatureSMSNotifications,
					FeatureOnlinePayments,
				},
				Limits: map[UsageType]UsageLimit{
					UsageStudents:        {Limit: 200, Kind: LimitHard, Reset: ResetNever},
					UsageTeachers:        {Limit: 20, Kind: LimitHard, Reset: ResetNever},
					UsageSMSMessages:     {Limit: 500, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.05},
					UsageAITokens:        {Limit: 10000, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.002},
					UsageStorageMB:       {Limit: 5120, Kind: LimitHard, Reset: ResetNever},
					UsageDocumentUploads: {Limit: 1000, Kind: LimitHard, Reset: ResetMonthly},
					UsageInvoices:        {Limit: 500, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.02},
				},
			},
			TierProfessional: {
				Features: []FeatureCode{
					FeatureParentPortal,
					FeatureBulkImport,
					FeatureSMSNotifications,
					FeatureOnlinePayments,
					FeatureAILessonPlan,
					FeatureAIGrading,
					FeatureAIOCR,
					FeatureCustomReports,
					FeatureTimetableOptimizer,
					FeatureAPIAccess,
				},
				Limits: map[UsageType]UsageLimit{
					UsageStudents:    {Limit: 1000, Kind: LimitHard, Reset: ResetNever},
					UsageTeachers:    {Limit: 100, Kind: LimitHard, Reset: ResetNever},
					UsageSMSMessages: {Limit: 2000, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.04},
					UsageAITokens:    {Limit: 50000, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.001},
					UsageStorageMB:   {Limit: 20480, Kind: LimitHard, Reset: ResetNever},
				},
			},
			TierEnterprise: {
				Features: []FeatureCode{
					FeatureParentPortal,
					FeatureBulkImport,
					FeatureSMSNotifications,
					FeatureOnlinePayments,
					FeatureAILessonPlan,
					FeatureAIGrading,
					FeatureAIOCR,
					FeatureAIChatTutor,
					FeatureCustomReports,
					FeatureTimetableOptimizer,
					FeatureAPIAccess,
					FeatureWhiteLabel,
				},
				Limits: map[UsageType]UsageLimit{
					UsageStudents:    {Limit: Unlimited, Reset: ResetNever},
					UsageTeachers:    {Limit: Unlimited, Reset: ResetNever},
					UsageSMSMessages: {Limit: 10000, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.03},
					UsageAITokens:    {Limit: 200000, Kind: LimitSoft, Reset: ResetMonthly, OverageRate: 0.0008},
				},
			},
		},
		Categories: map[string][]FeatureCode{
			CategoryAI: {
				FeatureAILessonPlan,
				FeatureAIGrading,
				FeatureAIOCR,
				FeatureAIChatTutor,
			},
			CategoryCommunication: {
				FeatureSMSNotifications,
				FeatureParentPortal,
			},
			CategoryReporting: {
				FeatureCustomReports,
			},
		},
	}
}

// Default returns the validated built-in catalog.
func Default() *Catalog {
	cat, err := New(DefaultDefinition())
	if err != nil {
		panic("catalog: built-in definition is invalid: " + err.Error())
	}
	return cat
}
