package catalog

// Tier identifies a subscription tier of the platform.
type Tier string

// Subscription tiers in ascending order of capability.
// TierCustom is negotiated per tenant and carries no catalog entry.
const (
	TierFree         Tier = "free"
	TierStarter      Tier = "starter"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
	TierCustom       Tier = "custom"
)

// UpgradePath lists the tiers offered as upgrade targets, cheapest first.
// TierFree is never suggested as an upgrade and TierCustom is not orderable.
var UpgradePath = []Tier{TierStarter, TierProfessional, TierEnterprise}

// FeatureCode identifies a gated platform capability.
type FeatureCode string

// Feature codes of the school platform.
const (
	FeatureAILessonPlan       FeatureCode = "ai_lesson_plan"
	FeatureAIGrading          FeatureCode = "ai_grading"
	FeatureAIOCR              FeatureCode = "ai_ocr"
	FeatureAIChatTutor        FeatureCode = "ai_chat_tutor"
	FeatureBulkImport         FeatureCode = "bulk_import"
	FeatureCustomReports      FeatureCode = "custom_reports"
	FeatureParentPortal       FeatureCode = "parent_portal"
	FeatureSMSNotifications   FeatureCode = "sms_notifications"
	FeatureAPIAccess          FeatureCode = "api_access"
	FeatureWhiteLabel         FeatureCode = "white_label"
	FeatureTimetableOptimizer FeatureCode = "timetable_optimizer"
	FeatureOnlinePayments     FeatureCode = "online_payments"
)

// Feature category names used for grouped operations such as emergency kill switches.
const (
	CategoryAI            = "ai"
	CategoryCommunication = "communication"
	CategoryReporting     = "reporting"
)

// UsageType represents a metered tenant resource.
type UsageType string

// Metered resources of the school platform.
const (
	UsageStudents        UsageType = "students"
	UsageTeachers        UsageType = "teachers"
	UsageSMSMessages     UsageType = "sms_messages"
	UsageAITokens        UsageType = "ai_tokens"
	UsageStorageMB       UsageType = "storage_mb"
	UsageDocumentUploads UsageType = "document_uploads"
	UsageInvoices        UsageType = "invoices"
)

// LimitKind controls what happens when a limit is exceeded.
type LimitKind string

const (
	// LimitSoft allows the operation and accrues billable overage.
	LimitSoft LimitKind = "soft"
	// LimitHard blocks the operation outright.
	LimitHard LimitKind = "hard"
)

// ResetPeriod controls when a usage counter rolls over to zero.
type ResetPeriod string

const (
	ResetMonthly ResetPeriod = "monthly"
	ResetDaily   ResetPeriod = "daily"
	// ResetNever is for lifetime counters such as enrolled students.
	ResetNever ResetPeriod = "never"
)

// Limit constants
const (
	// Unlimited represents a resource with no limit (-1)
	Unlimited int64 = -1

	// DefaultWarnThreshold is applied when a limit omits its warning threshold.
	DefaultWarnThreshold = 0.8
)

// UsageLimit defines the metering policy for one usage type within a tier.
type UsageLimit struct {
	Limit         int64       `yaml:"limit" json:"limit"`
	Kind          LimitKind   `yaml:"kind" json:"kind"`
	Reset         ResetPeriod `yaml:"reset" json:"reset"`
	OverageRate   float64     `yaml:"overage_rate" json:"overage_rate"`
	WarnThreshold float64     `yaml:"warn_threshold" json:"warn_threshold"`
}

// IsUnlimited reports whether the limit imposes no ceiling.
func (l UsageLimit) IsUnlimited() bool {
	return l.Limit == Unlimited
}

// TierDefinition declares the features and usage limits of a single tier.
type TierDefinition struct {
	Features []FeatureCode            `yaml:"features" json:"features"`
	Limits   map[UsageType]UsageLimit `yaml:"limits" json:"limits"`
}

// Definition is the raw catalog configuration consumed by New.
// It is the shape loaded from YAML files and built-in defaults.
type Definition struct {
	Tiers      map[Tier]TierDefinition  `yaml:"tiers" json:"tiers"`
	Categories map[string][]FeatureCode `yaml:"categories" json:"categories"`
}
