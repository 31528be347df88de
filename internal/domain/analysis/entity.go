package analysis

// Stage names one step of the pipeline and doubles as the cache tag.
type Stage string

const (
	StageClauses     Stage = "clauses"
	StageCompliance  Stage = "compliance"
	StageHeatmap     Stage = "heatmap"
	StageExplanation Stage = "explanation"
	StageRemediation Stage = "remediation"
)

// Severity enum
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// IssueType enum
type IssueType string

const (
	IssueViolation IssueType = "violation"
	IssueGap       IssueType = "gap"
	IssueConflict  IssueType = "conflict"
	IssuePartial   IssueType = "partial"
	IssueUnknown   IssueType = "unknown"
)

// Unknown is used for soft references the model left empty.
const Unknown = "Unknown"

type Clause struct {
	ClauseID            ID         `json:"clause_id"`
	ClauseType          string     `json:"clause_type"`
	Text                string     `json:"text"`
	RiskPotential       Severity   `json:"risk_potential"`
	KeyObligations      StringList `json:"key_obligations"`
	ImplicitAssumptions StringList `json:"implicit_assumptions"`
	Location            string     `json:"location"`
}

type ClauseExtractionResult struct {
	Clauses []Clause `json:"clauses"`
	Summary string   `json:"summary"`
}

// ComplianceIssue is one finding. AffectedClauseID is a soft reference to
// Clause.ClauseID and is never validated.
type ComplianceIssue struct {
	IssueID          ID        `json:"issue_id"`
	IssueType        IssueType `json:"issue_type"`
	Severity         Severity  `json:"severity"`
	AffectedClauseID ID        `json:"affected_clause_id"`
	ClauseText       string    `json:"clause_text"`
	Regulation       string    `json:"regulation"`
	LegalReasoning   string    `json:"legal_reasoning"`
	PenaltyExposure  string    `json:"penalty_exposure"`
	Remediation      string    `json:"remediation"`
}

type ComplianceAnalysisResult struct {
	ComplianceScore    Int               `json:"compliance_score"`
	TotalIssues        Int               `json:"total_issues"`
	Issues             []ComplianceIssue `json:"issues"`
	RegulationCoverage map[string]any    `json:"regulation_coverage"`
	RiskSummary        string            `json:"risk_summary"`
}

// FindIssue looks an issue up by id.
func (r ComplianceAnalysisResult) FindIssue(id string) (ComplianceIssue, bool) {
	for _, is := range r.Issues {
		if string(is.IssueID) == id {
			return is, true
		}
	}
	return ComplianceIssue{}, false
}

// ClauseRisk is one entry of Heatmap.ClauseRisks.
type ClauseRisk struct {
	Severity  Severity  `json:"severity"`
	IssueType IssueType `json:"issue_type"`
}

// Heatmap aggregates compliance issues; it is recomputed on every request.
type Heatmap struct {
	SeverityDistribution map[Severity]int        `json:"severity_distribution"`
	RegulationRisks      map[string]int          `json:"regulation_risks"`
	ClauseRisks          map[string][]ClauseRisk `json:"clause_risks"`
	TotalIssues          int                     `json:"total_issues"`
}

// Audience selects the explanation style.
type Audience string

const (
	AudienceExecutive Audience = "executive"
	AudienceEngineer  Audience = "engineer"
	AudienceLegal     Audience = "legal"
)

type Explanation struct {
	Issue    ComplianceIssue `json:"issue"`
	Audience Audience        `json:"audience"`
	Markdown string          `json:"markdown"`
	HTML     string          `json:"explanation"`
}

type RemediationAction struct {
	Title            string     `json:"action_title"`
	Steps            StringList `json:"detailed_steps"`
	ResponsibleParty string     `json:"responsible_party"`
	EstimatedEffort  string     `json:"estimated_effort"`
	Dependencies     StringList `json:"dependencies"`
	SuccessCriteria  StringList `json:"success_criteria"`
	RelatedIssues    StringList `json:"related_issues,omitempty"`
}

// RemediationPlan groups actions into four severity-derived buckets:
// immediate (Critical, 7 days), short term (High, 30 days),
// medium term (Medium, 90 days) and long term (Low).
type RemediationPlan struct {
	PlanSummary       string              `json:"plan_summary"`
	ImmediateActions  []RemediationAction `json:"immediate_actions"`
	ShortTerm         []RemediationAction `json:"short_term"`
	MediumTerm        []RemediationAction `json:"medium_term"`
	LongTerm          []RemediationAction `json:"long_term"`
	EstimatedTimeline string              `json:"estimated_timeline"`
	TotalActions      Int                 `json:"total_actions"`
}
