package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int decodes numbers the model may send as floats or quoted strings ("85", "85%").
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// non-numeric text; treat as absent
			*n = 0
			return nil
		}
		*n = Int(math.Round(f))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Int(math.Round(f))
	return nil
}

// ID is a model-assigned identifier. Numbers ("clause_id": 3) are kept as
// their literal text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	*id = ID(b)
	return nil
}

// StringList decodes either a JSON array or a single string into a list.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*l = StringList{}
			return nil
		}
		*l = StringList{s}
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, it := range items {
			var s string
			if err := json.Unmarshal(it, &s); err == nil {
				out = append(out, s)
				continue
			}
			out = append(out, string(bytes.TrimSpace(it)))
		}
		*l = out
		return nil
	default:
		*l = StringList{string(b)}
		return nil
	}
}

// ParseSeverity maps model output onto the four buckets. Missing or
// unrecognised values fall back to Medium.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium", "moderate":
		return SeverityMedium
	case "low", "info", "informational":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// ParseIssueType lower-cases the value; empty becomes IssueUnknown.
func ParseIssueType(s string) IssueType {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return IssueUnknown
	}
	return IssueType(t)
}

// ParseAudience returns AudienceExecutive for absent or unrecognised values.
func ParseAudience(s string) Audience {
	switch Audience(strings.ToLower(strings.TrimSpace(s))) {
	case AudienceEngineer:
		return AudienceEngineer
	case AudienceLegal:
		return AudienceLegal
	default:
		return AudienceExecutive
	}
}

// UnmarshalJSON accepts a bare string as an action with only a title.
func (a *RemediationAction) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*a = RemediationAction{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = RemediationAction{Title: strings.TrimSpace(s)}
		return nil
	case b[0] == '{':
		type fields RemediationAction
		var f fields
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*a = RemediationAction(f)
		return nil
	default:
		*a = RemediationAction{Title: string(b)}
		return nil
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

func (r *ClauseExtractionResult) Normalize() {
	if r.Clauses == nil {
		r.Clauses = []Clause{}
	}
	for i := range r.Clauses {
		c := &r.Clauses[i]
		if strings.TrimSpace(string(c.ClauseID)) == "" {
			c.ClauseID = ID(fmt.Sprintf("C%d", i+1))
		}
		c.RiskPotential = ParseSeverity(string(c.RiskPotential))
		if c.KeyObligations == nil {
			c.KeyObligations = StringList{}
		}
		if c.ImplicitAssumptions == nil {
			c.ImplicitAssumptions = StringList{}
		}
	}
}

func (r *ComplianceAnalysisResult) Normalize() {
	if r.Issues == nil {
		r.Issues = []ComplianceIssue{}
	}
	for i := range r.Issues {
		is := &r.Issues[i]
		if strings.TrimSpace(string(is.IssueID)) == "" {
			is.IssueID = ID(fmt.Sprintf("I%d", i+1))
		}
		is.IssueType = ParseIssueType(string(is.IssueType))
		is.Severity = ParseSeverity(string(is.Severity))
		is.AffectedClauseID = ID(orUnknown(string(is.AffectedClauseID)))
		is.Regulation = orUnknown(is.Regulation)
	}
	if r.ComplianceScore < 0 {
		r.ComplianceScore = 0
	}
	if r.ComplianceScore > 100 {
		r.ComplianceScore = 100
	}
	if r.TotalIssues <= 0 && len(r.Issues) > 0 {
		r.TotalIssues = Int(len(r.Issues))
	}
	if r.RegulationCoverage == nil {
		r.RegulationCoverage = map[string]any{}
	}
}

func (p *RemediationPlan) Normalize() {
	for _, bucket := range []*[]RemediationAction{&p.ImmediateActions, &p.ShortTerm, &p.MediumTerm, &p.LongTerm} {
		if *bucket == nil {
			*bucket = []RemediationAction{}
		}
	}
	if p.TotalActions <= 0 {
		p.TotalActions = Int(len(p.ImmediateActions) + len(p.ShortTerm) + len(p.MediumTerm) + len(p.LongTerm))
	}
}
