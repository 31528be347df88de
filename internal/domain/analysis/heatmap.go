package analysis

// BuildHeatmap aggregates issues by severity, regulation and affected clause.
// All four severity buckets are always present. Empty soft references are
// grouped under Unknown; any other clause id is kept as-is even if no such
// clause exists.
func BuildHeatmap(issues []ComplianceIssue) Heatmap {
	h := Heatmap{
		SeverityDistribution: make(map[Severity]int, len(Severities)),
		RegulationRisks:      map[string]int{},
		ClauseRisks:          map[string][]ClauseRisk{},
		TotalIssues:          len(issues),
	}
	for _, s := range Severities {
		h.SeverityDistribution[s] = 0
	}

	for _, is := range issues {
		sev := ParseSeverity(string(is.Severity))
		h.SeverityDistribution[sev]++

		h.RegulationRisks[orUnknown(is.Regulation)]++

		clauseID := orUnknown(string(is.AffectedClauseID))
		h.ClauseRisks[clauseID] = append(h.ClauseRisks[clauseID], ClauseRisk{
			Severity:  sev,
			IssueType: ParseIssueType(string(is.IssueType)),
		})
	}
	return h
}
