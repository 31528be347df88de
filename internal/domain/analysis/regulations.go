package analysis

import "strings"

// DefaultRegulations are checked when the caller does not pick any.
var DefaultRegulations = []string{"GDPR", "HIPAA", "CCPA"}

var regulationContext = map[string]string{
	"GDPR":    "EU General Data Protection Regulation - focuses on data subject rights, consent, data minimization, retention limits, right to erasure, breach notification",
	"HIPAA":   "Health Insurance Portability and Accountability Act - protects health information privacy, requires security safeguards, breach notification",
	"CCPA":    "California Consumer Privacy Act - consumer rights to know, delete, opt-out of data sales",
	"SOC2":    "System and Organization Controls 2 - security, availability, processing integrity, confidentiality, privacy",
	"PCI-DSS": "Payment Card Industry Data Security Standard - protect cardholder data, secure networks, access control",
}

// KnownRegulations returns the recognised regulation names and descriptions.
func KnownRegulations() map[string]string {
	out := make(map[string]string, len(regulationContext))
	for k, v := range regulationContext {
		out[k] = v
	}
	return out
}

// DescribeRegulation returns the description for a recognised name, or the
// name itself verbatim.
func DescribeRegulation(name string) string {
	if d, ok := regulationContext[name]; ok {
		return d
	}
	return name
}

// SelectRegulations trims and de-duplicates names, keeping caller order.
// An empty selection yields DefaultRegulations.
func SelectRegulations(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultRegulations...)
	}
	return out
}
