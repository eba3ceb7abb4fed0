package domain

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow       Priority = "LOW"
	PriorityMedium    Priority = "MEDIUM"
	PriorityHigh      Priority = "HIGH"
	PriorityCritical  Priority = "CRITICAL"
	PriorityEmergency Priority = "EMERGENCY"
)

// Priorities lists every priority level in ascending order.
var Priorities = []Priority{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical, PriorityEmergency,
}

// Rank returns the position of p in the ascending order, or -1 if p is unknown.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the five enumerated levels.
func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// Urgent reports whether p is CRITICAL or EMERGENCY. Most builders branch on this.
func (p Priority) Urgent() bool {
	return p == PriorityCritical || p == PriorityEmergency
}

// ParsePriority accepts any casing of a priority level.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

type RecordKind string

const (
	KindDeployment           RecordKind = "DEPLOYMENT"
	KindModification         RecordKind = "MODIFICATION"
	KindPerformanceAssurance RecordKind = "PERFORMANCE_ASSURANCE"
	KindReportRequest        RecordKind = "REPORT_REQUEST"
	KindFeasibilityCheck     RecordKind = "FEASIBILITY_CHECK"
	KindNotificationRequest  RecordKind = "NOTIFICATION_REQUEST"
)

// RecordKinds lists every record kind in declaration order.
var RecordKinds = []RecordKind{
	KindDeployment, KindModification, KindPerformanceAssurance,
	KindReportRequest, KindFeasibilityCheck, KindNotificationRequest,
}

var kindLabels = map[RecordKind]string{
	KindDeployment:           "Deployment Intent",
	KindModification:         "Modification Intent",
	KindPerformanceAssurance: "Performance Assurance Intent",
	KindReportRequest:        "Intent Report Request",
	KindFeasibilityCheck:     "Intent Feasibility Check",
	KindNotificationRequest:  "Regular Notification Request",
}

// Label returns the human-facing name used in exports.
func (k RecordKind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

func (k RecordKind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// ParseRecordKind accepts either the enum value ("deployment") or its label
// ("Deployment Intent").
func ParseRecordKind(s string) (RecordKind, error) {
	trimmed := strings.TrimSpace(s)
	k := RecordKind(strings.ToUpper(strings.ReplaceAll(trimmed, "-", "_")))
	if k.Valid() {
		return k, nil
	}
	for kind, label := range kindLabels {
		if strings.EqualFold(label, trimmed) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

type Category string

const (
	CategoryURLLC Category = "URLLC"
	CategoryEMBB  Category = "eMBB"
	CategoryMMTC  Category = "mMTC"
	CategoryV2X   Category = "V2X"
)

// Categories lists the canonical domain categories.
var Categories = []Category{CategoryURLLC, CategoryEMBB, CategoryMMTC, CategoryV2X}

// LatencyCritical reports whether c is URLLC or V2X.
func (c Category) LatencyCritical() bool {
	return c == CategoryURLLC || c == CategoryV2X
}

type ContextCategory string

const (
	ContextUrban      ContextCategory = "urban"
	ContextHighway    ContextCategory = "highway"
	ContextIndustrial ContextCategory = "industrial"
	ContextRural      ContextCategory = "rural"
)

// ContextCategories lists the canonical deployment contexts.
var ContextCategories = []ContextCategory{ContextUrban, ContextHighway, ContextIndustrial, ContextRural}
