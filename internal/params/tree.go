// Package params holds the typed parameter subtrees and the independent
// builders that fill them. Builders read only their Input and the random
// stream; none of them looks at another builder's output.
package params

import (
	"encoding/json"
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// Input is everything a builder may read.
type Input struct {
	Category    domain.Category
	Context     domain.ContextCategory
	Priority    domain.Priority
	Complexity  int
	Kind        domain.RecordKind
	CategoryRaw string
	ContextRaw  string

	Profile  profile.DomainProfile
	Slice    *profile.CategoryConstraint
	Location profile.ContextConstraint

	// MaxLatency is the effective latency ceiling in ms.
	MaxLatency float64
	// LatencyThroughput is the global latency→throughput coefficient.
	LatencyThroughput float64

	NetworkFunctions []string
}

// NewInput resolves gc against the registry.
func NewInput(gc domain.GenerationContext, reg *profile.Registry) Input {
	res := reg.Resolve(gc.CategoryRaw, gc.ContextRaw)
	return Input{
		Category:          res.Category,
		Context:           res.Context,
		Priority:          gc.Priority,
		Complexity:        domain.ClampComplexity(gc.Complexity),
		Kind:              gc.Kind,
		CategoryRaw:       gc.CategoryRaw,
		ContextRaw:        gc.ContextRaw,
		Profile:           res.Profile,
		Slice:             res.Slice,
		Location:          res.Location,
		MaxLatency:        res.MaxLatency(),
		LatencyThroughput: reg.Coefficient("latency", "throughput"),
		NetworkFunctions:  reg.Catalog().NetworkFunctions,
	}
}

// Urgent reports whether the input priority is CRITICAL or EMERGENCY.
func (in Input) Urgent() bool {
	return in.Priority.Urgent()
}

// Tree is the full parameter tree of one record.
type Tree struct {
	QoS           QoS           `json:"qos_parameters"`
	Resources     Resources     `json:"resource_allocation"`
	Security      Security      `json:"security_parameters"`
	Topology      Topology      `json:"network_topology"`
	Monitoring    Monitoring    `json:"monitoring_parameters"`
	Performance   Performance   `json:"performance_requirements"`
	Scaling       Scaling       `json:"scaling_parameters"`
	Optimization  Optimization  `json:"optimization_parameters"`
	IntentDetails IntentDetails `json:"intent_details"`
}

// Build runs every builder in a fixed order so that a seed replays the same tree.
func Build(in Input, r *rng.Source) *Tree {
	t := &Tree{}
	t.QoS = BuildQoS(in, r)
	t.Resources = BuildResources(in, r)
	t.Security = BuildSecurity(in, r)
	t.Topology = BuildTopology(in, r)
	t.Monitoring = BuildMonitoring(in, r)
	t.Performance = BuildPerformance(in, r)
	t.Scaling = BuildScaling(in, r)
	t.Optimization = BuildOptimization(in, r)
	t.IntentDetails = BuildIntentDetails(in, r)
	return t
}

// Map converts the tree to nested map[string]any, []any and scalars.
func (t *Tree) Map() (map[string]any, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding parameter tree: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding parameter tree: %w", err)
	}
	return out, nil
}

func choose[T any](cond bool, yes, no T) T {
	if cond {
		return yes
	}
	return no
}
