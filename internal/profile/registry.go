// Package profile holds the static domain catalog: per-category profiles,
// named-slice and per-context overrides, the global interdependency matrix,
// and the lookup catalogs used when sampling contexts.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var embeddedProfiles []byte

// ErrInvalidRegistry indicates registry data that fails validation.
var ErrInvalidRegistry = errors.New("invalid profile registry")

// Range is a closed numeric interval written as [min, max] in YAML.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("range must have exactly two values, got %d", len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

type ResourceMultipliers struct {
	CPU     float64 `yaml:"cpu" json:"cpu"`
	Memory  float64 `yaml:"memory" json:"memory"`
	Network float64 `yaml:"network" json:"network"`
	Storage float64 `yaml:"storage" json:"storage"`
}

type SecurityPolicy struct {
	EncryptionStrength   string `yaml:"encryption_strength" json:"encryption_strength"`
	AuthenticationMethod string `yaml:"authentication_method" json:"authentication_method"`
	IntegrityProtection  string `yaml:"integrity_protection" json:"integrity_protection"`
	KeyRotationFrequency string `yaml:"key_rotation_frequency" json:"key_rotation_frequency"`
}

type ScalingPolicy struct {
	HorizontalScaling      string `yaml:"horizontal_scaling" json:"horizontal_scaling"`
	VerticalScaling        string `yaml:"vertical_scaling" json:"vertical_scaling"`
	AutoScalingSensitivity string `yaml:"auto_scaling_sensitivity" json:"auto_scaling_sensitivity"`
	ScalingSpeed           string `yaml:"scaling_speed" json:"scaling_speed"`
}

// DomainProfile is the numeric and policy bundle of one canonical category.
type DomainProfile struct {
	Category            domain.Category               `yaml:"-" json:"category"`
	LatencyRange        Range                         `yaml:"latency_range" json:"latency_range"`
	ThroughputRange     Range                         `yaml:"throughput_range" json:"throughput_range"`
	ReliabilityRange    Range                         `yaml:"reliability_range" json:"reliability_range"`
	MaxLatency          float64                       `yaml:"max_latency" json:"max_latency"`
	MinReliability      float64                       `yaml:"min_reliability" json:"min_reliability"`
	ResourceMultipliers ResourceMultipliers           `yaml:"resource_multipliers" json:"resource_multipliers"`
	Security            SecurityPolicy                `yaml:"security" json:"security"`
	Scaling             ScalingPolicy                 `yaml:"scaling" json:"scaling"`
	ComplianceStandards []string                      `yaml:"compliance_standards" json:"compliance_standards"`
	Interdependencies   map[string]map[string]float64 `yaml:"interdependencies" json:"interdependencies"`
}

// CategoryConstraint overrides a profile for one named slice type.
type CategoryConstraint struct {
	Name                string             `yaml:"-" json:"name"`
	DomainCategory      domain.Category    `yaml:"domain_category" json:"domain_category"`
	MinThroughput       float64            `yaml:"min_throughput" json:"min_throughput"`
	MaxLatency          float64            `yaml:"max_latency" json:"max_latency"`
	MinReliability      float64            `yaml:"min_reliability" json:"min_reliability"`
	ComplexityRange     Range              `yaml:"complexity_range" json:"complexity_range"`
	PriorityWeights     map[string]float64 `yaml:"priority_weights" json:"priority_weights"`
	PreferredContexts   []string           `yaml:"preferred_contexts" json:"preferred_contexts"`
	RequiredNFs         []string           `yaml:"required_nfs" json:"required_nfs"`
	OptimizationTargets []string           `yaml:"optimization_targets" json:"optimization_targets"`
	ViolationTolerance  string             `yaml:"violation_tolerance" json:"violation_tolerance"`
}

// ContextConstraint carries the deployment-context adjustments.
type ContextConstraint struct {
	Context            domain.ContextCategory `yaml:"-" json:"context"`
	MobilityFactor     float64                `yaml:"mobility_factor" json:"mobility_factor"`
	CoverageComplexity float64                `yaml:"coverage_complexity" json:"coverage_complexity"`
	LatencyPenalty     float64                `yaml:"latency_penalty" json:"latency_penalty"`
	ReliabilityBoost   float64                `yaml:"reliability_boost" json:"reliability_boost"`
	FiberAvailability  string                 `yaml:"fiber_availability" json:"fiber_availability"`
	PowerAvailability  string                 `yaml:"power_availability" json:"power_availability"`
	PreferredSlices    []string               `yaml:"preferred_slices" json:"preferred_slices"`
}

// Catalog lists the raw strings contexts are sampled from.
type Catalog struct {
	SliceTypes          []string            `yaml:"slice_types" json:"slice_types"`
	Locations           []string            `yaml:"locations" json:"locations"`
	NetworkFunctions    []string            `yaml:"network_functions" json:"network_functions"`
	ComplianceStandards []string            `yaml:"compliance_standards" json:"compliance_standards"`
	ResearchContexts    map[string][]string `yaml:"research_contexts" json:"research_contexts"`
}

type registryFile struct {
	Profiles          map[string]DomainProfile      `yaml:"profiles"`
	Slices            map[string]CategoryConstraint `yaml:"slices"`
	Contexts          map[string]ContextConstraint  `yaml:"contexts"`
	Interdependencies map[string]map[string]float64 `yaml:"interdependencies"`
	Catalog           Catalog                       `yaml:"catalog"`
}

// Registry is the read-only catalog. Build it once with Default, Load or
// LoadFile and share it; nothing mutates it afterwards.
type Registry struct {
	profiles          map[domain.Category]DomainProfile
	slices            map[string]CategoryConstraint
	contexts          map[domain.ContextCategory]ContextConstraint
	interdependencies map[string]map[string]float64
	catalog           Catalog
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := Load(embeddedProfiles)
	if err != nil {
		panic(fmt.Sprintf("embedded profiles: %v", err))
	}
	return r
})

// Default returns the registry built from the embedded profiles.yaml.
func Default() *Registry {
	return defaultRegistry()
}

// LoadFile reads a registry from a YAML file with the same layout as the
// embedded one.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}
	return Load(data)
}

// Load parses and validates registry YAML.
func Load(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}

	r := &Registry{
		profiles:          make(map[domain.Category]DomainProfile, len(f.Profiles)),
		slices:            make(map[string]CategoryConstraint, len(f.Slices)),
		contexts:          make(map[domain.ContextCategory]ContextConstraint, len(f.Contexts)),
		interdependencies: f.Interdependencies,
		catalog:           f.Catalog,
	}
	for name, p := range f.Profiles {
		p.Category = domain.Category(name)
		r.profiles[p.Category] = p
	}
	for name, s := range f.Slices {
		s.Name = name
		r.slices[name] = s
	}
	for name, c := range f.Contexts {
		c.Context = domain.ContextCategory(name)
		r.contexts[c.Context] = c
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validate() error {
	for _, c := range domain.Categories {
		p, ok := r.profiles[c]
		if !ok {
			return fmt.Errorf("%w: missing profile %s", ErrInvalidRegistry, c)
		}
		for name, rg := range map[string]Range{
			"latency_range":     p.LatencyRange,
			"throughput_range":  p.ThroughputRange,
			"reliability_range": p.ReliabilityRange,
		} {
			if rg.Min > rg.Max {
				return fmt.Errorf("%w: %s %s is reversed", ErrInvalidRegistry, c, name)
			}
		}
		if p.MaxLatency <= 0 {
			return fmt.Errorf("%w: %s max_latency must be positive", ErrInvalidRegistry, c)
		}
	}
	for _, c := range domain.ContextCategories {
		if _, ok := r.contexts[c]; !ok {
			return fmt.Errorf("%w: missing context %s", ErrInvalidRegistry, c)
		}
	}
	for name, s := range r.slices {
		if _, ok := r.profiles[s.DomainCategory]; !ok {
			return fmt.Errorf("%w: slice %s references unknown category %q", ErrInvalidRegistry, name, s.DomainCategory)
		}
	}
	if len(r.catalog.SliceTypes) == 0 || len(r.catalog.Locations) == 0 {
		return fmt.Errorf("%w: catalog needs slice_types and locations", ErrInvalidRegistry)
	}
	return nil
}

// Profile returns the profile for c, falling back to eMBB.
func (r *Registry) Profile(c domain.Category) DomainProfile {
	if p, ok := r.profiles[c]; ok {
		return p
	}
	return r.profiles[domain.CategoryEMBB]
}

// Slice returns the override for an exact slice name.
func (r *Registry) Slice(name string) (CategoryConstraint, bool) {
	s, ok := r.slices[name]
	return s, ok
}

// Context returns the constraint for c, falling back to urban.
func (r *Registry) Context(c domain.ContextCategory) ContextConstraint {
	if cc, ok := r.contexts[c]; ok {
		return cc
	}
	return r.contexts[domain.ContextUrban]
}

// Coefficient reads the global interdependency matrix. Missing entries are 0.
func (r *Registry) Coefficient(from, to string) float64 {
	return r.interdependencies[from][to]
}

// Catalog returns the sampling catalogs.
func (r *Registry) Catalog() Catalog {
	return r.catalog
}

// Profiles returns every profile in canonical category order.
func (r *Registry) Profiles() []DomainProfile {
	out := make([]DomainProfile, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, r.profiles[c])
	}
	return out
}

// Resolved bundles everything the builders need for one context.
type Resolved struct {
	Category domain.Category
	Context  domain.ContextCategory
	Profile  DomainProfile
	Slice    *CategoryConstraint
	Location ContextConstraint
}

// Resolve categorizes the raw strings and looks up the matching profile and
// overrides. A named slice only applies when its domain category agrees with
// the categorized one.
func (r *Registry) Resolve(categoryRaw, contextRaw string) Resolved {
	cat := CategorizeCategory(categoryRaw)
	ctx := CategorizeContext(contextRaw)
	res := Resolved{
		Category: cat,
		Context:  ctx,
		Profile:  r.Profile(cat),
		Location: r.Context(ctx),
	}
	if s, ok := r.Slice(categoryRaw); ok && s.DomainCategory == cat {
		res.Slice = &s
	}
	return res
}

// MaxLatency is the effective latency ceiling: the profile's, lowered by a
// slice override when one applies.
func (res Resolved) MaxLatency() float64 {
	ceiling := res.Profile.MaxLatency
	if res.Slice != nil && res.Slice.MaxLatency > 0 && res.Slice.MaxLatency < ceiling {
		ceiling = res.Slice.MaxLatency
	}
	return ceiling
}
