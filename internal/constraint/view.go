// Package constraint grows a sparse generation context into a consistent
// parameter tree: it runs the builders, applies the correlation rules and
// repairs the violations the cross-checks find.
package constraint

import (
	"math"

	"github.com/aadhamashraf/intentgen/internal/params"
)

// View is what a rule condition and transformation see: the resolved input
// and the tree being adjusted.
type View struct {
	In   params.Input
	Tree *params.Tree
}

// Latency is the QoS packet delay budget in ms.
func (v View) Latency() float64 {
	return v.Tree.QoS.PacketDelayBudgetMs
}

// Throughput is the larger of the QoS maximum bit rate and the performance
// throughput requirement, in Mbps.
func (v View) Throughput() float64 {
	return math.Max(float64(v.Tree.QoS.MaximumBitRateMbps), float64(v.Tree.Performance.ThroughputMbps))
}

func (v View) CPU() int {
	return v.Tree.Resources.Compute.CPUCores
}

func (v View) Memory() int {
	return v.Tree.Resources.Compute.MemoryGB
}
