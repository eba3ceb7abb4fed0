package constraint

import (
	"fmt"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

const (
	CheckURLLCLatencyThroughput = "urllc_latency_throughput"
	CheckURLLCHeavyEncryption   = "urllc_heavy_encryption"
	CheckLowLatencyCPU          = "low_latency_cpu"
	CheckCPUMemoryRatio         = "cpu_memory_ratio"

	MinMemoryRatio = 1.0
	MaxMemoryRatio = 16.0

	repairedMemoryPerCore = 4
	lowLatencyMinCPU      = 8
	lightEncryption       = "128_NEA2"
)

// check inspects the tree and, when it finds a violation, returns a detail
// message. remedy is nil for checks that are only recorded.
type check struct {
	id     string
	detect func(View) (string, bool)
	remedy func(View)
}

// checks run in this order and each remedy is applied before the next check
// looks at the tree, so cpu_memory_ratio sees the cpu raised by low_latency_cpu.
var checks = []check{
	{
		id: CheckURLLCLatencyThroughput,
		detect: func(v View) (string, bool) {
			if v.In.Category != domain.CategoryURLLC {
				return "", false
			}
			if v.Latency() > 10 && v.Throughput() > 1000 {
				return fmt.Sprintf("latency %.2fms with throughput %.0fMbps", v.Latency(), v.Throughput()), true
			}
			return "", false
		},
	},
	{
		id: CheckURLLCHeavyEncryption,
		detect: func(v View) (string, bool) {
			enc := v.Tree.Security.EncryptionAlgorithm
			if v.In.Category == domain.CategoryURLLC && strings.Contains(enc, "256") && v.In.Priority != domain.PriorityCritical {
				return fmt.Sprintf("%s at %s priority", enc, v.In.Priority), true
			}
			return "", false
		},
		remedy: func(v View) {
			v.Tree.Security.EncryptionAlgorithm = lightEncryption
		},
	},
	{
		id: CheckLowLatencyCPU,
		detect: func(v View) (string, bool) {
			if v.Latency() < 5 && v.CPU() < 4 {
				return fmt.Sprintf("latency %.2fms with %d cores", v.Latency(), v.CPU()), true
			}
			return "", false
		},
		remedy: func(v View) {
			c := &v.Tree.Resources.Compute
			c.CPUCores = max(lowLatencyMinCPU, c.CPUCores)
		},
	},
	{
		id: CheckCPUMemoryRatio,
		detect: func(v View) (string, bool) {
			ratio := v.Tree.Resources.Compute.MemoryRatio()
			if ratio < MinMemoryRatio || ratio > MaxMemoryRatio {
				return fmt.Sprintf("memory/cpu ratio %.2f outside [%.0f,%.0f]", ratio, MinMemoryRatio, MaxMemoryRatio), true
			}
			return "", false
		},
		remedy: func(v View) {
			c := &v.Tree.Resources.Compute
			c.MemoryGB = c.CPUCores * repairedMemoryPerCore
		},
	},
}
