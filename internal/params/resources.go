package params

import (
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

type resourceBase struct {
	cpu, memory, storage [2]int
}

var resourceBases = map[domain.Category]resourceBase{
	domain.CategoryURLLC: {cpu: [2]int{4, 16}, memory: [2]int{8, 64}, storage: [2]int{100, 1000}},
	domain.CategoryV2X:   {cpu: [2]int{8, 32}, memory: [2]int{16, 128}, storage: [2]int{200, 2000}},
	domain.CategoryEMBB:  {cpu: [2]int{2, 8}, memory: [2]int{4, 32}, storage: [2]int{50, 500}},
	domain.CategoryMMTC:  {cpu: [2]int{1, 4}, memory: [2]int{2, 16}, storage: [2]int{20, 200}},
}

type Resources struct {
	Compute        ComputeResources        `json:"compute_resources"`
	Network        NetworkResources        `json:"network_resources"`
	Virtualization VirtualizationParams    `json:"virtualization_parameters"`
	Scaling        ResourceScaling         `json:"scaling_parameters"`
	Optimization   PerformanceOptimization `json:"performance_optimization"`
}

type ComputeResources struct {
	CPUArchitecture string  `json:"cpu_architecture"`
	CPUCores        int     `json:"cpu_cores"`
	CPUFrequencyGHz float64 `json:"cpu_frequency_ghz"`
	CPUCache        struct {
		L1KB int `json:"l1_cache_kb"`
		L2KB int `json:"l2_cache_kb"`
		L3MB int `json:"l3_cache_mb"`
	} `json:"cpu_cache"`
	MemoryGB       int    `json:"memory_size_gb"`
	MemoryType     string `json:"memory_type"`
	MemorySpeedMHz int    `json:"memory_speed_mhz"`
	StorageGB      int    `json:"storage_capacity_gb"`
	StorageType    string `json:"storage_type"`
	StorageIOPS    int    `json:"storage_iops"`
}

type NetworkResources struct {
	BandwidthMbps        int     `json:"bandwidth_allocation_mbps"`
	LatencyRequirementMs float64 `json:"latency_requirement_ms"`
	JitterToleranceMs    float64 `json:"jitter_tolerance_ms"`
	PacketLossPercent    float64 `json:"packet_loss_threshold_percent"`
	ConnectionDensityKm2 int     `json:"connection_density_per_km2"`
	PrimaryInterface     string  `json:"primary_interface"`
	BackupInterface      string  `json:"backup_interface"`
	ManagementInterface  string  `json:"management_interface"`
}

type VirtualizationParams struct {
	Hypervisor            string  `json:"hypervisor"`
	ContainerRuntime      string  `json:"container_runtime"`
	OrchestrationPlatform string  `json:"orchestration_platform"`
	ResourceIsolation     string  `json:"resource_isolation"`
	OverheadPercent       float64 `json:"virtualization_overhead_percent"`
}

type ResourceScaling struct {
	MinInstances     int    `json:"min_instances"`
	MaxInstances     int    `json:"max_instances"`
	ScalingPolicy    string `json:"scaling_policy"`
	ThresholdPercent int    `json:"scaling_threshold_percent"`
	MaxCPUCores      int    `json:"max_cpu_cores"`
	MaxMemoryGB      int    `json:"max_memory_gb"`
}

type PerformanceOptimization struct {
	CPUGovernor         string `json:"cpu_governor"`
	CPUAffinity         string `json:"cpu_affinity"`
	NUMATopology        string `json:"numa_topology"`
	HugePages           string `json:"huge_pages"`
	SwapUsage           string `json:"swap_usage"`
	DPDKEnabled         bool   `json:"dpdk_enabled"`
	SRIOVEnabled        bool   `json:"sr_iov_enabled"`
	NetworkAcceleration string `json:"network_acceleration"`
}

// BuildResources scales the category base ranges by complexity and the
// profile multipliers, then applies the priority boost and category skew.
func BuildResources(in Input, r *rng.Source) Resources {
	base, ok := resourceBases[in.Category]
	if !ok {
		base = resourceBases[domain.CategoryEMBB]
	}
	mult := in.Profile.ResourceMultipliers
	cm := ComplexityMultiplier(in.Complexity)

	cpu := int(float64(r.IntBetween(base.cpu[0], base.cpu[1])) * cm * nonZero(mult.CPU))
	memory := int(float64(r.IntBetween(base.memory[0], base.memory[1])) * cm * nonZero(mult.Memory))
	storage := int(float64(r.IntBetween(base.storage[0], base.storage[1])) * cm * nonZero(mult.Storage))
	network := nonZero(mult.Network)

	if in.Urgent() {
		cpu = int(float64(cpu) * 1.5)
		memory = int(float64(memory) * 1.3)
	}

	switch in.Category {
	case domain.CategoryURLLC, domain.CategoryV2X:
		cpu = int(float64(cpu) * 1.2)
	case domain.CategoryMMTC:
		memory = int(float64(memory) * 0.8)
		storage = int(float64(storage) * 1.5)
	case domain.CategoryEMBB:
		network *= 1.5
	}

	cpu = max(1, cpu)
	memory = max(1, memory)
	storage = max(1, storage)
	lowLatency := in.Category.LatencyCritical()

	var out Resources
	c := &out.Compute
	c.CPUArchitecture = r.Choice([]string{"x86_64", "ARM64", "RISC_V"})
	c.CPUCores = cpu
	c.CPUFrequencyGHz = rng.Round(r.Uniform(2.0, 4.5), 1)
	c.CPUCache.L1KB = r.IntBetween(32, 128)
	c.CPUCache.L2KB = r.IntBetween(256, 2048)
	c.CPUCache.L3MB = r.IntBetween(8, 64)
	c.MemoryGB = memory
	c.MemoryType = r.Choice([]string{"DDR4", "DDR5", "HBM2"})
	c.MemorySpeedMHz = r.IntBetween(2400, 4800)
	c.StorageGB = storage
	c.StorageType = r.Choice([]string{"NVMe_SSD", "SATA_SSD", "NVMe_PCIe4"})
	c.StorageIOPS = r.IntBetween(10000, 100000)

	out.Network = NetworkResources{
		BandwidthMbps:        int(float64(r.IntBetween(100, 10000)) * network),
		LatencyRequirementMs: rng.Round(r.Uniform(0.1, 100), 2),
		JitterToleranceMs:    rng.Round(r.Uniform(0.1, 10), 2),
		PacketLossPercent:    rng.Round(r.Uniform(0.001, 1), 3),
		ConnectionDensityKm2: r.IntBetween(1000, 1000000),
		PrimaryInterface:     r.Choice([]string{"10GbE", "25GbE", "40GbE", "100GbE"}),
		BackupInterface:      r.Choice([]string{"1GbE", "10GbE"}),
		ManagementInterface:  "1GbE",
	}

	out.Virtualization = VirtualizationParams{
		Hypervisor:            r.Choice([]string{"KVM", "Xen", "VMware_vSphere", "Hyper_V"}),
		ContainerRuntime:      r.Choice([]string{"Docker", "Containerd", "CRI_O", "Podman"}),
		OrchestrationPlatform: r.Choice([]string{"Kubernetes", "OpenShift", "Docker_Swarm"}),
		ResourceIsolation:     r.Choice([]string{"CPU_Pinning", "NUMA_Affinity", "SR_IOV", "DPDK"}),
		OverheadPercent:       rng.Round(r.Uniform(5, 15), 1),
	}

	out.Scaling = ResourceScaling{
		MinInstances:     max(1, cpu/4),
		MaxInstances:     cpu * 10,
		ScalingPolicy:    r.Choice([]string{"CPU_BASED", "MEMORY_BASED", "NETWORK_BASED"}),
		ThresholdPercent: r.IntBetween(70, 90),
		MaxCPUCores:      cpu * 2,
		MaxMemoryGB:      memory * 2,
	}

	out.Optimization = PerformanceOptimization{
		CPUGovernor:         r.Choice([]string{"performance", "powersave", "ondemand"}),
		CPUAffinity:         choose(lowLatency, "ENABLED", "DISABLED"),
		NUMATopology:        choose(cpu > 8, "OPTIMIZED", "DEFAULT"),
		HugePages:           choose(lowLatency, "ENABLED", "DISABLED"),
		SwapUsage:           choose(lowLatency, "DISABLED", "ENABLED"),
		DPDKEnabled:         lowLatency,
		SRIOVEnabled:        true,
		NetworkAcceleration: choose(in.Urgent(), "HARDWARE", "SOFTWARE"),
	}
	return out
}

// ComplexityMultiplier maps complexity 1..10 onto 0.7..2.5.
func ComplexityMultiplier(complexity int) float64 {
	return 0.5 + float64(complexity)/10*2.0
}

// MemoryRatio returns memory per cpu core.
func (c ComputeResources) MemoryRatio() float64 {
	if c.CPUCores <= 0 {
		return 0
	}
	return float64(c.MemoryGB) / float64(c.CPUCores)
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1.0
	}
	return v
}
