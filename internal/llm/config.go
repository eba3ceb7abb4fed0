package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskJudge asks for a full structured review of one record.
	TaskJudge TaskType = "judge"
	// TaskMetric asks for a single 0..10 score on one named metric.
	TaskMetric TaskType = "metric"
	// TaskParaphrase asks for one reworded description.
	TaskParaphrase TaskType = "paraphrase"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM judge and paraphraser.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	SampleSize int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the judge disabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "mistral",
		TimeoutMs:  60000,
		MaxRetries: 2,
		SampleSize: 10,
		Tasks: map[TaskType]TaskConfig{
			TaskJudge:      {Temperature: 0.1, MaxTokens: 2048, TimeoutMs: 120000},
			TaskMetric:     {Temperature: 0.0, MaxTokens: 16, TimeoutMs: 30000},
			TaskParaphrase: {Temperature: 0.7, MaxTokens: 256, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads INTENTGEN_LLM_* environment variables, falling back to
// defaults for unset or unparsable values.
func LoadConfig() LLMConfig {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays the INTENTGEN_LLM_* environment variables on cfg.
func ApplyEnv(cfg LLMConfig) LLMConfig {
	tasks := make(map[TaskType]TaskConfig, len(cfg.Tasks))
	for k, v := range cfg.Tasks {
		tasks[k] = v
	}
	cfg.Tasks = tasks

	if b, err := strconv.ParseBool(os.Getenv("INTENTGEN_LLM_ENABLED")); err == nil {
		cfg.Enabled = b
	}
	if b, err := strconv.ParseBool(os.Getenv("INTENTGEN_LLM_LOG_CALLS")); err == nil {
		cfg.LogCalls = b
	}
	if v := os.Getenv("INTENTGEN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("INTENTGEN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := envInt("INTENTGEN_LLM_TIMEOUT_MS"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("INTENTGEN_LLM_MAX_RETRIES"); ok && n >= 0 {
		cfg.MaxRetries = n
	}
	if n, ok := envInt("INTENTGEN_LLM_SAMPLE_SIZE"); ok && n > 0 {
		cfg.SampleSize = n
	}

	applyTaskTimeoutEnv(&cfg, TaskJudge, "INTENTGEN_LLM_JUDGE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskMetric, "INTENTGEN_LLM_METRIC_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskParaphrase, "INTENTGEN_LLM_PARAPHRASE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	n, ok := envInt(envName)
	if !ok || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
