package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskJudge))
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("INTENTGEN_LLM_ENABLED", "true")
	t.Setenv("INTENTGEN_LLM_MODEL", "llama3.2")
	t.Setenv("INTENTGEN_LLM_TIMEOUT_MS", "9000")
	t.Setenv("INTENTGEN_LLM_SAMPLE_SIZE", "3")
	t.Setenv("INTENTGEN_LLM_JUDGE_TIMEOUT_MS", "15000")
	t.Setenv("INTENTGEN_LLM_PARAPHRASE_TIMEOUT_MS", "4000")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 3, cfg.SampleSize)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskJudge))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskMetric))
	assert.Equal(t, 4000, cfg.TaskTimeout(TaskParaphrase))
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("INTENTGEN_LLM_JUDGE_TIMEOUT_MS", "not-a-number")
	t.Setenv("INTENTGEN_LLM_MAX_RETRIES", "-4")

	cfg := LoadConfig()

	assert.Equal(t, 120000, cfg.TaskTimeout(TaskJudge))
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks = map[TaskType]TaskConfig{}
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskMetric))
}

func TestApplyEnv_KeepsBaseWhenUnset(t *testing.T) {
	base := DefaultConfig()
	base.Enabled = true
	base.Model = "phi3"
	t.Setenv("INTENTGEN_LLM_ENABLED", "maybe")
	t.Setenv("INTENTGEN_LLM_METRIC_TIMEOUT_MS", "500")

	cfg := ApplyEnv(base)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "phi3", cfg.Model)
	assert.Equal(t, 500, cfg.TaskTimeout(TaskMetric))
	assert.Equal(t, 30000, base.TaskTimeout(TaskMetric), "base tasks must not be mutated")
}
