package cli

import (
	"testing"

	"github.com/aadhamashraf/intentgen/internal/config"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateFields_Prefill(t *testing.T) {
	cfg := config.DefaultConfig()

	f := newGenerateFields(cfg, generation.BatchRequest{})
	assert.Equal(t, "100", f.count)
	assert.Equal(t, "42", f.seed)
	assert.Equal(t, anyKind, f.kind)
	assert.Equal(t, "json", f.format)

	count, seed := 7, uint64(3)
	f = newGenerateFields(cfg, generation.BatchRequest{Count: &count, Seed: &seed, Kind: "report_request", Format: "CSV"})
	assert.Equal(t, "7", f.count)
	assert.Equal(t, "3", f.seed)
	assert.Equal(t, "REPORT_REQUEST", f.kind)
	assert.Equal(t, "csv", f.format)
}

func TestGenerateFields_Request(t *testing.T) {
	f := &generateFields{count: " 25 ", seed: "9", kind: "MODIFICATION", format: "jsonl"}
	req, err := f.request()
	require.NoError(t, err)
	require.NotNil(t, req.Count)
	require.NotNil(t, req.Seed)
	assert.Equal(t, 25, *req.Count)
	assert.Equal(t, uint64(9), *req.Seed)
	assert.Equal(t, "MODIFICATION", req.Kind)
	assert.Equal(t, "jsonl", req.Format)

	f.kind = anyKind
	req, err = f.request()
	require.NoError(t, err)
	assert.Empty(t, req.Kind)
}

func TestGenerateFields_RequestRejects(t *testing.T) {
	_, err := (&generateFields{count: "0", seed: "1"}).request()
	assert.ErrorContains(t, err, "count")

	_, err = (&generateFields{count: "5", seed: "-1"}).request()
	assert.ErrorContains(t, err, "seed")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateCount("10000"))
	assert.Error(t, validateCount("10001"))
	assert.Error(t, validateCount("abc"))
	assert.NoError(t, validateSeed("18446744073709551615"))
	assert.Error(t, validateSeed(""))
}

func TestGenerateForm_Builds(t *testing.T) {
	f := &generateFields{count: "5", seed: "1", kind: anyKind, format: "json"}
	assert.NotNil(t, generateForm(f))
}
