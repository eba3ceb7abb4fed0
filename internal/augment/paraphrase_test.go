package augment

import (
	"context"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedClient struct {
	text string
	err  error
	reqs []llm.GenerateRequest
}

func (c *cannedClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.reqs = append(c.reqs, req)
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.text}, nil
}

func (c *cannedClient) Available(context.Context) bool { return c.err == nil }

func TestLLMParaphraser_Paraphrase(t *testing.T) {
	client := &cannedClient{text: "Sure! ```json\n{\"paraphrase\": \" Roll out a UPF for eMBB downtown \"}\n```"}

	out, err := NewLLMParaphraser(client).Paraphrase(context.Background(), "Deploy UPF for eMBB in the urban center")
	require.NoError(t, err)
	assert.Equal(t, "Roll out a UPF for eMBB downtown", out)

	require.Len(t, client.reqs, 1)
	assert.Equal(t, llm.TaskParaphrase, client.reqs[0].Task)
	assert.True(t, client.reqs[0].JSON)
	assert.Contains(t, client.reqs[0].UserPrompt, "INTENT: Deploy UPF for eMBB in the urban center")
}

func TestLLMParaphraser_RejectsBadReplies(t *testing.T) {
	in := "Deploy UPF for eMBB"
	for name, reply := range map[string]string{
		"echo":        `{"paraphrase": "deploy upf for embb"}`,
		"empty":       `{"paraphrase": "  "}`,
		"placeholder": `{"paraphrase": "Deploy {nf_type} now"}`,
		"no json":     `I would rather not.`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewLLMParaphraser(&cannedClient{text: reply}).Paraphrase(context.Background(), in)
			assert.ErrorIs(t, err, llm.ErrInvalidOutput)
		})
	}
}

func TestLLMParaphraser_ClientError(t *testing.T) {
	_, err := NewLLMParaphraser(&cannedClient{err: llm.ErrTimeout}).Paraphrase(context.Background(), "Deploy UPF")
	assert.ErrorIs(t, err, llm.ErrTimeout)
}
