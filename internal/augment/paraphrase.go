package augment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/llm"
)

// Paraphraser rewords one intent description.
type Paraphraser interface {
	Paraphrase(ctx context.Context, text string) (string, error)
}

type paraphraseReply struct {
	Paraphrase string `json:"paraphrase"`
}

const paraphraseSystemPrompt = `You are a 5G network operations engineer who rewrites network intents for a training dataset.`

const paraphrasePromptFormat = `Rewrite the following network intent so it keeps exactly the same meaning,
the same network functions, slice, location and numbers, but uses different wording.

INTENT: %s

Respond ONLY with a JSON object: {"paraphrase": "<the rewritten intent>"}`

// LLMParaphraser asks a model for the rewording.
type LLMParaphraser struct {
	client llm.LLMClient
}

func NewLLMParaphraser(client llm.LLMClient) *LLMParaphraser {
	return &LLMParaphraser{client: client}
}

func (p *LLMParaphraser) Paraphrase(ctx context.Context, text string) (string, error) {
	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskParaphrase,
		SystemPrompt: paraphraseSystemPrompt,
		UserPrompt:   fmt.Sprintf(paraphrasePromptFormat, text),
		JSON:         true,
	})
	if err != nil {
		return "", err
	}
	reply, err := llm.ExtractJSON(resp.Text, validateParaphrase(text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply.Paraphrase), nil
}

// validateParaphrase rejects empty replies, echoes of the input and
// unresolved template placeholders.
func validateParaphrase(original string) llm.SchemaValidator[paraphraseReply] {
	return func(r paraphraseReply) error {
		out := strings.TrimSpace(r.Paraphrase)
		switch {
		case out == "":
			return errors.New("empty paraphrase")
		case strings.EqualFold(out, strings.TrimSpace(original)):
			return errors.New("paraphrase repeats the input")
		case strings.ContainsAny(out, "{}"):
			return errors.New("paraphrase contains placeholders")
		}
		return nil
	}
}

// fatalParaphraseErr reports failures that would repeat for every record.
func fatalParaphraseErr(ctx context.Context, err error) bool {
	return errors.Is(err, llm.ErrOllamaUnavailable) || errors.Is(err, llm.ErrModelNotFound) || ctx.Err() != nil
}
