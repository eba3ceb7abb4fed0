package llm

import (
	"context"
	"io"
	"log/slog"
)

// LLMCallEvent describes one Generate call, retries included.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Tokens    int
	Success   bool
	ErrorCode string
}

type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one "llm_call" line per event. Failed calls log at
// WARN.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	level, status := slog.LevelInfo, "ok"
	if !event.Success {
		level, status = slog.LevelWarn, "err:"+event.ErrorCode
	}
	o.logger.Log(context.Background(), level, "llm_call",
		"task", event.Task,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
		"tokens", event.Tokens,
		"status", status,
	)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
