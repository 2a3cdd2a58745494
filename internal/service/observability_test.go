package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "log-workout", Success: true, Fields: map[string]any{"type": "running"}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "map-ready", Success: true, Recovered: true, Err: errors.New("bad payload")})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "delete-workout", Err: errors.New("disk full")})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=use_case use_case=log-workout")
	assert.Contains(t, out, "type=running")
	assert.Contains(t, out, `level=WARN msg=use_case_recovered use_case=map-ready`)
	assert.Contains(t, out, `error="bad payload"`)
	assert.Contains(t, out, "level=ERROR msg=use_case use_case=delete-workout")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}

func TestSpan_RecoveredCountsAsSuccess(t *testing.T) {
	obs := &recordingObserver{}
	sp := startSpan(obs, "map-ready")
	sp.recovered = true
	sp.fields["workouts"] = 0
	sp.end(context.Background(), errors.New("corrupt"))

	if assert.Len(t, obs.events, 1) {
		e := obs.events[0]
		assert.True(t, e.Success)
		assert.True(t, e.Recovered)
		assert.Equal(t, 0, e.Fields["workouts"])
	}
}
