package condsync

import (
	"context"
	"fmt"
	"runtime/trace"
	"strings"
)

const (
	traceTaskType    = "condsync-serialqueue"
	traceAsyncRegion = "condsync-async"
	traceSyncRegion  = "condsync-sync"
	traceSemaRegion  = "condsync-sema-wait"
	traceCategory    = "condsync"
)

// tracer writes events to the execution tracer. Messages are only
// formatted while tracing is enabled.
type tracer struct {
	ctx   context.Context
	label string
	task  *trace.Task
}

func newTracer(label string) *tracer {
	ctx, task := trace.NewTask(context.Background(), traceTaskType)
	return &tracer{ctx: ctx, label: label, task: task}
}

func (t *tracer) log(msg string) {
	if trace.IsEnabled() {
		var sb strings.Builder
		sb.WriteString(t.label)
		sb.WriteRune(' ')
		sb.WriteString(msg)
		trace.Log(t.ctx, traceCategory, sb.String())
	}
}

func (t *tracer) logf(format string, args ...any) {
	if trace.IsEnabled() {
		var sb strings.Builder
		sb.WriteString(t.label)
		sb.WriteRune(' ')
		fmt.Fprintf(&sb, format, args...)
		trace.Log(t.ctx, traceCategory, sb.String())
	}
}

// region runs fn inside a trace region of the given type. The region
// is ended even if fn panics.
func (t *tracer) region(typ string, fn func()) {
	defer trace.StartRegion(t.ctx, typ).End()
	fn()
}

func (t *tracer) end() {
	t.task.End()
}
