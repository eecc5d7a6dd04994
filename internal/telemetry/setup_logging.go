// Copyright 2025 Zunetech
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry configures the application's observability: structured
// logging, tracing, and metrics. This file sets up JSON logging that carries
// the active trace and span identifiers on every record, so a log line can
// always be matched to the trace of the request that produced it.
package telemetry

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// spanContextLogHandler wraps another slog.Handler and injects the
// OpenTelemetry trace and span IDs from the record's context, when present.
type spanContextLogHandler struct {
	slog.Handler
}

// handlerWithSpanContext wraps the provided base handler.
func handlerWithSpanContext(handler slog.Handler) *spanContextLogHandler {
	return &spanContextLogHandler{Handler: handler}
}

// Handle checks the context for a valid span and, when found, attaches the
// trace ID, span ID, and sampled flag before delegating to the wrapped
// handler.
func (t *spanContextLogHandler) Handle(ctx context.Context, record slog.Record) error {
	if s := trace.SpanContextFromContext(ctx); s.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", s.TraceID().String()),
			slog.String("span_id", s.SpanID().String()),
			slog.Bool("trace_sampled", s.TraceFlags().IsSampled()),
		)
	}
	return t.Handler.Handle(ctx, record)
}

// SetupLogging initializes logging for the whole application. Both the
// standard log package and slog write JSON-adjacent output to stdout and to
// app.log; slog records additionally carry trace correlation attributes.
func SetupLogging() {
	file, _ := os.Create("app.log")
	multiWriter := io.MultiWriter(os.Stdout, file)

	log.SetOutput(multiWriter)
	log.SetPrefix("[INFO] ")
	log.SetFlags(log.Ldate | log.Ltime)

	jsonHandler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{})
	slog.SetDefault(slog.New(handlerWithSpanContext(jsonHandler)))
	slog.SetLogLoggerLevel(slog.LevelInfo)
}
