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

// Package services exposes the application's operations to the transport
// layer: script generation, trend discovery, hook-image synthesis, media
// critique, history persistence, persona management, and history export.
// This file defines the error taxonomy every operation reports through.
package services

import (
	"context"
	"errors"
	"fmt"
)

// The failure classes the operations surface. Callers branch on these with
// errors.Is; the wrapped detail stays available for logs.
var (
	// ErrInvalidRequest indicates unusable caller input, rejected before any
	// model call: an empty topic or an empty upload.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCredentialMissing indicates no API credential is configured. The
	// generative operations refuse to start without one.
	ErrCredentialMissing = errors.New("no API credential configured")

	// ErrConnectionFailed indicates the generative service could not be
	// reached or did not answer before the deadline. It also covers rejected
	// credentials, since the caller's remedy is the same.
	ErrConnectionFailed = errors.New("could not reach the generative service")

	// ErrGenerationFailed indicates the service answered but the response was
	// unusable: undecodable payload, missing required fields, or no content.
	ErrGenerationFailed = errors.New("generation produced no usable result")
)

// classifyTransportError folds a raw model-call error into the taxonomy.
// Deadline expiry, cancellation, rejected credentials, and network failures
// all become ErrConnectionFailed; the raw error is wrapped so the detail
// survives for logging.
func classifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: deadline expired: %v", ErrConnectionFailed, err)
	}
	return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
}

// generationError wraps a payload-level failure with its cause.
func generationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGenerationFailed, fmt.Sprintf(format, args...))
}
