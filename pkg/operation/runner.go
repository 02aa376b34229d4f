// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations, optionally off the calling goroutine
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	r.logger.Debug().Str("operation", op.Name()).Bool("async", r.async).Msg("running operation")
	if !r.async {
		return op.Execute(ctx)
	}
	return r.runAsync(ctx, op)
}

// ⚡ runAsync runs the operation on its own goroutine and waits for
// either completion or context cancellation
func (r *Runner) runAsync(ctx context.Context, op Operation) error {
	done := make(chan error, 1)
	go func() {
		done <- op.Execute(ctx)
	}()

	select {
	case <-ctx.Done():
		return errors.Errorf("operation %s cancelled: %w", op.Name(), ctx.Err())
	case err := <-done:
		if err != nil {
			return errors.Errorf("executing %s: %w", op.Name(), err)
		}
		return nil
	}
}
