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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// blockingOperation waits for release (or the context) when executed
type blockingOperation struct {
	release chan struct{}
	result  error
}

func (o *blockingOperation) Name() string { return "blocking" }

func (o *blockingOperation) Execute(ctx context.Context) error {
	select {
	case <-o.release:
		return o.result
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestRunnerSync(t *testing.T) {
	logger := zerolog.Nop()

	op := &blockingOperation{release: make(chan struct{})}
	close(op.release)

	require.NoError(t, NewRunner(&logger, false).Run(context.Background(), op))

	op = &blockingOperation{release: make(chan struct{}), result: errors.New("boom")}
	close(op.release)
	err := NewRunner(&logger, false).Run(context.Background(), op)
	require.Error(t, err)
}

func TestRunnerAsyncCompletes(t *testing.T) {
	logger := zerolog.Nop()

	op := &blockingOperation{release: make(chan struct{})}
	close(op.release)

	require.NoError(t, NewRunner(&logger, true).Run(context.Background(), op))
}

func TestRunnerAsyncCancellation(t *testing.T) {
	logger := zerolog.Nop()

	ctx, cancel := context.WithCancel(context.Background())
	op := &blockingOperation{release: make(chan struct{})}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := NewRunner(&logger, true).Run(ctx, op)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
