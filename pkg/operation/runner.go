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
	"time"

	"github.com/rs/zerolog"
)

// 🏃 Runner executes operations one at a time and logs how they ended
type Runner struct {
	now func() time.Time
}

// 🏗️ NewRunner creates a new runner
func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("operation", op.Name()).Msg("starting operation")

	start := r.now()
	sum, err := op.Execute(ctx)
	duration := r.now().Sub(start)

	ev := logger.Info()
	if err != nil {
		ev = logger.Error().Err(err)
	}
	ev = ev.Str("operation", op.Name()).Dur("duration", duration)
	if sum != nil {
		ev = ev.Str("state", sum.State.String()).Int("total", sum.Total)
		if sum.LogPath != "" {
			ev = ev.Str("log", sum.LogPath)
		}
	}
	ev.Msg("operation finished")

	return sum, err
}
