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

// Package task holds the per-document operations run by a batch.
package task

import (
	"context"
	"fmt"

	"github.com/walteh/smbprecheck/pkg/workbook"
)

// DefaultSheet is the sheet every task works on unless configured otherwise
const DefaultSheet = "Test Case"

// 📝 Result is the outcome of one task run. Message is always set.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Succeeded builds a successful Result
func Succeeded(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Failed builds a failed Result carrying err
func Failed(err error) Result {
	return Result{Message: err.Error(), Err: err}
}

// 🔧 Task runs against one open document. The caller opens, saves and
// closes the document; a Task never does.
type Task interface {
	Name() string
	// Mutates reports whether the document must be saved after a successful run
	Mutates() bool
	Run(ctx context.Context, doc *workbook.Document) Result
}
