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

package batch

import (
	"fmt"

	"github.com/fatih/color"
)

// ReportFormatter defines how per-model outcomes and summaries are
// rendered for the console
type ReportFormatter interface {
	// FormatModelOutcome formats the result of one model directory
	FormatModelOutcome(result ModelResult, unit string) string

	// FormatRootSummary formats the closing line for one root directory
	FormatRootSummary(report RootReport, unit string) string

	// FormatGlobalSummary formats the final line for the whole batch
	FormatGlobalSummary(report *Report, unit string) string
}

// DefaultReportFormatter provides a default implementation of
// ReportFormatter
type DefaultReportFormatter struct{}

// NewDefaultReportFormatter creates a new DefaultReportFormatter
func NewDefaultReportFormatter() *DefaultReportFormatter {
	return &DefaultReportFormatter{}
}

// FormatModelOutcome formats one model directory's outcome
func (f *DefaultReportFormatter) FormatModelOutcome(result ModelResult, unit string) string {
	name := result.ModelName()
	switch {
	case result.Err != nil:
		return fmt.Sprintf("%s %s: %v", color.New(color.FgRed).Sprint("[Error]"), name, result.Err)
	case result.Count > 0:
		return fmt.Sprintf("%s %s: %d %s", color.New(color.FgGreen).Sprint("[Updated]"), name, result.Count, unit)
	default:
		return fmt.Sprintf("%s %s: pattern not found", color.New(color.FgYellow).Sprint("[Skipped]"), name)
	}
}

// FormatRootSummary formats the closing line for one root
func (f *DefaultReportFormatter) FormatRootSummary(report RootReport, unit string) string {
	return fmt.Sprintf("--- Finished %s. %d %s ---", report.Root, report.Changes, unit)
}

// FormatGlobalSummary formats the final aggregate line
func (f *DefaultReportFormatter) FormatGlobalSummary(report *Report, unit string) string {
	line := fmt.Sprintf("=== Batch complete. Total: %d %s ===", report.TotalChanges, unit)
	if len(report.Failed()) > 0 {
		line += fmt.Sprintf(" %s", color.New(color.FgRed).Sprintf("(%d model(s) failed)", len(report.Failed())))
	}
	return line
}
