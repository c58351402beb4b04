package batch

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func init() {
	// Keep skipped-model messages visible.
	pterm.EnableDebugMessages()
}

// 📢 UserLogger provides user-friendly console feedback about a batch run.
// Every message is mirrored to zerolog for debugging.
type UserLogger struct {
	log       zerolog.Logger
	formatter ReportFormatter
}

// 🎯 NewUserLogger creates a new user logger from the context's zerolog
// logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		formatter: NewDefaultReportFormatter(),
	}
}

// 📝 LogRootStart announces processing of one root directory
func (u *UserLogger) LogRootStart(root string, opName string, target string) {
	msg := fmt.Sprintf("Starting batch %s in %s (target: %s)", opName, root, target)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Str("root", root).Str("operation", opName).Str("target", target).Msg("starting root")
}

// 🔍 LogRootEmpty reports a root directory that yielded no matches
func (u *UserLogger) LogRootEmpty(root string, target string) {
	msg := fmt.Sprintf("No files named %q found in %s", target, root)
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⏭️"}).Println(msg)
	u.log.Warn().Str("root", root).Str("target", target).Msg("no matches")
}

// 🔎 LogMatches reports how many models were discovered under a root
func (u *UserLogger) LogMatches(root string, count int) {
	msg := fmt.Sprintf("Found %d model(s) to process in %s", count, root)
	pterm.Info.Println(msg)
	u.log.Info().Str("root", root).Int("models", count).Msg("models discovered")
}

// 📄 LogModelOutcome reports the result of one model directory
func (u *UserLogger) LogModelOutcome(result ModelResult, unit string) {
	msg := u.formatter.FormatModelOutcome(result, unit)
	switch {
	case result.Err != nil:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
		u.log.Error().Err(result.Err).Str("model", result.Dir).Msg("model failed")
	case result.Count > 0:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
		u.log.Info().Str("model", result.Dir).Int("count", result.Count).Msg("model updated")
	default:
		pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"}).Println(msg)
		u.log.Debug().Str("model", result.Dir).Msg("model skipped")
	}
}

// 📊 LogRootFinish reports the per-root aggregate
func (u *UserLogger) LogRootFinish(report RootReport, unit string) {
	msg := u.formatter.FormatRootSummary(report, unit)
	pterm.Info.Println(msg)
	u.log.Info().Str("root", report.Root).Int("changes", report.Changes).Msg("root finished")
}

// ✅ LogGlobalSummary reports the grand total for the whole batch
func (u *UserLogger) LogGlobalSummary(report *Report, unit string) {
	msg := u.formatter.FormatGlobalSummary(report, unit)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
	u.log.Info().Int("total", report.TotalChanges).Int("failed", len(report.Failed())).Msg("batch finished")
}
