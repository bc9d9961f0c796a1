package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about patch runs
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 PatchOutcome represents the outcome of a patch run against a file
type PatchOutcome int

const (
	PatchApplied PatchOutcome = iota
	PatchUnchanged
	PatchPending
	PatchError
)

// 🖼️ PatchReport describes one patch run for display
type PatchReport struct {
	Outcome      PatchOutcome
	Path         string
	Replacements int
	Description  string
	Error        error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogPatch logs a patch outcome with appropriate emoji and formatting
func (u *UserLogger) LogPatch(report PatchReport) {
	relPath := filepath.Base(report.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch report.Outcome {
	case PatchApplied:
		prefix = "🔄"
		action = "Updated"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case PatchUnchanged:
		prefix = "⏭️"
		action = "Unchanged"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case PatchPending:
		prefix = "📋"
		action = "Pending"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case PatchError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if report.Replacements > 0 {
		msg += fmt.Sprintf(" (%d replacements)", report.Replacements)
	}
	if report.Description != "" {
		msg += fmt.Sprintf(" (%s)", report.Description)
	}

	if report.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(report.Error)
		u.log.Error().Err(report.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}
