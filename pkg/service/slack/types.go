package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/optsync/pkg/domain/model"
)

// maxListedValues caps how many option values are spelled out per line
const maxListedValues = 20

func buildSummary(report *model.SyncReport) string {
	mode := "applied"
	if report.DryRun {
		mode = "dry run"
	}
	return fmt.Sprintf("Option sync for %s (%s): %d added, %d disabled, %d ordered",
		fieldLabel(report), mode, len(report.Plan.Add), len(report.Plan.Disable), len(report.Order))
}

func buildDetail(report *model.SyncReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Added:* %s\n", formatValues(report.Plan.Add))
	fmt.Fprintf(&sb, "*Disabled:* %s\n", formatValues(report.Plan.Disable))
	fmt.Fprintf(&sb, "*Order:* %s", formatValues(report.Order))
	return sb.String()
}

func fieldLabel(report *model.SyncReport) string {
	if report.FieldID == "" {
		return "custom field"
	}
	return "`" + report.FieldID + "`"
}

func formatValues(values []string) string {
	if len(values) == 0 {
		return "_none_"
	}
	if len(values) > maxListedValues {
		return strings.Join(values[:maxListedValues], ", ") + fmt.Sprintf(" and %d more", len(values)-maxListedValues)
	}
	return strings.Join(values, ", ")
}
