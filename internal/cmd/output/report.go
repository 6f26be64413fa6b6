package output

import (
	"io"
	"strconv"

	"github.com/agentstation/placemap"
)

// ReportToTableData lays out a run report as a summary table, an outputs
// table and, when features were skipped, an omissions table.
func ReportToTableData(report *placemap.Report) []Data {
	s := report.Stats
	summary := Data{
		Title:           "Summary",
		Headers:         []string{"Features", "Places", "Reused", "Generated", "Duplicates", "Omitted", "Dropped", "Unreadable Geometry"},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
		Rows: [][]string{{
			strconv.Itoa(s.Features),
			strconv.Itoa(s.Places),
			strconv.Itoa(s.Reused),
			strconv.Itoa(s.Generated),
			strconv.Itoa(s.Duplicates),
			strconv.Itoa(s.Omitted),
			strconv.Itoa(s.Dropped),
			strconv.Itoa(s.InvalidGeometries),
		}},
	}

	outputs := Data{
		Title:           "Outputs",
		Headers:         []string{"Output", "Location", "Bytes", "Status"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	for _, out := range report.Outputs {
		outputs.Rows = append(outputs.Rows, []string{
			Title(out.Output.String()),
			out.Location,
			strconv.Itoa(out.Bytes),
			outputStatus(out, report.DryRun),
		})
	}

	tables := []Data{summary, outputs}
	if len(report.Omissions) > 0 {
		omissions := Data{
			Title:           "Omitted features",
			Headers:         []string{"Index", "Identity", "Reason"},
			ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
		}
		for _, o := range report.Omissions {
			identity := o.Identity
			if identity == "" {
				identity = "-"
			}
			omissions.Rows = append(omissions.Rows, []string{
				strconv.Itoa(o.Index),
				identity,
				Title(o.Reason.String()),
			})
		}
		tables = append(tables, omissions)
	}
	return tables
}

func outputStatus(out placemap.OutputStatus, dryRun bool) string {
	switch {
	case out.Error != "":
		return "failed: " + out.Error
	case out.Written:
		return "written"
	case dryRun:
		return "dry run"
	default:
		return "skipped"
	}
}

// FormatReport writes a run report in the given format.
func FormatReport(w io.Writer, report *placemap.Report, format Format) error {
	formatter := NewFormatter(format)

	var data any = report
	switch format {
	case FormatTable, "":
		data = ReportToTableData(report)
	}
	return formatter.Format(w, data)
}
