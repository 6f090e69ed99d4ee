package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/specprep/specprep/internal/services"
)

var summaryHeaders = []string{"Sample", "Prefix", "Stars", "Pixels", "Columns", "Dropped px", "Unc→1e8", "Flux→1.0"}

// RenderSummary writes a per-sample overview of report followed by the
// written files.
func RenderSummary(w io.Writer, report services.RunReport, mode Mode) error {
	if mode == ModeStyled {
		_, err := io.WriteString(w, styledSummary(report))
		return err
	}
	_, err := io.WriteString(w, plainSummary(report))
	return err
}

func summaryRows(report services.RunReport) [][]string {
	rows := make([][]string, 0, len(report.Samples))
	for _, s := range report.Samples {
		rows = append(rows, []string{
			s.Name,
			s.Output.Prefix,
			strconv.Itoa(s.Stars),
			strconv.Itoa(s.Pixels),
			strconv.Itoa(s.Columns),
			strconv.Itoa(s.QC.DroppedPixels),
			strconv.Itoa(s.QC.ReplacedUncertainties),
			strconv.Itoa(s.QC.ReplacedFluxes),
		})
	}
	return rows
}

func plainSummary(report services.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s completed in %s\n", report.RunID, report.Duration.Round(time.Millisecond))
	b.WriteString(strings.Join(summaryHeaders, "\t") + "\n")
	for _, row := range summaryRows(report) {
		b.WriteString(strings.Join(row, "\t") + "\n")
	}
	for _, s := range report.Samples {
		for _, f := range s.Output.Files {
			fmt.Fprintf(&b, "%s\t%d\tsha256:%s\n", f.Path, f.SizeBytes, f.Checksum)
		}
	}
	return b.String()
}

func styledSummary(report services.RunReport) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(summaryHeaders...).
		Rows(summaryRows(report)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case col >= 2:
				return NumberStyle
			default:
				return CellStyle
			}
		})

	var files []string
	for _, s := range report.Samples {
		for _, f := range s.Output.Files {
			files = append(files, fmt.Sprintf("%s %s %s",
				SuccessStyle.Render(SymbolCheck),
				f.Path,
				MutedStyle.Render(fmt.Sprintf("%s sha256:%s", humanize.Bytes(uint64(f.SizeBytes)), shortDigest(f.Checksum)))))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("specprep run complete"),
		SubtitleStyle.Render(fmt.Sprintf("run %s %s %s", report.RunID, SymbolArrowRight, report.Duration.Round(time.Millisecond))),
		t.String(),
		strings.Join(files, "\n"),
	) + "\n"
}

func shortDigest(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
