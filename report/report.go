// Package report turns read outcomes into the text a user sees.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/laiambryant/scoped-reader/reader"
	"github.com/laiambryant/scoped-reader/stats"
	s "github.com/laiambryant/scoped-reader/structs"
)

const (
	NotFoundMessage     = "Dear user, the file cannot be found."
	AccessDeniedMessage = "Dear user, the file cannot be opened."
	IOFailureMessage    = "Dear user, we could not read the file."
	FinishedMessage     = "Dear user, reading the file finished either successfully or due to an error."
)

// UserMessage maps a read failure to the message shown to the user.
// Specific kinds are matched before the IOFailure catch-all.
func UserMessage(err error) string {
	var fileErr *reader.FileError
	if !errors.As(err, &fileErr) {
		return IOFailureMessage
	}
	switch fileErr.Kind {
	case s.NotFound:
		return NotFoundMessage
	case s.AccessDenied:
		return AccessDeniedMessage
	default:
		return IOFailureMessage
	}
}

func paint(colored bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Render writes outcome to w in the requested format
func Render(w io.Writer, outcome reader.ReadOutcome, format s.OutputFormat, colored bool) error {
	switch format {
	case s.FormatText, "":
		if !outcome.Completed() {
			return renderFailure(w, outcome, colored)
		}
		if _, err := io.WriteString(w, outcome.Content); err != nil {
			return &WriteError{Err: err}
		}
		return nil
	case s.FormatChars:
		if !outcome.Completed() {
			return renderFailure(w, outcome, colored)
		}
		for _, ch := range outcome.Chars() {
			if _, err := fmt.Fprintln(w, string(ch)); err != nil {
				return &WriteError{Err: err}
			}
		}
		return nil
	case s.FormatTable:
		return renderTable(w, outcome, colored)
	default:
		return &UnknownFormatError{Format: string(format)}
	}
}

func renderFailure(w io.Writer, outcome reader.ReadOutcome, colored bool) error {
	red := paint(colored, color.FgRed)
	if _, err := fmt.Fprintln(w, red.Sprint(UserMessage(outcome.Err))); err != nil {
		return &WriteError{Err: err}
	}
	if _, err := fmt.Fprintf(w, "  %s: %s\n", outcome.Err.Kind.Code(), outcome.Err.Message()); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func renderTable(w io.Writer, outcome reader.ReadOutcome, colored bool) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Status", "Kind", "Characters", "Bytes", "Detail"})
	table.SetAutoWrapText(false)

	if outcome.Completed() {
		status := paint(colored, color.FgGreen).Sprint("completed")
		table.Append([]string{
			outcome.FilePath,
			status,
			"-",
			strconv.Itoa(len(outcome.Chars())),
			strconv.Itoa(len(outcome.Content)),
			"",
		})
	} else {
		status := paint(colored, color.FgRed).Sprint("failed")
		table.Append([]string{
			outcome.FilePath,
			status,
			outcome.Err.Kind.String(),
			"-",
			"-",
			outcome.Err.Message(),
		})
	}
	table.Render()
	return nil
}

// RenderSummary writes a table with the counters collected in rs
func RenderSummary(w io.Writer, rs *stats.ReadStats, colored bool) {
	completed, notFound, accessDenied, ioFailure := rs.Snapshot()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Outcome", "Count"})
	table.Append([]string{paint(colored, color.FgGreen).Sprint("Completed"), strconv.Itoa(completed)})
	table.Append([]string{s.NotFound.String(), strconv.Itoa(notFound)})
	table.Append([]string{s.AccessDenied.String(), strconv.Itoa(accessDenied)})
	table.Append([]string{s.IOFailure.String(), strconv.Itoa(ioFailure)})
	table.SetFooter([]string{"Total", strconv.Itoa(rs.Total())})
	table.Render()
}

// Finished writes the closing message printed after every read attempt
func Finished(w io.Writer, colored bool) error {
	if _, err := fmt.Fprintln(w, paint(colored, color.Faint).Sprint(FinishedMessage)); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}
