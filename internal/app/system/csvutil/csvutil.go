// internal/app/system/csvutil/csvutil.go
package csvutil

import (
	"encoding/csv"
	"io"
	"strconv"
)

// StandingRow is one exported line of the class standings report.
type StandingRow struct {
	StudentName string
	Email       string
	Finished    int
	Total       int
	ReviewsDone int
	Progress    int // percent
	Badge       string
}

// WriteStandings writes the standings report as CSV with a header row.
func WriteStandings(w io.Writer, rows []StandingRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Student", "Email", "Finished", "Total", "Reviews", "Progress %", "Badge"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.StudentName,
			r.Email,
			strconv.Itoa(r.Finished),
			strconv.Itoa(r.Total),
			strconv.Itoa(r.ReviewsDone),
			strconv.Itoa(r.Progress),
			r.Badge,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TeamRow is one exported line of the team progress report.
type TeamRow struct {
	TeamName string
	Section  string
	Members  int
	Progress int // percent
}

// WriteTeamProgress writes the team progress report as CSV with a
// header row.
func WriteTeamProgress(w io.Writer, rows []TeamRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Team", "Section", "Members", "Progress %"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.TeamName,
			r.Section,
			strconv.Itoa(r.Members),
			strconv.Itoa(r.Progress),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
