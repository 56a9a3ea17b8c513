package csvutil

import (
	"strings"
	"testing"
)

func TestWriteStandings(t *testing.T) {
	var sb strings.Builder
	rows := []StandingRow{
		{StudentName: "John Doe", Email: "john@example.com", Finished: 3, Total: 4, ReviewsDone: 5, Progress: 75, Badge: "Performer"},
		{StudentName: "Jane Smith", Email: "jane@example.com", Finished: 0, Total: 4, ReviewsDone: 0, Progress: 0, Badge: "Beginner"},
	}
	if err := WriteStandings(&sb, rows); err != nil {
		t.Fatalf("WriteStandings() error = %v", err)
	}

	out := sb.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "Student,Email,Finished,Total,Reviews,Progress %,Badge" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "John Doe,john@example.com,3,4,5,75,Performer" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestWriteStandings_QuotesCommas(t *testing.T) {
	var sb strings.Builder
	rows := []StandingRow{
		{StudentName: "Doe, John", Email: "john@example.com", Badge: "Beginner"},
	}
	if err := WriteStandings(&sb, rows); err != nil {
		t.Fatalf("WriteStandings() error = %v", err)
	}
	if !strings.Contains(sb.String(), `"Doe, John"`) {
		t.Errorf("comma in name not quoted: %s", sb.String())
	}
}

func TestWriteTeamProgress(t *testing.T) {
	var sb strings.Builder
	rows := []TeamRow{
		{TeamName: "Alpha", Section: "CS-3A", Members: 4, Progress: 50},
	}
	if err := WriteTeamProgress(&sb, rows); err != nil {
		t.Fatalf("WriteTeamProgress() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1] != "Alpha,CS-3A,4,50" {
		t.Errorf("row = %q", lines[1])
	}
}
