package report

import (
	"strings"
	"testing"
	"time"

	"github.com/undistract/focus/internal/logbook"
)

func rec(intent string, minutes int, start time.Time) logbook.Record {
	return logbook.Record{Intent: intent, Minutes: minutes, Start: start}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	if s.TotalSessions != 0 {
		t.Errorf("TotalSessions = %d, want 0", s.TotalSessions)
	}
	if s.AvgMinutes != 0 {
		t.Errorf("AvgMinutes = %v, want 0", s.AvgMinutes)
	}
	if s.RecentAvg != 0 {
		t.Errorf("RecentAvg = %v, want 0", s.RecentAvg)
	}
}

func TestSummarize_Totals(t *testing.T) {
	// A Monday and a Tuesday morning
	mon := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	tue := time.Date(2026, 3, 3, 14, 0, 0, 0, time.Local)

	s := Summarize([]logbook.Record{
		rec("write spec", 30, mon),
		rec("review code", 60, mon.Add(2 * time.Hour)),
		rec("write tests", 45, tue),
	})

	if s.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", s.TotalSessions)
	}
	if s.TotalMinutes != 135 {
		t.Errorf("TotalMinutes = %d, want 135", s.TotalMinutes)
	}
	if s.AvgMinutes != 45 {
		t.Errorf("AvgMinutes = %v, want 45", s.AvgMinutes)
	}
	if s.MaxMinutes != 60 {
		t.Errorf("MaxMinutes = %d, want 60", s.MaxMinutes)
	}

	if s.SessionsByWeekday[time.Monday] != 2 {
		t.Errorf("Monday sessions = %d, want 2", s.SessionsByWeekday[time.Monday])
	}
	if s.BestWeekday != time.Monday {
		t.Errorf("BestWeekday = %s, want Monday (90 focused minutes)", s.BestWeekday)
	}
	if s.SessionsByHour[9] != 1 || s.SessionsByHour[11] != 1 || s.SessionsByHour[14] != 1 {
		t.Errorf("SessionsByHour = %v", s.SessionsByHour)
	}
}

func TestSummarize_RecentAvgUsesLastTen(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

	var records []logbook.Record
	// Ten old 10-minute sessions, then ten recent 50-minute sessions.
	for i := 0; i < 10; i++ {
		records = append(records, rec("old", 10, start.Add(time.Duration(i)*time.Hour)))
	}
	for i := 0; i < 10; i++ {
		records = append(records, rec("new", 50, start.Add(time.Duration(10+i)*time.Hour)))
	}

	s := Summarize(records)
	if s.RecentAvg != 50 {
		t.Errorf("RecentAvg = %v, want 50", s.RecentAvg)
	}
	if s.AvgMinutes != 30 {
		t.Errorf("AvgMinutes = %v, want 30", s.AvgMinutes)
	}
}

func TestTopKeywords_FiltersStopAndShortWords(t *testing.T) {
	start := time.Now()
	records := []logbook.Record{
		rec("write the report for the client", 30, start),
		rec("write more tests", 30, start),
		rec("fix CI", 30, start), // "ci" is too short after lowering
	}

	keywords := TopKeywords(records, 5)

	if len(keywords) == 0 {
		t.Fatal("TopKeywords() returned nothing")
	}
	if keywords[0].Word != "write" || keywords[0].Count != 2 {
		t.Errorf("top keyword = %+v, want write x2", keywords[0])
	}

	for _, kw := range keywords {
		if kw.Word == "the" || kw.Word == "for" {
			t.Errorf("stop word %q leaked into keywords", kw.Word)
		}
		if len(kw.Word) <= 2 {
			t.Errorf("short word %q leaked into keywords", kw.Word)
		}
	}
}

func TestTopKeywords_StripsPunctuationAndLimit(t *testing.T) {
	start := time.Now()
	records := []logbook.Record{
		rec("Refactor: parser, parser!", 30, start),
		rec("alpha beta gamma delta", 30, start),
	}

	keywords := TopKeywords(records, 2)

	if len(keywords) != 2 {
		t.Fatalf("TopKeywords(n=2) returned %d entries", len(keywords))
	}
	if keywords[0].Word != "parser" || keywords[0].Count != 2 {
		t.Errorf("top keyword = %+v, want parser x2", keywords[0])
	}
}

func TestRenderMarkdown_ContainsSections(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	records := []logbook.Record{rec("write report", 45, start)}

	doc := RenderMarkdown(Summarize(records), TopKeywords(records, 5))

	for _, want := range []string{
		"# Focus Session Insights Report",
		"## Summary Statistics",
		"- Total Sessions: 1",
		"## Productivity Patterns",
		"Most Productive Day: Monday",
		"## Common Focus Areas",
		"write: 1 occurrences",
		"## Recent Trend",
		"## Recommendations",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("RenderMarkdown() missing %q", want)
		}
	}
}

func TestRenderMarkdown_EmptyLog(t *testing.T) {
	doc := RenderMarkdown(Summarize(nil), nil)

	if !strings.Contains(doc, "No intention keywords yet.") {
		t.Error("RenderMarkdown() should handle an empty log")
	}
}
