// Package report computes summary statistics and the local insights
// report from the session log.
package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/undistract/focus/internal/logbook"
)

// Summary holds aggregate statistics over the session log.
type Summary struct {
	TotalSessions int
	TotalMinutes  int
	AvgMinutes    float64
	MaxMinutes    int

	SessionsByWeekday map[time.Weekday]int
	MinutesByWeekday  map[time.Weekday]int
	SessionsByHour    map[int]int
	MinutesByHour     map[int]int

	BestWeekday time.Weekday
	BestHour    int

	// RecentAvg is the mean length of the last ten sessions.
	RecentAvg float64
}

// Summarize aggregates records into a Summary. Records are assumed oldest
// first, as the log store appends them.
func Summarize(records []logbook.Record) Summary {
	s := Summary{
		SessionsByWeekday: make(map[time.Weekday]int),
		MinutesByWeekday:  make(map[time.Weekday]int),
		SessionsByHour:    make(map[int]int),
		MinutesByHour:     make(map[int]int),
	}

	for _, rec := range records {
		s.TotalSessions++
		s.TotalMinutes += rec.Minutes
		if rec.Minutes > s.MaxMinutes {
			s.MaxMinutes = rec.Minutes
		}

		wd := rec.Start.Weekday()
		s.SessionsByWeekday[wd]++
		s.MinutesByWeekday[wd] += rec.Minutes
		s.SessionsByHour[rec.Start.Hour()]++
		s.MinutesByHour[rec.Start.Hour()] += rec.Minutes
	}

	if s.TotalSessions > 0 {
		s.AvgMinutes = float64(s.TotalMinutes) / float64(s.TotalSessions)
	}

	s.BestWeekday = bestWeekday(s.MinutesByWeekday)
	s.BestHour = bestHour(s.MinutesByHour)

	recent := records
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	if len(recent) > 0 {
		total := 0
		for _, rec := range recent {
			total += rec.Minutes
		}
		s.RecentAvg = float64(total) / float64(len(recent))
	}

	return s
}

// bestWeekday returns the weekday with the most focused minutes. Ties and
// empty input resolve to the earliest weekday, Sunday first.
func bestWeekday(minutes map[time.Weekday]int) time.Weekday {
	best := time.Sunday
	bestMinutes := -1
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if minutes[wd] > bestMinutes {
			best = wd
			bestMinutes = minutes[wd]
		}
	}
	return best
}

func bestHour(minutes map[int]int) int {
	best := 0
	bestMinutes := -1
	for h := 0; h < 24; h++ {
		if minutes[h] > bestMinutes {
			best = h
			bestMinutes = minutes[h]
		}
	}
	return best
}

// Keyword is one intention keyword with its occurrence count.
type Keyword struct {
	Word  string
	Count int
}

// stopWords are filtered out of the keyword ranking.
var stopWords = map[string]bool{
	"the": true, "and": true, "to": true, "a": true, "of": true,
	"for": true, "in": true, "on": true, "with": true, "is": true,
	"it": true, "that": true, "be": true, "as": true, "this": true,
	"by": true, "an": true, "at": true,
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// TopKeywords ranks the most common words across intentions, skipping
// stop words and words shorter than three characters.
func TopKeywords(records []logbook.Record, n int) []Keyword {
	counts := make(map[string]int)
	for _, rec := range records {
		text := nonWord.ReplaceAllString(strings.ToLower(rec.Intent), " ")
		for _, word := range strings.Fields(text) {
			if len(word) <= 2 || stopWords[word] {
				continue
			}
			counts[word]++
		}
	}

	keywords := make([]Keyword, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, Keyword{Word: word, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})

	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}

// RenderMarkdown produces the insights report document.
func RenderMarkdown(s Summary, keywords []Keyword) string {
	var b strings.Builder

	b.WriteString("# Focus Session Insights Report\n\n")
	b.WriteString("## Summary Statistics\n")
	fmt.Fprintf(&b, "- Total Sessions: %d\n", s.TotalSessions)
	fmt.Fprintf(&b, "- Total Focus Time: %d minutes (%.1f hours)\n", s.TotalMinutes, float64(s.TotalMinutes)/60)
	fmt.Fprintf(&b, "- Average Session Duration: %.1f minutes\n", s.AvgMinutes)
	fmt.Fprintf(&b, "- Longest Session: %d minutes\n\n", s.MaxMinutes)

	b.WriteString("## Productivity Patterns\n")
	fmt.Fprintf(&b, "- Most Productive Day: %s\n", s.BestWeekday)
	fmt.Fprintf(&b, "- Most Productive Hour: %d:00\n\n", s.BestHour)

	b.WriteString("## Common Focus Areas\n")
	if len(keywords) == 0 {
		b.WriteString("No intention keywords yet.\n")
	} else {
		b.WriteString("Top keywords in your intentions:\n")
		for _, kw := range keywords {
			fmt.Fprintf(&b, "- %s: %d occurrences\n", kw.Word, kw.Count)
		}
	}
	b.WriteString("\n")

	trend := "decreasing"
	if s.RecentAvg > s.AvgMinutes {
		trend = "increasing"
	}
	b.WriteString("## Recent Trend\n")
	fmt.Fprintf(&b, "Your recent sessions are %s in duration compared to your overall average.\n", trend)
	fmt.Fprintf(&b, "Recent average: %.1f minutes\n", s.RecentAvg)
	fmt.Fprintf(&b, "Overall average: %.1f minutes\n\n", s.AvgMinutes)

	b.WriteString("## Recommendations\n")
	fmt.Fprintf(&b, "1. Schedule important work during your most productive hour (%d:00)\n", s.BestHour)
	fmt.Fprintf(&b, "2. %s appears to be your most productive day; plan important tasks then\n", s.BestWeekday)
	fmt.Fprintf(&b, "3. Your sessions average %.1f minutes; consider whether this fits your work style\n", s.AvgMinutes)

	return b.String()
}
