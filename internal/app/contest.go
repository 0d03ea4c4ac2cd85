package app

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"anagram-quiz-service/internal/domain"
)

// ContestData is one participant's solve times in the running contest.
type ContestData struct {
	SolveTimes []float64
}

// Count is the number of credited solves.
func (c ContestData) Count() int {
	return len(c.SolveTimes)
}

// Mean is the average solve time in seconds, 0 without solves.
func (c ContestData) Mean() float64 {
	if len(c.SolveTimes) == 0 {
		return 0
	}
	var sum float64
	for _, t := range c.SolveTimes {
		sum += t
	}
	return sum / float64(len(c.SolveTimes))
}

// ParticipantResult pairs a participant with their contest data.
type ParticipantResult struct {
	Participant domain.Participant
	Data        ContestData
}

// Aggregate ranks results by solve count (descending) and then by mean time
// rounded to milliseconds (ascending). Equal keys keep input order and still
// receive distinct sequential ranks.
func Aggregate(results []ParticipantResult) []domain.LeaderboardEntry {
	sorted := append([]ParticipantResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := sorted[i].Data.Count(), sorted[j].Data.Count()
		if ci != cj {
			return ci > cj
		}
		return millis(sorted[i].Data.Mean()) < millis(sorted[j].Data.Mean())
	})

	entries := make([]domain.LeaderboardEntry, 0, len(sorted))
	for i, r := range sorted {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      r.Participant.ID,
			DisplayName: r.Participant.Name,
			Solves:      r.Data.Count(),
			MeanSeconds: r.Data.Mean(),
		})
	}
	return entries
}

func millis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

// FormatLeaderboard renders one "<ordinal> <name>: <summary>" line per entry.
func FormatLeaderboard(entries []domain.LeaderboardEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s: %s", Ordinal(e.Rank), e.DisplayName, e.Summary())
	}
	return b.String()
}

// Ordinal renders 1 as "1st", 2 as "2nd", 11 as "11th", 23 as "23rd".
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// contestBoard accumulates credited solves in first-solve order.
type contestBoard struct {
	order []domain.Participant
	data  map[string]*ContestData
}

func newContestBoard() *contestBoard {
	return &contestBoard{data: make(map[string]*ContestData)}
}

func (b *contestBoard) credit(p domain.Participant, seconds float64) {
	d, ok := b.data[p.ID]
	if !ok {
		d = &ContestData{}
		b.data[p.ID] = d
		b.order = append(b.order, p)
	}
	d.SolveTimes = append(d.SolveTimes, seconds)
}

func (b *contestBoard) results() []ParticipantResult {
	out := make([]ParticipantResult, 0, len(b.order))
	for _, p := range b.order {
		out = append(out, ParticipantResult{Participant: p, Data: *b.data[p.ID]})
	}
	return out
}

func (b *contestBoard) reset() {
	b.order = nil
	b.data = make(map[string]*ContestData)
}
