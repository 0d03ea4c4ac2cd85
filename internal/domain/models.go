package domain

import "fmt"

// Language identifies a configured dictionary, e.g. "en" or "de".
type Language string

// Classification is the verdict for a guess against the held answer.
type Classification int

const (
	// WrongAnswer leaves the quiz untouched and produces no response.
	WrongAnswer Classification = iota
	// Assumed is the intended answer.
	Assumed
	// Anagram is another curated word with the same letters.
	Anagram
	// Full is a word with the same letters found only in the full word list.
	Full
)

func (c Classification) String() string {
	switch c {
	case Assumed:
		return "assumed"
	case Anagram:
		return "anagram"
	case Full:
		return "full"
	default:
		return "wrong"
	}
}

// Accepted reports whether the guess solves the problem.
func (c Classification) Accepted() bool {
	return c != WrongAnswer
}

// HintMode selects how hint characters are revealed.
type HintMode int

const (
	HintFirst HintMode = iota
	HintRandom
)

// HintRequest asks for Count graphemes of the answer.
type HintRequest struct {
	Mode  HintMode
	Count int
}

// Participant identifies whoever sent a guess.
type Participant struct {
	ID   string
	Name string
}

// LeaderboardEntry is one ranked line of a finished contest.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	UserID      string  `json:"userId"`
	DisplayName string  `json:"displayName"`
	Solves      int     `json:"solves"`
	MeanSeconds float64 `json:"meanSeconds"`
}

// Summary renders the per-participant result, e.g. "3 AC, average speed = 1.250 sec".
func (e LeaderboardEntry) Summary() string {
	return fmt.Sprintf("%d AC, average speed = %.3f sec", e.Solves, e.MeanSeconds)
}

// Reply is the ordered list of messages an operation wants delivered to the channel.
type Reply struct {
	Messages []string `json:"messages"`
}

// Say appends a message.
func (r *Reply) Say(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Empty reports whether there is nothing to send.
func (r Reply) Empty() bool {
	return len(r.Messages) == 0
}

// Outcome is the result of a submitted guess.
type Outcome struct {
	Class Classification `json:"class"`
	Reply
}
