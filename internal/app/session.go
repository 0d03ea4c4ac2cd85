package app

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"go.uber.org/zap"
)

// DefaultMaxRounds bounds the length of a contest.
const DefaultMaxRounds = 100

// Session is the quiz state of one channel. Every exported operation holds
// the session mutex for its whole duration, so operations on a channel are
// applied one at a time and none is dropped.
type Session struct {
	id          string
	catalog     *dictionary.Catalog
	now         func() time.Time
	rng         dictionary.Rand
	placeholder string
	maxRounds   int
	logger      *zap.Logger

	mu       sync.Mutex
	status   Status
	board    *contestBoard
	selector dictionary.Selector
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now, for deterministic timings in tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithRand replaces the session's random source.
func WithRand(rng dictionary.Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

// WithHintPlaceholder sets the mask used by random hints.
func WithHintPlaceholder(p string) SessionOption {
	return func(s *Session) {
		if p != "" {
			s.placeholder = p
		}
	}
}

// WithMaxRounds sets the upper bound for contest length.
func WithMaxRounds(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// SessionFactory builds the session of a newly enabled channel.
type SessionFactory func(channel string) *Session

// NewSession returns a StandingBy session for channel.
func NewSession(channel string, catalog *dictionary.Catalog, opts ...SessionOption) *Session {
	s := &Session{
		id:          channel,
		catalog:     catalog,
		now:         time.Now,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		placeholder: DefaultHintPlaceholder,
		maxRounds:   DefaultMaxRounds,
		logger:      zap.NewNop(),
		status:      StandingBy{},
		board:       newContestBoard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("channel", channel))
	return s
}

// NewSessionFactory binds catalog and options into a SessionFactory.
func NewSessionFactory(catalog *dictionary.Catalog, opts ...SessionOption) SessionFactory {
	return func(channel string) *Session {
		return NewSession(channel, catalog, opts...)
	}
}

// ID is the channel identifier.
func (s *Session) ID() string {
	return s.id
}

// Status returns the current state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// StartSingle poses a single problem in lang, replacing any open problem or contest.
func (s *Session) StartSingle(lang domain.Language) (domain.Reply, error) {
	dict, ok := s.catalog.Get(lang)
	if !ok {
		return domain.Reply{}, fmt.Errorf("%w: %s", domain.ErrUnknownLanguage, lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var reply domain.Reply
	s.abandonLocked(&reply)
	p := newProblem(dict, lang, s.catalog.Label(lang), s.rng, s.now())
	s.status = Holding{Problem: p}
	reply.Say("%s", prompt(p))
	return reply, nil
}

// StartContest begins a contest of rounds problems drawn from languages,
// replacing any open problem or contest.
func (s *Session) StartContest(rounds int, languages []domain.Language) (domain.Reply, error) {
	if rounds < 1 || rounds > s.maxRounds {
		return domain.Reply{}, fmt.Errorf("%w: %d not in 1..%d", domain.ErrInvalidRounds, rounds, s.maxRounds)
	}
	selector, err := dictionary.NewSelector(s.catalog, languages)
	if err != nil {
		return domain.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var reply domain.Reply
	s.abandonLocked(&reply)
	s.selector = selector
	s.board.reset()

	p := s.drawLocked()
	next, err := newContesting(p, 1, rounds)
	if err != nil {
		return domain.Reply{}, err
	}
	s.status = next
	s.logger.Info("contest started",
		zap.Int("rounds", rounds),
		zap.Any("languages", selector.Languages()),
	)
	reply.Say("Starting a %d-problem contest.\n%s\n%s", rounds, roundHeader(next), prompt(p))
	return reply, nil
}

// Submit judges a guess from participant.
func (s *Session) Submit(participant domain.Participant, text string) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch st := s.status.(type) {
	case StandingBy:
		return domain.Outcome{Class: domain.WrongAnswer}
	case Holding:
		class := st.Problem.Classify(text)
		out := domain.Outcome{Class: class}
		if !class.Accepted() {
			return out
		}
		out.Say("%s", s.correctMessage(participant, st.Problem, class, text))
		s.status = StandingBy{}
		return out
	case Contesting:
		class := st.Problem.Classify(text)
		out := domain.Outcome{Class: class}
		if !class.Accepted() {
			return out
		}
		s.board.credit(participant, s.elapsed(st.Problem))
		out.Say("%s", s.correctMessage(participant, st.Problem, class, text))
		s.advanceLocked(st, &out.Reply)
		return out
	default:
		panic(fmt.Sprintf("unexpected status %T", st))
	}
}

// GiveUp reveals the answer and ends or advances the quiz.
func (s *Session) GiveUp() domain.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reply domain.Reply
	s.giveUpLocked(&reply)
	return reply
}

// ForceEnd cancels a running contest without a leaderboard.
func (s *Session) ForceEnd() domain.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reply domain.Reply
	if _, ok := s.status.(Contesting); !ok {
		reply.Say("No contest is running.")
		return reply
	}
	s.status = StandingBy{}
	s.board.reset()
	s.selector = nil
	s.logger.Info("contest cancelled")
	reply.Say("The contest has been cancelled.")
	return reply
}

// Hint answers a hint request for the current problem.
func (s *Session) Hint(req domain.HintRequest) domain.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reply domain.Reply
	p, ok := currentProblem(s.status)
	if !ok {
		reply.Say("No problem has been posed.")
		return reply
	}

	hint := BuildHint(p.Answer, req, s.rng, s.placeholder)
	switch hint.Verdict {
	case HintZeroLength:
		reply.Say("A zero-length hint is meaningless.")
	case HintTooLong:
		reply.Say("The hint is longer than the answer.")
	case HintGivesAway:
		reply.Say("That hint would give the answer away, so it counts as giving up.")
		s.giveUpLocked(&reply)
	case HintShown:
		if req.Mode == domain.HintRandom {
			reply.Say("Random hint, %d characters: `%s`", req.Count, hint.Text)
		} else {
			reply.Say("The first %d characters of the answer: `%s`", req.Count, hint.Text)
		}
	}
	return reply
}

func (s *Session) giveUpLocked(reply *domain.Reply) {
	switch st := s.status.(type) {
	case StandingBy:
		reply.Say("No problem has been posed.")
	case Holding:
		reply.Say("The answer was \"%s\".", st.Problem.Answer)
		s.status = StandingBy{}
	case Contesting:
		reply.Say("The answer was \"%s\".", st.Problem.Answer)
		s.advanceLocked(st, reply)
	default:
		panic(fmt.Sprintf("unexpected status %T", st))
	}
}

// advanceLocked resolves the current contest round: the final round publishes
// the leaderboard and stands by, any other round poses the next problem.
func (s *Session) advanceLocked(cur Contesting, reply *domain.Reply) {
	if cur.Final() {
		entries := Aggregate(s.board.results())
		if len(entries) == 0 {
			reply.Say("The %d-problem contest is over.\nNobody solved a problem.", cur.Total)
		} else {
			reply.Say("The %d-problem contest is over.\n%s", cur.Total, FormatLeaderboard(entries))
		}
		s.logger.Info("contest finished", zap.Int("rounds", cur.Total), zap.Int("participants", len(entries)))
		s.board.reset()
		s.selector = nil
		s.status = StandingBy{}
		return
	}

	p := s.drawLocked()
	next, err := newContesting(p, cur.Round+1, cur.Total)
	if err != nil {
		// unreachable: cur.Round < cur.Total here
		panic(err)
	}
	s.status = next
	reply.Say("%s\n%s", roundHeader(next), prompt(p))
}

func (s *Session) drawLocked() Problem {
	dict, lang := s.selector.Select(s.rng)
	return newProblem(dict, lang, s.catalog.Label(lang), s.rng, s.now())
}

// abandonLocked drops the open problem, revealing its answer. A running
// contest is discarded without a leaderboard.
func (s *Session) abandonLocked(reply *domain.Reply) {
	switch st := s.status.(type) {
	case Holding:
		reply.Say("The previous problem was abandoned. The answer was \"%s\".", st.Problem.Answer)
	case Contesting:
		reply.Say("The running contest was abandoned. The answer was \"%s\".", st.Problem.Answer)
		s.logger.Info("contest abandoned", zap.Int("round", st.Round), zap.Int("rounds", st.Total))
		s.board.reset()
		s.selector = nil
	}
	s.status = StandingBy{}
}

func (s *Session) elapsed(p Problem) float64 {
	return s.now().Sub(p.StartedAt).Seconds()
}

func (s *Session) correctMessage(who domain.Participant, p Problem, class domain.Classification, text string) string {
	guess := dictionary.Lower(text)
	switch class {
	case domain.Anagram:
		return fmt.Sprintf("%s, \"%s\" is not the intended answer, but it is correct!", who.Name, guess)
	case domain.Full:
		return fmt.Sprintf("%s, \"%s\" is not in the question list, but it is correct!", who.Name, guess)
	default:
		return fmt.Sprintf("%s, correct! (%.3f sec)\nThe answer was \"%s\".", who.Name, s.elapsed(p), p.Answer)
	}
}

func currentProblem(st Status) (Problem, bool) {
	switch st := st.(type) {
	case Holding:
		return st.Problem, true
	case Contesting:
		return st.Problem, true
	default:
		return Problem{}, false
	}
}

func prompt(p Problem) string {
	return fmt.Sprintf("Sorted riddle: which %s sorts to this?\n%s", p.Label, p.Key)
}

func roundHeader(c Contesting) string {
	return fmt.Sprintf("Problem %d (%d/%d)", c.Round, c.Round, c.Total)
}
