package app

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"go.uber.org/zap"
)

// DefaultPrefix marks a chat message as a command.
const DefaultPrefix = "~"

// SessionRepository abstracts the channel registry (one Session per enabled channel).
// Implementations guard only the map itself; quiz operations lock the Session.
type SessionRepository interface {
	GetOrCreate(channel string) *Session
	Get(channel string) (*Session, bool)
	Delete(channel string)
	Channels() []string
}

// SettingsStore persists which channels are enabled and their command prefix.
type SettingsStore interface {
	Enabled(ctx context.Context) ([]string, error)
	Enable(ctx context.Context, channel string) error
	Disable(ctx context.Context, channel string) error
	Prefix(ctx context.Context, channel string) (string, bool, error)
	SetPrefix(ctx context.Context, channel, prefix string) error
}

// QuizService contains the quiz use cases, routed per channel.
type QuizService struct {
	sessions SessionRepository
	settings SettingsStore
	catalog  *dictionary.Catalog
	logger   *zap.Logger
	prefix   string
}

// ServiceOption customizes a QuizService.
type ServiceOption func(*QuizService)

// WithDefaultPrefix sets the prefix used by channels without a stored one.
func WithDefaultPrefix(p string) ServiceOption {
	return func(s *QuizService) {
		if p != "" {
			s.prefix = p
		}
	}
}

// WithServiceLogger attaches a logger.
func WithServiceLogger(l *zap.Logger) ServiceOption {
	return func(s *QuizService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewQuizService(sessions SessionRepository, settings SettingsStore, catalog *dictionary.Catalog, opts ...ServiceOption) *QuizService {
	s := &QuizService{
		sessions: sessions,
		settings: settings,
		catalog:  catalog,
		logger:   zap.NewNop(),
		prefix:   DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the loaded dictionaries.
func (s *QuizService) Catalog() *dictionary.Catalog {
	return s.catalog
}

// Restore creates sessions for every persisted channel plus seed.
func (s *QuizService) Restore(ctx context.Context, seed ...string) error {
	enabled, err := s.settings.Enabled(ctx)
	if err != nil {
		return fmt.Errorf("list enabled channels: %w", err)
	}
	for _, channel := range seed {
		if err := s.settings.Enable(ctx, channel); err != nil {
			return fmt.Errorf("enable %s: %w", channel, err)
		}
	}
	for _, channel := range append(enabled, seed...) {
		s.sessions.GetOrCreate(channel)
	}
	s.logger.Info("channels restored", zap.Int("count", len(s.sessions.Channels())))
	return nil
}

// IsEnabled reports whether channel has a registry entry.
func (s *QuizService) IsEnabled(channel string) bool {
	_, ok := s.sessions.Get(channel)
	return ok
}

// EnableChannel registers channel and persists the choice.
func (s *QuizService) EnableChannel(ctx context.Context, channel string) (domain.Reply, error) {
	var reply domain.Reply
	if s.IsEnabled(channel) {
		reply.Say("The quiz is already enabled in this channel.")
		return reply, nil
	}
	if err := s.settings.Enable(ctx, channel); err != nil {
		return domain.Reply{}, err
	}
	s.sessions.GetOrCreate(channel)
	s.logger.Info("channel enabled", zap.String("channel", channel))
	reply.Say("The quiz is now enabled in this channel.")
	return reply, nil
}

// DisableChannel drops the channel's session, discarding any quiz in flight.
func (s *QuizService) DisableChannel(ctx context.Context, channel string) (domain.Reply, error) {
	if _, err := s.session(channel); err != nil {
		return domain.Reply{}, err
	}
	if err := s.settings.Disable(ctx, channel); err != nil {
		return domain.Reply{}, err
	}
	s.sessions.Delete(channel)
	s.logger.Info("channel disabled", zap.String("channel", channel))
	var reply domain.Reply
	reply.Say("The quiz is now disabled in this channel.")
	return reply, nil
}

// Prefix returns the command prefix of channel.
func (s *QuizService) Prefix(ctx context.Context, channel string) (string, error) {
	p, ok, err := s.settings.Prefix(ctx, channel)
	if err != nil {
		return "", err
	}
	if !ok || p == "" {
		return s.prefix, nil
	}
	return p, nil
}

// SetPrefix changes the command prefix of channel.
func (s *QuizService) SetPrefix(ctx context.Context, channel, prefix string) (domain.Reply, error) {
	if _, err := s.session(channel); err != nil {
		return domain.Reply{}, err
	}
	if err := s.settings.SetPrefix(ctx, channel, prefix); err != nil {
		return domain.Reply{}, err
	}
	var reply domain.Reply
	reply.Say("The command prefix is now \"%s\".", prefix)
	return reply, nil
}

// StartSingleQuiz poses one problem in lang.
func (s *QuizService) StartSingleQuiz(_ context.Context, channel string, lang domain.Language) (domain.Reply, error) {
	session, err := s.session(channel)
	if err != nil {
		return domain.Reply{}, err
	}
	return session.StartSingle(lang)
}

// SubmitGuess judges free text sent to channel.
func (s *QuizService) SubmitGuess(_ context.Context, channel string, participant domain.Participant, text string) (domain.Outcome, error) {
	session, err := s.session(channel)
	if err != nil {
		return domain.Outcome{}, err
	}
	return session.Submit(participant, text), nil
}

// GiveUp reveals the current answer.
func (s *QuizService) GiveUp(_ context.Context, channel string) (domain.Reply, error) {
	session, err := s.session(channel)
	if err != nil {
		return domain.Reply{}, err
	}
	return session.GiveUp(), nil
}

// StartContest begins a rounds-long contest over languages.
func (s *QuizService) StartContest(_ context.Context, channel string, rounds int, languages []domain.Language) (domain.Reply, error) {
	session, err := s.session(channel)
	if err != nil {
		return domain.Reply{}, err
	}
	return session.StartContest(rounds, languages)
}

// ForceEndContest cancels the contest of channel.
func (s *QuizService) ForceEndContest(_ context.Context, channel string) (domain.Reply, error) {
	session, err := s.session(channel)
	if err != nil {
		return domain.Reply{}, err
	}
	return session.ForceEnd(), nil
}

// RequestHint reveals part of the current answer.
func (s *QuizService) RequestHint(_ context.Context, channel string, req domain.HintRequest) (domain.Reply, error) {
	session, err := s.session(channel)
	if err != nil {
		return domain.Reply{}, err
	}
	return session.Hint(req), nil
}

func (s *QuizService) session(channel string) (*Session, error) {
	session, ok := s.sessions.Get(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChannelNotEnabled, channel)
	}
	return session, nil
}
