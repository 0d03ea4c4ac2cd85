package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/domain"
	"go.uber.org/zap"
)

// Dispatcher turns chat messages into quiz operations.
type Dispatcher struct {
	service *app.QuizService
	parser  *Parser
	logger  *zap.Logger
}

func NewDispatcher(service *app.QuizService, parser *Parser, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{service: service, parser: parser, logger: logger}
}

// Handle processes one message sent to channel by from. Messages in disabled
// channels are ignored, except the enable command.
func (d *Dispatcher) Handle(ctx context.Context, channel string, from domain.Participant, text string) (domain.Reply, error) {
	prefix, err := d.service.Prefix(ctx, channel)
	if err != nil {
		return domain.Reply{}, err
	}
	enabled := d.service.IsEnabled(channel)

	if !strings.HasPrefix(text, prefix) {
		if !enabled {
			return domain.Reply{}, nil
		}
		outcome, err := d.service.SubmitGuess(ctx, channel, from, text)
		if err != nil {
			return domain.Reply{}, err
		}
		if outcome.Class.Accepted() {
			d.logger.Debug("guess accepted",
				zap.String("channel", channel),
				zap.String("user", from.ID),
				zap.Stringer("class", outcome.Class),
			)
		}
		return outcome.Reply, nil
	}

	cmd, err := d.parser.Parse(strings.TrimPrefix(text, prefix))
	if errors.Is(err, ErrUnknownCommand) {
		return domain.Reply{}, nil
	}
	if _, isEnable := cmd.(Enable); !enabled && !isEnable {
		return domain.Reply{}, nil
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		var reply domain.Reply
		reply.Say("%s", usage.Message)
		return reply, nil
	}
	if err != nil {
		return domain.Reply{}, err
	}

	d.logger.Debug("command",
		zap.String("channel", channel),
		zap.String("user", from.ID),
		zap.String("command", fmt.Sprintf("%T", cmd)),
	)
	return d.execute(ctx, channel, prefix, cmd)
}

func (d *Dispatcher) execute(ctx context.Context, channel, prefix string, cmd Command) (domain.Reply, error) {
	switch c := cmd.(type) {
	case Quiz:
		return d.service.StartSingleQuiz(ctx, channel, c.Language)
	case GiveUp:
		return d.service.GiveUp(ctx, channel)
	case Hint:
		return d.service.RequestHint(ctx, channel, c.Request)
	case Contest:
		return d.service.StartContest(ctx, channel, c.Rounds, c.Languages)
	case Unrated:
		return d.service.ForceEndContest(ctx, channel)
	case Enable:
		return d.service.EnableChannel(ctx, channel)
	case Disable:
		return d.service.DisableChannel(ctx, channel)
	case SetPrefix:
		return d.service.SetPrefix(ctx, channel, c.Prefix)
	case Help:
		var reply domain.Reply
		reply.Say("%s", d.usage(prefix))
		return reply, nil
	default:
		return domain.Reply{}, fmt.Errorf("unhandled command %T", c)
	}
}

func (d *Dispatcher) usage(prefix string) string {
	langs := d.service.Catalog().Languages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = string(l)
	}
	list := strings.Join(names, "|")

	var b strings.Builder
	fmt.Fprintf(&b, "USAGE [QUIZ]:\n")
	fmt.Fprintf(&b, "    %s{LANG}: LANG=[%s]\n    => poses a single problem in that language\n", prefix, list)
	fmt.Fprintf(&b, "    %sgiveup\n    => shows the answer of the current problem\n", prefix)
	fmt.Fprintf(&b, "    %shint NUM [-r]\n    => shows the first NUM characters (or NUM random ones with -r)\n", prefix)
	fmt.Fprintf(&b, "USAGE [CONTEST]:\n")
	fmt.Fprintf(&b, "    %scontest NUM LANG[,LANG...]\n    => poses NUM problems in a row\n", prefix)
	fmt.Fprintf(&b, "    %sunrated\n    => cancels the running contest\n", prefix)
	fmt.Fprintf(&b, "USAGE [SETTINGS]:\n")
	fmt.Fprintf(&b, "    %senable | %sdisable | %sprefix P | %shelp", prefix, prefix, prefix, prefix)
	return b.String()
}
