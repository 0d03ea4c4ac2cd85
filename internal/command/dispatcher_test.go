package command_test

import (
	"context"
	"strings"
	"testing"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/command"
	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/infra/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

var alice = domain.Participant{ID: "u1", Name: "Alice"}

func newTestDispatcher(t *testing.T) *command.Dispatcher {
	t.Helper()
	en, err := dictionary.Build([]string{"listen", "silent"}, nil, dictionary.Identity)
	require.NoError(t, err)
	catalog := dictionary.NewCatalog()
	catalog.Add("en", "English word", en)

	sessions := memory.NewSessionStore(app.NewSessionFactory(catalog, app.WithRand(firstRand{})))
	service := app.NewQuizService(sessions, memory.NewSettingsStore(), catalog)
	return command.NewDispatcher(service, command.NewParser(catalog.Languages(), 5), zaptest.NewLogger(t))
}

func handle(t *testing.T, d *command.Dispatcher, text string) domain.Reply {
	t.Helper()
	reply, err := d.Handle(context.Background(), "ch", alice, text)
	require.NoError(t, err)
	return reply
}

func TestDisabledChannelOnlyAcceptsEnable(t *testing.T) {
	d := newTestDispatcher(t)

	require.True(t, handle(t, d, "~en").Empty())
	require.True(t, handle(t, d, "listen").Empty())
	require.True(t, handle(t, d, "~help").Empty())

	reply := handle(t, d, "~enable")
	require.Equal(t, []string{"The quiz is now enabled in this channel."}, reply.Messages)

	reply = handle(t, d, "~en")
	require.True(t, strings.HasSuffix(reply.Messages[0], "\neilnst"))
}

func TestGuessAndCommands(t *testing.T) {
	d := newTestDispatcher(t)
	handle(t, d, "~enable")
	handle(t, d, "~en")

	require.True(t, handle(t, d, "nope").Empty())
	reply := handle(t, d, "silent")
	require.Equal(t, []string{`Alice, "silent" is not the intended answer, but it is correct!`}, reply.Messages)

	handle(t, d, "~en")
	reply = handle(t, d, "~hint 2")
	require.Equal(t, []string{"The first 2 characters of the answer: `li`"}, reply.Messages)
	reply = handle(t, d, "~giveup")
	require.Equal(t, []string{`The answer was "listen".`}, reply.Messages)
}

func TestUsageErrorsAndUnknownCommands(t *testing.T) {
	d := newTestDispatcher(t)
	handle(t, d, "~enable")

	require.True(t, handle(t, d, "~fr").Empty())
	require.Equal(t, []string{"too large number."}, handle(t, d, "~contest 6 en").Messages)

	reply := handle(t, d, "~help")
	require.Len(t, reply.Messages, 1)
	require.Contains(t, reply.Messages[0], "~{LANG}: LANG=[en]")
}

func TestContestThroughDispatcher(t *testing.T) {
	d := newTestDispatcher(t)
	handle(t, d, "~enable")

	reply := handle(t, d, "~contest 2 en")
	require.True(t, strings.HasPrefix(reply.Messages[0], "Starting a 2-problem contest."))
	handle(t, d, "listen")
	reply = handle(t, d, "listen")
	require.Len(t, reply.Messages, 2)
	require.True(t, strings.HasPrefix(reply.Messages[1], "The 2-problem contest is over.\n1st Alice: 2 AC"))

	handle(t, d, "~contest 2 en")
	require.Equal(t, []string{"The contest has been cancelled."}, handle(t, d, "~unrated").Messages)
}

func TestPrefixChange(t *testing.T) {
	d := newTestDispatcher(t)
	handle(t, d, "~enable")

	require.Equal(t, []string{`The command prefix is now "!".`}, handle(t, d, "~prefix !").Messages)
	require.True(t, handle(t, d, "~en").Empty())
	require.NotEmpty(t, handle(t, d, "!en").Messages)

	reply := handle(t, d, "!disable")
	require.Equal(t, []string{"The quiz is now disabled in this channel."}, reply.Messages)
	require.True(t, handle(t, d, "!en").Empty())
}
