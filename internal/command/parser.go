package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"anagram-quiz-service/internal/domain"
	"github.com/spf13/pflag"
)

// Command is a decoded chat directive.
type Command interface {
	command()
}

type (
	// Quiz poses a single problem: "~en".
	Quiz struct{ Language domain.Language }
	// GiveUp reveals the answer: "~giveup".
	GiveUp struct{}
	// Hint reveals part of the answer: "~hint 3" or "~hint 3 --random".
	Hint struct{ Request domain.HintRequest }
	// Contest starts a multi-round quiz: "~contest 10 en,ja".
	Contest struct {
		Rounds    int
		Languages []domain.Language
	}
	// Unrated cancels a running contest: "~unrated".
	Unrated struct{}
	// Enable turns the quiz on in a channel.
	Enable struct{}
	// Disable turns the quiz off in a channel.
	Disable struct{}
	// SetPrefix changes the command prefix: "~prefix !".
	SetPrefix struct{ Prefix string }
	// Help prints usage.
	Help struct{}
)

func (Quiz) command()      {}
func (GiveUp) command()    {}
func (Hint) command()      {}
func (Contest) command()   {}
func (Unrated) command()   {}
func (Enable) command()    {}
func (Disable) command()   {}
func (SetPrefix) command() {}
func (Help) command()      {}

// ErrUnknownCommand is returned for a directive no command matches.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError is a user-facing explanation of a malformed command.
type UsageError struct {
	Command string
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// Parser decodes directives (text after the prefix).
type Parser struct {
	languages map[domain.Language]struct{}
	maxRounds int
}

func NewParser(languages []domain.Language, maxRounds int) *Parser {
	set := make(map[domain.Language]struct{}, len(languages))
	for _, l := range languages {
		set[l] = struct{}{}
	}
	return &Parser{languages: set, maxRounds: maxRounds}
}

// Parse decodes one directive.
func (p *Parser) Parse(directive string) (Command, error) {
	fields := strings.Fields(directive)
	if len(fields) == 0 {
		return nil, ErrUnknownCommand
	}
	name, args := fields[0], fields[1:]

	if _, ok := p.languages[domain.Language(name)]; ok {
		return Quiz{Language: domain.Language(name)}, nil
	}
	switch name {
	case "giveup":
		return GiveUp{}, nil
	case "hint":
		return p.parseHint(args)
	case "contest":
		return p.parseContest(args)
	case "unrated":
		return Unrated{}, nil
	case "enable":
		return Enable{}, nil
	case "disable":
		return Disable{}, nil
	case "prefix":
		if len(args) != 1 {
			return nil, &UsageError{Command: name, Message: "please specify exactly one prefix."}
		}
		return SetPrefix{Prefix: args[0]}, nil
	case "help":
		return Help{}, nil
	default:
		return nil, ErrUnknownCommand
	}
}

func (p *Parser) parseHint(args []string) (Command, error) {
	fs := newFlagSet("hint")
	random := fs.BoolP("random", "r", false, "reveal random positions")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Command: "hint", Message: err.Error()}
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{Command: "hint", Message: "please specify the number of hint characters."}
	}
	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil || n < 0 {
		return nil, &UsageError{Command: "hint", Message: fmt.Sprintf("`%s` is invalid.", fs.Arg(0))}
	}
	mode := domain.HintFirst
	if *random {
		mode = domain.HintRandom
	}
	return Hint{Request: domain.HintRequest{Mode: mode, Count: n}}, nil
}

func (p *Parser) parseContest(args []string) (Command, error) {
	fs := newFlagSet("contest")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Command: "contest", Message: err.Error()}
	}
	if fs.NArg() < 2 {
		return nil, &UsageError{Command: "contest", Message: "usage: contest <number> <language>[,<language>...]"}
	}
	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil || n < 0 {
		return nil, &UsageError{Command: "contest", Message: "please specify an unsigned integer after 'contest'."}
	}
	if n < 1 {
		return nil, &UsageError{Command: "contest", Message: "too small number."}
	}
	if p.maxRounds > 0 && n > p.maxRounds {
		return nil, &UsageError{Command: "contest", Message: "too large number."}
	}

	var langs []domain.Language
	for _, arg := range fs.Args()[1:] {
		for _, tok := range strings.Split(arg, ",") {
			if tok == "" {
				continue
			}
			lang := domain.Language(tok)
			if _, ok := p.languages[lang]; !ok {
				return nil, &UsageError{Command: "contest", Message: fmt.Sprintf("unexpected language '%s'.", tok)}
			}
			langs = append(langs, lang)
		}
	}
	if len(langs) == 0 {
		return nil, &UsageError{Command: "contest", Message: "please specify at least one language."}
	}
	return Contest{Rounds: n, Languages: langs}, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
