package domain

import "errors"

var (
	// ErrChannelNotEnabled is returned when an operation targets a channel with no registry entry.
	ErrChannelNotEnabled = errors.New("channel not enabled")
	// ErrUnknownLanguage indicates a language id with no loaded dictionary.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrNoLanguages is returned when a selector is configured with an empty language list.
	ErrNoLanguages = errors.New("no languages given")
	// ErrInvalidRounds indicates a contest round count outside the accepted range.
	ErrInvalidRounds = errors.New("invalid contest round count")
	// ErrEmptyDictionary indicates a dictionary source without any question words.
	ErrEmptyDictionary = errors.New("dictionary has no questions")
	// ErrInvalidWord indicates a blank or otherwise unusable dictionary word.
	ErrInvalidWord = errors.New("invalid dictionary word")
)
