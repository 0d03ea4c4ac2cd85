package cli

import (
	"testing"

	"anagram-quiz-service/internal/config"
	"anagram-quiz-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDictionarySpecs(t *testing.T) {
	cfg := config.Config{Dictionaries: []config.Dictionary{
		{Language: "en", Label: "English word", Path: "dict/english.toml", Normalize: "lower"},
		{Language: "ja", Label: "Japanese word"},
	}}

	specs, paths, err := dictionarySpecs(cfg)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	require.Equal(t, domain.Language("en"), specs[0].Language)
	require.Equal(t, "hund", specs[0].Normalize("HUND"))
	require.Equal(t, "HUND", specs[1].Normalize("HUND"))
	require.Equal(t, map[domain.Language]string{"en": "dict/english.toml"}, paths)

	cfg.Dictionaries[1].Normalize = "katakana"
	_, _, err = dictionarySpecs(cfg)
	require.Error(t, err)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"start", "migrate", "seed"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, sub.Name())
	}
}
