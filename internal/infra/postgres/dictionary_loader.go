package postgres

import (
	"context"
	"errors"
	"fmt"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DictionaryLoader loads word lists from the dictionary_words table.
type DictionaryLoader struct {
	pool *pgxpool.Pool
}

func NewDictionaryLoader(pool *pgxpool.Pool) *DictionaryLoader {
	return &DictionaryLoader{pool: pool}
}

// LoadDictionary returns the stored lists of lang. Full is non-nil whenever the
// imported dictionary had a full list, even an empty one.
func (l *DictionaryLoader) LoadDictionary(ctx context.Context, lang domain.Language) (dictionary.RawDictionary, error) {
	var hasFull bool
	err := l.pool.QueryRow(ctx, `SELECT has_full FROM dictionaries WHERE language=$1`, string(lang)).Scan(&hasFull)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return dictionary.RawDictionary{}, fmt.Errorf("load dictionary %s: %w", lang, err)
	}

	rows, err := l.pool.Query(ctx,
		`SELECT word, full_list FROM dictionary_words WHERE language=$1 ORDER BY full_list, position`,
		string(lang))
	if err != nil {
		return dictionary.RawDictionary{}, fmt.Errorf("load dictionary %s: %w", lang, err)
	}
	defer rows.Close()

	var raw dictionary.RawDictionary
	for rows.Next() {
		var (
			word string
			full bool
		)
		if err := rows.Scan(&word, &full); err != nil {
			return dictionary.RawDictionary{}, fmt.Errorf("scan dictionary %s: %w", lang, err)
		}
		if full {
			raw.Full = append(raw.Full, word)
		} else {
			raw.Questions = append(raw.Questions, word)
		}
	}
	if err := rows.Err(); err != nil {
		return dictionary.RawDictionary{}, fmt.Errorf("load dictionary %s: %w", lang, err)
	}
	if len(raw.Questions) == 0 {
		return dictionary.RawDictionary{}, fmt.Errorf("%s: %w", lang, domain.ErrEmptyDictionary)
	}
	if hasFull && raw.Full == nil {
		raw.Full = []string{}
	}
	return raw, nil
}

// ReplaceDictionary overwrites the stored word lists of lang in one transaction.
// Duplicate words within a list keep their first position.
func (l *DictionaryLoader) ReplaceDictionary(ctx context.Context, lang domain.Language, raw dictionary.RawDictionary) (int64, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM dictionary_words WHERE language=$1`, string(lang)); err != nil {
		return 0, fmt.Errorf("clear dictionary %s: %w", lang, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO dictionaries (language, has_full) VALUES ($1, $2)
		 ON CONFLICT (language) DO UPDATE SET has_full = EXCLUDED.has_full`,
		string(lang), raw.Full != nil); err != nil {
		return 0, fmt.Errorf("store dictionary %s: %w", lang, err)
	}

	rows := wordRows(lang, raw.Questions, false)
	rows = append(rows, wordRows(lang, raw.Full, true)...)
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"dictionary_words"},
		[]string{"language", "word", "full_list", "position"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy dictionary %s: %w", lang, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

func wordRows(lang domain.Language, words []string, full bool) [][]interface{} {
	seen := make(map[string]struct{}, len(words))
	rows := make([][]interface{}, 0, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		rows = append(rows, []interface{}{string(lang), w, full, int32(len(rows))})
	}
	return rows
}
