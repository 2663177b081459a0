package albums

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

var searchFields = map[string]struct{}{
	entities.AlbumFieldTitle:       {},
	entities.AlbumFieldArtist:      {},
	entities.AlbumFieldReleaseYear: {},
	entities.AlbumFieldCoverURL:    {},
}

// Search runs a multi-field free-text query. The text is split into
// lower-case alphanumeric terms; an album matches when any term equals a
// token of any queried field. Results are ordered by number of hits, then by
// title.
func (r *Repository) Search(ctx context.Context, query entities.MultiFieldQuery) ([]entities.Album, error) {
	terms := Tokenize(query.Text)
	if len(terms) == 0 || len(query.Fields) == 0 {
		return []entities.Album{}, nil
	}

	for _, field := range query.Fields {
		if _, ok := searchFields[field]; !ok {
			return nil, fmt.Errorf("unsupported search field %q", field)
		}
	}

	// Substring match on the pre-folded search text narrows the candidates,
	// exact token hits on the queried fields decide.
	conditions := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))
	for _, term := range terms {
		conditions = append(conditions, "search_text LIKE ?")
		args = append(args, "%"+term+"%")
	}

	var candidates []entities.Album
	err := r.db.WithContext(ctx).
		Where(strings.Join(conditions, " OR "), args...).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	termSet := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		termSet[term] = struct{}{}
	}

	type hit struct {
		album entities.Album
		score int
	}
	hits := make([]hit, 0, len(candidates))
	for _, album := range candidates {
		score := 0
		for _, field := range query.Fields {
			for _, token := range Tokenize(fieldValue(album, field)) {
				if _, ok := termSet[token]; ok {
					score++
				}
			}
		}
		if score > 0 {
			hits = append(hits, hit{album: album, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].album.Title < hits[j].album.Title
	})

	results := make([]entities.Album, 0, len(hits))
	for _, h := range hits {
		results = append(results, h.album)
	}
	return results, nil
}

// Tokenize splits text into lower-case runs of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// searchText folds every searchable field into one lower-case token string.
// SQLite only folds ASCII, so case is removed here rather than in SQL.
func searchText(album entities.Album) string {
	var tokens []string
	for field := range searchFields {
		tokens = append(tokens, Tokenize(fieldValue(album, field))...)
	}
	return strings.Join(tokens, " ")
}

func fieldValue(album entities.Album, field string) string {
	switch field {
	case entities.AlbumFieldTitle:
		return album.Title
	case entities.AlbumFieldArtist:
		return album.Artist
	case entities.AlbumFieldReleaseYear:
		return album.ReleaseYear
	case entities.AlbumFieldCoverURL:
		return album.CoverURL
	}
	return ""
}
