package sqlite

import (
	"github.com/go-jet/jet/v2/sqlite"

	"github.com/goserg/darts/gen/model"
	"github.com/goserg/darts/gen/table"
	"github.com/goserg/darts/internal/storage"
)

func idList(keys []string) []sqlite.Expression {
	ids := make([]sqlite.Expression, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, sqlite.String(key))
	}
	return ids
}

// prefixRange matches ids starting with prefix as a byte range, so the match
// is case-sensitive and '%' or '_' in the prefix are plain characters.
func prefixRange(prefix string) sqlite.BoolExpression {
	from := table.Games.ID.GT_EQ(sqlite.String(prefix))
	end, ok := prefixEnd(prefix)
	if !ok {
		return from
	}
	return from.AND(table.Games.ID.LT(sqlite.String(end)))
}

// prefixEnd is the smallest string above every string starting with prefix,
// false when there is none.
func prefixEnd(prefix string) (string, bool) {
	end := []byte(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return string(end[:i+1]), true
		}
	}
	return "", false
}

// convertGames returns the rows in the order the keys were asked for.
func convertGames(keys []string, games []model.Games) []storage.KeyValue {
	byID := make(map[string]model.Games, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	values := make([]storage.KeyValue, 0, len(games))
	for _, key := range keys {
		g, ok := byID[key]
		if !ok {
			continue
		}
		values = append(values, storage.KeyValue{Key: g.ID, Value: []byte(g.Snapshot)})
		delete(byID, key)
	}
	return values
}
