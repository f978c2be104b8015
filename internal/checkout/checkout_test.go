package checkout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
)

func TestSuggestions(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		finish    domain.FinishType
		want      [][]string
	}{
		{
			name:      "170 double out",
			remaining: 170,
			finish:    domain.FinishDoubleOut,
			want:      [][]string{{"T20", "T20", "Bull"}},
		},
		{
			name:      "40 double out",
			remaining: 40,
			finish:    domain.FinishDoubleOut,
			want:      [][]string{{"D20"}, {"T12", "D2"}, {"T10", "D5"}, {"20", "D10"}, {"18", "D11"}},
		},
		{
			name:      "2 classic",
			remaining: 2,
			finish:    domain.FinishClassic,
			want:      [][]string{{"2"}, {"1", "1"}},
		},
		{
			name:      "2 double out",
			remaining: 2,
			finish:    domain.FinishDoubleOut,
			want:      [][]string{{"D1"}},
		},
		{
			name:      "50 classic",
			remaining: 50,
			finish:    domain.FinishClassic,
			want:      [][]string{{"Bull"}, {"T16", "2"}, {"T15", "5"}, {"T14", "8"}, {"T13", "11"}},
		},
		{
			name:      "one left",
			remaining: 1,
			finish:    domain.FinishClassic,
			want:      [][]string{},
		},
		{
			name:      "out of reach",
			remaining: 171,
			finish:    domain.FinishClassic,
			want:      [][]string{},
		},
		{
			name:      "no double route",
			remaining: 169,
			finish:    domain.FinishDoubleOut,
			want:      [][]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Suggestions(tt.remaining, tt.finish); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggestions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuggestionsAreValidRoutes(t *testing.T) {
	for _, finish := range []domain.FinishType{domain.FinishClassic, domain.FinishDoubleOut} {
		for remaining := MinRemaining; remaining <= MaxRemaining; remaining++ {
			routes := Suggestions(remaining, finish)
			if len(routes) > maxLongRoutes {
				t.Fatalf("%d %s: %d routes", remaining, finish, len(routes))
			}
			seen := map[string]bool{}
			for _, route := range routes {
				key := strings.Join(route, "-")
				if seen[key] {
					t.Errorf("%d %s: duplicate route %v", remaining, finish, route)
				}
				seen[key] = true

				total := 0
				var last scoring.Dart
				for _, label := range route {
					d, err := scoring.ParseHit(label)
					if err != nil {
						t.Fatalf("%d %s: bad label %q: %v", remaining, finish, label, err)
					}
					total += scoring.PointValue(d)
					last = d
				}
				if total != remaining {
					t.Errorf("%d %s: route %v totals %d", remaining, finish, route, total)
				}
				if finish == domain.FinishDoubleOut && !scoring.IsDouble(last) && !scoring.IsInnerBull(last) {
					t.Errorf("%d %s: route %v does not end on a double", remaining, finish, route)
				}
			}
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format([]string{"T20", "T20", "Bull"}); got != "T20 • T20 • Bull" {
		t.Errorf("Format() = %q", got)
	}
}
