package snapshot

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
)

func fromDomain(g *domain.Game) Game {
	rows := make([][]Turn, 0, len(g.Rounds))
	for _, round := range g.Rounds {
		row := make([]Turn, 0, len(round))
		for _, t := range round {
			darts := make([]Dart, 0, len(t.Darts))
			for _, d := range t.Darts {
				darts = append(darts, Dart{Score: d.Base, Multiplier: d.Multiplier})
			}
			row = append(row, Turn{
				Player: playerFromDomain(t.Player),
				Score:  t.Score,
				Darts:  darts,
			})
		}
		rows = append(rows, row)
	}
	return Game{
		ID:              g.ID,
		Type:            string(g.Type),
		Status:          string(g.Status),
		Players:         playersFromDomain(g.Players),
		Rows:            rows,
		Ranking:         playersFromDomain(g.Ranking),
		FinishType:      string(g.FinishType),
		IsFinishAtFirst: g.FinishAtFirst,
	}
}

func playerFromDomain(p domain.Player) Player {
	return Player{ID: p.ID, Name: p.Name, Score: p.Score, Order: p.Order}
}

func playersFromDomain(players []domain.Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, playerFromDomain(p))
	}
	return out
}

func playerToDomain(p Player) domain.Player {
	return domain.Player{ID: p.ID, Name: p.Name, Score: p.Score, Order: p.Order}
}

func toDomain(dto Game) (*domain.Game, error) {
	if dto.ID == "" {
		return nil, corrupt("", "missing id")
	}
	variant, err := domain.ParseVariant(dto.Type)
	if err != nil {
		return nil, &CorruptSnapshotError{ID: dto.ID, Reason: "type", Err: err}
	}
	status := domain.Status(dto.Status)
	if !status.Valid() {
		return nil, corrupt(dto.ID, "unknown status %q", dto.Status)
	}
	// Snapshots written before double-out existed carry no finish type.
	finish := domain.FinishClassic
	if dto.FinishType != "" {
		finish, err = domain.ParseFinishType(dto.FinishType)
		if err != nil {
			return nil, &CorruptSnapshotError{ID: dto.ID, Reason: "finishType", Err: err}
		}
	}

	g := domain.NewGame(dto.ID, variant, finish, dto.IsFinishAtFirst)
	g.Status = status

	ids := mapset.NewThreadUnsafeSet[int]()
	orders := mapset.NewThreadUnsafeSet[int]()
	for _, p := range dto.Players {
		if p.ID < 1 || !ids.Add(p.ID) {
			return nil, corrupt(dto.ID, "bad player id %d", p.ID)
		}
		if p.Order < 1 || p.Order > len(dto.Players) || !orders.Add(p.Order) {
			return nil, corrupt(dto.ID, "bad order %d for player %d", p.Order, p.ID)
		}
		g.Players = append(g.Players, playerToDomain(p))
	}

	for i, row := range dto.Rows {
		if len(row) == 0 || len(row) > len(dto.Players) {
			return nil, corrupt(dto.ID, "round %d has %d turns", i+1, len(row))
		}
		round := make([]domain.Turn, 0, len(row))
		for _, t := range row {
			turn, err := turnToDomain(t, ids)
			if err != nil {
				return nil, &CorruptSnapshotError{ID: dto.ID, Reason: "round", Err: err}
			}
			round = append(round, turn)
		}
		g.Rounds = append(g.Rounds, round)
	}
	if status == domain.StatusStarted && len(g.Rounds) == 0 {
		return nil, corrupt(dto.ID, "started without a turn")
	}

	ranked := mapset.NewThreadUnsafeSet[int]()
	for _, p := range dto.Ranking {
		if !ids.Contains(p.ID) || !ranked.Add(p.ID) {
			return nil, corrupt(dto.ID, "bad ranking entry %d", p.ID)
		}
		g.Ranking = append(g.Ranking, playerToDomain(p))
	}
	return g, nil
}

var (
	errUnknownPlayer = errors.New("turn of an unknown player")
	errTooManyDarts  = errors.New("turn with more than 3 darts")
)

func turnToDomain(t Turn, players mapset.Set[int]) (domain.Turn, error) {
	if !players.Contains(t.Player.ID) {
		return domain.Turn{}, errUnknownPlayer
	}
	if len(t.Darts) > domain.MaxDarts {
		return domain.Turn{}, errTooManyDarts
	}
	darts := make([]scoring.Dart, 0, domain.MaxDarts)
	for _, d := range t.Darts {
		// NewDart also normalises the {0,0} misses older snapshots back-filled.
		dart, err := scoring.NewDart(d.Score, d.Multiplier)
		if err != nil {
			return domain.Turn{}, err
		}
		darts = append(darts, dart)
	}
	return domain.Turn{
		Player: playerToDomain(t.Player),
		Score:  t.Score,
		Darts:  darts,
	}, nil
}
