package main

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"terrainchess/internal/terrainchess"
)

type playout struct {
	GameID  string
	Seed    int64
	Rows    []MoveRow
	Winners []terrainchess.Faction
	Draw    bool
	Done    bool
}

// play deploys every faction at random and then picks uniformly among the
// legal moves until the match ends or maxPlies is reached.
func play(mode terrainchess.Mode, seed int64, maxPlies int) (playout, error) {
	out := playout{GameID: uuid.NewString(), Seed: seed}
	g := terrainchess.NewGame(mode, rand.New(rand.NewSource(seed)))
	all := terrainchess.Actor{ArrangeAll: true}
	if err := g.RandomizeTerrain(all, g.Active(), 0); err != nil {
		return out, err
	}
	if err := g.RandomizeUnits(all, g.Active()); err != nil {
		return out, err
	}
	for _, f := range g.Active() {
		if err := g.Ready(f); err != nil {
			return out, err
		}
	}

	pick := rand.New(rand.NewSource(seed ^ 0x5eed))
	for ply := 0; ply < maxPlies && g.Phase() == terrainchess.PhaseCombat; ply++ {
		f := g.Turn()
		moves := g.AllLegalMoves()
		if len(moves) == 0 {
			return out, fmt.Errorf("ply %d: %s to move without legal moves", ply, f)
		}
		mv := moves[pick.Intn(len(moves))]
		piece := g.PieceAt(mv.From)
		if err := g.MovePiece(mv.From, mv.To); err != nil {
			return out, fmt.Errorf("ply %d: %w", ply, err)
		}
		h := g.History()
		out.Rows = append(out.Rows, rowOf(out, mode, ply, f, piece, len(moves), h[len(h)-1], g))
	}

	out.Done = g.Phase() == terrainchess.PhaseFinished
	out.Draw = g.IsDraw()
	out.Winners = g.Winners()
	return out, nil
}

func rowOf(p playout, mode terrainchess.Mode, ply int, f terrainchess.Faction, piece terrainchess.Piece, legal int, o terrainchess.Outcome, g *terrainchess.Game) MoveRow {
	row := MoveRow{
		GameID:      p.GameID,
		Mode:        mode.String(),
		Seed:        p.Seed,
		Ply:         int32(ply),
		Faction:     f.String(),
		Piece:       piece.Type().String(),
		From:        int32(o.Move.From),
		To:          int32(o.Move.To),
		LegalMoves:  int32(legal),
		Promoted:    o.Promoted,
		Stranded:    int32(len(o.Stranded)),
		Fingerprint: int64(g.Position().Fingerprint()),
	}
	if o.Captured != 0 {
		row.Captured = o.Captured.Type().String()
	}
	for _, e := range o.Eliminated {
		row.Eliminated = append(row.Eliminated, e.String())
	}
	return row
}

type summary struct {
	Wins       map[terrainchess.Faction]int
	Draws      int
	Unfinished int
	Plies      int
}

func summarize(results []playout) summary {
	s := summary{Wins: make(map[terrainchess.Faction]int)}
	for _, r := range results {
		s.Plies += len(r.Rows)
		switch {
		case !r.Done:
			s.Unfinished++
		case r.Draw:
			s.Draws++
		default:
			for _, f := range r.Winners {
				s.Wins[f]++
			}
		}
	}
	return s
}
