package game_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"laptudirm.com/x/mechess/pkg/board"
	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
	"laptudirm.com/x/mechess/pkg/formats/fen"
	"laptudirm.com/x/mechess/pkg/formats/notation"
	"laptudirm.com/x/mechess/pkg/game"
)

func applyAll(t *testing.T, g *game.Game, moves ...string) {
	t.Helper()

	for _, m := range moves {
		if err := g.Apply(m); err != nil {
			t.Fatalf("Apply(%q): %v", m, err)
		}
	}
}

func reason(err error) board.Reason {
	var rejection *board.Rejection
	if errors.As(err, &rejection) {
		return rejection.Reason
	}

	return board.NoReason
}

func TestFirstMove(t *testing.T) {
	g := game.New()
	applyAll(t, g, "e4")

	if last := g.LastMove(); last != "e4" {
		t.Errorf("LastMove() = %q, want e4", last)
	}

	if g.SideToMove() != piece.Black {
		t.Errorf("side to move is %s, want black", g.SideToMove())
	}

	if g.Plys() != 1 {
		t.Errorf("Plys() = %d, want 1", g.Plys())
	}
}

func TestIllegalMoveLeavesGameUntouched(t *testing.T) {
	g := game.New()
	before, fenBefore := g.Board(), g.FEN()

	err := g.Apply("e5")
	if reason(err) != board.NoMatchingMove {
		t.Fatalf("Apply(e5) = %v, want a no matching move rejection", err)
	}

	if g.Board() != before || g.FEN() != fenBefore || g.Plys() != 0 {
		t.Fatal("rejected move changed the game")
	}

	if g.LastRejection() == nil || g.LastRejection().Reason != board.NoMatchingMove {
		t.Fatalf("LastRejection() = %v", g.LastRejection())
	}

	applyAll(t, g, "e4")
	if g.LastRejection() != nil {
		t.Fatal("LastRejection() not cleared by a legal move")
	}
}

func TestCheckDoesNotPlay(t *testing.T) {
	g := game.New()

	m, err := g.Check("Nf3")
	if err != nil {
		t.Fatalf("Check(Nf3): %v", err)
	}

	if m != move.New(square.G1, square.F3, move.Normal) {
		t.Fatalf("Check(Nf3) = %v, want g1f3", m)
	}

	if g.Plys() != 0 || g.Board() != board.Start() {
		t.Fatal("Check changed the game")
	}

	if _, err := g.Check("Nf4"); reason(err) != board.NoMatchingMove {
		t.Fatalf("Check(Nf4) = %v, want a no matching move rejection", err)
	}

	if err := g.ApplyMove(m); err != nil || g.LastText(notation.Coordinate) != "g1f3" {
		t.Fatalf("ApplyMove after Check = %v, last %q", err, g.LastText(notation.Coordinate))
	}
}

func TestApplyMove(t *testing.T) {
	g := game.New()

	if err := g.ApplyMove(move.New(square.E2, square.E5, move.Normal)); reason(err) != board.WrongPiece {
		t.Fatalf("ApplyMove(e2e5) = %v, want a wrong piece rejection", err)
	}

	if err := g.ApplyMove(move.New(square.E2, square.E4, move.DoublePush)); err != nil {
		t.Fatalf("ApplyMove(e2e4): %v", err)
	}

	if g.FEN() != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Fatalf("FEN() = %q", g.FEN())
	}
}

func TestFoolsMate(t *testing.T) {
	g := game.New()
	applyAll(t, g, "f3", "e5", "g4", "Qh4#")

	result := g.Result()
	if result.Outcome != game.Checkmate || result.Winner != piece.Black {
		t.Fatalf("Result() = %+v, want checkmate by black", result)
	}

	if result.String() != "0-1" || result.Description() != "Checkmate, black wins" {
		t.Fatalf("result reads %s (%s)", result, result.Description())
	}

	if last := g.LastMove(); last != "Qh4#" {
		t.Errorf("LastMove() = %q, want Qh4#", last)
	}

	if err := g.Apply("a3"); reason(err) != board.GameOver {
		t.Fatalf("Apply after mate = %v, want a game over rejection", err)
	}
}

func TestStalemate(t *testing.T) {
	g, err := game.FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	if result := g.Result(); result.Outcome != game.Stalemate || result.String() != "1/2-1/2" {
		t.Fatalf("Result() = %+v, want stalemate", result)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := game.New()
	shuffle := []string{"Nf3", "Nf6", "Ng1", "Ng8"}

	applyAll(t, g, shuffle...)
	applyAll(t, g, shuffle[:3]...)
	if g.Result().IsOver() {
		t.Fatal("game over before the third repetition")
	}

	applyAll(t, g, shuffle[3])
	result := g.Result()
	if result.Outcome != game.Draw || result.Reason != game.ThreefoldRepetition {
		t.Fatalf("Result() = %+v, want a draw by repetition", result)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	result := g.Result()
	if result.Outcome != game.Draw || result.Reason != game.InsufficientMaterial {
		t.Fatalf("Result() = %+v, want a draw by insufficient material", result)
	}

	if err := g.Apply("Ke2"); reason(err) != board.GameOver {
		t.Fatalf("Apply(Ke2) = %v, want a game over rejection", err)
	}
}

// quietLine finds a sequence of plies without captures, pawn moves, or
// repeated positions, which never reaches a position without legal
// moves.
func quietLine(b board.Board, plies int, seen map[board.Key]bool) ([]string, bool) {
	if plies == 0 {
		return nil, true
	}

	for _, m := range b.LegalMoves() {
		if b.PieceAt(m.To) != piece.NoPiece || b.PieceAt(m.From).Type() == piece.Pawn {
			continue
		}

		next := b
		next.MakeMove(m)
		if seen[next.Key()] || len(next.LegalMoves()) == 0 {
			continue
		}

		seen[next.Key()] = true
		if rest, ok := quietLine(next, plies-1, seen); ok {
			return append([]string{notation.Format(m, &b, notation.SAN)}, rest...), true
		}
		delete(seen, next.Key())
	}

	return nil, false
}

func TestFiftyMoveRule(t *testing.T) {
	const start = "r3k3/8/8/8/8/8/8/R3K3 w - - 0 1"

	b, err := fen.Parse(start)
	if err != nil {
		t.Fatal(err)
	}

	line, ok := quietLine(b, 100, map[board.Key]bool{b.Key(): true})
	if !ok {
		t.Fatal("no quiet line of 100 plies found")
	}

	g, err := game.FromFEN(start)
	if err != nil {
		t.Fatal(err)
	}

	applyAll(t, g, line[:99]...)
	if g.Result().IsOver() {
		t.Fatalf("game over after 99 quiet plies: %+v", g.Result())
	}

	applyAll(t, g, line[99])
	result := g.Result()
	if result.Outcome != game.Draw || result.Reason != game.FiftyMove {
		t.Fatalf("Result() = %+v, want a draw by the fifty-move rule", result)
	}

	if result.Description() != "50-move Rule" {
		t.Fatalf("Description() = %q", result.Description())
	}
}

// TestEveryLegalMoveApplies checks that the text of every legal move of
// positions along random games can be applied, and that applying it
// leaves a consistent game.
func TestEveryLegalMoveApplies(t *testing.T) {
	plies := 600
	if testing.Short() {
		plies = 60
	}

	r := rand.New(rand.NewSource(3))
	g := game.New()
	for played := 0; played < plies; played++ {
		if g.Result().IsOver() || g.Plys() >= 150 {
			g.Reset()
		}

		position := g.FEN()
		for _, m := range g.LegalMoves() {
			b := g.Board()
			for _, n := range []notation.Notation{notation.SAN, notation.Coordinate, notation.Long} {
				trial, err := game.FromFEN(position)
				if err != nil {
					t.Fatal(err)
				}

				text := notation.Format(m, &b, n)
				if err := trial.Apply(text); err != nil {
					t.Fatalf("%s: Apply(%q): %v", position, text, err)
				}

				after := trial.Board()
				var kings [piece.ColorN]int
				for _, p := range after.Position {
					if p.Type() == piece.King {
						kings[p.Color()]++
					}
				}

				switch {
				case kings != [piece.ColorN]int{1, 1}:
					t.Fatalf("%s: %s left kings %v", position, text, kings)
				case trial.SideToMove() == g.SideToMove():
					t.Fatalf("%s: %s did not flip the side to move", position, text)
				case trial.Plys() != 1:
					t.Fatalf("%s: %s left %d plies of history", position, text, trial.Plys())
				case trial.History()[0] != m:
					t.Fatalf("%s: %s played %s", position, text, trial.History()[0])
				}
			}
		}

		legal := g.LegalMoves()
		if err := g.ApplyMove(legal[r.Intn(len(legal))]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestText(t *testing.T) {
	g := game.New()
	applyAll(t, g, "e4", "e5", "Ng1-f3", "b8c6")

	tests := []struct {
		n    notation.Notation
		want string
	}{
		{notation.SAN, "e4 e5 Nf3 Nc6"},
		{notation.Coordinate, "e2e4 e7e5 g1f3 b8c6"},
		{notation.Long, "e2-e4 e7-e5 Ng1-f3 Nb8-c6"},
	}

	for _, test := range tests {
		if got := strings.Join(g.AllText(test.n), " "); got != test.want {
			t.Errorf("AllText(%s) = %q, want %q", test.n, got, test.want)
		}
	}

	if got := g.LastText(notation.Coordinate); got != "b8c6" {
		t.Errorf("LastText(an) = %q, want b8c6", got)
	}

	if got := game.New().LastMove(); got != "" {
		t.Errorf("LastMove() of a new game = %q", got)
	}
}

func TestLegalMovesAreSorted(t *testing.T) {
	g := game.New()
	moves := g.LegalMoves()

	if len(moves) != 20 {
		t.Fatalf("%d legal moves in the starting position, want 20", len(moves))
	}

	for i := 1; i < len(moves); i++ {
		if !moves[i-1].Less(moves[i]) {
			t.Fatalf("%s listed before %s", moves[i-1], moves[i])
		}
	}

	// the returned slice belongs to the caller
	moves[0] = move.Null
	if g.LegalMoves()[0] == move.Null {
		t.Fatal("LegalMoves shares its slice")
	}
}

func TestReset(t *testing.T) {
	g := game.New()
	applyAll(t, g, "e4", "e5")

	g.Reset()
	if g.FEN() != fen.StartFEN || g.Plys() != 0 {
		t.Fatalf("Reset left %q with %d plies", g.FEN(), g.Plys())
	}
}

func TestString(t *testing.T) {
	str := game.New().String()

	for _, want := range []string{"8  r n b q k b n r", "1  R N B Q K B N R", "a b c d e f g h", "white to move", fen.StartFEN} {
		if !strings.Contains(str, want) {
			t.Errorf("dump is missing %q:\n%s", want, str)
		}
	}
}

func TestFromFENInvalid(t *testing.T) {
	if _, err := game.FromFEN("8/8/8/8/8/8/8/8 w - - 0 1"); err == nil {
		t.Fatal("FromFEN accepted a position without kings")
	}
}
