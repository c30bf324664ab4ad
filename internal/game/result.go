package game

// Result is the outcome of a finished game
type Result int

const (
	Player1Wins Result = iota
	Player2Wins
	Draw
)

func (r Result) String() string {
	switch r {
	case Player1Wins:
		return "player1"
	case Player2Wins:
		return "player2"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// ResultChecker decides whether one player's record beats another's
type ResultChecker interface {
	Beats(a, b Player) bool
}

// ResultCheckerFunc adapts a function to the ResultChecker interface
type ResultCheckerFunc func(a, b Player) bool

// Beats calls f(a, b)
func (f ResultCheckerFunc) Beats(a, b Player) bool {
	return f(a, b)
}

// NetScoreChecker ranks players by score minus penalty
type NetScoreChecker struct{}

// Beats reports whether a has a strictly higher net standing than b
func (NetScoreChecker) Beats(a, b Player) bool {
	return a.Net() > b.Net()
}

// P1Wins reports whether p1 beats p2 under rc
func P1Wins(rc ResultChecker, p1, p2 Player) bool {
	return rc.Beats(p1, p2)
}

// P2Wins reports whether p2 beats p1 under rc
func P2Wins(rc ResultChecker, p1, p2 Player) bool {
	return rc.Beats(p2, p1)
}

// IsDraw reports whether neither player beats the other
func IsDraw(rc ResultChecker, p1, p2 Player) bool {
	return !P1Wins(rc, p1, p2) && !P2Wins(rc, p1, p2)
}

// Winner checks player 1 first, then player 2, and otherwise reports a draw
func Winner(rc ResultChecker, p1, p2 Player) Result {
	switch {
	case P1Wins(rc, p1, p2):
		return Player1Wins
	case P2Wins(rc, p1, p2):
		return Player2Wins
	default:
		return Draw
	}
}
