// Package game implements a two-player game of SET.
//
// The main type is Game, which owns the deck, the 3x4 field and both
// players' records. Players call Declare with three field positions; a
// correct claim scores a point and the vacated slots are dealt again so that
// the field always shows at least one SET, a wrong claim costs a penalty.
//
// # Basic Usage
//
//	g := game.New("Alice", "Bob", game.WithSeed(42))
//	outcome, err := g.Declare(0, game.Pos{0, 0}, game.Pos{1, 2}, game.Pos{2, 3})
//	if err != nil {
//	    // invalid player or position, or the game is over
//	}
//	if g.Finished() {
//	    result := g.Winner()
//	}
//
// # Deterministic Testing
//
// WithSeed and WithRand fix every shuffle, WithClock takes a quartz mock for
// timing. ArrangeField and ConsumeUnused set up specific layouts:
//
//	g := game.NewTestGame()
//	game.ArrangeField(g, "R1RE", "R1RL", "R1RF")
//
// # Events
//
// Every declaration, refill and the end of the game are published on the
// game's EventBus. Subscribers run synchronously while the game is locked.
package game
