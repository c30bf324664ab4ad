package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/setgame/internal/card"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/evaluator"
	"github.com/lox/setgame/internal/gameid"
	"github.com/lox/setgame/internal/randutil"
)

// DefaultRefillAttempts bounds the random redraws tried before the refill
// falls back to searching every unused trio
const DefaultRefillAttempts = 1000

// State is the lifecycle stage of a game
type State int

const (
	Initializing State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case InProgress:
		return "in-progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome describes what a declaration did
type Outcome struct {
	Accepted bool          // the three cards formed a SET
	Finished bool          // the declaration ended the game
	Refill   *RefillResult // set when the declared cards were replaced
	Player   Player        // the declaring player's record afterwards
}

// RefillResult describes how vacated slots were dealt again
type RefillResult struct {
	Positions  [3]Pos
	Attempts   int  // trios placed before the field showed a SET
	Exhaustive bool // the random redraws ran out and every unused trio was searched
	Ragged     bool // supply was too short and the slots were left empty
}

// Option configures a Game
type Option func(*Game)

// WithRand sets the random source used for every shuffle
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithSeed seeds the game's random source
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = randutil.New(seed) }
}

// WithClock sets the clock used for timestamps
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus sets the bus game events are published on
func WithEventBus(bus EventBus) Option {
	return func(g *Game) { g.bus = bus }
}

// WithResultChecker replaces the net-score ranking
func WithResultChecker(rc ResultChecker) Option {
	return func(g *Game) { g.checker = rc }
}

// WithRefillAttempts bounds the random redraws per refill
func WithRefillAttempts(n int) Option {
	return func(g *Game) { g.refillAttempts = n }
}

// WithID sets the game identifier
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

// Game is a two-player SET session. All exported methods are safe to call
// from multiple goroutines; declarations are serialised.
type Game struct {
	mu sync.Mutex

	id       string
	deck     *deck.Deck
	field    *Field
	players  [2]*Player
	state    State
	checker  ResultChecker
	bus      EventBus
	clock    quartz.Clock
	logger   *log.Logger
	rng      *rand.Rand
	started  time.Time
	finished time.Time

	refillAttempts int
	declarations   int
}

// New deals a fresh game between two named players
func New(name1, name2 string, opts ...Option) *Game {
	g := &Game{
		players:        [2]*Player{NewPlayer(name1), NewPlayer(name2)},
		field:          NewField(),
		state:          Initializing,
		checker:        NetScoreChecker{},
		refillAttempts: DefaultRefillAttempts,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = randutil.New(randutil.Seed())
	}
	if g.clock == nil {
		g.clock = quartz.NewReal()
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.bus == nil {
		g.bus = NewEventBus()
	}
	if g.id == "" {
		g.id = gameid.Generate()
	}
	g.logger = g.logger.WithPrefix("game").With("game", g.id)

	g.deck = deck.New(g.rng)
	g.deck.Shuffle()
	for i, c := range g.deck.Draw(deck.FieldSize) {
		g.field.Put(PosFromIndex(i), c)
	}

	g.state = InProgress
	g.started = g.clock.Now()

	g.logger.Info("Game started", "player1", name1, "player2", name2, "setsOnField", g.field.CountSETs())
	g.bus.Publish(GameStartEvent{
		GameID:    g.id,
		Players:   [2]string{name1, name2},
		Field:     g.field.String(),
		timestamp: g.started,
	})

	return g
}

// Declare processes player's claim that the cards at p1, p2 and p3 form a
// SET. A wrong claim costs a penalty and changes nothing else. A correct
// claim scores a point and either replaces the three cards or, when no SET
// is left among the remaining cards, finishes the game.
func (g *Game) Declare(player int, p1, p2, p3 Pos) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Finished {
		return Outcome{}, ErrGameFinished
	}
	if player < 0 || player >= len(g.players) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	positions := [3]Pos{p1, p2, p3}
	for _, pos := range positions {
		if !pos.Valid() {
			return Outcome{}, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
		}
	}

	g.declarations++
	p := g.players[player]
	a, b, c := g.field.At(p1), g.field.At(p2), g.field.At(p3)
	event := DeclarationEvent{
		Player:    player,
		Name:      p.Name,
		Positions: positions,
		Cards:     [3]string{a.String(), b.String(), c.String()},
	}

	distinct := p1 != p2 && p2 != p3 && p1 != p3
	if !distinct || !evaluator.IsSet(a, b, c) {
		p.Penalty++
		event.Score, event.Penalty = p.Score, p.Penalty
		event.timestamp = g.clock.Now()
		g.logger.Debug("Rejected declaration", "player", p.Name, "cards", event.Cards, "penalty", p.Penalty)
		g.bus.Publish(event)
		return Outcome{Player: *p}, nil
	}

	p.Score++
	event.Accepted = true
	event.Score, event.Penalty = p.Score, p.Penalty
	event.timestamp = g.clock.Now()
	g.logger.Debug("Accepted declaration", "player", p.Name, "cards", event.Cards, "score", p.Score)
	g.bus.Publish(event)

	if !g.deck.ExistsSET(a, b, c) {
		g.finish()
		return Outcome{Accepted: true, Finished: true, Player: *p}, nil
	}

	for _, pos := range positions {
		g.field.Remove(pos)
	}
	if err := g.deck.Consume(a, b, c); err != nil {
		return Outcome{}, fmt.Errorf("consuming declared cards: %w", err)
	}

	refill := g.refill(positions)
	g.publishRefill(refill)

	return Outcome{Accepted: true, Refill: &refill, Player: *p}, nil
}

// refill deals new cards into the vacated positions. Random trios are
// drawn from a freshly shuffled deck until the field shows a SET; after
// refillAttempts misses every remaining trio is tried in deck order.
func (g *Game) refill(positions [3]Pos) RefillResult {
	res := RefillResult{Positions: positions}
	if !g.deck.HasUnusedRemaining() {
		res.Ragged = true
		g.logger.Info("Supply exhausted, leaving slots empty", "used", g.deck.UsedCount())
		return res
	}

	for res.Attempts < g.refillAttempts {
		g.deck.Shuffle()
		drawn := g.deck.Draw(len(positions))
		if drawn == nil {
			res.Ragged = true
			return res
		}
		res.Attempts++
		if g.place(positions, drawn) {
			return res
		}
		g.unplace(positions)
	}

	g.logger.Warn("Random refill exhausted, searching all trios", "attempts", res.Attempts)
	res.Exhaustive = true
	unused := g.deck.Unused()
	for i := 0; i < len(unused)-2; i++ {
		for j := i + 1; j < len(unused)-1; j++ {
			for k := j + 1; k < len(unused); k++ {
				res.Attempts++
				if g.place(positions, []*card.Card{unused[i], unused[j], unused[k]}) {
					return res
				}
				g.unplace(positions)
			}
		}
	}

	res.Ragged = true
	return res
}

// place puts cards into positions and reports whether the field now holds a SET
func (g *Game) place(positions [3]Pos, cards []*card.Card) bool {
	for i, pos := range positions {
		g.field.Put(pos, cards[i])
	}
	return g.field.ExistsSET()
}

// unplace returns the cards at positions to the deck
func (g *Game) unplace(positions [3]Pos) {
	for _, pos := range positions {
		g.field.clear(pos).MarkStatus(card.Unused)
	}
}

func (g *Game) publishRefill(res RefillResult) {
	var cards [3]string
	for i, pos := range res.Positions {
		cards[i] = g.field.At(pos).String()
	}
	g.logger.Debug("Field refilled",
		"attempts", res.Attempts,
		"exhaustive", res.Exhaustive,
		"ragged", res.Ragged,
		"used", g.deck.UsedCount())
	g.bus.Publish(FieldRefilledEvent{
		Refill:    res,
		Cards:     cards,
		timestamp: g.clock.Now(),
	})
}

func (g *Game) finish() {
	g.state = Finished
	g.finished = g.clock.Now()
	result := Winner(g.checker, *g.players[0], *g.players[1])
	elapsed := g.finished.Sub(g.started)

	g.logger.Info("Game finished",
		"result", result,
		"declarations", g.declarations,
		"used", g.deck.UsedCount(),
		"elapsed", elapsed)
	g.bus.Publish(GameFinishedEvent{
		GameID:    g.id,
		Result:    result,
		Players:   [2]Player{*g.players[0], *g.players[1]},
		Elapsed:   elapsed,
		timestamp: g.finished,
	})
}

// Hint returns the positions of a SET visible on the field
func (g *Game) Hint() ([3]Pos, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.field.FindSET()
}

// Finished reports whether the game has ended
func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Finished
}

// State returns the lifecycle stage
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Stalled reports whether play cannot continue: the game is not finished
// but no SET is visible. This only happens after a ragged ending, when the
// supply ran out before the vacated slots could be dealt again.
func (g *Game) Stalled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state != Finished && !g.field.ExistsSET()
}

// Winner ranks the players with the game's result checker
func (g *Game) Winner() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Winner(g.checker, *g.players[0], *g.players[1])
}

// Player returns a copy of player i's record
func (g *Game) Player(i int) (Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.players) {
		return Player{}, fmt.Errorf("%w: %d", ErrInvalidPlayer, i)
	}
	return *g.players[i], nil
}

// Players returns copies of both players' records
func (g *Game) Players() [2]Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return [2]Player{*g.players[0], *g.players[1]}
}

// ID returns the game identifier
func (g *Game) ID() string {
	return g.id
}

// Elapsed returns the time since the deal, or the game's length once finished
func (g *Game) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Finished {
		return g.finished.Sub(g.started)
	}
	return g.clock.Since(g.started)
}

// EventBus returns the bus game events are published on
func (g *Game) EventBus() EventBus {
	return g.bus
}

// Field exposes the field for callers that arrange specific layouts, such as
// tests. Mutating it while other goroutines play is not safe.
func (g *Game) Field() *Field {
	return g.field
}

// Deck exposes the deck; the same caveat as Field applies
func (g *Game) Deck() *deck.Deck {
	return g.deck
}

// Snapshot is a read-only copy of the visible game state
type Snapshot struct {
	ID           string
	State        State
	Field        [deck.FieldSize]card.Card
	Players      [2]Player
	UsedCards    int
	SetsOnField  int
	Declarations int
	Elapsed      time.Duration
}

// Snapshot copies the visible state
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		ID:           g.id,
		State:        g.state,
		Players:      [2]Player{*g.players[0], *g.players[1]},
		UsedCards:    g.deck.UsedCount(),
		SetsOnField:  g.field.CountSETs(),
		Declarations: g.declarations,
	}
	for i := range s.Field {
		s.Field[i] = *g.field.Get(i)
	}
	if g.state == Finished {
		s.Elapsed = g.finished.Sub(g.started)
	} else {
		s.Elapsed = g.clock.Since(g.started)
	}
	return s
}
