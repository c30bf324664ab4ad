package game

import "fmt"

// Player is one of the two people at the table
type Player struct {
	Name    string
	Score   int // successful declarations
	Penalty int // failed declarations
}

// NewPlayer creates a player with a clean record
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// Net returns score minus penalty
func (p Player) Net() int {
	return p.Score - p.Penalty
}

func (p Player) String() string {
	return fmt.Sprintf("%s: score %d, penalty %d, net %d", p.Name, p.Score, p.Penalty, p.Net())
}
