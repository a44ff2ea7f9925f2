package session

import "github.com/chorequest/minigames/internal/core"

// Input is a discrete player signal delivered to an engine. Gesture and key
// decoding happen upstream; engines only ever see one of the concrete types
// below and ignore shapes they do not understand.
type Input interface {
	isInput()
}

// DirInput is a directional signal: a heading change for the grid-crawler,
// or a paddle nudge for the paddle game.
type DirInput struct {
	Heading core.Heading
}

// TargetInput is an absolute horizontal target, in board cells. The paddle
// game chases it at finite speed rather than teleporting.
type TargetInput struct {
	X float64
}

// PickInput selects an index: a card, a tile, or an answer.
type PickInput struct {
	Index int
}

func (DirInput) isInput()    {}
func (TargetInput) isInput() {}
func (PickInput) isInput()   {}
