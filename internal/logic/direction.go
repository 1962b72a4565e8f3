package logic

import (
	"strings"

	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

// Direction is the class of a door, taken from its name prefix
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
	Door
)

// Directions in the order the transition builder scans them
var Directions = []Direction{Left, Right, Top, Bottom, Door}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bot"
	case Door:
		return "door"
	}
	return "unknown"
}

// DirectionOf classifies a door name such as left1, bot2 or door_dreamReturn
func DirectionOf(door string) (Direction, error) {
	switch {
	case strings.HasPrefix(door, "left"):
		return Left, nil
	case strings.HasPrefix(door, "right"):
		return Right, nil
	case strings.HasPrefix(door, "top"):
		return Top, nil
	case strings.HasPrefix(door, "bot"):
		return Bottom, nil
	case strings.HasPrefix(door, "door"):
		return Door, nil
	}
	return 0, errors.InvalidArgumentf("unknown door class %q", door)
}

// Partners returns the directions a transition of this direction may be
// paired with. Doors behave like right exits.
func (d Direction) Partners() []Direction {
	switch d {
	case Left:
		return []Direction{Right, Door}
	case Right, Door:
		return []Direction{Left}
	case Top:
		return []Direction{Bottom}
	case Bottom:
		return []Direction{Top}
	}
	return nil
}

// Compatible reports whether two directions may be paired
func Compatible(a, b Direction) bool {
	for _, p := range a.Partners() {
		if p == b {
			return true
		}
	}
	return false
}

// Horizontal reports whether a one-way entrance can be paired with any exit
func (d Direction) Horizontal() bool {
	return d != Bottom
}

// Direction returns the direction class of a known transition
func (db *Database) Direction(transition string) Direction {
	t, ok := db.transitions[transition]
	if !ok {
		return Door
	}
	d, _ := DirectionOf(t.Door)
	return d
}
