package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/uril/internal/apperror"
)

type Mode string

const (
	ModeHuman     Mode = "human"
	ModeRandom    Mode = "random"
	ModeGreedy    Mode = "greedy"
	ModeDefensive Mode = "defensive"
	ModeMinMax    Mode = "minmax"
)

var Modes = []Mode{ModeHuman, ModeMinMax, ModeRandom, ModeGreedy, ModeDefensive}

func ParseMode(value string) (Mode, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(value)); normalized {
	case "optimal":
		return ModeMinMax, nil
	default:
		for _, mode := range Modes {
			if string(mode) == normalized {
				return mode, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMode, value)
}

func (that Mode) IsComputer() bool {
	return that != ModeHuman
}

// Label is the name shown to players.
func (that Mode) Label() string {
	switch that {
	case ModeHuman:
		return "Human"
	case ModeMinMax:
		return "Optimal"
	case ModeRandom:
		return "Random"
	case ModeGreedy:
		return "Greedy"
	case ModeDefensive:
		return "Defensive"
	default:
		return string(that)
	}
}

// Next returns the mode after this one in Modes, wrapping around.
func (that Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == that {
			return Modes[(i+1)%len(Modes)]
		}
	}

	return Modes[0]
}
