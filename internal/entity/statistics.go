package entity

import "time"

type ModeRecord struct {
	Mode   Mode `json:"mode"`
	Wins   int  `json:"wins"`
	Losses int  `json:"losses"`
}

type Statistics struct {
	GamesPlayed  int          `json:"games_played"`
	AverageTurns int          `json:"average_turns"`
	Modes        []ModeRecord `json:"modes,omitempty"`
}

// Record accounts for one finished game. Wins and losses only count when the modes differ.
func (that *Statistics) Record(turns int, winner, loser Mode) {
	that.GamesPlayed++
	that.AverageTurns = ((that.GamesPlayed-1)*that.AverageTurns + turns) / that.GamesPlayed

	if winner == loser {
		return
	}

	that.record(winner).Wins++
	that.record(loser).Losses++
}

func (that *Statistics) record(mode Mode) *ModeRecord {
	for i := range that.Modes {
		if that.Modes[i].Mode == mode {
			return &that.Modes[i]
		}
	}

	that.Modes = append(that.Modes, ModeRecord{Mode: mode})

	return &that.Modes[len(that.Modes)-1]
}

func (that *Statistics) ModeRecord(mode Mode) ModeRecord {
	for _, record := range that.Modes {
		if record.Mode == mode {
			return record
		}
	}

	return ModeRecord{Mode: mode}
}

type PlayerResult struct {
	Name  string `json:"name"`
	Mode  Mode   `json:"mode"`
	Score int    `json:"score"`
}

type GameRecord struct {
	ID       string       `json:"id"`
	PlayedAt time.Time    `json:"played_at"`
	Turns    int          `json:"turns"`
	Winner   PlayerResult `json:"winner"`
	Loser    PlayerResult `json:"loser"`
	Tie      bool         `json:"tie"`
}
