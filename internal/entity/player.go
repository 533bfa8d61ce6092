package entity

import "github.com/rocketscienceinc/uril/internal/apperror"

type Player struct {
	Name string
	Mode Mode

	score     int
	history   []int
	publisher Publisher
}

func NewPlayer(name string, mode Mode, publisher Publisher) *Player {
	return &Player{
		Name:      name,
		Mode:      mode,
		history:   make([]int, 0, initialHistoryCapacity),
		publisher: publisherOrNop(publisher),
	}
}

// Score is counted in pairs of captured seeds.
func (that *Player) Score() int {
	return that.score
}

func (that *Player) IncreaseScore(pairs int) {
	that.score += pairs
	that.publishScore()
}

// SetScore places the player into a loaded position without touching the history.
func (that *Player) SetScore(score int) {
	that.score = score
}

func (that *Player) SaveScore() {
	that.history = append(that.history, that.score)
}

func (that *Player) UndoScore() error {
	if len(that.history) == 0 {
		return apperror.ErrEmptyHistory
	}

	last := len(that.history) - 1
	that.score = that.history[last]
	that.history = that.history[:last]
	that.publishScore()

	return nil
}

func (that *Player) ResetScore() {
	that.score = 0
	that.history = that.history[:0]
	that.publishScore()
}

func (that *Player) publishScore() {
	that.publisher.Publish(Event{Kind: EventScoreChanged, Player: that.Name, Score: that.score})
}
