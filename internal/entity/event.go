package entity

type EventKind int

const (
	EventBoardChanged EventKind = iota + 1
	EventBoardReset
	EventScoreChanged
	EventTurnChanged
	EventTurnCounted
)

func (that EventKind) String() string {
	switch that {
	case EventBoardChanged:
		return "board_changed"
	case EventBoardReset:
		return "board_reset"
	case EventScoreChanged:
		return "score_changed"
	case EventTurnChanged:
		return "turn_changed"
	case EventTurnCounted:
		return "turn_counted"
	default:
		return "unknown"
	}
}

// Event is a value snapshot, so listeners may keep it after the game moves on.
type Event struct {
	Kind   EventKind
	Grid   Grid
	Pits   []Pit
	Player string
	Score  int
	Turn   int
	// Turns is the number of moves and passes so far, set on EventTurnCounted.
	Turns  int
}

type Publisher interface {
	Publish(event Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

func publisherOrNop(publisher Publisher) Publisher {
	if publisher == nil {
		return NopPublisher{}
	}

	return publisher
}
