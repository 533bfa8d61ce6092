package entity

import (
	"fmt"

	"github.com/rocketscienceinc/uril/internal/apperror"
)

const (
	Height       = 2
	Width        = 6
	InitialSeeds = 4
	TotalSeeds   = Height * Width * InitialSeeds
	EndSeeds     = 2

	initialHistoryCapacity = 10
)

type Pit struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Grid holds seed counts. Row 0 is sown left to right, row 1 right to left.
type Grid [Height][Width]int

func InitialGrid() Grid {
	var grid Grid
	for row := range grid {
		for column := range grid[row] {
			grid[row][column] = InitialSeeds
		}
	}

	return grid
}

func (that Grid) Total() int {
	total := 0
	for row := range that {
		for _, seeds := range that[row] {
			total += seeds
		}
	}

	return total
}

type Board struct {
	grid      Grid
	history   []Grid
	publisher Publisher
}

func NewBoard(publisher Publisher) *Board {
	return NewBoardFromGrid(InitialGrid(), publisher)
}

func NewBoardFromGrid(grid Grid, publisher Publisher) *Board {
	return &Board{
		grid:      grid,
		history:   make([]Grid, 0, initialHistoryCapacity),
		publisher: publisherOrNop(publisher),
	}
}

// Play sows the seeds of the given pit clockwise and returns the number of captured seeds.
func (that *Board) Play(row, column int) (int, error) {
	if !IsValidPit(row, column) {
		return 0, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidPit, row, column)
	}

	seeds := that.grid[row][column]
	that.grid[row][column] = 0

	changed := make([]Pit, 0, seeds+1)
	changed = append(changed, Pit{Row: row, Column: column})

	captured := 0
	x, y := row, column
	for ; seeds > 0; seeds-- {
		x, y = nextPit(x, y)

		// a single seed on the opponent's side makes a pair
		if that.grid[x][y] == 1 && x != row {
			that.grid[x][y] = 0
			captured += 2
		} else {
			that.grid[x][y]++
		}

		changed = append(changed, Pit{Row: x, Column: y})
	}

	that.publisher.Publish(Event{Kind: EventBoardChanged, Grid: that.grid, Pits: changed})

	return captured, nil
}

func nextPit(row, column int) (int, int) {
	if row == 0 {
		if column+1 < Width {
			return 0, column + 1
		}

		return 1, Width - 1
	}

	if column > 0 {
		return 1, column - 1
	}

	return 0, 0
}

func IsValidPit(row, column int) bool {
	return row >= 0 && row < Height && column >= 0 && column < Width
}

func (that *Board) PitSeeds(row, column int) (int, error) {
	if !IsValidPit(row, column) {
		return 0, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidPit, row, column)
	}

	return that.grid[row][column], nil
}

func (that *Board) TotalSeeds() int {
	return that.grid.Total()
}

func (that *Board) RowIsEmpty(row int) (bool, error) {
	if row < 0 || row >= Height {
		return false, fmt.Errorf("%w: row %d", apperror.ErrInvalidPit, row)
	}

	for _, seeds := range that.grid[row] {
		if seeds > 0 {
			return false, nil
		}
	}

	return true, nil
}

// Grid returns a copy of the current seed counts.
func (that *Board) Grid() Grid {
	return that.grid
}

func (that *Board) SaveSnapshot() {
	that.history = append(that.history, that.grid)
}

func (that *Board) RestoreSnapshot() (Grid, error) {
	if len(that.history) == 0 {
		return that.grid, apperror.ErrEmptyHistory
	}

	last := len(that.history) - 1
	that.grid = that.history[last]
	that.history = that.history[:last]

	that.publisher.Publish(Event{Kind: EventBoardReset, Grid: that.grid, Pits: allPits()})

	return that.grid, nil
}

func (that *Board) HistoryDepth() int {
	return len(that.history)
}

func (that *Board) Reset() {
	that.grid = InitialGrid()
	that.history = that.history[:0]

	that.publisher.Publish(Event{Kind: EventBoardReset, Grid: that.grid, Pits: allPits()})
}

func allPits() []Pit {
	pits := make([]Pit, 0, Height*Width)
	for row := 0; row < Height; row++ {
		for column := 0; column < Width; column++ {
			pits = append(pits, Pit{Row: row, Column: column})
		}
	}

	return pits
}
