package game

import "fmt"

// Board is the grid of an n×n line-completion game. Cells are stored row-major
// in a single slice owned by the board; clones never share it.
type Board struct {
	dim     int
	reverse bool
	cells   []Cell
}

// NewBoard returns an empty board. When reverse is set the game is played in
// misère mode: completing a line loses.
func NewBoard(dim int, reverse bool) (*Board, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	return &Board{
		dim:     dim,
		reverse: reverse,
		cells:   make([]Cell, dim*dim),
	}, nil
}

// NewBoardFrom copies grid into a new board.
func NewBoardFrom(grid [][]Cell, reverse bool) (*Board, error) {
	b, err := NewBoard(len(grid), reverse)
	if err != nil {
		return nil, err
	}
	for row, line := range grid {
		if len(line) != b.dim {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, row, len(line), b.dim)
		}
		for col, cell := range line {
			if cell != Empty && !cell.Valid() {
				return nil, fmt.Errorf("%w: cell (%d, %d) = %d", ErrInvalidGrid, row, col, cell)
			}
			b.cells[b.index(row, col)] = cell
		}
	}
	return b, nil
}

func (b *Board) Dim() int {
	return b.dim
}

func (b *Board) Reverse() bool {
	return b.reverse
}

func (b *Board) index(row, col int) int {
	return row*b.dim + col
}

func (b *Board) check(row, col int) error {
	if row < 0 || row >= b.dim || col < 0 || col >= b.dim {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrInvalidCoordinate, row, col, b.dim, b.dim)
	}
	return nil
}

// At returns the content of the cell at (row, col).
func (b *Board) At(row, col int) (Cell, error) {
	if err := b.check(row, col); err != nil {
		return Empty, err
	}
	return b.cells[b.index(row, col)], nil
}

// EmptyCells lists the empty cells in row-major order.
func (b *Board) EmptyCells() []Position {
	empty := []Position{}
	for i, cell := range b.cells {
		if cell == Empty {
			empty = append(empty, Position{Row: i / b.dim, Col: i % b.dim})
		}
	}
	return empty
}

// Move places player at (row, col). Moving onto an occupied cell does nothing
// and is not an error.
func (b *Board) Move(row, col int, player Cell) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	i := b.index(row, col)
	if b.cells[i] == Empty {
		b.cells[i] = player
	}
	return nil
}

// Outcome evaluates rows, columns, the main diagonal and the anti-diagonal in
// that order. The first complete line decides the game.
func (b *Board) Outcome() Outcome {
	if winner := b.completedLine(); winner != Empty {
		if b.reverse {
			winner = SwitchPlayer(winner)
		}
		return OutcomeFor(winner)
	}
	for _, cell := range b.cells {
		if cell == Empty {
			return InProgress
		}
	}
	return Draw
}

func (b *Board) completedLine() Cell {
	n := b.dim
	for row := 0; row < n; row++ {
		if c := b.line(b.index(row, 0), 1); c != Empty {
			return c
		}
	}
	for col := 0; col < n; col++ {
		if c := b.line(b.index(0, col), n); c != Empty {
			return c
		}
	}
	if c := b.line(0, n+1); c != Empty {
		return c
	}
	return b.line(n-1, n-1)
}

// line returns the owner of the n cells starting at start and stepping by
// step, or Empty if they are not all owned by the same player.
func (b *Board) line(start, step int) Cell {
	first := b.cells[start]
	if first == Empty {
		return Empty
	}
	for i := 1; i < b.dim; i++ {
		if b.cells[start+i*step] != first {
			return Empty
		}
	}
	return first
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{dim: b.dim, reverse: b.reverse, cells: cells}
}

// Each calls fn for every cell in row-major order.
func (b *Board) Each(fn func(p Position, cell Cell)) {
	for i, cell := range b.cells {
		fn(Position{Row: i / b.dim, Col: i % b.dim}, cell)
	}
}

// Count returns the number of cells owned by player.
func (b *Board) Count(player Cell) int {
	count := 0
	for _, cell := range b.cells {
		if cell == player {
			count++
		}
	}
	return count
}

// Grid returns a fresh row-by-row copy of the cells.
func (b *Board) Grid() [][]Cell {
	grid := make([][]Cell, b.dim)
	for row := range grid {
		grid[row] = make([]Cell, b.dim)
		copy(grid[row], b.cells[b.index(row, 0):b.index(row+1, 0)])
	}
	return grid
}

func (b *Board) String() string {
	return NewRenderer().Render(b)
}
