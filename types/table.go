package types

import (
	"errors"
	"slices"
	"strconv"

	"git.gammaspectra.live/P2Pool/sbox/utils"
)

// Table is a square table of counts indexed by [row][column], stored row-major.
// DDT rows are input differences and columns output differences, LAT rows are input masks and columns output masks.
type Table struct {
	n     int
	cells []uint16
}

func NewTable(n int) *Table {
	return &Table{
		n:     n,
		cells: make([]uint16, n*n),
	}
}

func TableFromRows(rows [][]uint16) (*Table, error) {
	t := NewTable(len(rows))
	for i, row := range rows {
		if len(row) != t.n {
			return nil, errors.New("table is not square")
		}
		copy(t.cells[i*t.n:], row)
	}
	return t, nil
}

func MustTableFromRows(rows [][]uint16) *Table {
	if t, err := TableFromRows(rows); err != nil {
		panic(err)
	} else {
		return t
	}
}

func (t *Table) Size() int {
	return t.n
}

func (t *Table) At(row, col int) uint16 {
	return t.cells[row*t.n+col]
}

func (t *Table) Set(row, col int, v uint16) {
	t.cells[row*t.n+col] = v
}

func (t *Table) Inc(row, col int) {
	t.cells[row*t.n+col]++
}

// Row returns a view into the table, not a copy
func (t *Table) Row(row int) []uint16 {
	return t.cells[row*t.n : (row+1)*t.n : (row+1)*t.n]
}

func (t *Table) Rows() [][]uint16 {
	rows := make([][]uint16, t.n)
	for i := range rows {
		rows[i] = slices.Clone(t.Row(i))
	}
	return rows
}

// RowSum adds up every count in row
func (t *Table) RowSum(row int) (sum int) {
	for _, v := range t.Row(row) {
		sum += int(v)
	}
	return sum
}

// MaxFrom returns the largest count in rows fromRow and after
func (t *Table) MaxFrom(fromRow int) (m uint16) {
	if fromRow >= t.n {
		return 0
	}
	return slices.Max(t.cells[fromRow*t.n:])
}

// Max returns the largest count in the table, trivial row included
func (t *Table) Max() uint16 {
	return t.MaxFrom(0)
}

func (t *Table) Clone() *Table {
	return &Table{
		n:     t.n,
		cells: slices.Clone(t.cells),
	}
}

func (t *Table) Equals(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.n == o.n && slices.Equal(t.cells, o.cells)
}

// AppendText writes one line per row, formatted as [a, b, c]
func (t *Table) AppendText(buf []byte) []byte {
	for i := 0; i < t.n; i++ {
		buf = append(buf, '[')
		for j, v := range t.Row(i) {
			if j > 0 {
				buf = append(buf, ',', ' ')
			}
			buf = strconv.AppendUint(buf, uint64(v), 10)
		}
		buf = append(buf, ']', '\n')
	}
	return buf
}

func (t *Table) String() string {
	return string(t.AppendText(nil))
}

func (t *Table) MarshalJSON() ([]byte, error) {
	return utils.MarshalJSON(t.Rows())
}

func (t *Table) UnmarshalJSON(buf []byte) error {
	var rows [][]uint16
	if err := utils.UnmarshalJSON(buf, &rows); err != nil {
		return err
	}
	other, err := TableFromRows(rows)
	if err != nil {
		return err
	}
	*t = *other
	return nil
}
