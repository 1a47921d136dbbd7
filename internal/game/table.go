package game

import (
	"fmt"

	"github.com/cory-johannsen/montecarlo/internal/dice"
)

// Form selects a projection of the results table.
type Form string

const (
	// FormWide has one row per roll and one column per die.
	FormWide Form = "wide"
	// FormNarrow has one row per (roll, die) pair and a single outcome column.
	FormNarrow Form = "narrow"
)

// ParseForm validates s as a Form.
//
// Postcondition: returns FormWide or FormNarrow, or an error wrapping
// ErrInvalidArgument.
func ParseForm(s string) (Form, error) {
	switch f := Form(s); f {
	case FormWide, FormNarrow:
		return f, nil
	default:
		return "", fmt.Errorf("game: form must be %q or %q, got %q: %w", FormWide, FormNarrow, s, ErrInvalidArgument)
	}
}

// Row is one table row. Key holds the index values named by Table.Index and
// Values the cells named by Table.Columns.
type Row struct {
	Key    []int
	Values []dice.Face
}

// Table is a structured row/column projection of the results.
type Table struct {
	Index   []string
	Columns []string
	Rows    []Row
}

// Show projects the results of the last Play. Roll numbers start at 1 and die
// indices at 0. An unplayed game yields a table with no rows.
//
// Postcondition: wide has NumRolls() rows of len(dice) values; narrow has
// NumRolls()*len(dice) rows of one value, ordered by roll then die.
func (g *Game) Show(form Form) (Table, error) {
	switch form {
	case FormWide:
		return g.wide(), nil
	case FormNarrow:
		return g.narrow(), nil
	default:
		return Table{}, fmt.Errorf("game: Show: form must be %q or %q, got %q: %w", FormWide, FormNarrow, form, ErrInvalidArgument)
	}
}

func (g *Game) wide() Table {
	cols := make([]string, len(g.dice))
	for i := range cols {
		cols[i] = fmt.Sprintf("die_%d", i)
	}
	rows := make([]Row, len(g.rolls))
	for i, r := range g.rolls {
		rows[i] = Row{Key: []int{i + 1}, Values: append([]dice.Face(nil), r...)}
	}
	return Table{Index: []string{"roll"}, Columns: cols, Rows: rows}
}

func (g *Game) narrow() Table {
	rows := make([]Row, 0, len(g.rolls)*len(g.dice))
	for i, r := range g.rolls {
		for j, f := range r {
			rows = append(rows, Row{Key: []int{i + 1, j}, Values: []dice.Face{f}})
		}
	}
	return Table{Index: []string{"roll", "die"}, Columns: []string{"outcome"}, Rows: rows}
}
