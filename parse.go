package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedTurn reports referee input that does not follow the protocol.
var ErrMalformedTurn = errors.New("malformed turn input")

// TurnReader decodes the referee's per-turn line protocol:
//
//	actionCount
//	id type d0 d1 d2 d3 price tomeIndex taxCount castable repeatable   (actionCount times)
//	inv0 inv1 inv2 inv3 score                                        (me)
//	inv0 inv1 inv2 inv3 score                                        (opponent)
type TurnReader struct {
	sc   *bufio.Scanner
	line int
}

// NewTurnReader reads turns from r.
func NewTurnReader(r io.Reader) *TurnReader {
	return &TurnReader{sc: bufio.NewScanner(r)}
}

// Next reads one turn. It returns io.EOF when the input ends cleanly
// between turns.
func (tr *TurnReader) Next() (*Turn, error) {
	first, err := tr.readLine()
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(first)
	if err != nil || count < 0 {
		return nil, tr.malformed("action count %q", first)
	}

	turn := &Turn{}
	for i := 0; i < count; i++ {
		line, err := tr.readLine()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if err := tr.parseAction(turn, line); err != nil {
			return nil, err
		}
	}
	for _, p := range []*Player{&turn.Me, &turn.Opponent} {
		line, err := tr.readLine()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if *p, err = tr.parsePlayer(line); err != nil {
			return nil, err
		}
	}
	return turn, nil
}

func (tr *TurnReader) readLine() (string, error) {
	for tr.sc.Scan() {
		tr.line++
		if s := strings.TrimSpace(tr.sc.Text()); s != "" {
			return s, nil
		}
	}
	if err := tr.sc.Err(); err != nil {
		return "", fmt.Errorf("read line %d: %w", tr.line+1, err)
	}
	return "", io.EOF
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (tr *TurnReader) malformed(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedTurn, tr.line, fmt.Sprintf(format, args...))
}

func (tr *TurnReader) parseAction(turn *Turn, line string) error {
	f := strings.Fields(line)
	if len(f) != 11 {
		return tr.malformed("want 11 fields, got %d in %q", len(f), line)
	}
	nums := make([]int, 0, 9)
	for _, idx := range []int{0, 2, 3, 4, 5, 6, 7, 8} {
		n, err := strconv.Atoi(f[idx])
		if err != nil {
			return tr.malformed("field %d: %v", idx+1, err)
		}
		nums = append(nums, n)
	}
	id := nums[0]
	delta := Ingredients{nums[1], nums[2], nums[3], nums[4]}
	price, tomeIndex, taxCount := nums[5], nums[6], nums[7]
	castable := f[9] != "0"
	repeatable := f[10] != "0"

	switch f[1] {
	case "BREW":
		turn.Brews = append(turn.Brews, Brew{ID: id, Delta: delta, Price: price})
	case "CAST":
		turn.Casts = append(turn.Casts, Cast{ID: id, Delta: delta, Castable: castable, Repeatable: repeatable})
	case "OPPONENT_CAST":
		turn.OpponentCasts = append(turn.OpponentCasts, Cast{ID: id, Delta: delta, Castable: castable, Repeatable: repeatable})
	case "LEARN":
		turn.Learns = append(turn.Learns, Learn{
			ID:         id,
			Delta:      delta,
			TomeIndex:  tomeIndex,
			TaxCount:   taxCount,
			Repeatable: repeatable,
		})
	default:
		return tr.malformed("unknown action type %q", f[1])
	}
	return nil
}

func (tr *TurnReader) parsePlayer(line string) (Player, error) {
	f := strings.Fields(line)
	if len(f) != NumTiers+1 {
		return Player{}, tr.malformed("want %d inventory fields, got %d in %q", NumTiers+1, len(f), line)
	}
	var p Player
	for i := 0; i < NumTiers; i++ {
		n, err := strconv.Atoi(f[i])
		if err != nil {
			return Player{}, tr.malformed("inventory tier %d: %v", i, err)
		}
		p.Inventory[i] = n
	}
	score, err := strconv.Atoi(f[NumTiers])
	if err != nil {
		return Player{}, tr.malformed("score: %v", err)
	}
	p.Score = score
	return p, nil
}
