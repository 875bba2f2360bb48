package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnReaderRecordedTurn(t *testing.T) {
	f, err := os.Open("testdata/turn.txt")
	require.NoError(t, err)
	defer f.Close()

	tr := NewTurnReader(f)
	turn, err := tr.Next()
	require.NoError(t, err)

	want := &Turn{
		Me:       Player{Inventory: Ingredients{3, 0, 0, 0}},
		Opponent: Player{Inventory: Ingredients{3, 0, 0, 0}, Score: 2},
		Casts: []Cast{
			{ID: 78, Delta: Ingredients{2, 0, 0, 0}, Castable: true},
		},
		OpponentCasts: []Cast{
			{ID: 79, Delta: Ingredients{2, 0, 0, 0}, Castable: true},
		},
		Brews: []Brew{
			{ID: 44, Delta: Ingredients{0, -2, 0, -2}, Price: 15},
			{ID: 53, Delta: Ingredients{0, 0, -4, 0}, Price: 12},
		},
		Learns: []Learn{
			{ID: 8, Delta: Ingredients{-3, 0, 0, 1}, TaxCount: 1, Repeatable: true},
		},
	}
	if diff := cmp.Diff(want, turn); diff != "" {
		t.Errorf("turn mismatch (-want +got):\n%s", diff)
	}

	_, err = tr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTurnReaderSeveralTurns(t *testing.T) {
	one := "1\n7 BREW -1 0 0 0 3 0 0 0 0\n1 0 0 0 0\n0 0 0 0 0\n"
	tr := NewTurnReader(strings.NewReader(one + "\n" + one))
	for i := 0; i < 2; i++ {
		turn, err := tr.Next()
		require.NoError(t, err)
		assert.Len(t, turn.Brews, 1)
	}
	_, err := tr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTurnReaderEmptyTurn(t *testing.T) {
	turn, err := NewTurnReader(strings.NewReader("0\n1 2 3 4 5\n0 0 0 0 0\n")).Next()
	require.NoError(t, err)
	assert.Equal(t, Ingredients{1, 2, 3, 4}, turn.Me.Inventory)
	assert.Equal(t, 5, turn.Me.Score)
	assert.Empty(t, turn.Casts)
}

func TestTurnReaderTruncated(t *testing.T) {
	for name, in := range map[string]string{
		"mid actions": "2\n7 BREW -1 0 0 0 3 0 0 0 0\n",
		"no players":  "1\n7 BREW -1 0 0 0 3 0 0 0 0\n",
		"one player":  "0\n1 0 0 0 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewTurnReader(strings.NewReader(in)).Next()
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
}

func TestTurnReaderMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad count", "two\n"},
		{"negative count", "-1\n"},
		{"short action", "1\n7 BREW -1 0 0 0\n"},
		{"bad number", "1\n7 BREW x 0 0 0 3 0 0 0 0\n"},
		{"unknown type", "1\n7 STEAL -1 0 0 0 3 0 0 0 0\n"},
		{"short player", "0\n1 0 0 0\n0 0 0 0 0\n"},
		{"bad score", "0\n1 0 0 0 z\n0 0 0 0 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTurnReader(strings.NewReader(tt.in)).Next()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTurn)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}
