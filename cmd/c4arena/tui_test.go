package main

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/c4-mcts/pkg/bench"
	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

func TestParseCell(t *testing.T) {
	if r, c, err := parseCell("none"); err != nil || r != -1 || c != -1 {
		t.Errorf("parseCell(none) = %d, %d, %v", r, c, err)
	}
	if r, c, err := parseCell("2,5"); err != nil || r != 2 || c != 5 {
		t.Errorf("parseCell(2,5) = %d, %d, %v", r, c, err)
	}
	if _, _, err := parseCell("two"); err == nil {
		t.Error("parseCell(two) should fail")
	}
}

func TestModelUpdate(t *testing.T) {
	cfg := c4.Config{Rows: 4, Cols: 4, Forbidden: c4.NoCell}
	tl := newTuiListener()
	m := initialModel(cfg, 3, tl)
	m.profile = termenv.Ascii

	info := bench.VersusWorkerInfo{
		Game:   1,
		Moves:  []c4.Move{{Row: 3, Col: 0}, {Row: 3, Col: 1}},
		Result: bench.VersusPl2Win,
		P2Wins: 1,
		P1Name: "a",
		P2Name: "b",
	}
	tl.OnMoveMade(info)

	next, _ := m.Update(GameUpdate{Info: info})
	next, _ = next.Update(TickMsg{})
	view := next.View()
	for _, want := range []string{"Games Played:   1/3", "Score (W-D-L):  0-0-1", "game 1, b won in 2 moves", "Total Moves:    1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q:\n%s", want, view)
		}
	}

	next, cmd := next.Update(doneMsg{summary: bench.VersusSummaryInfo{TotalGames: 3, P1Wins: 2, P2Wins: 1}})
	if cmd == nil {
		t.Fatal("done message should quit")
	}
	if view := next.View(); !strings.Contains(view, "3/3") || strings.Contains(view, "Press q") {
		t.Errorf("final view:\n%s", view)
	}
}
