package quiz

import (
	"reflect"
	"testing"
)

func TestRankTeamsStableTies(t *testing.T) {
	ranked := RankTeams([]Standing{
		{Name: "A", Score: 5},
		{Name: "B", Score: 10},
		{Name: "C", Score: 5},
	})

	want := []Standing{{Name: "B", Score: 10}, {Name: "A", Score: 5}, {Name: "C", Score: 5}}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("ranked = %v, want %v", ranked, want)
	}
}

func TestDiffRankings(t *testing.T) {
	prev := []Standing{{Name: "A", Score: 10}, {Name: "B", Score: 8}, {Name: "C", Score: 5}}
	cur := RankScores(map[string]int{"A": 10, "B": 8, "C": 15}, []string{"A", "B", "C"})

	changes := DiffRankings(prev, cur)
	want := []RankChange{
		{Name: "C", Score: 15, OldPosition: 2, NewPosition: 0},
		{Name: "A", Score: 10, OldPosition: 0, NewPosition: 1},
		{Name: "B", Score: 8, OldPosition: 1, NewPosition: 2},
	}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}
}

func TestDiffRankingsNoChange(t *testing.T) {
	prev := []Standing{{Name: "A", Score: 10}, {Name: "B", Score: 8}}
	cur := []Standing{{Name: "A", Score: 12}, {Name: "B", Score: 9}}

	if changes := DiffRankings(prev, cur); len(changes) != 0 {
		t.Errorf("expected no changes when positions hold, got %v", changes)
	}
}

func TestDiffRankingsIgnoresNewTeams(t *testing.T) {
	prev := []Standing{{Name: "A", Score: 10}}
	cur := []Standing{{Name: "B", Score: 20}, {Name: "A", Score: 10}}

	changes := DiffRankings(prev, cur)
	want := []RankChange{{Name: "A", Score: 10, OldPosition: 0, NewPosition: 1}}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}
}

func TestRankScoresUsesOrderForTies(t *testing.T) {
	ranked := RankScores(map[string]int{"X": 5, "Y": 5}, []string{"Y", "X"})
	if ranked[0].Name != "Y" || ranked[1].Name != "X" {
		t.Errorf("ranked = %v, want ties in team-list order", ranked)
	}
}
