package quiz

import "sort"

// Standing is one row of a ranking table.
type Standing struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RankChange reports a team whose ordinal position moved between two
// ranking snapshots. Drives the "ranking changed" celebration overlay.
type RankChange struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	OldPosition int    `json:"oldPosition"`
	NewPosition int    `json:"newPosition"`
}

// RankTeams orders teams score-descending. Ties keep input order, which
// is what makes the position diff deterministic across clients seeing
// the same team list.
func RankTeams(teams []Standing) []Standing {
	ranked := make([]Standing, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// RankScores builds a ranking from a score map, ordering ties by the
// supplied name order (the room's team list order).
func RankScores(scores map[string]int, order []string) []Standing {
	standings := make([]Standing, 0, len(scores))
	seen := make(map[string]bool, len(scores))
	for _, name := range order {
		if score, ok := scores[name]; ok && !seen[name] {
			standings = append(standings, Standing{Name: name, Score: score})
			seen[name] = true
		}
	}
	// Teams only known locally (not yet in the room list) go last.
	for name, score := range scores {
		if !seen[name] {
			standings = append(standings, Standing{Name: name, Score: score})
		}
	}
	return RankTeams(standings)
}

// DiffRankings compares a current ranking against the previous snapshot
// and returns every team whose position changed. Teams absent from the
// previous snapshot are not reported; they have no old position to move
// from.
func DiffRankings(prev, cur []Standing) []RankChange {
	oldPos := make(map[string]int, len(prev))
	for i, s := range prev {
		oldPos[s.Name] = i
	}

	var changes []RankChange
	for newPos, s := range cur {
		old, ok := oldPos[s.Name]
		if !ok || old == newPos {
			continue
		}
		changes = append(changes, RankChange{
			Name:        s.Name,
			Score:       s.Score,
			OldPosition: old,
			NewPosition: newPos,
		})
	}
	return changes
}
