package quiz

// MergeScores reconciles a client's locally-held scores with a freshly
// polled server copy by taking the per-team maximum. Both the presenter
// (batch-crediting virtual teams) and a player client (self-crediting
// on a correct answer) may write the shared room concurrently, so a
// stale overwrite can report a lower score than one a client already
// applied; the max keeps monotonic single-source increases from being
// lost.
//
// This is best effort, not a correctness guarantee: two independent
// increases from different clients observed by a third cannot both
// survive a max-merge.
func MergeScores(local, server map[string]int) map[string]int {
	merged := make(map[string]int, len(server))
	for name, score := range server {
		merged[name] = score
	}
	for name, score := range local {
		if score > merged[name] {
			merged[name] = score
		}
	}
	return merged
}

// ApplyScores writes a score map back onto a room's team list, keeping
// the IsVirtual tags intact. Teams present in the map but missing from
// the list are ignored; the team list is the source of membership.
func ApplyScores(room *Room, scores map[string]int) {
	for i := range room.Teams {
		if score, ok := scores[room.Teams[i].Name]; ok {
			room.Teams[i].Score = score
		}
	}
}
