package recommender

import (
	"math"
	"sort"
)

const (
	userNeighbors = 5
	userListSize  = 10
)

// buildUserLists precomputes, for every user with interactions, the
// products their nearest neighbors interacted with but they have not.
// This is the alternate user-user strategy: the lists are frozen into the
// snapshot at train time so serving stays a lookup.
func buildUserLists(im *InteractionMatrix) map[int64][]int64 {
	if im == nil {
		return nil
	}

	users := im.UserIDs()
	norms := make(map[int64]float64, len(users))
	for _, u := range users {
		var sum float64
		for _, v := range im.UserRow(u) {
			sum += v * v
		}
		norms[u] = sum
	}

	lists := make(map[int64][]int64, len(users))
	for _, u := range users {
		neighbors := nearestUsers(im, u, norms, userNeighbors)
		owned := im.UserRow(u)

		scores := make(map[int64]float64)
		for _, n := range neighbors {
			for productID, score := range im.UserRow(n.ProductID) {
				if _, has := owned[productID]; has {
					continue
				}
				scores[productID] += n.Score * score
			}
		}
		ranked := rank(scores, userListSize)
		ids := make([]int64, len(ranked))
		for i, r := range ranked {
			ids[i] = r.ProductID
		}
		lists[u] = ids
	}
	return lists
}

// nearestUsers returns the k users most similar to u by cosine over their
// interaction rows, reusing ScoredItem as (user id, similarity) pairs.
func nearestUsers(im *InteractionMatrix, u int64, squaredNorms map[int64]float64, k int) []ScoredItem {
	rowU := im.UserRow(u)
	sims := make([]ScoredItem, 0, len(im.UserIDs()))
	for _, other := range im.UserIDs() {
		if other == u {
			continue
		}
		var dot float64
		for productID, v := range rowU {
			if w, ok := im.UserRow(other)[productID]; ok {
				dot += v * w
			}
		}
		if dot == 0 {
			continue
		}
		denom := squaredNorms[u] * squaredNorms[other]
		if denom == 0 {
			continue
		}
		sims = append(sims, ScoredItem{ProductID: other, Score: dot / math.Sqrt(denom)})
	}
	sort.Slice(sims, func(i, j int) bool {
		if sims[i].Score != sims[j].Score {
			return sims[i].Score > sims[j].Score
		}
		return sims[i].ProductID < sims[j].ProductID
	})
	if len(sims) > k {
		sims = sims[:k]
	}
	return sims
}
