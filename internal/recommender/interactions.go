package recommender

import (
	"sort"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// InteractionMatrix is a sparse user-by-item score matrix. Purchase
// quantities and explicit ratings land in the same cells additively.
type InteractionMatrix struct {
	users     []int64
	userIndex map[int64]int
	cells     map[int64]map[int64]float64 // user id -> product id -> score
}

// BuildInteractions merges completed-purchase quantities and review ratings
// into one user-item matrix. With zero completed orders the ratings alone
// form the matrix; with both sources empty it reports
// domain.ErrNoCollaborativeData so callers can degrade explicitly.
func BuildInteractions(purchases []domain.PurchaseSignal, reviews []domain.ReviewSignal) (*InteractionMatrix, error) {
	if len(purchases) == 0 && len(reviews) == 0 {
		return nil, domain.ErrNoCollaborativeData
	}

	cells := make(map[int64]map[int64]float64)
	add := func(userID, productID int64, score float64) {
		row, ok := cells[userID]
		if !ok {
			row = make(map[int64]float64)
			cells[userID] = row
		}
		row[productID] += score
	}

	for _, p := range purchases {
		add(p.UserID, p.ProductID, float64(p.Quantity))
	}
	for _, r := range reviews {
		add(r.UserID, r.ProductID, float64(r.Rating))
	}

	users := make([]int64, 0, len(cells))
	for u := range cells {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	userIndex := make(map[int64]int, len(users))
	for i, u := range users {
		userIndex[u] = i
	}

	return &InteractionMatrix{users: users, userIndex: userIndex, cells: cells}, nil
}

// Score returns the interaction score for one cell, 0 when absent.
func (im *InteractionMatrix) Score(userID, productID int64) float64 {
	return im.cells[userID][productID]
}

// UserIDs returns users in ascending order.
func (im *InteractionMatrix) UserIDs() []int64 {
	return im.users
}

// UserRow returns a user's sparse product-score row keyed by user index,
// for user-user similarity.
func (im *InteractionMatrix) UserRow(userID int64) map[int64]float64 {
	return im.cells[userID]
}

// itemVectors transposes the matrix into per-product sparse vectors over
// users, reindexed to cover exactly the given product id list. Products
// with no interactions get empty vectors, yielding zero similarity to
// everything.
func (im *InteractionMatrix) itemVectors(productIDs []int64) []map[int]float64 {
	wanted := make(map[int64]int, len(productIDs))
	for i, id := range productIDs {
		wanted[id] = i
	}

	vectors := make([]map[int]float64, len(productIDs))
	for i := range vectors {
		vectors[i] = make(map[int]float64)
	}
	for userID, row := range im.cells {
		uidx := im.userIndex[userID]
		for productID, score := range row {
			col, ok := wanted[productID]
			if !ok {
				continue // interaction for a product no longer in the catalog
			}
			vectors[col][uidx] = score
		}
	}
	return vectors
}
