package recommender

// CollaborativeSimilarity computes the item-item cosine matrix from the
// interaction matrix, each product treated as a vector over users. A nil
// interaction matrix (no collaborative data at all) produces an all-zero
// matrix of the full catalog shape rather than an error, so a content-only
// model still trains.
func CollaborativeSimilarity(im *InteractionMatrix, productIDs []int64) *SimilarityMatrix {
	if im == nil {
		n := len(productIDs)
		ids := make([]int64, n)
		copy(ids, productIDs)
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = make([]float64, n)
		}
		return NewSimilarityMatrix(ids, rows)
	}
	return pairwiseCosine(productIDs, im.itemVectors(productIDs))
}
