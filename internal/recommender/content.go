package recommender

// ContentSimilarity vectorizes the feature text of every product and
// computes the full item-item cosine matrix. TF-IDF weights are
// non-negative, so all similarities land in [0, 1].
func ContentSimilarity(features []ProductFeature) *SimilarityMatrix {
	docs := make([]string, len(features))
	for i, f := range features {
		docs[i] = f.Text
	}
	return pairwiseCosine(featureIDs(features), vectorize(docs))
}
