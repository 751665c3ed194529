package recommender

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxVocabulary caps the TF-IDF term space for bounded memory.
const maxVocabulary = 5000

// vectorize turns each document into a sparse TF-IDF vector over unigrams
// and bigrams. The vocabulary keeps the maxVocabulary most frequent terms
// across the corpus, ties broken alphabetically so builds are repeatable.
func vectorize(docs []string) []map[int]float64 {
	tokenized := make([][]string, len(docs))
	totals := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		terms := ngrams(tokenize(doc))
		tokenized[i] = terms

		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			totals[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	vocab := buildVocabulary(totals)

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	termIndex := make(map[string]int, len(vocab))
	for i, term := range vocab {
		termIndex[term] = i
		// smoothed idf, always positive
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([]map[int]float64, len(docs))
	for i, terms := range tokenized {
		counts := make(map[int]int)
		for _, t := range terms {
			if idx, ok := termIndex[t]; ok {
				counts[idx]++
			}
		}
		vec := make(map[int]float64, len(counts))
		for idx, c := range counts {
			vec[idx] = float64(c) * idf[idx]
		}
		vectors[i] = vec
	}
	return vectors
}

func buildVocabulary(totals map[string]int) []string {
	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}
	return terms
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ngrams returns the unigrams plus adjacent bigrams of a token stream.
func ngrams(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}
