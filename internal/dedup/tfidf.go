// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"fmt"
	"math"
)

// ngram sizes for the character TF-IDF representation of titles.
const (
	minGram = 2
	maxGram = 4
)

// tfidfVectors builds L2-normalized character-n-gram TF-IDF vectors for
// the given documents. It returns an error when the corpus yields no
// features at all (degenerate titles), which callers treat as a malformed
// block.
func tfidfVectors(docs []string) ([]map[string]float64, error) {
	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		c := make(map[string]float64)
		runes := []rune(doc)
		for n := minGram; n <= maxGram; n++ {
			for start := 0; start+n <= len(runes); start++ {
				c[string(runes[start:start+n])]++
			}
		}
		counts[i] = c
		for gram := range c {
			df[gram]++
		}
	}

	if len(df) == 0 {
		return nil, fmt.Errorf("empty vocabulary: no character n-grams in %d document(s)", len(docs))
	}

	// Smoothed IDF, then L2 normalization.
	n := float64(len(docs))
	vectors := make([]map[string]float64, len(docs))
	for i, c := range counts {
		v := make(map[string]float64, len(c))
		var sumSq float64
		for gram, tf := range c {
			idf := math.Log((1+n)/(1+float64(df[gram]))) + 1
			w := tf * idf
			v[gram] = w
			sumSq += w * w
		}
		if norm := math.Sqrt(sumSq); norm > 0 {
			for gram := range v {
				v[gram] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors, nil
}

// cosineDistance returns 1 - cosine similarity of two normalized vectors.
// A zero vector is maximally distant from everything.
func cosineDistance(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for gram, w := range a {
		dot += w * b[gram]
	}
	// Guard against floating point drift above 1.
	if dot > 1 {
		dot = 1
	}
	return 1 - dot
}
