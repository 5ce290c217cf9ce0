// Package tfidf implements a small term-frequency/inverse-document-frequency
// vector space with cosine similarity.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]{2,}`)

// Tokenize lower-cases text and returns every run of two or more word
// characters in order of appearance.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Vectorizer maps documents into a fixed tf*idf space.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// Fit learns the vocabulary and smoothed idf weights of corpus:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func Fit(corpus []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, token := range Tokenize(doc) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			df[token]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	v := &Vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = smoothIDF(n, float64(df[term]))
	}

	return v
}

// FitTransform fits corpus and returns the vector of every document in order.
func FitTransform(corpus []string) (*Vectorizer, [][]float64) {
	v := Fit(corpus)
	vectors := make([][]float64, len(corpus))
	for i, doc := range corpus {
		vectors[i] = v.Transform(doc)
	}
	return v, vectors
}

// FromWeights builds a vectorizer from a precomputed vocabulary and idf table.
func FromWeights(vocabulary map[string]int, idf []float64) (*Vectorizer, error) {
	if len(vocabulary) == 0 {
		return nil, errors.New("empty vocabulary")
	}

	used := make([]bool, len(idf))
	v := &Vectorizer{
		vocabulary: make(map[string]int, len(vocabulary)),
		idf:        append([]float64(nil), idf...),
	}
	for term, idx := range vocabulary {
		if idx < 0 || idx >= len(idf) {
			return nil, fmt.Errorf("term %q: index %d out of range [0,%d)", term, idx, len(idf))
		}
		if used[idx] {
			return nil, fmt.Errorf("term %q: index %d is used twice", term, idx)
		}
		used[idx] = true
		v.vocabulary[term] = idx
	}

	return v, nil
}

// Len returns the dimension of the vector space.
func (v *Vectorizer) Len() int {
	return len(v.idf)
}

// Index returns the column of term.
func (v *Vectorizer) Index(term string) (int, bool) {
	idx, ok := v.vocabulary[term]
	return idx, ok
}

// Transform returns the L2-normalised tf*idf vector of doc. Tokens outside the
// vocabulary are ignored; a document without known tokens maps to the zero
// vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, token := range Tokenize(doc) {
		if idx, ok := v.vocabulary[token]; ok {
			vec[idx]++
		}
	}
	floats.Mul(vec, v.idf)

	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}

	return vec
}

// Cosine returns the cosine similarity of a and b clamped to [0,1]. Zero
// vectors and vectors of different length give 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}

	sim := floats.Dot(a, b) / (na * nb)
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	default:
		return sim
	}
}

func smoothIDF(n, df float64) float64 {
	return math.Log((1+n)/(1+df)) + 1
}
