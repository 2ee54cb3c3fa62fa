package lexical

import (
	"math"
	"sort"
	"strings"
)

// Vocabulary returns the sorted union of the lowercased words of texts.
func Vocabulary(texts ...string) []string {
	seen := make(map[string]struct{})
	for _, t := range texts {
		for _, w := range strings.Fields(strings.ToLower(t)) {
			seen[w] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for w := range seen {
		vocab = append(vocab, w)
	}
	sort.Strings(vocab)
	return vocab
}

// IDF returns ln(len(corpus) / (1 + df)) + 1 for every vocabulary word, where
// df is the number of corpus documents whose lowercased text contains the
// word.
func IDF(vocabulary []string, corpus []string) []float64 {
	lowered := make([]string, len(corpus))
	for i, doc := range corpus {
		lowered[i] = strings.ToLower(doc)
	}

	idf := make([]float64, len(vocabulary))
	for i, word := range vocabulary {
		df := 0
		for _, doc := range lowered {
			if strings.Contains(doc, word) {
				df++
			}
		}
		idf[i] = math.Log(float64(len(corpus))/float64(1+df)) + 1
	}
	return idf
}

// TermFrequencies returns occurrence-count / word-count of every vocabulary
// word in text.
func TermFrequencies(text string, vocabulary []string) []float64 {
	words := strings.Fields(strings.ToLower(text))
	tf := make([]float64, len(vocabulary))
	if len(words) == 0 {
		return tf
	}
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	for i, word := range vocabulary {
		tf[i] = float64(counts[word]) / float64(len(words))
	}
	return tf
}

// TFIDFVector weights the term frequencies of text over vocabulary by the
// inverse document frequencies of corpus.
func TFIDFVector(text string, vocabulary []string, corpus []string) []float64 {
	return weight(TermFrequencies(text, vocabulary), IDF(vocabulary, corpus))
}

// Corpus caches the vocabulary and IDF weights of a fixed set of documents so
// several vectors can be built against the same basis.
type Corpus struct {
	vocabulary []string
	idf        []float64
}

// NewCorpus builds the vocabulary and IDF weights of docs.
func NewCorpus(docs ...string) *Corpus {
	vocab := Vocabulary(docs...)
	return &Corpus{
		vocabulary: vocab,
		idf:        IDF(vocab, docs),
	}
}

// Vocabulary returns the corpus vocabulary in vector order.
func (c *Corpus) Vocabulary() []string {
	return c.vocabulary
}

// Vector returns the TF-IDF vector of text over the corpus vocabulary.
func (c *Corpus) Vector(text string) []float64 {
	return weight(TermFrequencies(text, c.vocabulary), c.idf)
}

func weight(tf, idf []float64) []float64 {
	v := make([]float64, len(tf))
	for i := range tf {
		v[i] = tf[i] * idf[i]
	}
	return v
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero magnitude.
func Cosine(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += a[i] * b[i]
	}
	for _, x := range a {
		magA += x * x
	}
	for _, x := range b {
		magB += x * x
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
