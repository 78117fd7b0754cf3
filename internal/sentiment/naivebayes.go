package sentiment

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"
	"github.com/spacesedan/decisions/internal/models"
)

const (
	classPositive bayesian.Class = "pos"
	classNegative bayesian.Class = "neg"
)

var (
	//go:embed data/positive.txt
	positiveCorpus string

	//go:embed data/negative.txt
	negativeCorpus string
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"on": {}, "at": {}, "for": {}, "with": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "it": {}, "its": {}, "this": {}, "that": {}, "i": {}, "you": {},
	"he": {}, "she": {}, "we": {}, "they": {}, "me": {}, "my": {}, "your": {}, "our": {},
	"as": {}, "by": {}, "from": {}, "so": {}, "just": {}, "about": {},
}

// NaiveBayesModel is trained once and only read afterwards. The classifier
// holds the word counts; scoring smooths them so that a single word never
// pins a probability to 0 or 1.
type NaiveBayesModel struct {
	classifier *bayesian.Classifier
	documents  map[bayesian.Class]int
	words      map[bayesian.Class]int
}

type NaiveBayesResult struct {
	Label models.SentimentLabel
	PPos  float64
	PNeg  float64
}

// Score is the probability of the chosen class, negative for neg.
func (r NaiveBayesResult) Score() float64 {
	if r.Label == models.SentimentPositive {
		return r.PPos
	}
	return -r.PNeg
}

// NewNaiveBayesModel trains on the embedded labeled corpus.
func NewNaiveBayesModel() (*NaiveBayesModel, error) {
	return TrainNaiveBayes(strings.NewReader(positiveCorpus), strings.NewReader(negativeCorpus))
}

// TrainNaiveBayes learns from one example per line. Blank lines and lines
// starting with # are skipped.
func TrainNaiveBayes(positive, negative io.Reader) (*NaiveBayesModel, error) {
	m := &NaiveBayesModel{
		classifier: bayesian.NewClassifier(classPositive, classNegative),
		documents:  make(map[bayesian.Class]int, 2),
		words:      make(map[bayesian.Class]int, 2),
	}

	if err := m.learn(positive, classPositive); err != nil {
		return nil, err
	}
	if err := m.learn(negative, classNegative); err != nil {
		return nil, err
	}
	pos, neg := m.documents[classPositive], m.documents[classNegative]
	if pos == 0 || neg == 0 {
		return nil, fmt.Errorf("naive bayes needs examples of both classes, got %d pos and %d neg", pos, neg)
	}

	return m, nil
}

func (m *NaiveBayesModel) learn(r io.Reader, class bayesian.Class) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		features := Features(line)
		if len(features) == 0 {
			continue
		}
		m.classifier.Learn(features, class)
		m.documents[class]++
		m.words[class] += len(features)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s corpus: %w", class, err)
	}
	return nil
}

func (m *NaiveBayesModel) Documents() int {
	return m.documents[classPositive] + m.documents[classNegative]
}

// Classify scores the words of text that appear in the training corpus.
// Text with no known words gets the class priors.
func (m *NaiveBayesModel) Classify(text string) (NaiveBayesResult, error) {
	if strings.TrimSpace(text) == "" {
		return NaiveBayesResult{}, ErrEmptyText
	}
	plainText := ConvertMarkdownToText(text)
	if plainText == "" {
		plainText = text
	}

	logPos, logNeg := m.logScores(Features(plainText))
	pPos, pNeg := normalize(logPos, logNeg)
	if math.IsNaN(pPos) || math.IsNaN(pNeg) {
		return NaiveBayesResult{}, ErrUnscorable
	}

	label := models.SentimentNegative
	if pPos > pNeg {
		label = models.SentimentPositive
	}
	return NaiveBayesResult{Label: label, PPos: pPos, PNeg: pNeg}, nil
}

// logScores adds smoothed log likelihoods of the known features to the log
// priors. Each count gets half a document added, and unseen words are left
// out entirely.
func (m *NaiveBayesModel) logScores(features []string) (float64, float64) {
	docsPos := float64(m.documents[classPositive])
	docsNeg := float64(m.documents[classNegative])
	total := docsPos + docsNeg

	logPos := math.Log((docsPos + 0.5) / (total + 1))
	logNeg := math.Log((docsNeg + 0.5) / (total + 1))

	counts := m.documentCounts(features)
	for i := range features {
		pos, neg := counts[0][i], counts[1][i]
		if pos == 0 && neg == 0 {
			continue
		}
		logPos += math.Log((pos + 0.5) / (docsPos + 1))
		logNeg += math.Log((neg + 0.5) / (docsNeg + 1))
	}
	return logPos, logNeg
}

// documentCounts returns, per class, how many training documents contain
// each feature. Features are deduplicated per document, so a word's
// frequency in a class times the class's word total is that count. Unseen
// words come back from the classifier with a tiny default frequency and
// round to zero.
func (m *NaiveBayesModel) documentCounts(features []string) [2][]float64 {
	var counts [2][]float64
	if len(features) == 0 {
		return counts
	}

	freqs := m.classifier.WordFrequencies(features)
	for c, class := range []bayesian.Class{classPositive, classNegative} {
		counts[c] = make([]float64, len(features))
		for i, freq := range freqs[c] {
			counts[c][i] = math.Round(freq * float64(m.words[class]))
		}
	}
	return counts
}

// normalize turns two log scores into probabilities summing to one without
// leaving log space, so long comments cannot underflow.
func normalize(logPos, logNeg float64) (float64, float64) {
	pPos := 1 / (1 + math.Exp(logNeg-logPos))
	return pPos, 1 - pPos
}

// Features is the set of distinct lowercased words in text, minus
// stopwords, in order of first appearance.
func Features(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	seen := make(map[string]struct{}, len(words))
	features := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, "'")
		if word == "" {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		features = append(features, word)
	}
	return features
}
