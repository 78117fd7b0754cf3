// Package sentiment scores comment text with two independent models: VADER
// polarity and a naive Bayes classifier trained on an embedded corpus.
package sentiment
