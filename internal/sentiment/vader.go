package sentiment

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/decisions/internal/models"
)

var (
	ErrEmptyText  = errors.New("no text to score")
	ErrUnscorable = errors.New("text could not be scored")
)

var (
	markdownLinks = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLs      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTags      = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = markdownLinks.ReplaceAllString(input, "$1") // Keep only the text
	return bareURLs.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders reddit markdown and strips the markup so the
// models only see words.
func ConvertMarkdownToText(input string) string {
	// Smartypants is left off so apostrophes stay ASCII for the negation rules.
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: blackfriday.UseXHTML})
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions(), blackfriday.WithRenderer(renderer))
	text := html.UnescapeString(htmlTags.ReplaceAllString(string(output), " "))

	return strings.Join(strings.Fields(RemoveLinks(text)), " ")
}

// PolarityModel scores text with VADER's compound score in [-1, 1].
type PolarityModel struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewPolarityModel() *PolarityModel {
	return &PolarityModel{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score fails only for blank text. Comments that are nothing but links or
// markup are scored as written.
func (m *PolarityModel) Score(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyText
	}
	plainText := ConvertMarkdownToText(text)
	if plainText == "" {
		plainText = text
	}

	return m.analyzer.PolarityScores(plainText).Compound, nil
}

// PolarityLabel is pos only for strictly positive scores; zero is neg.
func PolarityLabel(score float64) models.SentimentLabel {
	if score > 0 {
		return models.SentimentPositive
	}
	return models.SentimentNegative
}
