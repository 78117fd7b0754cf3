// Package progress renders run status on the terminal.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spacesedan/decisions/internal/models"
)

const LINE_LENGTH = 80

const (
	colorStatus   = "#E5C07B"
	colorFetch    = "#61AFEF"
	colorAnnotate = "#C678DD"
	colorSuccess  = "#04B575"
	colorError    = "#FF0000"
)

// Console prints one status line per step, padded to LINE_LENGTH with the
// outcome right-aligned. Colors are dropped when w is not a terminal.
type Console struct {
	w io.Writer

	statusStyle   lipgloss.Style
	fetchStyle    lipgloss.Style
	annotateStyle lipgloss.Style
	successStyle  lipgloss.Style
	doneStyle     lipgloss.Style
	errorStyle    lipgloss.Style

	line string
}

func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:             w,
		statusStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorStatus)),
		fetchStyle:    r.NewStyle().Foreground(lipgloss.Color(colorFetch)),
		annotateStyle: r.NewStyle().Foreground(lipgloss.Color(colorAnnotate)),
		successStyle:  r.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
		doneStyle:     r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSuccess)),
		errorStyle:    r.NewStyle().Foreground(lipgloss.Color(colorError)),
	}
}

func (c *Console) LoadingPosts(source string) {
	fmt.Fprintln(c.w)
	c.begin(c.statusStyle, fmt.Sprintf("Reading URLs from %s...", source))
}

func (c *Console) PostsLoaded(count int) {
	c.end(c.doneStyle, fmt.Sprintf("%d posts!", count))
	fmt.Fprintln(c.w)
}

func (c *Console) PostStarted(post models.Post) {
	c.begin(c.fetchStyle, fmt.Sprintf("Getting comments for clip %s...", post.ID))
}

func (c *Console) PostFetched(_ models.Post, comments int) {
	c.end(c.successStyle, fmt.Sprintf("%d retrieved!", comments))
}

func (c *Console) PostFailed(_ models.Post, _ error) {
	c.end(c.errorStyle, "failed!")
}

// RecordAnnotated rewrites the same line until the last record.
func (c *Console) RecordAnnotated(done, total int) {
	status := "Calculating sentiment scores..."
	response := fmt.Sprintf("%d comments processed!", done)
	fmt.Fprint(c.w, "\r", c.annotateStyle.Render(status), pad(status, response), c.successStyle.Render(response))
	if done == total {
		fmt.Fprint(c.w, "\n\n")
	}
}

func (c *Console) Writing(destination string) {
	c.begin(c.statusStyle, fmt.Sprintf("Writing to %s...", destination))
}

func (c *Console) Written(records int) {
	c.end(c.doneStyle, fmt.Sprintf("%d rows!", records))
}

func (c *Console) Finished(posts, comments, failedPosts, unscored int) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, c.doneStyle.Render(fmt.Sprintf("%d comments from %d posts", comments, posts)))
	if failedPosts > 0 {
		fmt.Fprintln(c.w, c.errorStyle.Render(fmt.Sprintf("%d posts could not be fetched", failedPosts)))
	}
	if unscored > 0 {
		fmt.Fprintln(c.w, c.errorStyle.Render(fmt.Sprintf("%d comments left without sentiment scores", unscored)))
	}
}

// Failed reports an error that ends the run, closing any open status line.
func (c *Console) Failed(err error) {
	if c.line != "" {
		c.end(c.errorStyle, "failed!")
	}
	fmt.Fprintln(c.w, c.errorStyle.Render(err.Error()))
}

func (c *Console) begin(style lipgloss.Style, status string) {
	c.line = status
	fmt.Fprint(c.w, style.Render(status), " ")
}

func (c *Console) end(style lipgloss.Style, response string) {
	fmt.Fprintln(c.w, pad(c.line, response)+style.Render(response))
	c.line = ""
}

func pad(status, response string) string {
	n := LINE_LENGTH - len(status) - 2 - len(response)
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n)
}

// Nop discards all progress.
type Nop struct{}

func (Nop) LoadingPosts(string)           {}
func (Nop) PostsLoaded(int)               {}
func (Nop) PostStarted(models.Post)       {}
func (Nop) PostFetched(models.Post, int)  {}
func (Nop) PostFailed(models.Post, error) {}
func (Nop) RecordAnnotated(int, int)      {}
func (Nop) Writing(string)                {}
func (Nop) Written(int)                   {}
func (Nop) Failed(error)                  {}
