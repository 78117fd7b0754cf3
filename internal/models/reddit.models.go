package models

import "encoding/json"

const (
	RedditKindComment = "t1"
	RedditKindLink    = "t3"
	RedditKindMore    = "more"

	RedditLinkPrefix = RedditKindLink + "_"
)

// RedditListing is one element of the array returned by /comments/<id>.
type RedditListing struct {
	Kind string            `json:"kind"`
	Data RedditListingData `json:"data"`
}

type RedditListingData struct {
	After    string        `json:"after"`
	Children []RedditThing `json:"children"`
}

// RedditThing keeps Data raw until Kind says which shape it has.
type RedditThing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type RedditComment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
	LinkID   string `json:"link_id"`
	Author   string `json:"author"`
	Body     string `json:"body"`
	Score    int    `json:"score"`
	Depth    int    `json:"depth"`
}

// RedditMore is a "load more comments" placeholder. A placeholder with no
// children is a "continue this thread" link into a reply chain.
type RedditMore struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ParentID string   `json:"parent_id"`
	Count    int      `json:"count"`
	Depth    int      `json:"depth"`
	Children []string `json:"children"`
}

type RedditMoreChildrenResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []RedditThing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}
