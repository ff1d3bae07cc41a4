package inkpress

// Post is the core content type. One markdown file on disk is one Post;
// the slug is both the lookup key and the filename stem.
type Post struct {
	Slug       string
	Title      string
	Date       string // as written in frontmatter, RFC 3339 or YYYY-MM-DD
	Summary    string
	Tags       []string
	Author     string
	CoverImage string
	Link       string
	Content    string // raw markdown body

	// HTMLContent is derived from Content through the markdown pipeline.
	// It is never persisted and is recomputed on every detail-page request.
	HTMLContent string
}

// PostPayload is the shape accepted by the post creation endpoint.
type PostPayload struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Summary string   `json:"summary"`
	Content string   `json:"content"`
	Author  string   `json:"author,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}
