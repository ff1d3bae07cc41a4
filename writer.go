package inkpress

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// slugPattern is the shared slug format for creation and lookup.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Create validates payload and writes a new <slug>.md file with frontmatter
// and body. It refuses to overwrite: an existing file is a ConflictError.
// The existence check immediately precedes the write, so two concurrent
// creations of the same new slug have a narrow race; acceptable for a
// single-admin site.
func (r *Repo) Create(p PostPayload) (Post, error) {
	if p.Title == "" || p.Slug == "" || p.Summary == "" || p.Content == "" {
		return Post{}, &ValidationError{Msg: "missing required fields: title, slug, summary, and content are required"}
	}
	if !slugPattern.MatchString(p.Slug) {
		return Post{}, &ValidationError{Msg: "invalid slug format: use lowercase letters, numbers, and hyphens only"}
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return Post{}, fmt.Errorf("create content dir: %w", err)
	}

	path := filepath.Join(r.dir, p.Slug+".md")
	if _, err := os.Stat(path); err == nil {
		return Post{}, &ConflictError{Slug: p.Slug}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	tags := FilterEmpty(p.Tags)
	if tags == nil {
		tags = []string{}
	}

	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "title", p.Title)
	writeField(&b, "date", now)
	writeField(&b, "summary", p.Summary)
	writeField(&b, "author", p.Author)
	writeListField(&b, "tags", tags)
	b.WriteString("---\n\n")
	b.WriteString(p.Content)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return Post{}, fmt.Errorf("write post file: %w", err)
	}

	r.log.Info().Str("slug", p.Slug).Msg("post created")
	return Post{
		Slug:    p.Slug,
		Title:   p.Title,
		Date:    now,
		Summary: p.Summary,
		Tags:    tags,
		Author:  p.Author,
		Link:    "/blog/" + p.Slug,
		Content: p.Content,
	}, nil
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(strconv.Quote(value))
	b.WriteByte('\n')
}

func writeListField(b *strings.Builder, key string, values []string) {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	b.WriteString(key)
	b.WriteString(": [")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString("]\n")
}
