package inkpress

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"

	"inkpress/markdown"
)

// postMeta is the frontmatter block of a post file. Keys match what the
// admin writer emits and what hand-authored files are expected to carry.
type postMeta struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Summary    string   `yaml:"summary"`
	Tags       []string `yaml:"tags"`
	Author     string   `yaml:"author"`
	CoverImage string   `yaml:"coverImage"`
}

// Repo reads posts from a directory of <slug>.md files. It holds no state
// beyond the directory path; every call hits the filesystem.
type Repo struct {
	dir string
	log zerolog.Logger
}

// NewRepo creates a Repo over dir.
func NewRepo(dir string, log zerolog.Logger) *Repo {
	return &Repo{dir: dir, log: log}
}

// Dir returns the content directory the repo reads from.
func (r *Repo) Dir() string {
	return r.dir
}

// ListSlugs returns the slugs of all markdown files in the content
// directory, in directory-listing order. A missing directory is an empty
// site, not an error.
func (r *Repo) ListSlugs() []string {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error().Err(err).Str("dir", r.dir).Msg("read content directory")
		}
		return nil
	}
	var slugs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, ".md"))
	}
	return slugs
}

// GetBySlug reads and parses the post file for slug. It returns ok=false,
// never an error, when the file is missing or unreadable; the cause is
// logged so one corrupt file cannot break a listing.
func (r *Repo) GetBySlug(slug string) (Post, bool) {
	f, err := os.Open(filepath.Join(r.dir, slug+".md"))
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error().Err(err).Str("slug", slug).Msg("open post file")
		}
		return Post{}, false
	}
	defer f.Close()

	var meta postMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		r.log.Error().Err(err).Str("slug", slug).Msg("parse post frontmatter")
		return Post{}, false
	}

	title := meta.Title
	if title == "" {
		title = "Untitled"
	}
	date := meta.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return Post{
		Slug:       slug,
		Title:      title,
		Date:       date,
		Summary:    meta.Summary,
		Tags:       tags,
		Author:     meta.Author,
		CoverImage: meta.CoverImage,
		Link:       "/blog/" + slug,
		Content:    string(body),
	}, true
}

// GetAllSorted loads every post and returns them sorted by date descending.
// Unloadable posts are dropped. The sort is stable, so posts with equal
// dates keep their enumeration order.
func (r *Repo) GetAllSorted() []Post {
	var posts []Post
	for _, slug := range r.ListSlugs() {
		if p, ok := r.GetBySlug(slug); ok {
			posts = append(posts, p)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return parseDate(posts[i].Date).After(parseDate(posts[j].Date))
	})
	return posts
}

// GetRecent returns the first n posts of GetAllSorted.
func (r *Repo) GetRecent(n int) []Post {
	posts := r.GetAllSorted()
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// GetBySlugWithHTML loads a post and attaches sanitized HTML rendered from
// its markdown body.
func (r *Repo) GetBySlugWithHTML(slug string) (Post, error) {
	post, ok := r.GetBySlug(slug)
	if !ok {
		return Post{}, ErrNotFound
	}
	html, err := markdown.Render(post.Content)
	if err != nil {
		return Post{}, err
	}
	post.HTMLContent = html
	return post, nil
}

// parseDate parses a frontmatter date. Dates are RFC 3339 when written by
// the admin and commonly YYYY-MM-DD when hand-authored. Unparseable dates
// sort as zero time (oldest) rather than failing the read.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// collectTags returns a sorted, deduplicated, lowercased tag list.
func collectTags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				set[t] = struct{}{}
			}
		}
	}
	var tags []string
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
