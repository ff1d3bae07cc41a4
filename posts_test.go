package inkpress

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writePostFile(t *testing.T, dir, slug, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, slug+".md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write post file: %v", err)
	}
}

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	return NewRepo(t.TempDir(), zerolog.Nop())
}

const samplePost = `---
title: "First Post"
date: "2024-01-15"
summary: "A summary"
author: "Jan"
tags: ["go", "web"]
coverImage: "https://example.com/cover.jpg"
---

# Hello

Body text.
`

func TestListSlugsMissingDir(t *testing.T) {
	r := NewRepo(filepath.Join(t.TempDir(), "does-not-exist"), zerolog.Nop())
	if slugs := r.ListSlugs(); len(slugs) != 0 {
		t.Errorf("expected no slugs for missing dir, got %v", slugs)
	}
}

func TestListSlugsFiltersMarkdown(t *testing.T) {
	r := setupTestRepo(t)
	writePostFile(t, r.Dir(), "first-post", samplePost)
	if err := os.WriteFile(filepath.Join(r.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	slugs := r.ListSlugs()
	if len(slugs) != 1 || slugs[0] != "first-post" {
		t.Errorf("ListSlugs = %v, want [first-post]", slugs)
	}
}

func TestGetBySlug(t *testing.T) {
	r := setupTestRepo(t)
	writePostFile(t, r.Dir(), "first-post", samplePost)

	post, ok := r.GetBySlug("first-post")
	if !ok {
		t.Fatal("expected post to load")
	}
	if post.Title != "First Post" {
		t.Errorf("Title = %q, want %q", post.Title, "First Post")
	}
	if post.Date != "2024-01-15" {
		t.Errorf("Date = %q, want %q", post.Date, "2024-01-15")
	}
	if post.Summary != "A summary" {
		t.Errorf("Summary = %q", post.Summary)
	}
	if post.Author != "Jan" {
		t.Errorf("Author = %q", post.Author)
	}
	if post.CoverImage != "https://example.com/cover.jpg" {
		t.Errorf("CoverImage = %q", post.CoverImage)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "go" || post.Tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", post.Tags)
	}
	if post.Link != "/blog/first-post" {
		t.Errorf("Link = %q", post.Link)
	}
	if post.Content == "" || post.HTMLContent != "" {
		t.Errorf("expected raw content and no HTML, got content=%q html=%q", post.Content, post.HTMLContent)
	}
}

func TestGetBySlugAbsent(t *testing.T) {
	r := setupTestRepo(t)
	if _, ok := r.GetBySlug("nope"); ok {
		t.Error("expected absent for missing file")
	}
}

func TestGetBySlugDefaults(t *testing.T) {
	r := setupTestRepo(t)
	writePostFile(t, r.Dir(), "bare", "---\n---\n\nJust a body.\n")

	post, ok := r.GetBySlug("bare")
	if !ok {
		t.Fatal("expected post to load")
	}
	if post.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", post.Title)
	}
	if post.Date == "" {
		t.Error("Date should default to current time")
	}
	if post.Summary != "" {
		t.Errorf("Summary = %q, want empty", post.Summary)
	}
	if post.Tags == nil || len(post.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil slice", post.Tags)
	}
}

func TestGetAllSortedDescending(t *testing.T) {
	r := setupTestRepo(t)
	writePostFile(t, r.Dir(), "old", "---\ntitle: \"Old\"\ndate: \"2023-01-01\"\n---\n\nbody\n")
	writePostFile(t, r.Dir(), "new", "---\ntitle: \"New\"\ndate: \"2025-06-01\"\n---\n\nbody\n")
	writePostFile(t, r.Dir(), "mid", "---\ntitle: \"Mid\"\ndate: \"2024-03-10\"\n---\n\nbody\n")

	posts := r.GetAllSorted()
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 0; i < len(posts)-1; i++ {
		if parseDate(posts[i].Date).Before(parseDate(posts[i+1].Date)) {
			t.Errorf("posts not in descending date order: %q before %q", posts[i].Date, posts[i+1].Date)
		}
	}
	if posts[0].Slug != "new" || posts[2].Slug != "old" {
		t.Errorf("order = [%s %s %s], want [new mid old]", posts[0].Slug, posts[1].Slug, posts[2].Slug)
	}
}

func TestGetAllSortedDropsCorruptFiles(t *testing.T) {
	r := setupTestRepo(t)
	writePostFile(t, r.Dir(), "good", samplePost)
	writePostFile(t, r.Dir(), "bad", "---\ntitle: [unclosed\n---\n\nbody\n")

	posts := r.GetAllSorted()
	if len(posts) != 1 || posts[0].Slug != "good" {
		t.Errorf("expected only the good post, got %v", posts)
	}
}

func TestGetRecent(t *testing.T) {
	r := setupTestRepo(t)
	for _, p := range []struct{ slug, date string }{
		{"a", "2024-01-01"}, {"b", "2024-02-01"}, {"c", "2024-03-01"},
	} {
		writePostFile(t, r.Dir(), p.slug, "---\ntitle: \"T\"\ndate: \""+p.date+"\"\n---\n\nbody\n")
	}
	recent := r.GetRecent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(recent))
	}
	if recent[0].Slug != "c" || recent[1].Slug != "b" {
		t.Errorf("GetRecent = [%s %s], want [c b]", recent[0].Slug, recent[1].Slug)
	}
}

func TestGetBySlugWithHTML(t *testing.T) {
	r := setupTestRepo(t)
	writePostFile(t, r.Dir(), "first-post", samplePost)

	post, err := r.GetBySlugWithHTML("first-post")
	if err != nil {
		t.Fatalf("GetBySlugWithHTML failed: %v", err)
	}
	if post.HTMLContent == "" {
		t.Fatal("expected rendered HTML")
	}
	if want := "<h1>Hello</h1>"; !strings.Contains(post.HTMLContent, want) {
		t.Errorf("HTML missing %q: %q", want, post.HTMLContent)
	}

	if _, err := r.GetBySlugWithHTML("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
