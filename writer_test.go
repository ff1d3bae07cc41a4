package inkpress

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func validPayload() PostPayload {
	return PostPayload{
		Title:   "My First Post",
		Slug:    "my-first-post",
		Summary: "A short summary",
		Content: "# Hello\n\nBody.",
		Author:  "Jan",
		Tags:    []string{"go", "web"},
	}
}

func TestCreateWritesFile(t *testing.T) {
	r := setupTestRepo(t)

	post, err := r.Create(validPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.Slug != "my-first-post" || post.Title != "My First Post" {
		t.Errorf("returned post = %+v", post)
	}

	data, err := os.ReadFile(filepath.Join(r.Dir(), "my-first-post.md"))
	if err != nil {
		t.Fatalf("post file not written: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("file should start with frontmatter delimiter: %q", content)
	}
	for _, want := range []string{
		`title: "My First Post"`,
		`summary: "A short summary"`,
		`author: "Jan"`,
		`tags: ["go", "web"]`,
		"# Hello",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q:\n%s", want, content)
		}
	}
}

func TestCreateRoundTripsThroughRepo(t *testing.T) {
	r := setupTestRepo(t)
	if _, err := r.Create(validPayload()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	post, ok := r.GetBySlug("my-first-post")
	if !ok {
		t.Fatal("created post should be readable")
	}
	if post.Title != "My First Post" || post.Author != "Jan" {
		t.Errorf("round-trip lost fields: %+v", post)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "go" {
		t.Errorf("round-trip lost tags: %v", post.Tags)
	}
	if !strings.Contains(post.Content, "# Hello") {
		t.Errorf("round-trip lost body: %q", post.Content)
	}
}

func TestCreateMissingFields(t *testing.T) {
	r := setupTestRepo(t)
	cases := []PostPayload{
		{Slug: "s", Summary: "s", Content: "c"},
		{Title: "t", Summary: "s", Content: "c"},
		{Title: "t", Slug: "s", Content: "c"},
		{Title: "t", Slug: "s", Summary: "s"},
	}
	for i, p := range cases {
		_, err := r.Create(p)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestCreateInvalidSlug(t *testing.T) {
	r := setupTestRepo(t)
	for _, slug := range []string{"Has-Upper", "trailing-", "-leading", "double--dash", "with space", "with/slash", "ünïcode", "..", ""} {
		p := validPayload()
		p.Slug = slug
		_, err := r.Create(p)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("slug %q: expected ValidationError, got %v", slug, err)
		}
	}
}

func TestCreateConflictDoesNotOverwrite(t *testing.T) {
	r := setupTestRepo(t)
	if _, err := r.Create(validPayload()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	original, err := os.ReadFile(filepath.Join(r.Dir(), "my-first-post.md"))
	if err != nil {
		t.Fatal(err)
	}

	second := validPayload()
	second.Title = "A Different Title"
	_, err = r.Create(second)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	after, err := os.ReadFile(filepath.Join(r.Dir(), "my-first-post.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(original) != string(after) {
		t.Error("conflict must not alter the existing file")
	}
}

func TestCreateMakesContentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "posts")
	r := NewRepo(dir, zerolog.Nop())
	if _, err := r.Create(validPayload()); err != nil {
		t.Fatalf("Create should create the content dir: %v", err)
	}
}
