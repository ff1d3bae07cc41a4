package inkpress

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"inkpress/markdown"
	"inkpress/views"
)

func (a *App) viewSite() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func viewPost(p Post) views.Post {
	return views.Post{
		Slug:       p.Slug,
		Title:      p.Title,
		Date:       p.Date,
		Summary:    p.Summary,
		Author:     p.Author,
		CoverImage: p.CoverImage,
		Link:       p.Link,
		Tags:       p.Tags,
		HTML:       template.HTML(p.HTMLContent),
	}
}

func viewPosts(posts []Post) []views.Post {
	out := make([]views.Post, len(posts))
	for i, p := range posts {
		out[i] = viewPost(p)
	}
	return out
}

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts := a.Cache.ListPosts(tag)
	return c.Render(http.StatusOK, "home.html", views.HomeData{
		Site:      a.viewSite(),
		Posts:     viewPosts(posts),
		ActiveTag: tag,
		Tags:      a.Cache.ListTags(),
		JSONLD:    template.JS(WebsiteJsonLD(a.Config)),
	})
}

// handlePost serves a post detail page. Metadata and raw markdown come from
// the cache; the HTML is rendered per request, never stored.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, ok := a.Cache.GetPost(slug)
	if !ok {
		// The cache only learns about new files on reload; fall back to a
		// direct read before declaring the post absent.
		fresh, err := a.Repo.GetBySlugWithHTML(slug)
		if err == ErrNotFound {
			return a.renderNotFound(c)
		}
		if err != nil {
			return err
		}
		post = fresh
	} else {
		html, err := markdown.Render(post.Content)
		if err != nil {
			return fmt.Errorf("render post %q: %w", slug, err)
		}
		post.HTMLContent = html
	}
	return c.Render(http.StatusOK, "post.html", views.PostData{
		Site:   a.viewSite(),
		Post:   viewPost(post),
		JSONLD: template.JS(BlogPostingJsonLD(post, a.Config)),
	})
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Cache.ListPosts(""))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Cache.ListPosts(""))
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) renderNotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "notfound.html", views.ErrorData{
		Site:   a.viewSite(),
		Status: http.StatusNotFound,
	})
}

func (a *App) renderServerError(c echo.Context, status int) error {
	return c.Render(status, "error.html", views.ErrorData{
		Site:   a.viewSite(),
		Status: status,
	})
}
