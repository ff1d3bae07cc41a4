package inkpress

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"inkpress/views"
)

type loginRequest struct {
	Password string `json:"password"`
}

// handleLogin authenticates the admin and issues the token cookie.
// Responses: 200 on success, 400 malformed, 401 bad credential, 429
// rate-limited, 500 missing configuration.
func (a *App) handleLogin(c echo.Context) error {
	fingerprint := clientFingerprint(c)
	if allowed, msg := a.loginLimiter.Check(fingerprint); !allowed {
		a.log.Warn().Str("ip", c.RealIP()).Msg("login rate limited")
		return jsonError(c, http.StatusTooManyRequests, msg)
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Invalid request")
	}

	if a.Config.AdminPassword == "" || a.Config.AdminToken == "" {
		a.log.Error().Msg("admin password or token not configured")
		return jsonError(c, http.StatusInternalServerError, "Admin authentication not configured")
	}

	if !verifyCredential(req.Password, a.Config.AdminPassword) {
		// Deliberately vague: do not reveal which part was wrong.
		return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	a.loginLimiter.Reset(fingerprint)
	a.issueToken(c)
	a.log.Info().Str("ip", c.RealIP()).Msg("admin login")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

func (a *App) handleLogout(c echo.Context) error {
	a.clearToken(c)
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

// handleCreatePost accepts a JSON payload and writes a new post file.
// Responses: 201 with slug and title, 400 validation, 401 no/bad token,
// 409 slug conflict, 500 write failure.
func (a *App) handleCreatePost(c echo.Context) error {
	if !a.validateToken(c) {
		return jsonError(c, http.StatusUnauthorized, "Unauthorized. Please log in.")
	}

	var payload PostPayload
	if err := c.Bind(&payload); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	post, err := a.Repo.Create(payload)
	if err != nil {
		var ve *ValidationError
		var ce *ConflictError
		switch {
		case errors.As(err, &ve):
			return jsonError(c, http.StatusBadRequest, ve.Msg)
		case errors.As(err, &ce):
			return jsonError(c, http.StatusConflict, ce.Error())
		default:
			a.log.Error().Err(err).Str("slug", payload.Slug).Msg("create post")
			return jsonError(c, http.StatusInternalServerError, "Failed to create post. Please try again.")
		}
	}

	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Post created successfully",
		"slug":    post.Slug,
		"title":   post.Title,
	})
}

// handleListPostSlugs lists the slugs of all posts on disk.
func (a *App) handleListPostSlugs(c echo.Context) error {
	slugs := a.Repo.ListSlugs()
	if slugs == nil {
		slugs = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"posts": slugs})
}

func (a *App) handleAdminDashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "admin.html", views.AdminData{
		Site:    a.viewSite(),
		Posts:   viewPosts(a.Repo.GetAllSorted()),
		Message: c.QueryParam("msg"),
	})
}

// handleAdminLoginPage serves the login form. It sits outside the admin
// guard so it is always reachable.
func (a *App) handleAdminLoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", views.LoginData{
		Site:     a.viewSite(),
		Redirect: c.QueryParam("redirect"),
	})
}
