package stubapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/docustore/admin-console/internal/core/domain"
)

type handlers struct {
	store     *store
	jwtSecret string
	tokenTTL  time.Duration
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// login authenticates a seeded account and returns a signed token plus the
// user snapshot, matching the contract the real backend exposes.
func (h *handlers) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.store.authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := h.mintToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: &user})
}

// mintToken signs an HS256 JWT carrying the subject and the prefixed
// authorities, the shape the client's claim decoder expects.
func (h *handlers) mintToken(user domain.User) (string, error) {
	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)

	claims := jwt.MapClaims{
		"sub":   user.Username,
		"roles": roles,
		"exp":   time.Now().Add(h.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}

// caller resolves the directory record behind the authenticated request.
func (h *handlers) caller(c echo.Context) (domain.User, error) {
	username, _ := c.Get("username").(string)
	user, ok := h.store.userByName(username)
	if !ok {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
	}
	return user, nil
}

func (h *handlers) listDocuments(c echo.Context) error {
	user, err := h.caller(c)
	if err != nil {
		return err
	}
	all := hasAuthority(c, "ROLE_SYS_ADMIN")
	return c.JSON(http.StatusOK, h.store.listDocuments(user.CompanyID, all))
}

func (h *handlers) getDocument(c echo.Context) error {
	user, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doc, err := h.store.document(id)
	if err != nil {
		return err
	}
	// Company scoping is the stub's whole permission model: admins see
	// everything, everyone else only their own company's documents.
	if !hasAuthority(c, "ROLE_SYS_ADMIN") && doc.CompanyID != user.CompanyID {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *handlers) deleteDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.store.deleteDocument(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.listUsers())
}

func (h *handlers) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.store.user(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handlers) listCompanies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.listCompanies())
}

func (h *handlers) listResourceTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.listResourceTypes())
}

func (h *handlers) listACL(c echo.Context) error {
	var resourceID int64
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid resource_id")
		}
		resourceID = id
	}
	return c.JSON(http.StatusOK, h.store.listACL(resourceID))
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func hasAuthority(c echo.Context, want string) bool {
	roles, _ := c.Get("roles").([]string)
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
