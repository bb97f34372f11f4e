package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/api/metrics"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// CatalogHandler handles clients, categories, and menu items. All routes
// sit behind the Auth middleware; role scoping happens in the service.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type clientRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	LogoURL      string `json:"logo_url"`
	Active       bool   `json:"active"`
}

type categoryRequest struct {
	ClientID  string `json:"client_id"`
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sort_order"`
	ImageURL  string `json:"image_url"`
	Active    bool   `json:"active"`
}

type menuItemRequest struct {
	ClientID    string  `json:"client_id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"  validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"image_url"`
	ImageID     string  `json:"image_id"`
	Available   bool    `json:"available"`
}

// --- Clients ---

// ListClients returns all vendor accounts. Staff only.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/clients [get]
func (h *CatalogHandler) ListClients(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("clients", "list").Inc()

	clients, err := h.service.ListClients(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// GetClient returns one vendor account.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/clients/{id} [get]
func (h *CatalogHandler) GetClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("clients", "get").Inc()

	client, err := h.service.GetClient(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// CreateClient registers a new vendor account. Staff only.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/clients [post]
func (h *CatalogHandler) CreateClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("clients", "create").Inc()

	created, err := h.service.CreateClient(c.Request().Context(), actor, &domain.Client{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		LogoURL:      req.LogoURL,
		Active:       req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateClient updates a vendor account.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  domain.Client
// @Router       /api/v1/clients/{id} [put]
func (h *CatalogHandler) UpdateClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("clients", "update").Inc()

	updated, err := h.service.UpdateClient(c.Request().Context(), actor, c.Param("id"), &domain.Client{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		LogoURL:      req.LogoURL,
		Active:       req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteClient removes a vendor account. ADMIN only.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client ID"
// @Success      204
// @Router       /api/v1/clients/{id} [delete]
func (h *CatalogHandler) DeleteClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("clients", "delete").Inc()

	if err := h.service.DeleteClient(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Categories ---

// ListCategories returns the categories visible to the caller.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Filter by client (staff only)"
// @Success      200        {array}   domain.Category
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("categories", "list").Inc()

	categories, err := h.service.ListCategories(c.Request().Context(), actor, c.QueryParam("client_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory adds a category.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Router       /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("categories", "create").Inc()

	created, err := h.service.CreateCategory(c.Request().Context(), actor, &domain.Category{
		ClientID:  req.ClientID,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		ImageURL:  req.ImageURL,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateCategory updates a category.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category ID"
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      200   {object}  domain.Category
// @Router       /api/v1/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("categories", "update").Inc()

	updated, err := h.service.UpdateCategory(c.Request().Context(), actor, c.Param("id"), &domain.Category{
		ClientID:  req.ClientID,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		ImageURL:  req.ImageURL,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCategory removes a category.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "Category ID"
// @Success      204
// @Router       /api/v1/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("categories", "delete").Inc()

	if err := h.service.DeleteCategory(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Menu items ---

// ListMenuItems returns the menu items visible to the caller.
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Filter by client (staff only)"
// @Success      200        {array}   domain.MenuItem
// @Router       /api/v1/menu [get]
func (h *CatalogHandler) ListMenuItems(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("menu", "list").Inc()

	items, err := h.service.ListMenuItems(c.Request().Context(), actor, c.QueryParam("client_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetMenuItem returns one menu item.
//
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Menu item ID"
// @Success      200  {object}  domain.MenuItem
// @Router       /api/v1/menu/{id} [get]
func (h *CatalogHandler) GetMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("menu", "get").Inc()

	item, err := h.service.GetMenuItem(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// CreateMenuItem adds a menu item.
//
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuItemRequest  true  "Menu item details"
// @Success      201   {object}  domain.MenuItem
// @Router       /api/v1/menu [post]
func (h *CatalogHandler) CreateMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("menu", "create").Inc()

	created, err := h.service.CreateMenuItem(c.Request().Context(), actor, &domain.MenuItem{
		ClientID:    req.ClientID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
		ImageID:     req.ImageID,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateMenuItem updates a menu item.
//
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Menu item ID"
// @Param        body  body      menuItemRequest  true  "Menu item details"
// @Success      200   {object}  domain.MenuItem
// @Router       /api/v1/menu/{id} [put]
func (h *CatalogHandler) UpdateMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	metrics.ProxyRequestsTotal.WithLabelValues("menu", "update").Inc()

	updated, err := h.service.UpdateMenuItem(c.Request().Context(), actor, c.Param("id"), &domain.MenuItem{
		ClientID:    req.ClientID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
		ImageID:     req.ImageID,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteMenuItem removes a menu item.
//
// @Summary      Delete a menu item
// @Tags         menu
// @Security     BearerAuth
// @Param        id  path  string  true  "Menu item ID"
// @Success      204
// @Router       /api/v1/menu/{id} [delete]
func (h *CatalogHandler) DeleteMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues("menu", "delete").Inc()

	if err := h.service.DeleteMenuItem(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
