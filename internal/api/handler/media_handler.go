package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/core/ports"
)

// MediaHandler uploads menu and logo images to the external media host.
type MediaHandler struct {
	service ports.MediaService
}

func NewMediaHandler(service ports.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload stores one multipart image and returns its public ID and URL.
//
// @Summary      Upload an image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  ports.UploadResult
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/images [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable file"})
	}

	result, err := h.service.Upload(c.Request().Context(), actor, fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// Delete removes an image from the media host by public ID.
//
// @Summary      Delete an image
// @Tags         images
// @Security     BearerAuth
// @Param        id  path  string  true  "Image public ID"
// @Success      204
// @Router       /api/v1/images/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
