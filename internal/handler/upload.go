package handler

import (
	"net/http"
	"net/url"
	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	mediaService service.MediaService
}

func NewUploadHandler(mediaService service.MediaService) *UploadHandler {
	return &UploadHandler{
		mediaService: mediaService,
	}
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	file, err := c.FormFile("image")
	if err != nil {
		return apperror.Validation("no file uploaded")
	}

	image, err := h.mediaService.UploadImage(ctx, file)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.UploadImageResponse{
		Success:       true,
		UploadedImage: *image,
	})
}

func (h *UploadHandler) UploadImages(c echo.Context) error {
	ctx := c.Request().Context()

	form, err := c.MultipartForm()
	if err != nil {
		return apperror.Validation("no files uploaded")
	}

	images, err := h.mediaService.UploadImages(ctx, form.File["images"])
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.UploadImagesResponse{
		Success: true,
		Images:  images,
	})
}

func (h *UploadHandler) DeleteImage(c echo.Context) error {
	ctx := c.Request().Context()

	publicID, err := publicIDParam(c)
	if err != nil {
		return err
	}

	if err := h.mediaService.DeleteImage(ctx, publicID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.MessageResponse{
		Success: true,
		Message: "image deleted",
	})
}

func (h *UploadHandler) GetImage(c echo.Context) error {
	ctx := c.Request().Context()

	publicID, err := publicIDParam(c)
	if err != nil {
		return err
	}

	image, err := h.mediaService.GetImage(ctx, publicID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ImageResponse{
		Success: true,
		Image:   *image,
	})
}

func (h *UploadHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.HealthResponse{
		Success: true,
		Status:  "healthy",
	})
}

// publicIDParam unescapes the path parameter: public ids contain the folder
// namespace, so clients send them percent-encoded.
func publicIDParam(c echo.Context) (string, error) {
	publicID, err := url.PathUnescape(c.Param("publicId"))
	if err != nil || publicID == "" {
		return "", apperror.Validation("invalid public id")
	}
	return publicID, nil
}
