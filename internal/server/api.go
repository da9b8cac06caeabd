package server

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"aggregat4/gonewtab/internal/domain"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type stateResponse struct {
	Settings   domain.Settings         `json:"settings"`
	Folders    []domain.BookmarkFolder `json:"folders"`
	CurrentPdf *string                 `json:"currentPdf"`
}

type folderRequest struct {
	Name string `json:"name"`
}

type importFolderRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type bookmarkRequest struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Favicon string `json:"favicon"`
}

type pdfRequest struct {
	URL string `json:"url"`
}

// apiError maps store errors to HTTP errors. echo renders them as {"message": ...}.
func apiError(err error) error {
	switch {
	case errors.Is(err, bookmarks.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, bookmarks.ErrFolderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	log.Println(err)
	return echo.NewHTTPError(http.StatusInternalServerError)
}

func (controller *Controller) apiState(c echo.Context) error {
	state := stateResponse{
		Settings: controller.Settings.Current(),
		Folders:  controller.Bookmarks.Folders(),
	}
	if ref, ok := controller.Pdf.Current(); ok {
		state.CurrentPdf = &ref
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.JSON(http.StatusOK, state)
}

func (controller *Controller) apiUpdateSettings(c echo.Context) error {
	var data map[string]any
	if err := c.Bind(&data); err != nil {
		return err
	}
	updated, err := controller.Settings.Update(data)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (controller *Controller) apiCreateFolder(c echo.Context) error {
	var request folderRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	folder, err := controller.Bookmarks.CreateFolder(strings.TrimSpace(request.Name))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, folder)
}

func (controller *Controller) apiDeleteFolder(c echo.Context) error {
	if err := controller.Bookmarks.RemoveFolder(c.Param("id")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (controller *Controller) apiImportLocalFolder(c echo.Context) error {
	var request importFolderRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	folder, err := controller.Bookmarks.ImportLocalFolder(c.Request().Context(),
		strings.TrimSpace(request.Name), strings.TrimSpace(request.Path))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, folder)
}

func (controller *Controller) apiAddBookmark(c echo.Context) error {
	var request bookmarkRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	bookmark, err := controller.Bookmarks.AddBookmark(
		strings.TrimSpace(request.Title),
		strings.TrimSpace(request.URL),
		c.Param("id"),
		strings.TrimSpace(request.Favicon))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, bookmark)
}

func (controller *Controller) apiDeleteBookmark(c echo.Context) error {
	if err := controller.Bookmarks.RemoveBookmark(c.Param("id")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (controller *Controller) apiViewPdf(c echo.Context) error {
	var request pdfRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	ref := strings.TrimSpace(request.URL)
	if ref == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}
	controller.Pdf.Open(ref)
	return c.JSON(http.StatusOK, map[string]string{"currentPdf": ref, "title": controller.Pdf.Title()})
}

func (controller *Controller) apiClosePdf(c echo.Context) error {
	controller.Pdf.Close()
	return c.NoContent(http.StatusNoContent)
}
