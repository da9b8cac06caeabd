package server

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"aggregat4/gonewtab/internal/domain"
	"aggregat4/gonewtab/internal/importer"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aggregat4/go-baselib/lang"
	"github.com/labstack/echo/v4"
)

func (controller *Controller) pageState(c echo.Context) domain.PageState {
	currentPdf, _ := controller.Pdf.Current()
	return domain.PageState{
		Settings:   controller.Settings.Current(),
		Folders:    controller.Bookmarks.Folders(),
		CurrentPdf: currentPdf,
		PdfTitle:   controller.Pdf.Title(),
		Flashes:    popFlashes(c),
		Now:        time.Now(),
	}
}

func (controller *Controller) showIndex(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Render(http.StatusOK, "index", controller.pageState(c))
}

func (controller *Controller) search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.Redirect(http.StatusFound, "/")
	}
	searchUrl := controller.Config.SearchUrl
	separator := lang.IfElse(strings.Contains(searchUrl, "?"), "&", "?")
	return c.Redirect(http.StatusFound, searchUrl+separator+"q="+url.QueryEscape(query))
}

// redirectHome reports the outcome of a form post as a flash message and goes back to the page.
// Invalid input and unknown folders are shown to the user, anything else is a server error.
func redirectHome(c echo.Context, err error, success string) error {
	switch {
	case err == nil:
		addFlash(c, success)
	case errors.Is(err, bookmarks.ErrInvalidInput), errors.Is(err, bookmarks.ErrFolderNotFound):
		addFlash(c, "Error: "+err.Error())
	default:
		return handleInternalServerError(c, err)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (controller *Controller) updateSettings(c echo.Context) error {
	data := map[string]any{
		"name":               strings.TrimSpace(c.FormValue("name")),
		"selectedWallpaper":  c.FormValue("selectedWallpaper"),
		"customWallpaperUrl": strings.TrimSpace(c.FormValue("customWallpaperUrl")),
		"showClock":          c.FormValue("showClock") == "on",
		"use24HourFormat":    c.FormValue("use24HourFormat") == "on",
		"showDate":           c.FormValue("showDate") == "on",
		"showBookmarks":      c.FormValue("showBookmarks") == "on",
	}
	if message := c.FormValue("welcomeMessage"); strings.TrimSpace(message) == "" {
		data["welcomeMessage"] = nil
	} else {
		data["welcomeMessage"] = message
	}
	_, err := controller.Settings.Update(data)
	return redirectHome(c, err, "Settings saved")
}

func (controller *Controller) createFolder(c echo.Context) error {
	_, err := controller.Bookmarks.CreateFolder(strings.TrimSpace(c.FormValue("name")))
	return redirectHome(c, err, "Folder created")
}

func (controller *Controller) deleteFolder(c echo.Context) error {
	err := controller.Bookmarks.RemoveFolder(c.FormValue("folder_id"))
	return redirectHome(c, err, "Folder removed")
}

func (controller *Controller) importLocalFolder(c echo.Context) error {
	_, err := controller.Bookmarks.ImportLocalFolder(c.Request().Context(),
		strings.TrimSpace(c.FormValue("name")), strings.TrimSpace(c.FormValue("path")))
	return redirectHome(c, err, "Folder imported")
}

func (controller *Controller) addBookmark(c echo.Context) error {
	_, err := controller.Bookmarks.AddBookmark(
		strings.TrimSpace(c.FormValue("title")),
		strings.TrimSpace(c.FormValue("url")),
		c.FormValue("folder_id"),
		strings.TrimSpace(c.FormValue("favicon")))
	return redirectHome(c, err, "Bookmark added")
}

func (controller *Controller) deleteBookmark(c echo.Context) error {
	err := controller.Bookmarks.RemoveBookmark(c.FormValue("bookmark_id"))
	return redirectHome(c, err, "Bookmark removed")
}

func (controller *Controller) uploadBookmarks(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Render(http.StatusBadRequest, "error-badrequest", "file parameter is required")
	}
	if fileHeader.Size > int64(controller.Config.MaxUploadSizeBytes) {
		return c.Render(http.StatusBadRequest, "error-badrequest", "the uploaded file is too large")
	}
	format := importer.Format(c.FormValue("format"))
	if format == "" {
		if format, err = importer.FormatFromFilename(fileHeader.Filename); err != nil {
			return c.Render(http.StatusBadRequest, "error-badrequest", "unknown bookmark file format")
		}
	}
	file, err := fileHeader.Open()
	if err != nil {
		return handleInternalServerError(c, err)
	}
	defer file.Close()
	folders, err := importer.Parse(file, format, strings.TrimSpace(c.FormValue("folder")))
	if err != nil {
		return c.Render(http.StatusBadRequest, "error-badrequest", err.Error())
	}
	summary, err := importer.Import(controller.Bookmarks, folders)
	if err != nil {
		return handleInternalServerError(c, err)
	}
	if summary.Bookmarks == 0 {
		return redirectHome(c, nil, "No bookmarks found in "+fileHeader.Filename)
	}
	return redirectHome(c, nil, "Bookmarks imported")
}

func (controller *Controller) viewPdf(c echo.Context) error {
	ref := strings.TrimSpace(c.FormValue("url"))
	if ref == "" {
		return c.Render(http.StatusBadRequest, "error-badrequest", "url parameter is required")
	}
	controller.Pdf.Open(ref)
	return c.Redirect(http.StatusFound, "/")
}

func (controller *Controller) closePdf(c echo.Context) error {
	controller.Pdf.Close()
	return c.Redirect(http.StatusFound, "/")
}
