package server

import (
	"aggregat4/gonewtab/internal/domain"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

func (controller *Controller) showFeed(c echo.Context) error {
	currentLastModifiedDateTime, err := controller.Store.GetLastModifiedDate()
	if err != nil {
		return handleInternalServerError(c, err)
	}
	if !currentLastModifiedDateTime.IsZero() &&
		c.Request().Header.Get("If-Modified-Since") == currentLastModifiedDateTime.UTC().Format(http.TimeFormat) {
		return c.NoContent(http.StatusNotModified)
	}

	feed := &feeds.Feed{
		Title:       "New Tab Bookmarks",
		Link:        &feeds.Link{Href: controller.Config.BaseUrl + "/feeds/bookmarks"},
		Description: "All bookmarks of your new tab page, newest first.",
		Created:     time.Now(),
	}
	for _, item := range bookmarkItems(controller.Bookmarks.Folders()) {
		feed.Add(item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return handleInternalServerError(c, err)
	}
	if !currentLastModifiedDateTime.IsZero() {
		c.Response().Header().Set("Last-Modified", currentLastModifiedDateTime.UTC().Format(http.TimeFormat))
	}
	c.Response().Header().Set("Content-Type", "application/rss+xml")
	return c.String(http.StatusOK, rss)
}

// bookmarkItems lists the bookmarks of all folders as feed items, newest first.
func bookmarkItems(folders []domain.BookmarkFolder) []*feeds.Item {
	items := make([]*feeds.Item, 0)
	for _, folder := range folders {
		for _, bookmark := range folder.Bookmarks {
			items = append(items, &feeds.Item{
				Title:       bookmark.Title,
				Link:        &feeds.Link{Href: bookmark.URL},
				Description: "In folder " + folder.Name,
				Id:          bookmark.ID,
				Created:     bookmark.DateAdded,
			})
		}
	}
	slices.SortStableFunc(items, func(a, b *feeds.Item) int {
		return b.Created.Compare(a.Created)
	})
	return items
}
