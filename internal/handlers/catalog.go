// catalog.go
//
// A catalog read service for application listings, collections and statistics
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of appcatalog.
// appcatalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// appcatalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with appcatalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/appcatalog/internal/services"
)

// CatalogHandler serves the native catalog routes
type CatalogHandler struct {
	Service *services.CatalogService
}

// GetCategory handles GET /category/:category
// @Summary List a category
// @Description Apps in a category ordered by installs. page and per_page must be given together.
// @Tags Catalog
// @Produce json
// @Param category path string true "Category name"
// @Param page query int false "Page number, starting at 1"
// @Param per_page query int false "Page size"
// @Success 200 {array} views.Listing
// @Failure 400
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /category/{category} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	result, err := h.Service.Category(c.UserContext(), c.Params("category"), c.Query("page"), c.Query("per_page"))
	return respond(c, result, err)
}

// GetDevelopers handles GET /developer
// @Summary List developers
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Router /developer [get]
func (h *CatalogHandler) GetDevelopers(c *fiber.Ctx) error {
	result, err := h.Service.Developers(c.UserContext())
	return respond(c, result, err)
}

// GetDeveloper handles GET /developer/:developer
// @Summary List a developer's apps
// @Tags Catalog
// @Produce json
// @Param developer path string true "Developer name"
// @Success 200 {array} views.Listing
// @Failure 404
// @Router /developer/{developer} [get]
func (h *CatalogHandler) GetDeveloper(c *fiber.Ctx) error {
	result, err := h.Service.Developer(c.UserContext(), c.Params("developer"))
	return respond(c, result, err)
}

// GetProjectGroups handles GET /projectgroup
// @Summary List project groups
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Router /projectgroup [get]
func (h *CatalogHandler) GetProjectGroups(c *fiber.Ctx) error {
	result, err := h.Service.ProjectGroups(c.UserContext())
	return respond(c, result, err)
}

// GetProjectGroup handles GET /projectgroup/:group
// @Summary List a project group's apps
// @Tags Catalog
// @Produce json
// @Param group path string true "Project group"
// @Success 200 {array} views.Listing
// @Failure 404
// @Router /projectgroup/{group} [get]
func (h *CatalogHandler) GetProjectGroup(c *fiber.Ctx) error {
	result, err := h.Service.ProjectGroup(c.UserContext(), c.Params("group"))
	return respond(c, result, err)
}

// GetAppstreamIDs handles GET /appstream
// @Summary List app ids
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Router /appstream [get]
func (h *CatalogHandler) GetAppstreamIDs(c *fiber.Ctx) error {
	result, err := h.Service.AppIDs(c.UserContext())
	return respond(c, result, err)
}

// GetAppstream handles GET /appstream/:id
// @Summary Get a stored app record
// @Tags Catalog
// @Produce json
// @Param id path string true "App id"
// @Success 200 {object} models.App
// @Failure 404
// @Router /appstream/{id} [get]
func (h *CatalogHandler) GetAppstream(c *fiber.Ctx) error {
	result, err := h.Service.Appstream(c.UserContext(), c.Params("id"))
	return respond(c, result, err)
}

// GetSearch handles GET /search/:query
// @Summary Search apps
// @Tags Catalog
// @Produce json
// @Param query path string true "Search text"
// @Success 200 {array} views.Listing
// @Router /search/{query} [get]
func (h *CatalogHandler) GetSearch(c *fiber.Ctx) error {
	result, err := h.Service.Search(c.UserContext(), c.Params("query"))
	return respond(c, result, err)
}

// GetRecentlyUpdated handles GET /collection/recently-updated/:limit?
// @Summary Recently updated apps
// @Tags Collections
// @Produce json
// @Param limit path int false "Maximum number of apps (default 100)"
// @Success 200 {array} views.Listing
// @Router /collection/recently-updated/{limit} [get]
func (h *CatalogHandler) GetRecentlyUpdated(c *fiber.Ctx) error {
	limit, err := intParam(c, "limit", services.DefaultListLimit)
	if err != nil {
		return respond(c, nil, err)
	}
	result, err := h.Service.RecentlyUpdated(c.UserContext(), limit)
	return respond(c, result, err)
}

// GetRecentlyAdded handles GET /collection/recently-added/:limit?
// @Summary Recently added apps
// @Tags Collections
// @Produce json
// @Param limit path int false "Maximum number of apps (default 100)"
// @Success 200 {array} views.Listing
// @Router /collection/recently-added/{limit} [get]
func (h *CatalogHandler) GetRecentlyAdded(c *fiber.Ctx) error {
	limit, err := intParam(c, "limit", services.DefaultListLimit)
	if err != nil {
		return respond(c, nil, err)
	}
	result, err := h.Service.RecentlyAdded(c.UserContext(), limit)
	return respond(c, result, err)
}

// GetPicks handles GET /picks/:pick
// @Summary Curated picks
// @Tags Collections
// @Produce json
// @Param pick path string true "Picks list name"
// @Success 200 {array} views.Listing
// @Failure 404
// @Router /picks/{pick} [get]
func (h *CatalogHandler) GetPicks(c *fiber.Ctx) error {
	result, err := h.Service.Picks(c.UserContext(), c.Params("pick"))
	return respond(c, result, err)
}

// GetPopular handles GET /popular
// @Summary Most installed apps
// @Tags Collections
// @Produce json
// @Param limit query int false "Maximum number of apps (default 100)"
// @Success 200 {array} views.Listing
// @Router /popular [get]
func (h *CatalogHandler) GetPopular(c *fiber.Ctx) error {
	limit, err := intQuery(c, "limit", services.DefaultListLimit)
	if err != nil {
		return respond(c, nil, err)
	}
	result, err := h.Service.Popular(c.UserContext(), 0, limit)
	return respond(c, result, err)
}

// GetPopularDays handles GET /popular/:days
// @Summary Most installed apps over a period
// @Tags Collections
// @Produce json
// @Param days path int true "Number of trailing days"
// @Success 200 {array} views.Listing
// @Router /popular/{days} [get]
func (h *CatalogHandler) GetPopularDays(c *fiber.Ctx) error {
	days, err := intParam(c, "days", 0)
	if err != nil {
		return respond(c, nil, err)
	}
	result, err := h.Service.Popular(c.UserContext(), days, 0)
	return respond(c, result, err)
}

// GetStats handles GET /stats
// @Summary Catalog statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} stats.Summary
// @Failure 404
// @Router /stats [get]
func (h *CatalogHandler) GetStats(c *fiber.Ctx) error {
	result, err := h.Service.Stats(c.UserContext())
	return respond(c, result, err)
}

// GetAppStats handles GET /stats/:id
// @Summary Install statistics of an app
// @Description installs_per_day is cut to the trailing days entries unless all is set
// @Tags Stats
// @Produce json
// @Param id path string true "App id"
// @Param all query bool false "Return every day"
// @Param days query int false "Trailing days (default 180)"
// @Success 200 {object} models.AppStats
// @Failure 404
// @Router /stats/{id} [get]
func (h *CatalogHandler) GetAppStats(c *fiber.Ctx) error {
	days, err := intQuery(c, "days", 180)
	if err != nil {
		return respond(c, nil, err)
	}
	result, err := h.Service.AppStats(c.UserContext(), c.Params("id"), boolQuery(c, "all"), days)
	return respond(c, result, err)
}

// GetSummary handles GET /summary/:id
// @Summary Build summary of an app
// @Tags Catalog
// @Produce json
// @Param id path string true "App id"
// @Success 200 {object} map[string]interface{}
// @Failure 404
// @Router /summary/{id} [get]
func (h *CatalogHandler) GetSummary(c *fiber.Ctx) error {
	result, err := h.Service.Summary(c.UserContext(), c.Params("id"))
	return respond(c, result, err)
}

// GetExceptions handles GET /exceptions/:id
// @Summary Linter exceptions of an app
// @Tags Catalog
// @Produce json
// @Param id path string true "App id"
// @Success 200 {object} map[string]interface{}
// @Failure 404
// @Router /exceptions/{id} [get]
func (h *CatalogHandler) GetExceptions(c *fiber.Ctx) error {
	result, err := h.Service.Exceptions(c.UserContext(), c.Params("id"))
	return respond(c, result, err)
}
