// compat.go
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

// CompatHandler serves the legacy /compat routes
type CompatHandler struct {
	Service *services.CompatService
}

// GetApps handles GET /compat/apps
// @Summary Legacy list of all apps
// @Tags Compat
// @Produce json
// @Success 200 {array} views.CompatShortApp
// @Router /compat/apps [get]
func (h *CompatHandler) GetApps(c *fiber.Ctx) error {
	result, err := h.Service.Apps(c.UserContext())
	return respond(c, result, err)
}

// GetCategory handles GET /compat/apps/category/:category
// @Summary Legacy category listing
// @Tags Compat
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {array} views.CompatShortApp
// @Router /compat/apps/category/{category} [get]
func (h *CompatHandler) GetCategory(c *fiber.Ctx) error {
	result, err := h.Service.Category(c.UserContext(), c.Params("category"))
	return respond(c, result, err)
}

// GetRecentlyUpdated handles GET /compat/apps/collection/recently-updated/:limit?
// @Summary Legacy recently updated listing
// @Tags Compat
// @Produce json
// @Param limit path int false "Maximum number of apps (default and maximum 50)"
// @Success 200 {array} views.CompatShortApp
// @Router /compat/apps/collection/recently-updated/{limit} [get]
func (h *CompatHandler) GetRecentlyUpdated(c *fiber.Ctx) error {
	limit, err := intParam(c, "limit", services.CompatRecentlyUpdatedMax)
	if err != nil {
		return respond(c, nil, err)
	}
	result, err := h.Service.RecentlyUpdated(c.UserContext(), limit)
	return respond(c, result, err)
}

// GetSearch handles GET /compat/apps/search/:query
// @Summary Legacy search
// @Tags Compat
// @Produce json
// @Param query path string true "Search text"
// @Success 200 {array} views.CompatShortApp
// @Router /compat/apps/search/{query} [get]
func (h *CompatHandler) GetSearch(c *fiber.Ctx) error {
	result, err := h.Service.Search(c.UserContext(), c.Params("query"))
	return respond(c, result, err)
}

// GetApp handles GET /compat/apps/:id
// @Summary Legacy single app
// @Tags Compat
// @Produce json
// @Param id path string true "App id"
// @Success 200 {object} views.CompatApp
// @Failure 404
// @Router /compat/apps/{id} [get]
func (h *CompatHandler) GetApp(c *fiber.Ctx) error {
	result, err := h.Service.App(c.UserContext(), c.Params("id"))
	return respond(c, result, err)
}
