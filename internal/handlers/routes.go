// routes.go
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
)

// RegisterRoutes mounts every catalog route on router
func RegisterRoutes(router fiber.Router, catalog *CatalogHandler, compat *CompatHandler, admin *AdminHandler) {
	router.Get("/status", admin.GetStatus)
	router.Post("/update", admin.PostUpdate)

	router.Get("/category/:category", catalog.GetCategory)
	router.Get("/developer", catalog.GetDevelopers)
	router.Get("/developer/:developer", catalog.GetDeveloper)
	router.Get("/projectgroup", catalog.GetProjectGroups)
	router.Get("/projectgroup/:group", catalog.GetProjectGroup)
	router.Get("/appstream", catalog.GetAppstreamIDs)
	router.Get("/appstream/:id", catalog.GetAppstream)
	router.Get("/search/:query", catalog.GetSearch)
	router.Get("/collection/recently-updated/:limit?", catalog.GetRecentlyUpdated)
	router.Get("/collection/recently-added/:limit?", catalog.GetRecentlyAdded)
	router.Get("/picks/:pick", catalog.GetPicks)
	router.Get("/popular", catalog.GetPopular)
	router.Get("/popular/:days", catalog.GetPopularDays)
	router.Get("/stats", catalog.GetStats)
	router.Get("/stats/:id", catalog.GetAppStats)
	router.Get("/summary/:id", catalog.GetSummary)
	router.Get("/exceptions/:id", catalog.GetExceptions)

	legacy := router.Group("/compat/apps")
	legacy.Get("/", compat.GetApps)
	legacy.Get("/category/:category", compat.GetCategory)
	legacy.Get("/collection/recently-updated/:limit?", compat.GetRecentlyUpdated)
	legacy.Get("/search/:query", compat.GetSearch)
	legacy.Get("/:id", compat.GetApp)
}
