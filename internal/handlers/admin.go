// admin.go
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
	"github.com/localnerve/appcatalog/internal/refresh"
	"github.com/localnerve/appcatalog/internal/utils"
)

// AdminHandler serves the refresh trigger and liveness routes
type AdminHandler struct {
	Refresher *refresh.Refresher
}

// PostUpdate handles POST /update
// @Summary Refresh the catalog
// @Description Re-ingests, recomputes aggregates, records new apps and invalidates memoized listings before answering
// @Tags Admin
// @Produce json
// @Success 200 {object} refresh.Result
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /update [post]
func (h *AdminHandler) PostUpdate(c *fiber.Ctx) error {
	result, err := h.Refresher.Run(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetStatus handles GET /status
// @Summary Liveness
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.StatusResponse
// @Router /status [get]
func (h *AdminHandler) GetStatus(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(utils.StatusResponse{Status: "OK"})
}
