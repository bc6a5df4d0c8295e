// common.go
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
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/appcatalog/internal/ranking"
	"github.com/localnerve/appcatalog/internal/services"
	"github.com/localnerve/appcatalog/internal/utils"
)

// errBadParam marks a malformed path or query parameter
var errBadParam = errors.New("bad parameter")

// respond maps service errors onto statuses. Not found and bad request answers carry no body;
// everything else goes to the error handler.
func respond(c *fiber.Ctx, result interface{}, err error) error {
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(result)
	case errors.Is(err, services.ErrNotFound):
		return utils.EmptyResponse(c, fiber.StatusNotFound)
	case errors.Is(err, ranking.ErrBadPagination), errors.Is(err, errBadParam):
		return utils.EmptyResponse(c, fiber.StatusBadRequest)
	default:
		return err
	}
}

// intParam reads an optional integer path parameter
func intParam(c *fiber.Ctx, name string, defaultValue int) (int, error) {
	raw := c.Params(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadParam
	}
	return value, nil
}

// intQuery reads an optional integer query parameter
func intQuery(c *fiber.Ctx, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadParam
	}
	return value, nil
}

// boolQuery treats a bare ?name, "1" and "true" as set
func boolQuery(c *fiber.Ctx, name string) bool {
	if !c.Context().QueryArgs().Has(name) {
		return false
	}
	switch c.Query(name) {
	case "", "1", "true", "True", "yes":
		return true
	}
	return false
}
