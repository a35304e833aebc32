package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"autosales-dashboard/internal/errors"
	"autosales-dashboard/internal/models"
)

const (
	paramManufacturer = "manufacturer"
	paramRegion       = "region"
	paramCategory     = "category"
)

// parseSelection reads a selection from query parameters. An absent list
// parameter stays nil (all values); a present but empty one is an empty set.
func parseSelection(q url.Values) (models.Selection, error) {
	sel := models.Selection{
		Manufacturers: listParam(q, paramManufacturer),
		Regions:       listParam(q, paramRegion),
		Category:      strings.TrimSpace(q.Get(paramCategory)),
	}
	if err := validateCategory(sel.Category); err != nil {
		return models.Selection{}, err
	}
	return sel, nil
}

func validateCategory(c string) error {
	if models.IsValidCategory(c) {
		return nil
	}
	return errors.Validation("invalid sales category").
		WithDetails(fmt.Sprintf("%q is not one of %s", c, strings.Join(models.Categories, ", ")))
}

// listParam accepts both repeated and comma separated values.
func listParam(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
