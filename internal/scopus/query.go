// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"fmt"
	"strings"
)

// DefaultQuery is the query used when neither the command line nor the
// config file supplies one.
const DefaultQuery = `"inverse reinforcement learning"  AND  ( "system"  OR  "e-learning"  OR  "stochastic"  OR  "smart grids"  OR  "control"  OR  "system controller"  OR  "control tuning"  OR  "optimization")`

// FieldScope restricts query to titles, abstracts, and keywords.
func FieldScope(query string) string {
	return "TITLE-ABS-KEY(" + query + ")"
}

// Count issues one search at offset 0 and returns the total number of
// results Scopus reports for query. It keeps no state between calls.
func Count(ctx context.Context, exec Executor, query string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, ErrEmptyQuery
	}
	resp, err := exec.Search(ctx, FieldScope(query), 0)
	if err != nil {
		return 0, fmt.Errorf("count probe: %w", err)
	}
	return resp.TotalResults()
}
