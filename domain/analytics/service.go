package analytics

import (
	"context"
	"fmt"
	"strings"

	"cms-platform/pkg/pagination"

	"github.com/jmoiron/sqlx"
)

const topGroupLimit = 10

// buildFilter renders the WHERE clause for a ListFilter. The same clause
// backs the page query, the totals and every top-N grouping so all numbers
// describe the same set.
func buildFilter(f ListFilter) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf(
			"(page_url ILIKE %s OR ip_address ILIKE %s OR browser ILIKE %s OR os ILIKE %s OR country ILIKE %s)",
			p, p, p, p, p))
	}
	if f.Country != "" {
		args = append(args, f.Country)
		conds = append(conds, fmt.Sprintf("country = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns a page of events plus aggregates over the full filtered set.
func List(ctx context.Context, db *sqlx.DB, f ListFilter) (*ListResponse, error) {
	where, args := buildFilter(f)
	params := pagination.Normalize(f.Page, f.Limit, 50, 200)

	var total int
	if err := db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM analytics_events"+where, args...); err != nil {
		return nil, err
	}

	var unique int
	if err := db.GetContext(ctx, &unique,
		"SELECT COUNT(DISTINCT ip_address) FROM analytics_events"+where, args...); err != nil {
		return nil, err
	}

	events := []Event{}
	pageArgs := append(append([]interface{}{}, args...), params.Limit, params.Offset())
	err := db.SelectContext(ctx, &events, fmt.Sprintf(`
		SELECT id, ip_address, user_agent, page_url, referer, browser, os, country, occurred_at
		FROM analytics_events%s
		ORDER BY occurred_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2), pageArgs...)
	if err != nil {
		return nil, err
	}

	topPages, err := topBy(ctx, db, "page_url", where, args)
	if err != nil {
		return nil, err
	}
	topCountries, err := topBy(ctx, db, "country", where, args)
	if err != nil {
		return nil, err
	}
	topBrowsers, err := topBy(ctx, db, "browser", where, args)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Events:         events,
		TotalEvents:    total,
		UniqueVisitors: unique,
		TopPages:       topPages,
		TopCountries:   topCountries,
		TopBrowsers:    topBrowsers,
		CurrentPage:    params.Page,
		TotalPages:     pagination.TotalPages(total, params.Limit),
	}, nil
}

// topBy computes a top-10 grouping over the filtered set, descending by count.
func topBy(ctx context.Context, db *sqlx.DB, column, where string, args []interface{}) ([]TopEntry, error) {
	entries := []TopEntry{}
	query := fmt.Sprintf(`
		SELECT %s AS value, COUNT(*) AS count
		FROM analytics_events%s
		GROUP BY %s
		ORDER BY count DESC
		LIMIT %d`, column, where, column, topGroupLimit)
	err := db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}
