package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// EarningsSummary aggregates a photographer's recorded earnings.
type EarningsSummary struct {
	PhotographerID   uint    `json:"photographer_id"`
	PhotographerName string  `json:"photographer_name"`
	TotalEarned      float64 `json:"total_earned"`
	PhotosSold       float64 `json:"photos_sold"` // sum of earned photo fractions
	SalesCount       int64   `json:"sales_count"`
}

// PhotoSalesStat aggregates sales per photo for the admin dashboard.
type PhotoSalesStat struct {
	PhotoID      uint    `json:"photo_id"`
	Filename     string  `json:"filename"`
	TimesSold    int64   `json:"times_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// GetEarningsSummaryAll returns per-photographer earnings totals,
// highest earner first.
func GetEarningsSummaryAll(db *sql.DB) ([]EarningsSummary, error) {
	queryBuilder := builder.
		Select(
			"p.id",
			"p.name",
			"COALESCE(SUM(e.amount), 0)",
			"COALESCE(SUM(e.earned_photo_fraction), 0)",
			"COUNT(e.id)",
		).
		From("photographers p").
		LeftJoin("earnings e ON e.photographer_id = p.id").
		GroupBy("p.id", "p.name").
		OrderBy("SUM(e.amount) DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetEarningsSummaryAll: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetEarningsSummaryAll query: %w", err)
	}
	defer rows.Close()

	var summaries []EarningsSummary
	for rows.Next() {
		var s EarningsSummary
		if err := rows.Scan(&s.PhotographerID, &s.PhotographerName, &s.TotalEarned, &s.PhotosSold, &s.SalesCount); err != nil {
			return nil, fmt.Errorf("failed to scan earnings summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetEarningsSummaryByPhotographer returns one photographer's totals.
func GetEarningsSummaryByPhotographer(db *sql.DB, photographerID uint) (*EarningsSummary, error) {
	queryBuilder := builder.
		Select(
			"p.id",
			"p.name",
			"COALESCE(SUM(e.amount), 0)",
			"COALESCE(SUM(e.earned_photo_fraction), 0)",
			"COUNT(e.id)",
		).
		From("photographers p").
		LeftJoin("earnings e ON e.photographer_id = p.id").
		Where(sq.Eq{"p.id": photographerID}).
		GroupBy("p.id", "p.name")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetEarningsSummaryByPhotographer: %w", err)
	}

	var s EarningsSummary
	err = db.QueryRow(sqlStr, args...).Scan(&s.PhotographerID, &s.PhotographerName, &s.TotalEarned, &s.PhotosSold, &s.SalesCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to execute GetEarningsSummaryByPhotographer query for %d: %w", photographerID, err)
	}
	return &s, nil
}

// GetPhotoSalesStats returns sales counts and revenue per photo across
// paid orders, best seller first.
func GetPhotoSalesStats(db *sql.DB, limit uint64) ([]PhotoSalesStat, error) {
	queryBuilder := builder.
		Select(
			"ph.id",
			"ph.filename",
			"COALESCE(SUM(oi.quantity), 0)",
			"COALESCE(SUM(oi.price * oi.quantity), 0)",
		).
		From("photos ph").
		Join("order_items oi ON oi.photo_id = ph.id").
		Join("orders o ON o.id = oi.order_id").
		Where(sq.Eq{"o.payment_status": "paid"}).
		GroupBy("ph.id", "ph.filename").
		OrderBy("SUM(oi.quantity) DESC")

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetPhotoSalesStats: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetPhotoSalesStats query: %w", err)
	}
	defer rows.Close()

	var stats []PhotoSalesStat
	for rows.Next() {
		var s PhotoSalesStat
		if err := rows.Scan(&s.PhotoID, &s.Filename, &s.TimesSold, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan photo sales row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
