package spots

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// DBTX is the subset of pgxpool.Pool used by the catalog.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Source = (*PostgresSource)(nil)

// PostgresSource reads spots from the cities/spots catalog tables.
type PostgresSource struct {
	db     DBTX
	logger *slog.Logger
}

func NewPostgresSource(db DBTX, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{db: db, logger: logger}
}

func (p *PostgresSource) Name() string { return SourcePostgres }

const searchSpotsQuery = `
    WITH matched AS (
        SELECT c.id
        FROM cities c
        WHERE EXISTS (
            SELECT 1 FROM unnest(array_append(c.aliases, c.name)) AS alias
            WHERE strpos(lower($1), lower(alias)) > 0 OR strpos(lower(alias), lower($1)) > 0
        )
        ORDER BY c.sort_order
        LIMIT 1
    )
    SELECT s.name, s.lat, s.lng, s.description,
           COALESCE(s.address, ''), COALESCE(s.phone, ''),
           COALESCE(s.category, ''), COALESCE(s.img_url, '')
    FROM spots s
    JOIN matched m ON m.id = s.city_id
    ORDER BY s.position
`

func (p *PostgresSource) Search(ctx context.Context, query string) ([]types.Spot, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	rows, err := p.db.Query(ctx, searchSpotsQuery, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer rows.Close()

	var result []types.Spot
	for rows.Next() {
		var s types.Spot
		if err := rows.Scan(&s.Name, &s.Lat, &s.Lng, &s.Description,
			&s.Address, &s.Phone, &s.Category, &s.ImgURL); err != nil {
			return nil, fmt.Errorf("failed to scan spot row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spot rows: %w", err)
	}

	p.logger.DebugContext(ctx, "Catalog spots loaded", slog.String("query", query), slog.Int("count", len(result)))
	return result, nil
}
