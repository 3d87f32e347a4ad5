package repositories

import (
	"database/sql"
	"fmt"
)

// CatalogRepository exposes the catalog lookups the reporting layer needs:
// the table-to-floor mapping used by the channel/floor filter.
type CatalogRepository interface {
	// GetTableFloors maps table ID to floor name. Tables without a floor
	// assignment are omitted.
	GetTableFloors() (map[int64]string, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetTableFloors() (map[int64]string, error) {
	query := `
		SELECT t.id, f.name
		FROM tables t
		JOIN floors f ON t.floor_id = f.id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying table floors: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	floors := make(map[int64]string)
	for rows.Next() {
		var tableID int64
		var floorName string
		if err := rows.Scan(&tableID, &floorName); err != nil {
			return nil, fmt.Errorf("%w: scanning table floor: %v", ErrDatabaseError, err)
		}
		floors[tableID] = floorName
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table floor rows: %v", ErrDatabaseError, err)
	}
	return floors, nil
}
