// internal/db/businesses.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/terrario-app/terrario/internal/models"
)

const businessColumns = `id, name, category, specialty, delivery_time, image, logo,
	hours, opening_time, closing_time, distances, keywords, description, gallery,
	latitude, longitude, whatsapp, is_popular, is_nearby, payment_methods, zone`

// ZoneCount is one row of the zone listing.
type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int64  `json:"count"`
}

// UpdateBusinessParams carries a partial update; nil fields keep the stored
// value (COALESCE semantics, matching the admin form which only submits what
// changed).
type UpdateBusinessParams struct {
	Name           *string
	Category       *string
	Specialty      *string
	DeliveryTime   *string
	Image          *string
	Logo           *string
	Hours          *string
	OpeningTime    *string
	ClosingTime    *string
	Distances      *map[string]string
	Keywords       *[]string
	Description    *string
	Gallery        *[]string
	Latitude       *string
	Longitude      *string
	WhatsApp       *string
	IsPopular      *bool
	IsNearby       *bool
	PaymentMethods *map[string]bool
	Zone           *string
}

func (db *DB) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	return db.listBusinesses(ctx, "SELECT "+businessColumns+" FROM businesses ORDER BY id")
}

func (db *DB) ListBusinessesByZone(ctx context.Context, zone string) ([]models.Business, error) {
	return db.listBusinesses(ctx, "SELECT "+businessColumns+" FROM businesses WHERE zone = ? ORDER BY id", zone)
}

func (db *DB) listBusinesses(ctx context.Context, query string, args ...any) ([]models.Business, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	businesses := []models.Business{}
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return businesses, nil
}

// GetBusinessByID returns sql.ErrNoRows when the business does not exist.
func (db *DB) GetBusinessByID(ctx context.Context, id int64) (models.Business, error) {
	row := db.QueryRowContext(ctx, "SELECT "+businessColumns+" FROM businesses WHERE id = ?", id)
	return scanBusiness(row)
}

func (db *DB) CreateBusiness(ctx context.Context, b models.Business) (int64, error) {
	b.Normalize()
	result, err := db.ExecContext(ctx, `INSERT INTO businesses (
		name, category, specialty, delivery_time, image, logo, hours,
		opening_time, closing_time, distances, keywords, description, gallery,
		latitude, longitude, whatsapp, is_popular, is_nearby, payment_methods, zone
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Name, b.Category, b.Specialty, b.DeliveryTime, b.Image, b.Logo, b.Hours,
		b.OpeningTime, b.ClosingTime, marshalJSON(b.Distances), marshalJSON(b.Keywords),
		b.Description, marshalJSON(b.Gallery), b.Latitude, b.Longitude, b.WhatsApp,
		b.IsPopular, b.IsNearby, marshalJSON(b.PaymentMethods), b.Zone,
	)
	if err != nil {
		return 0, fmt.Errorf("create business: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create business id: %w", err)
	}
	return id, nil
}

func (db *DB) UpdateBusiness(ctx context.Context, id int64, p UpdateBusinessParams) (int64, error) {
	result, err := db.ExecContext(ctx, `UPDATE businesses SET
		name = COALESCE(?, name),
		category = COALESCE(?, category),
		specialty = COALESCE(?, specialty),
		delivery_time = COALESCE(?, delivery_time),
		image = COALESCE(?, image),
		logo = COALESCE(?, logo),
		hours = COALESCE(?, hours),
		opening_time = COALESCE(?, opening_time),
		closing_time = COALESCE(?, closing_time),
		distances = COALESCE(?, distances),
		keywords = COALESCE(?, keywords),
		description = COALESCE(?, description),
		gallery = COALESCE(?, gallery),
		latitude = COALESCE(?, latitude),
		longitude = COALESCE(?, longitude),
		whatsapp = COALESCE(?, whatsapp),
		is_popular = COALESCE(?, is_popular),
		is_nearby = COALESCE(?, is_nearby),
		payment_methods = COALESCE(?, payment_methods),
		zone = COALESCE(?, zone)
	WHERE id = ?`,
		nullString(p.Name), nullString(p.Category), nullString(p.Specialty),
		nullString(p.DeliveryTime), nullString(p.Image), nullString(p.Logo),
		nullString(p.Hours), nullString(p.OpeningTime), nullString(p.ClosingTime),
		nullJSON(p.Distances), nullJSON(p.Keywords), nullString(p.Description),
		nullJSON(p.Gallery), nullString(p.Latitude), nullString(p.Longitude),
		nullString(p.WhatsApp), nullBool(p.IsPopular), nullBool(p.IsNearby),
		nullJSON(p.PaymentMethods), nullString(p.Zone),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("update business: %w", err)
	}
	changes, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update business changes: %w", err)
	}
	return changes, nil
}

func (db *DB) DeleteBusiness(ctx context.Context, id int64) (int64, error) {
	result, err := db.ExecContext(ctx, "DELETE FROM businesses WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete business: %w", err)
	}
	changes, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete business changes: %w", err)
	}
	return changes, nil
}

// ReplaceAllBusinesses wipes the table and inserts the given records in one
// transaction, resetting the autoincrement counter. Used by the batch
// importer only.
func (db *DB) ReplaceAllBusinesses(ctx context.Context, businesses []models.Business) error {
	return db.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM businesses"); err != nil {
			return fmt.Errorf("clear businesses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'businesses'"); err != nil {
			return fmt.Errorf("reset business ids: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO businesses (
			name, category, specialty, delivery_time, image, logo, hours,
			opening_time, closing_time, distances, keywords, description, gallery,
			latitude, longitude, whatsapp, is_popular, is_nearby, payment_methods, zone
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range businesses {
			b.Normalize()
			_, err := stmt.ExecContext(ctx,
				b.Name, b.Category, b.Specialty, b.DeliveryTime, b.Image, b.Logo, b.Hours,
				b.OpeningTime, b.ClosingTime, marshalJSON(b.Distances), marshalJSON(b.Keywords),
				b.Description, marshalJSON(b.Gallery), b.Latitude, b.Longitude, b.WhatsApp,
				b.IsPopular, b.IsNearby, marshalJSON(b.PaymentMethods), b.Zone,
			)
			if err != nil {
				return fmt.Errorf("insert business %q: %w", b.Name, err)
			}
		}
		return nil
	})
}

func (db *DB) ListZones(ctx context.Context) ([]ZoneCount, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT zone, COUNT(*) FROM businesses GROUP BY zone ORDER BY zone")
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	zones := []ZoneCount{}
	for rows.Next() {
		var zc ZoneCount
		if err := rows.Scan(&zc.Zone, &zc.Count); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, zc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (models.Business, error) {
	var b models.Business
	var distances, keywords, gallery, paymentMethods string
	err := row.Scan(
		&b.ID, &b.Name, &b.Category, &b.Specialty, &b.DeliveryTime, &b.Image, &b.Logo,
		&b.Hours, &b.OpeningTime, &b.ClosingTime, &distances, &keywords,
		&b.Description, &gallery, &b.Latitude, &b.Longitude, &b.WhatsApp,
		&b.IsPopular, &b.IsNearby, &paymentMethods, &b.Zone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, err
		}
		return b, fmt.Errorf("scan business: %w", err)
	}

	// Stored JSON survives bad hand edits: decode failures fall back to
	// empty collections instead of failing the read.
	b.Distances = map[string]string{}
	b.Keywords = []string{}
	b.Gallery = []string{}
	b.PaymentMethods = map[string]bool{}
	_ = json.Unmarshal([]byte(distances), &b.Distances)
	_ = json.Unmarshal([]byte(keywords), &b.Keywords)
	_ = json.Unmarshal([]byte(gallery), &b.Gallery)
	_ = json.Unmarshal([]byte(paymentMethods), &b.PaymentMethods)
	return b, nil
}

func marshalJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullBool(value *bool) sql.NullBool {
	if value == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *value, Valid: true}
}

func nullJSON[T any](value *T) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: marshalJSON(*value), Valid: true}
}
