package pond

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/farmledger/farmledger/internal/database"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrPondNotFound = errors.New("pond does not exist")

type Repo interface {
	Store(ctx context.Context, userId int, pond Pond) (int, error)
	Get(ctx context.Context, userId int, pondId int) (Pond, error)
	GetAll(ctx context.Context, userId int) ([]Pond, error)
	Update(ctx context.Context, userId int, pond Pond) (bool, error)
	Delete(ctx context.Context, userId int, pondId int) (bool, error)
	StoreReading(ctx context.Context, userId int, reading WaterReading) (int, error)
	// GetReadings returns the pond's readings taken between from and to,
	// newest first.
	GetReadings(ctx context.Context, userId int, pondId int, from time.Time, to time.Time) ([]WaterReading, error)
	LatestReading(ctx context.Context, userId int, pondId int) (WaterReading, error)
}

var ErrNoReadings = errors.New("pond has no water readings")

type RepoImpl struct {
	db *database.DB
}

func NewPondRepo(db *database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, pond Pond) (int, error) {
	query := r.db.Rebind(`INSERT INTO pond (user_id, name, area_m2, stocking_density)
				VALUES (?, ?, ?, ?) RETURNING id`)

	var id int
	err := r.db.QueryRowContext(ctx, query,
		userId,
		pond.Name,
		pond.AreaM2.String(),
		pond.StockingDensity.String(),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store pond: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, pondId int) (Pond, error) {
	query := r.db.Rebind(`SELECT id, name, area_m2, stocking_density FROM pond WHERE id = ? AND user_id = ?`)
	row := r.db.QueryRowContext(ctx, query, pondId, userId)

	pond, err := scanPond(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Pond{}, ErrPondNotFound
	} else if err != nil {
		log.Errorf("could not get pond %d: %v", pondId, err)
		return Pond{}, err
	}
	return pond, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Pond, error) {
	query := r.db.Rebind(`SELECT id, name, area_m2, stocking_density FROM pond WHERE user_id = ? ORDER BY name`)
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query ponds: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var ponds []Pond
	for rows.Next() {
		pond, err := scanPond(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan pond: %w", err)
			log.Error(err)
			return nil, err
		}
		ponds = append(ponds, pond)
	}
	return ponds, rows.Err()
}

func (r *RepoImpl) Update(ctx context.Context, userId int, pond Pond) (bool, error) {
	query := r.db.Rebind(`UPDATE pond SET name = ?, area_m2 = ?, stocking_density = ? WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		pond.Name,
		pond.AreaM2.String(),
		pond.StockingDensity.String(),
		pond.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update pond: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, pondId int) (bool, error) {
	query := r.db.Rebind(`DELETE FROM pond WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query, pondId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete pond: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) StoreReading(ctx context.Context, userId int, reading WaterReading) (int, error) {
	if _, err := r.Get(ctx, userId, reading.PondID); err != nil {
		return 0, err
	}

	query := r.db.Rebind(`INSERT INTO water_reading (pond_id, reading_time, ph, dissolved_oxygen, temperature_c, salinity_ppt, ammonia_mg_l)
				VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int
	err := r.db.QueryRowContext(ctx, query,
		reading.PondID,
		reading.ReadingTime.UTC(),
		reading.PH.String(),
		reading.DissolvedOxygen.String(),
		reading.TemperatureC.String(),
		reading.SalinityPpt.String(),
		reading.AmmoniaMgL.String(),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store water reading: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetReadings(ctx context.Context, userId int, pondId int, from time.Time, to time.Time) ([]WaterReading, error) {
	if _, err := r.Get(ctx, userId, pondId); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT id, pond_id, reading_time, ph, dissolved_oxygen, temperature_c, salinity_ppt, ammonia_mg_l
				FROM water_reading
				WHERE pond_id = ? AND reading_time >= ? AND reading_time <= ?
				ORDER BY reading_time DESC`)
	rows, err := r.db.QueryContext(ctx, query, pondId, from.UTC(), to.UTC())
	if err != nil {
		err := fmt.Errorf("could not query water readings: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var readings []WaterReading
	for rows.Next() {
		reading, err := scanReading(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan water reading: %w", err)
			log.Error(err)
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func (r *RepoImpl) LatestReading(ctx context.Context, userId int, pondId int) (WaterReading, error) {
	if _, err := r.Get(ctx, userId, pondId); err != nil {
		return WaterReading{}, err
	}

	query := r.db.Rebind(`SELECT id, pond_id, reading_time, ph, dissolved_oxygen, temperature_c, salinity_ppt, ammonia_mg_l
				FROM water_reading WHERE pond_id = ? ORDER BY reading_time DESC LIMIT 1`)
	row := r.db.QueryRowContext(ctx, query, pondId)

	reading, err := scanReading(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return WaterReading{}, ErrNoReadings
	} else if err != nil {
		log.Errorf("could not get latest reading of pond %d: %v", pondId, err)
		return WaterReading{}, err
	}
	return reading, nil
}

func scanPond(scan func(dest ...any) error) (Pond, error) {
	var pond Pond
	var area, density string

	if err := scan(&pond.ID, &pond.Name, &area, &density); err != nil {
		return Pond{}, err
	}

	parsedArea, err := decimal.NewFromString(area)
	if err != nil {
		return Pond{}, fmt.Errorf("could not parse pond area: %w", err)
	}
	pond.AreaM2 = parsedArea

	parsedDensity, err := decimal.NewFromString(density)
	if err != nil {
		return Pond{}, fmt.Errorf("could not parse stocking density: %w", err)
	}
	pond.StockingDensity = parsedDensity

	return pond, nil
}

func scanReading(scan func(dest ...any) error) (WaterReading, error) {
	var reading WaterReading
	var ph, dissolvedOxygen, temperature, salinity, ammonia string

	if err := scan(
		&reading.ID,
		&reading.PondID,
		&reading.ReadingTime,
		&ph,
		&dissolvedOxygen,
		&temperature,
		&salinity,
		&ammonia,
	); err != nil {
		return WaterReading{}, err
	}

	var err error
	if reading.PH, err = decimal.NewFromString(ph); err != nil {
		return WaterReading{}, fmt.Errorf("could not parse ph: %w", err)
	}
	if reading.DissolvedOxygen, err = decimal.NewFromString(dissolvedOxygen); err != nil {
		return WaterReading{}, fmt.Errorf("could not parse dissolved oxygen: %w", err)
	}
	if reading.TemperatureC, err = decimal.NewFromString(temperature); err != nil {
		return WaterReading{}, fmt.Errorf("could not parse temperature: %w", err)
	}
	if reading.SalinityPpt, err = decimal.NewFromString(salinity); err != nil {
		return WaterReading{}, fmt.Errorf("could not parse salinity: %w", err)
	}
	if reading.AmmoniaMgL, err = decimal.NewFromString(ammonia); err != nil {
		return WaterReading{}, fmt.Errorf("could not parse ammonia: %w", err)
	}

	return reading, nil
}
