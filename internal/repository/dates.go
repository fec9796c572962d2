package repository

import (
	"github.com/biztime/api/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

// dateValue scans a Postgres date column, which may be NULL, and
// converts it to the model's calendar-date type.
type dateValue struct {
	pgtype.Date
}

func (d dateValue) date() model.Date {
	return model.NewDate(d.Time)
}

func (d dateValue) datePtr() *model.Date {
	if !d.Valid {
		return nil
	}
	value := model.NewDate(d.Time)
	return &value
}
