package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New("postgres", db),
	}
}

func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx("postgres", rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}

func (r *Repository) PersistLog(auditLog models.AuditLog, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize audit payload: %w", err)
	}

	query := r.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   auditLog.ResourceID,
			"resource_type": auditLog.ResourceType,
			"action":        auditLog.Action,
			"data":          string(payload),
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}
