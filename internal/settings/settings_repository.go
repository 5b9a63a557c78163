package settings

import (
	"fmt"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type SettingsRepository interface {
	GetReasons(includeInactive bool) ([]models.WarenausgangReason, error)
	PersistReason(reason *models.WarenausgangReason) error
	UpdateReason(reasonID int, req models.UpdateReasonRequest) (bool, error)
	DeleteReason(reasonID int) (bool, error)

	GetJustifications(includeInactive bool) ([]models.JustificationTemplate, error)
	PersistJustification(template *models.JustificationTemplate) error
	UpdateJustification(templateID int, req models.UpdateJustificationRequest) (bool, error)
	DeleteJustification(templateID int) (bool, error)
}

type settingsRepositoryImpl struct {
	repository *repository.Repository
}

func NewSettingsRepository(r *repository.Repository) SettingsRepository {
	return &settingsRepositoryImpl{repository: r}
}

func (r *settingsRepositoryImpl) GetReasons(includeInactive bool) ([]models.WarenausgangReason, error) {
	query := r.repository.GoquDBWrapper.
		From("warenausgang_reasons").
		Order(goqu.I("order_index").Asc(), goqu.I("name").Asc())

	if !includeInactive {
		query = query.Where(goqu.Ex{"is_active": true})
	}

	var reasons []models.WarenausgangReason
	if err := query.Executor().ScanStructs(&reasons); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for warenausgang reasons: %w", err)
	}

	return reasons, nil
}

func (r *settingsRepositoryImpl) PersistReason(reason *models.WarenausgangReason) error {
	query := r.repository.GoquDBWrapper.
		Insert("warenausgang_reasons").
		Rows(goqu.Record{
			"name":        reason.Name,
			"order_index": reason.OrderIndex,
			"is_active":   reason.IsActive,
			"created_at":  reason.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&reason.ID); err != nil {
		return fmt.Errorf("failed to insert warenausgang reason: %w", err)
	}

	return nil
}

func (r *settingsRepositoryImpl) UpdateReason(reasonID int, req models.UpdateReasonRequest) (bool, error) {
	record := goqu.Record{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.OrderIndex != nil {
		record["order_index"] = *req.OrderIndex
	}
	if req.IsActive != nil {
		record["is_active"] = *req.IsActive
	}

	result, err := r.repository.GoquDBWrapper.
		Update("warenausgang_reasons").
		Set(record).
		Where(goqu.Ex{"id": reasonID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update warenausgang reason: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update warenausgang reason: %w", err)
	}

	return affected > 0, nil
}

func (r *settingsRepositoryImpl) DeleteReason(reasonID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("warenausgang_reasons").
		Where(goqu.Ex{"id": reasonID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete warenausgang reason: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete warenausgang reason: %w", err)
	}

	return affected > 0, nil
}

func (r *settingsRepositoryImpl) GetJustifications(includeInactive bool) ([]models.JustificationTemplate, error) {
	query := r.repository.GoquDBWrapper.
		From("justification_templates").
		Order(goqu.I("order_index").Asc(), goqu.I("text").Asc())

	if !includeInactive {
		query = query.Where(goqu.Ex{"is_active": true})
	}

	var templates []models.JustificationTemplate
	if err := query.Executor().ScanStructs(&templates); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for justification templates: %w", err)
	}

	return templates, nil
}

func (r *settingsRepositoryImpl) PersistJustification(template *models.JustificationTemplate) error {
	query := r.repository.GoquDBWrapper.
		Insert("justification_templates").
		Rows(goqu.Record{
			"text":        template.Text,
			"order_index": template.OrderIndex,
			"is_active":   template.IsActive,
			"created_at":  template.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&template.ID); err != nil {
		return fmt.Errorf("failed to insert justification template: %w", err)
	}

	return nil
}

func (r *settingsRepositoryImpl) UpdateJustification(templateID int, req models.UpdateJustificationRequest) (bool, error) {
	record := goqu.Record{"updated_at": time.Now().UTC()}
	if req.Text != nil {
		record["text"] = *req.Text
	}
	if req.OrderIndex != nil {
		record["order_index"] = *req.OrderIndex
	}
	if req.IsActive != nil {
		record["is_active"] = *req.IsActive
	}

	result, err := r.repository.GoquDBWrapper.
		Update("justification_templates").
		Set(record).
		Where(goqu.Ex{"id": templateID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update justification template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update justification template: %w", err)
	}

	return affected > 0, nil
}

func (r *settingsRepositoryImpl) DeleteJustification(templateID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("justification_templates").
		Where(goqu.Ex{"id": templateID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete justification template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete justification template: %w", err)
	}

	return affected > 0, nil
}
