package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Devvify/dynamic-survey-management/model"
	"github.com/Devvify/dynamic-survey-management/survey"
)

// CreateSurvey persists a validated definition as one transaction: the
// survey row, its fields in payload order, then the options keyed by each
// field's new id. Either everything lands or nothing does.
func (s *Store) CreateSurvey(ctx context.Context, def model.SurveyInput, createdBy int) (surveyID int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	status := def.Status
	if status == "" {
		status = model.StatusActive
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO surveys (title, description, status, created_by, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		def.Title,
		def.Description,
		status,
		createdBy,
		s.now(),
	).Scan(&surveyID)
	if err != nil {
		return 0, err
	}

	fieldStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_fields (survey_id, key, label, type, is_required, help_text, "order", created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	if err != nil {
		return 0, err
	}
	defer fieldStmt.Close()

	fieldIDs := make(map[string]int, len(def.Fields))
	for _, f := range def.Fields {
		var fieldID int
		err = fieldStmt.QueryRowContext(ctx,
			surveyID, f.Key, f.Label, f.Type, f.Required, f.HelpText, f.Order, s.now(),
		).Scan(&fieldID)
		if err != nil {
			return 0, err
		}
		fieldIDs[f.Key] = fieldID
	}

	optionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_field_options (field_id, label, value, "order", created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer optionStmt.Close()

	for _, f := range def.Fields {
		for _, opt := range f.Options {
			_, err = optionStmt.ExecContext(ctx, fieldIDs[f.Key], opt.Label, opt.Value, opt.Order, s.now())
			if err != nil {
				return 0, err
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return surveyID, nil
}

// GetSurvey loads a survey with its fields and options, both in ascending
// order (ties broken by insertion order).
func (s *Store) GetSurvey(ctx context.Context, id int) (*model.Survey, error) {
	sv := model.Survey{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, created_by, created_at
		FROM surveys
		WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(&sv.ID, &sv.Title, &sv.Description, &sv.Status, &sv.CreatedBy, &sv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sv.Fields, err = s.surveyFields(ctx, sv.ID)
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

// GetActiveSurvey is GetSurvey restricted to what officers may see.
func (s *Store) GetActiveSurvey(ctx context.Context, id int) (*model.Survey, error) {
	sv, err := s.GetSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	if sv.Status != model.StatusActive {
		return nil, survey.ErrSurveyUnavailable
	}
	return sv, nil
}

func (s *Store) surveyFields(ctx context.Context, surveyID int) ([]model.Field, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, key, label, type, is_required, help_text, "order"
		FROM survey_fields
		WHERE survey_id = ?
		ORDER BY "order", id`,
		surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []model.Field{}
	byID := map[int]int{}
	for rows.Next() {
		f := model.Field{}
		err = rows.Scan(&f.ID, &f.SurveyID, &f.Key, &f.Label, &f.Type, &f.Required, &f.HelpText, &f.Order)
		if err != nil {
			return nil, err
		}
		byID[f.ID] = len(fields)
		fields = append(fields, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.field_id, o.label, o.value, o."order"
		FROM survey_field_options o
		INNER JOIN survey_fields f ON (f.id = o.field_id)
		WHERE f.survey_id = ?
		ORDER BY o."order", o.id`,
		surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		opt := model.Option{}
		err = optRows.Scan(&opt.ID, &opt.FieldID, &opt.Label, &opt.Value, &opt.Order)
		if err != nil {
			return nil, err
		}
		if i, ok := byID[opt.FieldID]; ok {
			fields[i].Options = append(fields[i].Options, opt)
		}
	}
	return fields, optRows.Err()
}

func (s *Store) ListSurveys(ctx context.Context, page Page) ([]model.Survey, error) {
	return s.listSurveys(ctx, page, false)
}

func (s *Store) ListActiveSurveys(ctx context.Context, page Page) ([]model.Survey, error) {
	return s.listSurveys(ctx, page, true)
}

func (s *Store) listSurveys(ctx context.Context, page Page, activeOnly bool) ([]model.Survey, error) {
	query := `
		SELECT id, title, description, status, created_by, created_at
		FROM surveys
		WHERE deleted_at IS NULL`
	args := []any{}
	if activeOnly {
		query += ` AND status = ?`
		args = append(args, model.StatusActive)
	}
	query += `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`
	limit, offset := page.limitOffset()
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		sv := model.Survey{}
		err = rows.Scan(&sv.ID, &sv.Title, &sv.Description, &sv.Status, &sv.CreatedBy, &sv.CreatedAt)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, sv)
	}
	return surveys, rows.Err()
}

// DeleteSurvey soft-deletes a survey. Surveys that submissions reference
// are never deleted: the answers stay reviewable and the restrict foreign
// keys stay unviolated.
func (s *Store) DeleteSurvey(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM survey_submissions WHERE survey_id = ?)`,
		id,
	).Scan(&referenced)
	if err != nil {
		return err
	}
	if referenced {
		return ErrSurveyHasSubmissions
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE surveys
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		s.now(),
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n < 1 {
		return ErrNotFound
	}

	return tx.Commit()
}
