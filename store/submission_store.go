package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Devvify/dynamic-survey-management/model"
)

// CreateSubmission persists a validated answer set as one transaction: the
// submission row plus one answer row per answered field. Checkbox answers
// land in the JSON column, everything else in the text column. A failure
// anywhere rolls back the submission row too.
func (s *Store) CreateSubmission(ctx context.Context, sv *model.Survey, submittedBy int, answers model.AnswerSet) (submissionID int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO survey_submissions (survey_id, submitted_by, created_at)
		VALUES (?, ?, ?)
		RETURNING id`,
		sv.ID,
		submittedBy,
		s.now(),
	).Scan(&submissionID)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO submission_answers (submission_id, field_id, value_text, value_json, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, f := range sv.Fields {
		value, present := answers[f.Key]
		if !present {
			continue
		}

		var valueText, valueJSON any
		if f.Type == model.TypeCheckbox {
			var encoded []byte
			encoded, err = json.Marshal(value.List())
			if err != nil {
				return 0, err
			}
			valueJSON = string(encoded)
		} else {
			valueText = value.Scalar()
		}

		_, err = stmt.ExecContext(ctx, submissionID, f.ID, valueText, valueJSON, s.now())
		if err != nil {
			return 0, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return submissionID, nil
}

// ListSubmissions pages through a survey's submissions, newest first.
func (s *Store) ListSubmissions(ctx context.Context, surveyID int, page Page) ([]model.Submission, error) {
	limit, offset := page.limitOffset()
	rows, err := s.db.QueryContext(ctx, `
		SELECT sub.id, sub.survey_id, sub.submitted_by, u.username, sub.created_at
		FROM survey_submissions sub
		INNER JOIN users u ON (u.id = sub.submitted_by)
		WHERE sub.survey_id = ?
		ORDER BY sub.created_at DESC, sub.id DESC
		LIMIT ? OFFSET ?`,
		surveyID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		sub := model.Submission{}
		err = rows.Scan(&sub.ID, &sub.SurveyID, &sub.SubmittedBy, &sub.Submitter, &sub.CreatedAt)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, sub)
	}
	return submissions, rows.Err()
}

// GetSubmission loads one submission with its answers hydrated in field
// order: checkbox values decoded from the JSON column, scalars as stored.
func (s *Store) GetSubmission(ctx context.Context, id int) (*model.Submission, error) {
	sub := model.Submission{}
	err := s.db.QueryRowContext(ctx, `
		SELECT sub.id, sub.survey_id, sv.title, sub.submitted_by, u.username, sub.created_at
		FROM survey_submissions sub
		INNER JOIN surveys sv ON (sv.id = sub.survey_id)
		INNER JOIN users u ON (u.id = sub.submitted_by)
		WHERE sub.id = ?`,
		id,
	).Scan(&sub.ID, &sub.SurveyID, &sub.SurveyTitle, &sub.SubmittedBy, &sub.Submitter, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.field_id, f.key, f.label, a.value_text, a.value_json
		FROM submission_answers a
		INNER JOIN survey_fields f ON (f.id = a.field_id)
		WHERE a.submission_id = ?
		ORDER BY f."order", f.id`,
		sub.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a := model.Answer{}
		var valueText, valueJSON sql.NullString
		err = rows.Scan(&a.ID, &a.FieldID, &a.FieldKey, &a.FieldLabel, &valueText, &valueJSON)
		if err != nil {
			return nil, err
		}

		if valueJSON.Valid {
			var list []string
			err = json.Unmarshal([]byte(valueJSON.String), &list)
			if err != nil {
				return nil, err
			}
			a.Value = list
		} else {
			a.Value = valueText.String
		}

		sub.Answers = append(sub.Answers, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return &sub, nil
}
