package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

type mockTrackerRepo struct {
	created *models.TrackerSubmission
}

func (m *mockTrackerRepo) Create(ctx context.Context, submission *models.TrackerSubmission) error {
	submission.ID = 11
	m.created = submission
	return nil
}

func (m *mockTrackerRepo) List(ctx context.Context, customerID int64) ([]models.TrackerSubmission, error) {
	return nil, nil
}

func (m *mockTrackerRepo) FindByID(ctx context.Context, id int64) (*models.TrackerSubmission, error) {
	return nil, sql.ErrNoRows
}

func (m *mockTrackerRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return 0, nil
}

type mockCustomerLookup struct {
	err error
}

func (m *mockCustomerLookup) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Customer{ID: id}, nil
}

func TestFlattenFormNested(t *testing.T) {
	fields, annexures := FlattenForm(map[string]interface{}{
		"company": map[string]interface{}{
			"name": "Acme Corp",
			"contacts": []interface{}{
				map[string]interface{}{"email": "a@acme.test"},
				map[string]interface{}{"email": "b@acme.test"},
			},
		},
		"priority": float64(2),
	})

	assert.Equal(t, map[string]interface{}{
		"company_name":             "Acme Corp",
		"company_contacts_0_email": "a@acme.test",
		"company_contacts_1_email": "b@acme.test",
		"priority":                 float64(2),
	}, fields)
	assert.Empty(t, annexures)
}

func TestFlattenFormAnnexureSubtree(t *testing.T) {
	fields, annexures := FlattenForm(map[string]interface{}{
		"candidate": map[string]interface{}{
			"name": "Ravi",
			"annexure": map[string]interface{}{
				"education": map[string]interface{}{
					"degree": "BSc",
				},
				"employment": "verified",
			},
		},
	})

	assert.Equal(t, map[string]interface{}{"candidate_name": "Ravi"}, fields)
	assert.Equal(t, map[string]interface{}{
		"education_degree": "BSc",
		"employment":       "verified",
	}, annexures)
}

func TestFlattenFormTopLevelAnnexure(t *testing.T) {
	fields, annexures := FlattenForm(map[string]interface{}{
		"annexure": map[string]interface{}{
			"remarks": "clean record",
		},
		"status": "complete",
	})

	assert.Equal(t, map[string]interface{}{"status": "complete"}, fields)
	assert.Equal(t, map[string]interface{}{"remarks": "clean record"}, annexures)
}

func TestFlattenFormScalarAnnexure(t *testing.T) {
	_, annexures := FlattenForm(map[string]interface{}{
		"annexure": "see attachment",
	})

	assert.Equal(t, map[string]interface{}{"annexure": "see attachment"}, annexures)
}

func TestTrackerSubmitPersistsFlattenedMaps(t *testing.T) {
	repo := &mockTrackerRepo{}
	svc := NewTrackerService(repo, &mockCustomerLookup{}, nil, zap.NewNop())

	submission, err := svc.Submit(context.Background(), 5, models.TrackerSubmitRequest{
		CustomerID: 3,
		Form: map[string]interface{}{
			"case": map[string]interface{}{
				"ref":      "SS-100",
				"annexure": map[string]interface{}{"note": "ok"},
			},
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 11, submission.ID)
	assert.EqualValues(t, 5, submission.SubmittedBy)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(repo.created.FlatFields, &fields))
	assert.Equal(t, map[string]interface{}{"case_ref": "SS-100"}, fields)

	var annexures map[string]interface{}
	require.NoError(t, json.Unmarshal(repo.created.FlatAnnexures, &annexures))
	assert.Equal(t, map[string]interface{}{"note": "ok"}, annexures)
}

func TestTrackerSubmitUnknownCustomer(t *testing.T) {
	svc := NewTrackerService(&mockTrackerRepo{}, &mockCustomerLookup{err: sql.ErrNoRows}, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), 5, models.TrackerSubmitRequest{
		CustomerID: 99,
		Form:       map[string]interface{}{"a": "b"},
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
