package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matricare/matricare-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateAppointment(ctx context.Context, appointment models.Appointment) (int, error) {
	args := m.Called(ctx, appointment)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetAppointment(ctx context.Context, id int) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *RepoMock) ListAppointmentsByUser(ctx context.Context, username string, limit, offset int) ([]*models.Appointment, error) {
	args := m.Called(ctx, username, limit, offset)
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *RepoMock) ListAppointmentsByExpert(ctx context.Context, expertUsername string, limit, offset int) ([]*models.Appointment, error) {
	args := m.Called(ctx, expertUsername, limit, offset)
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *RepoMock) ListAllAppointments(ctx context.Context, limit, offset int) ([]*models.Appointment, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *RepoMock) UpdateAppointmentStatus(ctx context.Context, id int, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

func TestCreate(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	repo := new(RepoMock)
	repo.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a models.Appointment) bool {
		return a.Status == models.AppointmentScheduled && a.UserUsername == "priya" && a.ExpertUsername == "dr-rao"
	})).Return(5, nil)

	svc := New(repo)
	id, err := svc.Create(context.Background(), "priya", "dr-rao", future, "вопрос по питанию")
	require.NoError(t, err)
	assert.Equal(t, 5, id)
}

func TestCreate_PastDate(t *testing.T) {
	svc := New(new(RepoMock))
	_, err := svc.Create(context.Background(), "priya", "dr-rao", time.Now().Add(-time.Hour), "")
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestListForRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		expectCall string
	}{
		{"пользователь видит только свои", models.RoleUser, "ListAppointmentsByUser"},
		{"эксперт видит назначенные ему", models.RoleExpert, "ListAppointmentsByExpert"},
		{"админ видит все", models.RoleAdmin, "ListAllAppointments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			switch tt.expectCall {
			case "ListAllAppointments":
				repo.On(tt.expectCall, mock.Anything, 20, 0).Return([]*models.Appointment{}, nil)
			default:
				repo.On(tt.expectCall, mock.Anything, "someone", 20, 0).Return([]*models.Appointment{}, nil)
			}

			svc := New(repo)
			_, err := svc.ListForRole(context.Background(), "someone", tt.role, 20, 0)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		current   string
		affected  int
		wantErr   error
		skipFetch bool
	}{
		{name: "завершение консультации", status: models.AppointmentCompleted, current: models.AppointmentScheduled, affected: 1},
		{name: "отмена консультации", status: models.AppointmentCancelled, current: models.AppointmentScheduled, affected: 1},
		{name: "неизвестный статус", status: "postponed", wantErr: ErrUnknownStatus, skipFetch: true},
		{name: "уже завершена", status: models.AppointmentCancelled, current: models.AppointmentCompleted, wantErr: ErrAlreadyClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if !tt.skipFetch {
				repo.On("GetAppointment", mock.Anything, 1).Return(&models.Appointment{ID: 1, ExpertUsername: "dr_ivanova", Status: tt.current}, nil)
			}
			if tt.wantErr == nil {
				repo.On("UpdateAppointmentStatus", mock.Anything, 1, tt.status).Return(tt.affected, nil)
			}

			svc := New(repo)
			err := svc.UpdateStatus(context.Background(), 1, tt.status, "dr_ivanova", models.RoleExpert)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus_ExpertAssignmentOnly(t *testing.T) {
	stored := &models.Appointment{ID: 1, ExpertUsername: "dr_ivanova", Status: models.AppointmentScheduled}

	tests := []struct {
		name     string
		caller   string
		role     string
		wantErr  error
		executes bool
	}{
		{name: "назначенный эксперт", caller: "dr_ivanova", role: models.RoleExpert, executes: true},
		{name: "чужой эксперт", caller: "dr_petrova", role: models.RoleExpert, wantErr: ErrNotAssigned},
		{name: "админ меняет любую запись", caller: "root", role: models.RoleAdmin, executes: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetAppointment", mock.Anything, 1).Return(stored, nil)
			if tt.executes {
				repo.On("UpdateAppointmentStatus", mock.Anything, 1, models.AppointmentCancelled).Return(1, nil)
			}

			svc := New(repo)
			err := svc.UpdateStatus(context.Background(), 1, models.AppointmentCancelled, tt.caller, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
