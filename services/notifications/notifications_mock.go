package notifications

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fundbackend/models"
)

// MockNotificationsService is a mock implementation of the NotificationsService interface
type MockNotificationsService struct {
	mock.Mock
}

func (m *MockNotificationsService) EmailMetadata(
	ctx context.Context,
	user *models.User,
	notification *models.Notification,
) (mo.Option[models.EmailMetadata], error) {
	args := m.Called(ctx, user, notification)
	return args.Get(0).(mo.Option[models.EmailMetadata]), args.Error(1)
}

func (m *MockNotificationsService) RenderEmail(metadata models.EmailMetadata) (string, error) {
	args := m.Called(metadata)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationsService) Subject(metadata models.EmailMetadata) string {
	args := m.Called(metadata)
	return args.String(0)
}

func (m *MockNotificationsService) SendEmail(
	ctx context.Context,
	user *models.User,
	notificationID string,
) (bool, error) {
	args := m.Called(ctx, user, notificationID)
	return args.Bool(0), args.Error(1)
}
