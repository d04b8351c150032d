package capacity_admin

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/service/capacity/models"
)

type CapacityService interface {
	GetServiceConfig(ctx context.Context, serviceID uuid.UUID) (*models.ServiceCapacityResponse, error)
	UpdateServiceCapacity(ctx context.Context, req *models.UpdateServiceCapacityRequest) (*models.ServiceCapacityResponse, error)
	SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error)
	ListOverrides(ctx context.Context, serviceID uuid.UUID, fromDate time.Time) (*models.OverrideListResponse, error)
	DeactivateOverride(ctx context.Context, id uuid.UUID) error
	AddToWaitlist(ctx context.Context, req *models.AddToWaitlistRequest) (*models.WaitlistEntryResponse, error)
	ListWaitlist(ctx context.Context, serviceID uuid.UUID, date *time.Time) (*models.WaitlistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
