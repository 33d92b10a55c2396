package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/models/request_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

type ConsentServiceInterface interface {
	Record(ctx context.Context, userID uuid.UUID, request request_models.RecordConsentRequest, client ClientInfo) (*resp.ConsentResponse, error)
	Check(ctx context.Context, userID uuid.UUID) (*resp.ConsentCheckResponse, error)
}

type ConsentService struct {
	repo repositories.ConsentRepository
}

func NewConsentService(repo repositories.ConsentRepository) ConsentServiceInterface {
	return &ConsentService{repo: repo}
}

func (c *ConsentService) Record(ctx context.Context, userID uuid.UUID, request request_models.RecordConsentRequest, client ClientInfo) (*resp.ConsentResponse, error) {
	text := strings.TrimSpace(request.ConsentText)
	if text == "" {
		text = db_models.DefaultConsentText
	}

	record := &db_models.ConsentRecord{
		UserID:       userID,
		ConsentGiven: request.ConsentGiven != nil && *request.ConsentGiven,
		ConsentText:  text,
		IPAddress:    client.IPAddress,
		UserAgent:    client.UserAgent,
	}
	if err := c.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return resp.NewConsentResponse(record), nil
}

func (c *ConsentService) Check(ctx context.Context, userID uuid.UUID) (*resp.ConsentCheckResponse, error) {
	record, err := c.repo.LatestGiven(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return &resp.ConsentCheckResponse{
		HasConsent: record != nil,
		Consent:    resp.NewConsentResponse(record),
	}, nil
}
