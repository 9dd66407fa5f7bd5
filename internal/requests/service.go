package requests

import (
	"context"
	"errors"

	"oemlink-backend/internal/matching"
	"oemlink-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB      *gorm.DB
	Matcher *matching.Service
	// Trigger launches matching for a created request. Defaults to the
	// matcher's fire-and-forget entry point; tests substitute a synchronous
	// capture.
	Trigger func(crit matching.Criteria, limit int)
}

// CreateRequestInput is a submitted quote or prototype request.
type CreateRequestInput struct {
	RequestType string
	Industry    string
	Quantity    *int
	TargetPrice *float64
	Timeline    string
	Description string
}

// CreateRequest persists the request and triggers best-effort matching in the
// background. The request succeeds even when matching cannot run.
func (s *Service) CreateRequest(ctx context.Context, buyerOrgID uuid.UUID, in CreateRequestInput) (*models.MatchRequest, error) {
	if buyerOrgID == uuid.Nil {
		return nil, errors.New("Organization not associated with user")
	}
	if in.RequestType != models.RequestTypeQuote && in.RequestType != models.RequestTypePrototype {
		return nil, errors.New("request_type must be quote or prototype")
	}
	if in.Description == "" {
		return nil, errors.New("description is required")
	}

	req := &models.MatchRequest{
		BuyerOrgID:  buyerOrgID,
		RequestType: in.RequestType,
		Industry:    strp(in.Industry),
		Quantity:    in.Quantity,
		TargetPrice: in.TargetPrice,
		Timeline:    strp(in.Timeline),
		Description: in.Description,
	}
	if err := s.DB.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}

	crit := s.BuildCriteria(ctx, req)
	trigger := s.Trigger
	if trigger == nil {
		trigger = s.Matcher.RunAsync
	}
	trigger(crit, matching.DefaultRequestLimit)

	return req, nil
}

// BuildCriteria assembles matching criteria from the request, falling back to
// the buyer's stored preferences for fields the request didn't specify.
// Industry falls back to the stored product type, then to "Other".
func (s *Service) BuildCriteria(ctx context.Context, req *models.MatchRequest) matching.Criteria {
	var pref models.BuyerPreference
	hasPref := s.DB.WithContext(ctx).Where("buyer_org_id = ?", req.BuyerOrgID).First(&pref).Error == nil

	industry := ""
	if req.Industry != nil {
		industry = *req.Industry
	}
	if industry == "" && hasPref && pref.ProductType != nil {
		industry = *pref.ProductType
	}
	if industry == "" {
		industry = "Other"
	}

	location := ""
	crossBorder := false
	prototypeNeeded := false
	var moqMin, moqMax *int
	if hasPref {
		if pref.LocationPreference != nil {
			location = *pref.LocationPreference
		}
		if pref.CrossBorder != nil {
			crossBorder = *pref.CrossBorder
		}
		if pref.PrototypeNeeded != nil {
			prototypeNeeded = *pref.PrototypeNeeded
		}
		moqMin, moqMax = pref.MoqMin, pref.MoqMax
	}
	if req.Quantity != nil {
		moqMin, moqMax = req.Quantity, req.Quantity
	}
	// A prototype request needs prototype support regardless of stored preference.
	if req.RequestType == models.RequestTypePrototype {
		prototypeNeeded = true
	}

	source := models.MatchSourceQuoteRequest
	if req.RequestType == models.RequestTypePrototype {
		source = models.MatchSourcePrototypeRequest
	}

	timeline := ""
	if req.Timeline != nil {
		timeline = *req.Timeline
	}

	reqID := req.RequestID
	return matching.Criteria{
		BuyerOrgID:      req.BuyerOrgID,
		Industry:        industry,
		MoqMin:          moqMin,
		MoqMax:          moqMax,
		Timeline:        timeline,
		Location:        location,
		CrossBorder:     crossBorder,
		PrototypeNeeded: prototypeNeeded,
		Source:          source,
		RequestID:       &reqID,
	}
}

// ListOrgRequests returns the buyer's requests, newest first.
func (s *Service) ListOrgRequests(ctx context.Context, buyerOrgID uuid.UUID) ([]models.MatchRequest, error) {
	if buyerOrgID == uuid.Nil {
		return nil, errors.New("Organization not associated with user")
	}
	var reqs []models.MatchRequest
	if err := s.DB.WithContext(ctx).Where("buyer_org_id = ?", buyerOrgID).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func strp(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
