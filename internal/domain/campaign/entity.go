package campaign

import (
	"time"

	"qr-coupon-server/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errs.New("invalid campaign status")
	ErrInvalidTransition  = errs.New("invalid campaign status transition")
	ErrMissingDates       = errs.New("campaign start and end dates are required")
	ErrInvalidDateRange   = errs.New("campaign end date must be after start date")
	ErrCampaignExpired    = errs.New("campaign has expired")
	ErrCampaignInactive   = errs.New("campaign is not active")
	ErrCampaignCompleted  = errs.New("completed campaigns cannot be modified")
	ErrInvalidName        = errs.New("campaign name is required")
	ErrInvalidCouponType  = errs.New("coupon type must be percentage or fixed")
	ErrInvalidCouponRange = errs.New("invalid coupon value range")
)

type Campaign struct {
	id        uuid.UUID
	clientID  *uuid.UUID
	name      string
	status    Status
	isActive  bool
	startDate *time.Time
	endDate   *time.Time
	offer     Offer
	scanCount int64
	createdAt time.Time
	updatedAt time.Time
}

type Details struct {
	Name      string
	ClientID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Offer     Offer
}

// New creates a draft campaign; activation goes through TransitionTo
func New(d Details, now time.Time) (*Campaign, error) {
	if err := validateDetails(&d); err != nil {
		return nil, err
	}
	return &Campaign{
		id:        uuid.New(),
		clientID:  d.ClientID,
		name:      d.Name,
		status:    StatusDraft,
		startDate: d.StartDate,
		endDate:   d.EndDate,
		offer:     d.Offer,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	clientID *uuid.UUID,
	name string,
	status Status,
	isActive bool,
	startDate, endDate *time.Time,
	offer Offer,
	scanCount int64,
	createdAt, updatedAt time.Time,
) *Campaign {
	return &Campaign{
		id:        id,
		clientID:  clientID,
		name:      name,
		status:    status,
		isActive:  isActive,
		startDate: startDate,
		endDate:   endDate,
		offer:     offer,
		scanCount: scanCount,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// TransitionTo moves the campaign along the lifecycle graph.
// Requesting the current status is a successful no-op reported as changed=false.
func (c *Campaign) TransitionTo(target Status, now time.Time) (changed bool, err error) {
	if !target.Valid() {
		return false, ErrInvalidStatus
	}
	if target == c.status {
		return false, nil
	}
	if !c.status.CanTransitionTo(target) {
		return false, ErrInvalidTransition
	}
	if target == StatusActive {
		if err := checkActivationWindow(c.startDate, c.endDate, now); err != nil {
			return false, err
		}
	}

	c.status = target
	c.isActive = target == StatusActive
	c.updatedAt = now
	return true, nil
}

// AcceptsRedemptions gates new bottle claims
func (c *Campaign) AcceptsRedemptions(now time.Time) error {
	if c.status != StatusActive || !c.isActive {
		return ErrCampaignInactive
	}
	if c.endDate != nil && now.After(*c.endDate) {
		return ErrCampaignExpired
	}
	if c.startDate != nil && now.Before(*c.startDate) {
		return ErrCampaignInactive
	}
	return nil
}

// AcceptsInStoreRedemption gates spending an already issued coupon
func (c *Campaign) AcceptsInStoreRedemption(now time.Time) error {
	if !c.isActive {
		return ErrCampaignInactive
	}
	if c.endDate != nil && now.After(*c.endDate) {
		return ErrCampaignExpired
	}
	return nil
}

// UpdateDetails never touches status; an active campaign must keep a valid window
func (c *Campaign) UpdateDetails(d Details, now time.Time) error {
	if c.status.IsTerminal() {
		return ErrCampaignCompleted
	}
	if err := validateDetails(&d); err != nil {
		return err
	}
	if c.status == StatusActive {
		if err := checkActivationWindow(d.StartDate, d.EndDate, now); err != nil {
			return err
		}
	}

	c.name = d.Name
	c.clientID = d.ClientID
	c.startDate = d.StartDate
	c.endDate = d.EndDate
	c.offer = d.Offer
	c.updatedAt = now
	return nil
}

func validateDetails(d *Details) error {
	name, err := NormalizeName(d.Name)
	if err != nil {
		return err
	}
	d.Name = name
	if d.Offer.Type() == "" {
		return ErrInvalidCouponType
	}
	if d.StartDate != nil && d.EndDate != nil && !d.EndDate.After(*d.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func checkActivationWindow(start, end *time.Time, now time.Time) error {
	if start == nil || end == nil {
		return ErrMissingDates
	}
	if !end.After(*start) {
		return ErrInvalidDateRange
	}
	if end.Before(now) {
		return ErrCampaignExpired
	}
	return nil
}

func (c *Campaign) ID() uuid.UUID         { return c.id }
func (c *Campaign) ClientID() *uuid.UUID  { return c.clientID }
func (c *Campaign) Name() string          { return c.name }
func (c *Campaign) Status() Status        { return c.status }
func (c *Campaign) IsActive() bool        { return c.isActive }
func (c *Campaign) StartDate() *time.Time { return c.startDate }
func (c *Campaign) EndDate() *time.Time   { return c.endDate }
func (c *Campaign) Offer() Offer          { return c.offer }
func (c *Campaign) ScanCount() int64      { return c.scanCount }
func (c *Campaign) CreatedAt() time.Time  { return c.createdAt }
func (c *Campaign) UpdatedAt() time.Time  { return c.updatedAt }
