//go:build unit

// Package memuow is an in-memory shared.UnitOfWork. Transactions are serialized and
// work on a copy of the state that is swapped in on commit, so a failed callback
// leaves nothing behind. Conditional updates and unique constraints behave like
// the Postgres schema.
//
// Like Postgres, a failed write statement aborts the transaction: later writes fail
// and the commit rolls back even if the callback swallowed the error. Row locks are
// not modelled; transactions never overlap here, so lock waits cannot be observed.
package memuow

import (
	"context"
	"sync"
	"time"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/repository"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const constraintCouponBottle = "coupons_bottle_id_key"

type Store struct {
	mu    sync.Mutex
	state *state

	// Fault injection, read while the transaction lock is held
	FailCouponInsert     error
	FailRedemptionRecord error
	FailScanIncrement    error
	// SkipAdvisoryCheck makes CouponExistsForUserCampaign always report false so the unique constraint decides
	SkipAdvisoryCheck bool
	// StaleStatusCAS simulates a concurrent status change between read and write
	StaleStatusCAS bool
	// CollideNext makes InsertTokens skip that many of the next tokens as if another campaign held them
	CollideNext int
	// BeforeTx runs before each transaction takes the lock; tests use it to interleave a concurrent writer
	BeforeTx func(s *Store)

	commits   int
	rollbacks int
}

type couponKey struct {
	userID     uuid.UUID
	campaignID uuid.UUID
}

type state struct {
	campaigns   map[uuid.UUID]*campaign.Campaign
	bottles     map[uuid.UUID]bottle.Bottle
	tokens      map[string]uuid.UUID
	users       map[string]uuid.UUID
	names       map[uuid.UUID]string
	coupons     map[uuid.UUID]*coupon.Coupon
	codes       map[coupon.Code]uuid.UUID
	userCamp    map[couponKey]uuid.UUID
	byBottle    map[uuid.UUID]uuid.UUID
	redemptions map[uuid.UUID]time.Time
}

func New() *Store {
	return &Store{
		state: &state{
			campaigns:   map[uuid.UUID]*campaign.Campaign{},
			bottles:     map[uuid.UUID]bottle.Bottle{},
			tokens:      map[string]uuid.UUID{},
			users:       map[string]uuid.UUID{},
			names:       map[uuid.UUID]string{},
			coupons:     map[uuid.UUID]*coupon.Coupon{},
			codes:       map[coupon.Code]uuid.UUID{},
			userCamp:    map[couponKey]uuid.UUID{},
			byBottle:    map[uuid.UUID]uuid.UUID{},
			redemptions: map[uuid.UUID]time.Time{},
		},
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if hook := s.BeforeTx; hook != nil {
		hook(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	tx := &memTx{store: s, st: work}
	err := fn(ctx, tx)
	if err == nil && tx.aborted != nil {
		err = errs.Wrapf(pgx.ErrTxCommitRollback, "statement failed earlier: %v", tx.aborted)
	}
	if err != nil {
		s.rollbacks++
		return err
	}
	s.state = work
	s.commits++
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{store: s}
}

func (st *state) clone() *state {
	c := &state{
		campaigns:   make(map[uuid.UUID]*campaign.Campaign, len(st.campaigns)),
		bottles:     make(map[uuid.UUID]bottle.Bottle, len(st.bottles)),
		tokens:      make(map[string]uuid.UUID, len(st.tokens)),
		users:       make(map[string]uuid.UUID, len(st.users)),
		names:       make(map[uuid.UUID]string, len(st.names)),
		coupons:     make(map[uuid.UUID]*coupon.Coupon, len(st.coupons)),
		codes:       make(map[coupon.Code]uuid.UUID, len(st.codes)),
		userCamp:    make(map[couponKey]uuid.UUID, len(st.userCamp)),
		byBottle:    make(map[uuid.UUID]uuid.UUID, len(st.byBottle)),
		redemptions: make(map[uuid.UUID]time.Time, len(st.redemptions)),
	}
	for k, v := range st.campaigns {
		c.campaigns[k] = cloneCampaign(v, v.ScanCount())
	}
	for k, v := range st.bottles {
		c.bottles[k] = v
	}
	for k, v := range st.tokens {
		c.tokens[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.names {
		c.names[k] = v
	}
	for k, v := range st.coupons {
		c.coupons[k] = cloneCoupon(v)
	}
	for k, v := range st.codes {
		c.codes[k] = v
	}
	for k, v := range st.userCamp {
		c.userCamp[k] = v
	}
	for k, v := range st.byBottle {
		c.byBottle[k] = v
	}
	for k, v := range st.redemptions {
		c.redemptions[k] = v
	}
	return c
}

func cloneCampaign(c *campaign.Campaign, scanCount int64) *campaign.Campaign {
	return campaign.Reconstruct(c.ID(), c.ClientID(), c.Name(), c.Status(), c.IsActive(),
		c.StartDate(), c.EndDate(), c.Offer(), scanCount, c.CreatedAt(), c.UpdatedAt())
}

func cloneCoupon(c *coupon.Coupon) *coupon.Coupon {
	return coupon.Reconstruct(c.ID(), c.Code(), c.BottleID(), c.CampaignID(), c.UserID(),
		c.Status(), c.GeneratedAt(), c.RedeemedAt())
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func violation(msg, code, constraint string) error {
	return infra.WrapRepoErr(msg, &pgconn.PgError{Code: code, ConstraintName: constraint})
}

// ---- seeding and inspection ----

func (s *Store) AddCampaign(c *campaign.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.campaigns[c.ID()] = cloneCampaign(c, c.ScanCount())
}

func (s *Store) AddBottle(campaignID uuid.UUID, token string) bottle.Bottle {
	return s.AddBottleWithStatus(campaignID, token, bottle.StatusUnused)
}

func (s *Store) AddBottleWithStatus(campaignID uuid.UUID, token string, status bottle.Status) bottle.Bottle {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := bottle.Bottle{ID: uuid.New(), CampaignID: campaignID, Token: token, Status: status}
	s.state.bottles[b.ID] = b
	s.state.tokens[token] = b.ID
	return b
}

func (s *Store) AddUser(phone consumer.Phone, name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.users[phone.String()] = id
	s.state.names[id] = name
	return id
}

func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.putCoupon(cloneCoupon(c))
}

func (s *Store) AddRedemption(couponID uuid.UUID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.redemptions[couponID] = at
}

func (s *Store) Campaign(id uuid.UUID) *campaign.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.state.campaigns[id]
	if !ok {
		return nil
	}
	return cloneCampaign(c, c.ScanCount())
}

func (s *Store) Bottle(id uuid.UUID) bottle.Bottle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.bottles[id]
}

func (s *Store) BottlesForCampaign(campaignID uuid.UUID) []bottle.Bottle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []bottle.Bottle
	for _, b := range s.state.bottles {
		if b.CampaignID == campaignID {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) CouponsForCampaign(campaignID uuid.UUID) []*coupon.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*coupon.Coupon
	for _, c := range s.state.coupons {
		if c.CampaignID() == campaignID {
			out = append(out, cloneCoupon(c))
		}
	}
	return out
}

func (s *Store) Coupon(id uuid.UUID) *coupon.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.state.coupons[id]
	if !ok {
		return nil
	}
	return cloneCoupon(c)
}

func (s *Store) UserID(phone string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.state.users[phone]
	return id, ok
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.users)
}

func (s *Store) RedemptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.redemptions)
}

func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

func (st *state) putCoupon(c *coupon.Coupon) {
	st.coupons[c.ID()] = c
	st.codes[c.Code()] = c.ID()
	st.userCamp[couponKey{userID: c.UserID(), campaignID: c.CampaignID()}] = c.ID()
	st.byBottle[c.BottleID()] = c.ID()
}

// ---- transaction ----

type memTx struct {
	store *Store
	st    *state

	aborted error
}

var errTxAborted = errs.New("current transaction is aborted, commands ignored until end of transaction block")

// fail records the first failed statement; the transaction can no longer commit
func (t *memTx) fail(err error) error {
	if t.aborted == nil {
		t.aborted = err
	}
	return err
}

func (t *memTx) check() error {
	if t.aborted != nil {
		return infra.WrapRepoErr("transaction aborted", errTxAborted)
	}
	return nil
}

func (t *memTx) Campaigns() shared.CampaignRepository     { return &campaignRepo{t} }
func (t *memTx) Bottles() shared.BottleRepository         { return &bottleRepo{t} }
func (t *memTx) Consumers() shared.ConsumerRepository     { return &consumerRepo{t} }
func (t *memTx) Coupons() shared.CouponRepository         { return &couponRepo{t} }
func (t *memTx) Redemptions() shared.RedemptionRepository { return &redemptionRepo{t} }
func (t *memTx) Reads() shared.CommandReads               { return &reads{store: t.store, st: t.st} }

type campaignRepo struct{ tx *memTx }

func (r *campaignRepo) Create(_ context.Context, c *campaign.Campaign) error {
	if err := r.tx.check(); err != nil {
		return err
	}
	if _, ok := r.tx.st.campaigns[c.ID()]; ok {
		return r.tx.fail(violation("failed to create campaign", pgconv.PgCodeUniqueViolation, "campaigns_pkey"))
	}
	r.tx.st.campaigns[c.ID()] = cloneCampaign(c, 0)
	return nil
}

func (r *campaignRepo) UpdateDetails(_ context.Context, c *campaign.Campaign) error {
	if err := r.tx.check(); err != nil {
		return err
	}
	stored, ok := r.tx.st.campaigns[c.ID()]
	if !ok {
		return notFound("campaign not found")
	}
	r.tx.st.campaigns[c.ID()] = campaign.Reconstruct(c.ID(), c.ClientID(), c.Name(), stored.Status(), stored.IsActive(),
		c.StartDate(), c.EndDate(), c.Offer(), stored.ScanCount(), stored.CreatedAt(), c.UpdatedAt())
	return nil
}

func (r *campaignRepo) ChangeStatus(_ context.Context, c *campaign.Campaign, from campaign.Status) (bool, error) {
	if err := r.tx.check(); err != nil {
		return false, err
	}
	stored, ok := r.tx.st.campaigns[c.ID()]
	if !ok || stored.Status() != from || r.tx.store.StaleStatusCAS {
		return false, nil
	}
	r.tx.st.campaigns[c.ID()] = campaign.Reconstruct(c.ID(), stored.ClientID(), stored.Name(), c.Status(), c.IsActive(),
		stored.StartDate(), stored.EndDate(), stored.Offer(), stored.ScanCount(), stored.CreatedAt(), c.UpdatedAt())
	return true, nil
}

func (r *campaignRepo) LockForRedemption(_ context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	if err := r.tx.check(); err != nil {
		return nil, err
	}
	c, ok := r.tx.st.campaigns[id]
	if !ok {
		return nil, notFound("campaign not found")
	}
	return cloneCampaign(c, c.ScanCount()), nil
}

func (r *campaignRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if err := r.tx.check(); err != nil {
		return false, err
	}
	st := r.tx.st
	if _, ok := st.campaigns[id]; !ok {
		return false, nil
	}
	delete(st.campaigns, id)
	for bid, b := range st.bottles {
		if b.CampaignID == id {
			delete(st.bottles, bid)
			delete(st.tokens, b.Token)
			delete(st.byBottle, bid)
		}
	}
	for cid, c := range st.coupons {
		if c.CampaignID() == id {
			delete(st.coupons, cid)
			delete(st.codes, c.Code())
			delete(st.userCamp, couponKey{userID: c.UserID(), campaignID: id})
			delete(st.redemptions, cid)
		}
	}
	return true, nil
}

func (r *campaignRepo) IncrementScanCount(_ context.Context, id uuid.UUID) error {
	if err := r.tx.check(); err != nil {
		return err
	}
	if err := r.tx.store.FailScanIncrement; err != nil {
		return r.tx.fail(infra.WrapRepoErr("failed to increment scan count", err))
	}
	if c, ok := r.tx.st.campaigns[id]; ok {
		r.tx.st.campaigns[id] = cloneCampaign(c, c.ScanCount()+1)
	}
	return nil
}

type bottleRepo struct{ tx *memTx }

func (r *bottleRepo) Claim(_ context.Context, id uuid.UUID, scannedAt time.Time) (bool, error) {
	if err := r.tx.check(); err != nil {
		return false, err
	}
	b, ok := r.tx.st.bottles[id]
	if !ok || b.Status != bottle.StatusUnused {
		return false, nil
	}
	b.Status = bottle.StatusUsed
	b.ScannedAt = &scannedAt
	r.tx.st.bottles[id] = b
	return true, nil
}

func (r *bottleRepo) InsertTokens(_ context.Context, campaignID uuid.UUID, tokens []string) (int64, error) {
	if err := r.tx.check(); err != nil {
		return 0, err
	}
	st := r.tx.st
	if _, ok := st.campaigns[campaignID]; !ok {
		return 0, r.tx.fail(violation("failed to insert bottle tokens", pgconv.PgCodeForeignKeyViolation, "bottles_campaign_id_fkey"))
	}
	var n int64
	for _, t := range tokens {
		if _, taken := st.tokens[t]; taken {
			continue
		}
		if r.tx.store.CollideNext > 0 {
			r.tx.store.CollideNext--
			continue
		}
		b := bottle.Bottle{ID: uuid.New(), CampaignID: campaignID, Token: t, Status: bottle.StatusUnused}
		st.bottles[b.ID] = b
		st.tokens[t] = b.ID
		n++
	}
	return n, nil
}

type consumerRepo struct{ tx *memTx }

func (r *consumerRepo) UpsertByPhone(_ context.Context, phone consumer.Phone, name string) (uuid.UUID, error) {
	if err := r.tx.check(); err != nil {
		return uuid.Nil, err
	}
	st := r.tx.st
	if id, ok := st.users[phone.String()]; ok {
		return id, nil
	}
	id := uuid.New()
	st.users[phone.String()] = id
	st.names[id] = name
	return id, nil
}

type couponRepo struct{ tx *memTx }

func (r *couponRepo) Insert(_ context.Context, c *coupon.Coupon) (bool, error) {
	if err := r.tx.check(); err != nil {
		return false, err
	}
	st := r.tx.st
	if err := r.tx.store.FailCouponInsert; err != nil {
		return false, r.tx.fail(infra.WrapRepoErr("failed to insert coupon", err))
	}
	if _, ok := st.codes[c.Code()]; ok {
		return false, nil
	}
	if _, ok := st.userCamp[couponKey{userID: c.UserID(), campaignID: c.CampaignID()}]; ok {
		return false, r.tx.fail(violation("failed to insert coupon", pgconv.PgCodeUniqueViolation, repository.ConstraintCouponUserCampaign))
	}
	if _, ok := st.byBottle[c.BottleID()]; ok {
		return false, r.tx.fail(violation("failed to insert coupon", pgconv.PgCodeUniqueViolation, constraintCouponBottle))
	}
	st.putCoupon(cloneCoupon(c))
	return true, nil
}

func (r *couponRepo) MarkRedeemed(_ context.Context, id uuid.UUID, redeemedAt time.Time) (bool, error) {
	if err := r.tx.check(); err != nil {
		return false, err
	}
	c, ok := r.tx.st.coupons[id]
	if !ok || c.Status() != coupon.StatusActive {
		return false, nil
	}
	r.tx.st.coupons[id] = coupon.Reconstruct(c.ID(), c.Code(), c.BottleID(), c.CampaignID(), c.UserID(),
		coupon.StatusRedeemed, c.GeneratedAt(), &redeemedAt)
	return true, nil
}

type redemptionRepo struct{ tx *memTx }

func (r *redemptionRepo) Record(_ context.Context, couponID uuid.UUID, redeemedAt time.Time) error {
	if err := r.tx.check(); err != nil {
		return err
	}
	if err := r.tx.store.FailRedemptionRecord; err != nil {
		return r.tx.fail(infra.WrapRepoErr("failed to record redemption", err))
	}
	if _, ok := r.tx.st.redemptions[couponID]; ok {
		return r.tx.fail(violation("failed to record redemption", pgconv.PgCodeUniqueViolation, "redemptions_coupon_id_key"))
	}
	r.tx.st.redemptions[couponID] = redeemedAt
	return nil
}

// ---- reads ----

type reads struct {
	store *Store
	st    *state
}

func (r *reads) CampaignByID(_ context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	c, ok := r.st.campaigns[id]
	if !ok {
		return nil, notFound("campaign not found")
	}
	return cloneCampaign(c, c.ScanCount()), nil
}

func (r *reads) BottleByToken(_ context.Context, token string) (*bottle.Bottle, error) {
	id, ok := r.st.tokens[token]
	if !ok {
		return nil, notFound("bottle not found")
	}
	b := r.st.bottles[id]
	return &b, nil
}

func (r *reads) BottleHasRedemption(_ context.Context, bottleID uuid.UUID) (bool, error) {
	cid, ok := r.st.byBottle[bottleID]
	if !ok {
		return false, nil
	}
	_, redeemed := r.st.redemptions[cid]
	return redeemed, nil
}

func (r *reads) CouponByCode(_ context.Context, code coupon.Code) (*coupon.Coupon, error) {
	id, ok := r.st.codes[code]
	if !ok {
		return nil, notFound("coupon not found")
	}
	return cloneCoupon(r.st.coupons[id]), nil
}

func (r *reads) CouponExistsForUserCampaign(_ context.Context, userID, campaignID uuid.UUID) (bool, error) {
	if r.store.SkipAdvisoryCheck {
		return false, nil
	}
	_, ok := r.st.userCamp[couponKey{userID: userID, campaignID: campaignID}]
	return ok, nil
}

// lockedReads serves reads outside a transaction against the committed state
type lockedReads struct {
	store *Store
}

func (l *lockedReads) with() *reads {
	return &reads{store: l.store, st: l.store.state}
}

func (l *lockedReads) CampaignByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.with().CampaignByID(ctx, id)
}

func (l *lockedReads) BottleByToken(ctx context.Context, token string) (*bottle.Bottle, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.with().BottleByToken(ctx, token)
}

func (l *lockedReads) BottleHasRedemption(ctx context.Context, bottleID uuid.UUID) (bool, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.with().BottleHasRedemption(ctx, bottleID)
}

func (l *lockedReads) CouponByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.with().CouponByCode(ctx, code)
}

func (l *lockedReads) CouponExistsForUserCampaign(ctx context.Context, userID, campaignID uuid.UUID) (bool, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.with().CouponExistsForUserCampaign(ctx, userID, campaignID)
}
