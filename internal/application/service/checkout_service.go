package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CheckoutService turns the open cart into a committed sale and mirrors it
// to the configured sinks
type CheckoutService struct {
	register    *Register
	cartRepo    repository.CartRepository
	draftRepo   repository.DraftRepository
	catalogRepo repository.CatalogRepository
	committer   repository.CheckoutCommitter
	webhook     repository.SaleSink
	cloud       repository.DocumentStore
	now         func() time.Time

	mu       sync.RWMutex
	state    enum.CheckoutState
	lastSale *entity.Sale

	inflight sync.WaitGroup
	pending  atomic.Int64
}

// NewCheckoutService creates a new checkout coordinator
func NewCheckoutService(
	register *Register,
	cartRepo repository.CartRepository,
	draftRepo repository.DraftRepository,
	catalogRepo repository.CatalogRepository,
	committer repository.CheckoutCommitter,
	webhook repository.SaleSink,
	cloud repository.DocumentStore,
	loc *time.Location,
) *CheckoutService {
	if loc == nil {
		loc = time.Local
	}
	return &CheckoutService{
		register:    register,
		cartRepo:    cartRepo,
		draftRepo:   draftRepo,
		catalogRepo: catalogRepo,
		committer:   committer,
		webhook:     webhook,
		cloud:       cloud,
		now:         func() time.Time { return time.Now().In(loc) },
	}
}

// CheckoutInput holds the optional sale metadata supplied at checkout
type CheckoutInput struct {
	Timestamp     *time.Time
	InvoiceNumber string
	Discount      *decimal.Decimal
	Payment       *entity.Payment
	Customer      *entity.Customer
}

// MarkPaidInput is the payment chosen in the payment dialog
type MarkPaidInput struct {
	Method    enum.PaymentMethod
	Reference string
	CheckoutInput
}

// Checkout validates the session and cart, commits the sale locally and
// starts replication. It returns once the local commit is durable.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	if input == nil {
		input = &CheckoutInput{}
	}

	var sale *entity.Sale
	err := s.register.Do(func() error {
		s.transition(enum.CheckoutStateValidating)
		if _, ok := SessionFromContext(ctx); !ok {
			s.transition(enum.CheckoutStateRejected)
			return apperror.ErrAuthRequired
		}

		cart, err := s.cartRepo.Load(ctx)
		if err != nil {
			s.transition(enum.CheckoutStateRejected)
			return err
		}
		if cart.IsEmpty() {
			s.transition(enum.CheckoutStateRejected)
			return apperror.ErrEmptyCart
		}

		items, err := s.catalogRepo.List(ctx)
		if err != nil {
			s.transition(enum.CheckoutStateRejected)
			return err
		}
		draft, err := s.draftRepo.Get(ctx)
		if err != nil {
			s.transition(enum.CheckoutStateRejected)
			return err
		}

		meta := SaleMeta{
			Timestamp:     input.Timestamp,
			InvoiceNumber: input.InvoiceNumber,
			Discount:      input.Discount,
			Payment:       input.Payment,
			Customer:      input.Customer,
		}.WithDraft(draft)

		built, err := BuildSale(cart.Lines, entity.IndexCatalog(items), meta, s.now())
		if err != nil {
			s.transition(enum.CheckoutStateRejected)
			return err
		}

		s.transition(enum.CheckoutStateCommitting)
		if err := s.committer.Commit(ctx, built); err != nil {
			// the commit is all or nothing, so local state is unchanged
			s.forceState(enum.CheckoutStateIdle)
			return err
		}

		s.mu.Lock()
		s.lastSale = built
		s.mu.Unlock()
		sale = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[checkout] committed sale %s (%s) total %s", sale.ID, sale.InvoiceNumber, sale.Total().StringFixed(2))

	s.transition(enum.CheckoutStateReplicating)
	s.replicate(context.WithoutCancel(ctx), sale)
	return sale, nil
}

// MarkPaid checks out with the chosen payment. A blank reference is
// recorded as "-".
func (s *CheckoutService) MarkPaid(ctx context.Context, input *MarkPaidInput) (*entity.Sale, error) {
	ref := strings.TrimSpace(input.Reference)
	if ref == "" {
		ref = "-"
	}
	checkout := input.CheckoutInput
	checkout.Payment = &entity.Payment{Method: input.Method, Reference: ref}
	return s.Checkout(ctx, &checkout)
}

// replicate launches the webhook push and the cloud push. Neither blocks
// the caller and neither can undo the local commit.
func (s *CheckoutService) replicate(ctx context.Context, sale *entity.Sale) {
	var tasks sync.WaitGroup
	tasks.Add(2)
	s.inflight.Add(1)
	s.pending.Add(1)

	go func() {
		defer tasks.Done()
		if err := s.webhook.PushSale(ctx, sale); err != nil {
			log.Printf("[checkout] %v", err)
		}
	}()

	go func() {
		defer tasks.Done()
		s.pushToCloud(ctx, sale)
	}()

	go func() {
		defer s.inflight.Done()
		tasks.Wait()
		s.pending.Add(-1)
		s.finish()
	}()
}

// pushToCloud appends the sale and then pushes every changed stock value
// in parallel. The stock pushes run even when the append failed.
func (s *CheckoutService) pushToCloud(ctx context.Context, sale *entity.Sale) {
	if err := s.cloud.AppendSale(ctx, sale); err != nil {
		log.Printf("[checkout] %v", replicationError(s.cloud.Name(), "append sale "+sale.ID, err))
	}

	var g errgroup.Group
	for id, stock := range sale.StockChanges() {
		id, stock := id, stock
		g.Go(func() error {
			if err := s.cloud.UpdateItemStock(ctx, id, stock); err != nil {
				log.Printf("[checkout] %v", replicationError(s.cloud.Name(), "update stock "+id, err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Wait blocks until every replication task started so far has finished
func (s *CheckoutService) Wait() {
	s.inflight.Wait()
}

// WaitContext is Wait bounded by ctx. It returns ctx.Err() when ctx ends
// first; the unfinished replications keep running in the background.
func (s *CheckoutService) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many sales are still replicating
func (s *CheckoutService) Pending() int {
	return int(s.pending.Load())
}

// State reports where the coordinator is in the checkout lifecycle
func (s *CheckoutService) State() enum.CheckoutState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastSale returns the most recently committed sale, or nil
func (s *CheckoutService) LastSale() *entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSale
}

// transition moves to next. A new checkout may start from any terminal
// state, which resets the lifecycle to Idle first.
func (s *CheckoutService) transition(next enum.CheckoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.state
	if current == enum.CheckoutStateDone || current == enum.CheckoutStateRejected ||
		(current == enum.CheckoutStateReplicating && next == enum.CheckoutStateValidating) {
		current = enum.CheckoutStateIdle
	}
	if !current.CanTransition(next) {
		log.Printf("[checkout] ignoring transition %s -> %s", s.state, next)
		return
	}
	s.state = next
}

// finish marks replication done unless a newer checkout has already
// moved the coordinator on
func (s *CheckoutService) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == enum.CheckoutStateReplicating {
		s.state = enum.CheckoutStateDone
	}
}

func (s *CheckoutService) forceState(state enum.CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func replicationError(sink, op string, err error) error {
	var re *apperror.ReplicationError
	if errors.As(err, &re) {
		return re
	}
	return &apperror.ReplicationError{Sink: sink, Op: op, Err: err}
}
