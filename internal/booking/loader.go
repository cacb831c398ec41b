package booking

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/catering-rentals/internal/model"
)

// Customers is the part of the customer gateway used by this package.
type Customers interface {
	ListByIDs(ctx context.Context, ids []string) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Update(ctx context.Context, id, name, contact string, address *string, at time.Time) error
}

// Rentals is the part of the rental gateway used by this package.
type Rentals interface {
	ListByRentalDateDesc(ctx context.Context) ([]model.Rental, error)
	GetByID(ctx context.Context, id string) (*model.Rental, error)
	UpdateStatus(ctx context.Context, id string, status model.Status, at time.Time) error
}

// RentalItems is the part of the rental item gateway used by this package.
type RentalItems interface {
	ListByRentalIDs(ctx context.Context, rentalIDs []string) ([]model.RentalItem, error)
	ListByRentalID(ctx context.Context, rentalID string) ([]model.RentalItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
}

// Loader builds booking views from the gateway.  Related rows are fetched
// in batches so a list load costs three round trips no matter how many
// rentals there are.
type Loader struct {
	Customers Customers
	Rentals   Rentals
	Items     RentalItems
	Log       *slog.Logger
}

// NewLoader constructs a Loader.  A nil logger falls back to slog.Default.
func NewLoader(c Customers, r Rentals, i RentalItems, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{Customers: c, Rentals: r, Items: i, Log: log}
}

// List loads every booking ordered by rental date, newest first.  Rentals
// whose customer row is missing are silently excluded.
func (l *Loader) List(ctx context.Context) ([]model.BookingWithDetails, error) {
	rentals, err := l.Rentals.ListByRentalDateDesc(ctx)
	if err != nil {
		l.Log.Error("load rentals", "err", err)
		return nil, err
	}
	if len(rentals) == 0 {
		return []model.BookingWithDetails{}, nil
	}

	var (
		customers []model.Customer
		items     []model.RentalItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = l.Customers.ListByIDs(gctx, distinctCustomerIDs(rentals))
		return err
	})
	g.Go(func() error {
		var err error
		items, err = l.Items.ListByRentalIDs(gctx, rentalIDs(rentals))
		return err
	})
	if err := g.Wait(); err != nil {
		l.Log.Error("load booking details", "err", err)
		return nil, err
	}

	out := Aggregate(rentals, customers, items)
	if dropped := len(rentals) - len(out); dropped > 0 {
		l.Log.Warn("rentals without customer excluded", "count", dropped)
	}
	return out, nil
}

// Get loads one booking.  The rental and its items are fetched together;
// the customer is fetched afterwards because its id comes from the
// rental.  A missing rental or customer is reported as
// repository.ErrRentalNotFound or repository.ErrCustomerNotFound.
func (l *Loader) Get(ctx context.Context, id string) (*model.BookingWithDetails, error) {
	var (
		rental *model.Rental
		items  []model.RentalItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rental, err = l.Rentals.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = l.Items.ListByRentalID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		l.Log.Error("load booking", "rental_id", id, "err", err)
		return nil, err
	}

	customer, err := l.Customers.GetByID(ctx, rental.CustomerID)
	if err != nil {
		l.Log.Error("load booking customer", "rental_id", id, "customer_id", rental.CustomerID, "err", err)
		return nil, err
	}
	if items == nil {
		items = []model.RentalItem{}
	}
	return &model.BookingWithDetails{Rental: *rental, Customer: *customer, Items: items}, nil
}
