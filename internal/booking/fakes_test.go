package booking_test

import (
	"context"
	"time"

	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/queue"
)

type customersMock struct {
	ListByIDsFn func(ctx context.Context, ids []string) ([]model.Customer, error)
	GetByIDFn   func(ctx context.Context, id string) (*model.Customer, error)
	UpdateFn    func(ctx context.Context, id, name, contact string, address *string, at time.Time) error
}

func (m *customersMock) ListByIDs(ctx context.Context, ids []string) ([]model.Customer, error) {
	return m.ListByIDsFn(ctx, ids)
}

func (m *customersMock) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *customersMock) Update(ctx context.Context, id, name, contact string, address *string, at time.Time) error {
	return m.UpdateFn(ctx, id, name, contact, address, at)
}

type rentalsMock struct {
	ListFn         func(ctx context.Context) ([]model.Rental, error)
	GetByIDFn      func(ctx context.Context, id string) (*model.Rental, error)
	UpdateStatusFn func(ctx context.Context, id string, status model.Status, at time.Time) error
}

func (m *rentalsMock) ListByRentalDateDesc(ctx context.Context) ([]model.Rental, error) {
	return m.ListFn(ctx)
}

func (m *rentalsMock) GetByID(ctx context.Context, id string) (*model.Rental, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *rentalsMock) UpdateStatus(ctx context.Context, id string, status model.Status, at time.Time) error {
	return m.UpdateStatusFn(ctx, id, status, at)
}

type rentalItemsMock struct {
	ListByRentalIDsFn func(ctx context.Context, ids []string) ([]model.RentalItem, error)
	ListByRentalIDFn  func(ctx context.Context, id string) ([]model.RentalItem, error)
	UpdateQuantityFn  func(ctx context.Context, id string, q int) error
}

func (m *rentalItemsMock) ListByRentalIDs(ctx context.Context, ids []string) ([]model.RentalItem, error) {
	return m.ListByRentalIDsFn(ctx, ids)
}

func (m *rentalItemsMock) ListByRentalID(ctx context.Context, id string) ([]model.RentalItem, error) {
	return m.ListByRentalIDFn(ctx, id)
}

func (m *rentalItemsMock) UpdateQuantity(ctx context.Context, id string, q int) error {
	return m.UpdateQuantityFn(ctx, id, q)
}

type publisherMock struct {
	events []queue.BookingEvent
	err    error
}

func (p *publisherMock) PublishBooking(_ context.Context, ev queue.BookingEvent) error {
	p.events = append(p.events, ev)
	return p.err
}
