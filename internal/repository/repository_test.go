package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/repository"
	"github.com/iliyamo/catering-rentals/internal/repository/repotest"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCustomerRepo_InsertGetUpdate(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewCustomerRepo(db)
	ctx := context.Background()

	addr := "12 MG Road"
	c, err := repo.Insert(ctx, model.Customer{Name: "Asha Rao", ContactNumber: "9990001111", Address: &addr})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, "Asha Rao", c.Name)
	require.Equal(t, "12 MG Road", c.AddressOrEmpty())

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)

	require.NoError(t, repo.Update(ctx, c.ID, "Asha R.", "9990002222", nil, time.Time{}))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Asha R.", got.Name)
	require.Equal(t, "9990002222", got.ContactNumber)
	require.Nil(t, got.Address)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestCustomerRepo_ListByIDsAndOrder(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewCustomerRepo(db)
	ctx := context.Background()

	b, err := repo.Insert(ctx, model.Customer{Name: "Bilal", ContactNumber: "1"})
	require.NoError(t, err)
	a, err := repo.Insert(ctx, model.Customer{Name: "Anita", ContactNumber: "2"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, model.Customer{Name: "Chetan", ContactNumber: "3"})
	require.NoError(t, err)

	all, err := repo.ListOrderedByName(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"Anita", "Bilal", "Chetan"}, []string{all[0].Name, all[1].Name, all[2].Name})

	some, err := repo.ListByIDs(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, some, 2)

	none, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestItemRepo_ListActiveOrdering(t *testing.T) {
	db := repotest.Open(t)
	repotest.SeedItem(t, db, "Plate", "Serving", 5)
	repotest.SeedItem(t, db, "Table", "Furniture", 300)
	repotest.SeedItem(t, db, "Chair", "Furniture", 50)
	hidden := repotest.SeedItem(t, db, "Old Tent", "Furniture", 900)
	_, err := db.Exec("UPDATE items SET is_active = 0 WHERE id = ?", hidden.ID)
	require.NoError(t, err)

	items, err := repository.NewItemRepo(db).ListActive(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	require.Equal(t, []string{"Table", "Chair", "Plate"}, names)
	require.True(t, items[0].Price.Equal(decimal.NewFromInt(300)))

	_, err = repository.NewItemRepo(db).GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestRentalRepo_InsertListUpdate(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewRentalRepo(db)
	ctx := context.Background()

	older, err := repo.Insert(ctx, model.Rental{CustomerID: "c1", RentalDate: date("2024-01-05")})
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, older.Status)
	newer, err := repo.Insert(ctx, model.Rental{CustomerID: "c2", RentalDate: date("2024-01-10")})
	require.NoError(t, err)

	list, err := repo.ListByRentalDateDesc(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, newer.ID, list[0].ID)
	require.Equal(t, older.ID, list[1].ID)

	require.NoError(t, repo.UpdateStatus(ctx, older.ID, model.StatusReturned, time.Time{}))
	ret := date("2024-01-08")
	notes := "deliver by 9am"
	require.NoError(t, repo.UpdateDetails(ctx, older.ID, date("2024-01-06"), &ret, &notes, time.Time{}))

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, got.Status)
	require.Equal(t, "2024-01-06", got.RentalDate.Format("2006-01-02"))
	require.NotNil(t, got.ReturnDate)
	require.Equal(t, "2024-01-08", got.ReturnDate.Format("2006-01-02"))
	require.Equal(t, "deliver by 9am", *got.Notes)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrRentalNotFound)
}

func TestRentalItemRepo_BatchEmbedDeleteUpdate(t *testing.T) {
	db := repotest.Open(t)
	chair := repotest.SeedItem(t, db, "Chair", "Furniture", 50)
	table := repotest.SeedItem(t, db, "Table", "Furniture", 300)
	repo := repository.NewRentalItemRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, []model.RentalItem{
		{RentalID: "r1", ItemID: chair.ID, Quantity: 2, PriceAtBooking: chair.Price},
		{RentalID: "r1", ItemID: table.ID, Quantity: 1, PriceAtBooking: table.Price},
		{RentalID: "r2", ItemID: chair.ID, Quantity: 10, PriceAtBooking: decimal.NewFromInt(45)},
	}))
	require.NoError(t, repo.InsertBatch(ctx, nil))

	both, err := repo.ListByRentalIDs(ctx, []string{"r1", "r2"})
	require.NoError(t, err)
	require.Len(t, both, 3)
	for _, it := range both {
		require.NotNil(t, it.ItemName)
	}

	r1, err := repo.ListByRentalID(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, r1, 2)
	require.True(t, model.SumItems(r1).Equal(decimal.NewFromInt(400)))

	require.NoError(t, repo.UpdateQuantity(ctx, r1[0].ID, 5))
	r1, err = repo.ListByRentalID(ctx, "r1")
	require.NoError(t, err)
	quantities := map[string]int{}
	for _, it := range r1 {
		quantities[it.ItemID] = it.Quantity
	}
	require.Equal(t, 5+1, quantities[chair.ID]+quantities[table.ID])

	require.NoError(t, repo.DeleteByRentalID(ctx, "r1"))
	require.Equal(t, 1, repotest.Count(t, db, "rental_items"))
}
