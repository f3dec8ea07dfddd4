package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/salon-scheduler/internal/storetest"
	ucbooking "github.com/lunanails/salon-scheduler/internal/usecase/booking"
)

func newAvailabilityUC(store *storetest.FakeStore) *ucbooking.GetAvailability {
	listByDay := ucbooking.NewListByDay(store, nil, salonLoc())
	return ucbooking.NewGetAvailability(listByDay, salonLoc(), 11, 20, 15)
}

func TestGetAvailability(t *testing.T) {
	// Fixed clock: noon UTC on Mon 2024-04-29, i.e. 5:00 AM in LA.
	now := time.Date(2024, 4, 29, 12, 0, 0, 0, time.UTC)

	t.Run("renders the full grid with booked slots marked", func(t *testing.T) {
		store := storetest.New()
		user := store.SeedUser("Alice", "alice@example.com")
		tech := store.SeedTech("Mia")
		uc := newAvailabilityUC(store)

		in := baseInput(user.ID) // 2024-05-01 11:00 AM
		in.NailTechID = &tech.ID
		_, err := newCreateUC(store).Execute(context.Background(), in)
		require.NoError(t, err)

		day, err := uc.Execute(context.Background(), "2024-05-01", now)
		require.NoError(t, err)

		assert.False(t, day.Closed)
		require.Len(t, day.Slots, 36)

		assert.Equal(t, "11:00 AM", day.Slots[0].Label)
		assert.True(t, day.Slots[0].Booked)
		assert.Len(t, day.Slots[0].Appointments, 1)

		assert.Equal(t, "11:15 AM", day.Slots[1].Label)
		assert.False(t, day.Slots[1].Booked)
	})

	t.Run("cancelled bookings render but do not mark the slot booked", func(t *testing.T) {
		store := storetest.New()
		user := store.SeedUser("Alice", "alice@example.com")
		uc := newAvailabilityUC(store)

		ap, err := newCreateUC(store).Execute(context.Background(), baseInput(user.ID))
		require.NoError(t, err)
		_, err = newSetStatusUC(store, false).Execute(context.Background(), user.ID, ap.ID, "cancelled")
		require.NoError(t, err)

		day, err := uc.Execute(context.Background(), "2024-05-01", now)
		require.NoError(t, err)

		assert.False(t, day.Slots[0].Booked)
		assert.Len(t, day.Slots[0].Appointments, 1)
	})

	t.Run("tuesdays are closed", func(t *testing.T) {
		store := storetest.New()
		uc := newAvailabilityUC(store)

		day, err := uc.Execute(context.Background(), "2024-04-30", now)
		require.NoError(t, err)

		assert.True(t, day.Closed)
		assert.Empty(t, day.Slots)
	})

	t.Run("past days are closed", func(t *testing.T) {
		store := storetest.New()
		uc := newAvailabilityUC(store)

		day, err := uc.Execute(context.Background(), "2024-04-28", now)
		require.NoError(t, err)

		assert.True(t, day.Closed)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		store := storetest.New()
		uc := newAvailabilityUC(store)

		_, err := uc.Execute(context.Background(), "05/01/2024", now)
		assert.Error(t, err)
	})
}

func TestListByDayOrdering(t *testing.T) {
	store := storetest.New()
	user := store.SeedUser("Alice", "alice@example.com")
	createUC := newCreateUC(store)

	for _, label := range []string{"3:00 PM", "11:00 AM", "1:15 PM"} {
		in := baseInput(user.ID)
		in.Time = label
		_, err := createUC.Execute(context.Background(), in)
		require.NoError(t, err)
	}

	listByDay := ucbooking.NewListByDay(store, nil, salonLoc())
	apps, err := listByDay.Execute(context.Background(), "2024-05-01")
	require.NoError(t, err)

	require.Len(t, apps, 3)
	assert.True(t, apps[0].StartTime.Before(apps[1].StartTime))
	assert.True(t, apps[1].StartTime.Before(apps[2].StartTime))
}

func TestListByOwnerOrdering(t *testing.T) {
	store := storetest.New()
	alice := store.SeedUser("Alice", "alice@example.com")
	bob := store.SeedUser("Bob", "bob@example.com")
	createUC := newCreateUC(store)

	for _, label := range []string{"11:00 AM", "2:00 PM"} {
		in := baseInput(alice.ID)
		in.Time = label
		_, err := createUC.Execute(context.Background(), in)
		require.NoError(t, err)
	}
	_, err := createUC.Execute(context.Background(), baseInput(bob.ID))
	require.NoError(t, err)

	apps, err := ucbooking.NewListByOwner(store).Execute(context.Background(), alice.ID)
	require.NoError(t, err)

	require.Len(t, apps, 2)
	assert.True(t, apps[0].StartTime.After(apps[1].StartTime))
}
