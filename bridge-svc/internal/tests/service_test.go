package tests

import (
	"context"
	"errors"
	"testing"

	"menu-bridge/bridge-svc/internal/domain"
	"menu-bridge/bridge-svc/internal/mocks"
	"menu-bridge/bridge-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.CartItem
		expected float64
	}{
		{
			name:     "string price and missing qty",
			items:    []domain.CartItem{{Price: "10", Qty: 2}, {Price: 5}},
			expected: 25,
		},
		{
			name:     "no items",
			items:    nil,
			expected: 0,
		},
		{
			name:     "missing and invalid price count as zero",
			items:    []domain.CartItem{{Qty: 3}, {Price: "abc", Qty: 1}, {Price: 4.5, Qty: "2"}},
			expected: 9,
		},
		{
			name:     "zero qty counts as one",
			items:    []domain.CartItem{{Price: 7, Qty: 0}},
			expected: 7,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, service.OrderTotal(testCase.items))
		})
	}
}

func TestBridge_SyncPublicCatalog(t *testing.T) {
	ctx := context.Background()
	remote := mocks.NewRemoteStore(t)
	mirror, _ := setupMirror(t)
	bridge := service.NewBridge(remote, nil, mirror, nil)

	categories := []domain.Row{{"id": int64(1), "name": "Drinks", "sort": int64(1)}}
	remote.On("Select", mock.Anything, domain.Query{Table: "categories", Order: domain.Asc("sort")}).
		Return(categories, nil).Once()
	remote.On("Select", mock.Anything, mock.MatchedBy(func(q domain.Query) bool {
		return q.Table == "menu_items" &&
			len(q.Filters) == 1 && q.Filters[0] == domain.Eq("available", true) &&
			q.Order != nil && q.Order.Column == "created_at" && !q.Order.Ascending
	})).Return([]domain.Row{
		{"id": int64(5), "name": "Tea", "desc": "Mint", "price": "12.50", "img": "tea.png", "cat_id": int64(1),
			"available": true, "fresh": true, "rating_avg": nil, "rating_count": "3"},
	}, nil).Once()

	snapshot, err := bridge.SyncPublicCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)

	item := snapshot.Items[0]
	assert.Equal(t, int64(5), item.ID)
	assert.Equal(t, "Mint", item.Desc)
	assert.Equal(t, 12.5, item.Price)
	assert.Equal(t, int64(1), item.CatID)
	assert.True(t, item.Fresh)
	assert.Equal(t, domain.RatingSummary{Avg: 0, Count: 3}, item.Rating)

	assert.Equal(t, snapshot.Items, readMirror[[]domain.MenuItem](t, mirror, domain.KeyMenuItems))
	cached := readMirror[[]domain.Row](t, mirror, domain.KeyCategories)
	require.Len(t, cached, 1)
	assert.Equal(t, "Drinks", cached[0]["name"])
}

func TestBridge_SyncPublicCatalog_NoWriteOnError(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(remote *mocks.RemoteStore)
		failedTable  string
	}{
		{
			name: "categories_error",
			prepareMocks: func(remote *mocks.RemoteStore) {
				remote.On("Select", mock.Anything, table("categories")).
					Return(nil, errors.New("permission denied")).Once()
			},
			failedTable: "categories",
		},
		{
			name: "menu_items_error",
			prepareMocks: func(remote *mocks.RemoteStore) {
				remote.On("Select", mock.Anything, table("categories")).
					Return([]domain.Row{{"id": int64(9)}}, nil).Once()
				remote.On("Select", mock.Anything, table("menu_items")).
					Return(nil, errors.New("network down")).Once()
			},
			failedTable: "menu_items",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			remote := mocks.NewRemoteStore(t)
			mirror, _ := setupMirror(t)
			previousItems := []domain.MenuItem{{ID: 1, Name: "Old"}}
			seedMirror(t, mirror, domain.KeyMenuItems, previousItems)
			seedMirror(t, mirror, domain.KeyCategories, []domain.Row{{"id": "old"}})
			testCase.prepareMocks(remote)

			bridge := service.NewBridge(remote, nil, mirror, nil)
			snapshot, err := bridge.SyncPublicCatalog(context.Background())

			assert.Nil(t, snapshot)
			var remoteErr *service.RemoteQueryError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, testCase.failedTable, remoteErr.Table)
			assert.Equal(t, previousItems, readMirror[[]domain.MenuItem](t, mirror, domain.KeyMenuItems))
			assert.Equal(t, "old", readMirror[[]domain.Row](t, mirror, domain.KeyCategories)[0]["id"])
		})
	}
}

func TestBridge_CreateOrder(t *testing.T) {
	ctx := context.Background()
	remote := mocks.NewRemoteStore(t)
	publisher := mocks.NewEventPublisher(t)
	mirror, _ := setupMirror(t)
	seedMirror(t, mirror, domain.KeyOrders, []domain.OrderSummary{{ID: 7, Total: 3}})

	bridge := service.NewBridge(remote, nil, mirror, publisher)

	input := domain.OrderInput{
		OrderName: "Sara",
		Phone:     "0500000000",
		TableNo:   "4",
		Notes:     "no sugar",
		Items: []domain.CartItem{
			{ID: int64Ptr(11), Name: "Tea", Price: "10", Qty: 2},
			{Name: "Cake", Price: 5},
		},
	}
	order := domain.Row{"id": int64(42), "order_name": "Sara", "total": "25"}

	remote.On("Insert", mock.Anything, "orders", mock.MatchedBy(func(rows []domain.Row) bool {
		return len(rows) == 1 && rows[0]["total"] == float64(25) && rows[0]["table_no"] == "4"
	})).Return([]domain.Row{order}, nil).Once()
	remote.On("Insert", mock.Anything, "order_items", mock.MatchedBy(func(rows []domain.Row) bool {
		return len(rows) == 2 &&
			rows[0]["order_id"] == int64(42) && rows[0]["item_id"] == int64(11) && rows[0]["qty"] == float64(2) &&
			rows[1]["item_id"] == nil && rows[1]["price"] == float64(5) && rows[1]["qty"] == float64(1)
	})).Return([]domain.Row{}, nil).Once()
	publisher.On("Publish", mock.Anything, eventType(domain.EventOrderCreated)).Return(nil).Once()

	created, err := bridge.CreateOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, order, created)

	orders := readMirror[[]domain.OrderSummary](t, mirror, domain.KeyOrders)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(42), orders[0].ID)
	assert.Equal(t, float64(25), orders[0].Total)
	assert.Equal(t, float64(3), orders[0].ItemCount)
	assert.Equal(t, "4", orders[0].Table)
	assert.Equal(t, "Sara", orders[0].OrderName)
	assert.NotEmpty(t, orders[0].CreatedAt)
	assert.Equal(t, int64(7), orders[1].ID)
}

func TestBridge_CreateOrder_Failures(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(remote *mocks.RemoteStore)
		failedTable  string
	}{
		{
			name: "order_insert_error_skips_lines",
			prepareMocks: func(remote *mocks.RemoteStore) {
				remote.On("Insert", mock.Anything, "orders", mock.Anything).
					Return(nil, errors.New("constraint violation")).Once()
			},
			failedTable: "orders",
		},
		{
			name: "line_insert_error_keeps_order",
			prepareMocks: func(remote *mocks.RemoteStore) {
				remote.On("Insert", mock.Anything, "orders", mock.Anything).
					Return([]domain.Row{{"id": int64(8)}}, nil).Once()
				remote.On("Insert", mock.Anything, "order_items", mock.Anything).
					Return(nil, errors.New("timeout")).Once()
			},
			failedTable: "order_items",
		},
		{
			name: "order_insert_returns_nothing",
			prepareMocks: func(remote *mocks.RemoteStore) {
				remote.On("Insert", mock.Anything, "orders", mock.Anything).
					Return([]domain.Row{}, nil).Once()
			},
			failedTable: "orders",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			remote := mocks.NewRemoteStore(t)
			mirror, _ := setupMirror(t)
			testCase.prepareMocks(remote)

			bridge := service.NewBridge(remote, nil, mirror, nil)
			order, err := bridge.CreateOrder(context.Background(), domain.OrderInput{
				Items: []domain.CartItem{{Name: "Tea", Price: 3}},
			})

			assert.Nil(t, order)
			var remoteErr *service.RemoteQueryError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, testCase.failedTable, remoteErr.Table)

			_, cached := mirror.Get(context.Background(), domain.KeyOrders)
			assert.False(t, cached)
		})
	}
}

func TestBridge_CreateReservation(t *testing.T) {
	remote := mocks.NewRemoteStore(t)
	publisher := mocks.NewEventPublisher(t)
	mirror, _ := setupMirror(t)
	seedMirror(t, mirror, domain.KeyReservations, []domain.Reservation{{ID: 1, Name: "First"}})

	remote.On("Insert", mock.Anything, "reservations", mock.MatchedBy(func(rows []domain.Row) bool {
		return len(rows) == 1 &&
			rows[0]["kind"] == "table" &&
			rows[0]["duration_minutes"] == 90 &&
			rows[0]["date"] == "2026-10-20T19:00:00Z" &&
			rows[0]["table_no"] == ""
	})).Return([]domain.Row{{
		"id": int64(2), "name": "Omar", "phone": "055", "date": "2026-10-20T19:00:00Z",
		"people": int64(4), "kind": "table", "table_no": nil, "duration_minutes": int64(90), "notes": nil,
	}}, nil).Once()
	publisher.On("Publish", mock.Anything, eventType(domain.EventReservationCreated)).
		Return(errors.New("broker unavailable")).Once()

	bridge := service.NewBridge(remote, nil, mirror, publisher)
	row, err := bridge.CreateReservation(context.Background(), domain.ReservationInput{
		Name: "Omar", Phone: "055", ISO: "2026-10-20T19:00:00Z", People: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), row["id"])

	list := readMirror[[]domain.Reservation](t, mirror, domain.KeyReservations)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, "2026-10-20T19:00:00Z", list[0].Time)
	assert.Equal(t, 4, list[0].People)
	assert.Equal(t, 90, list[0].Duration)
	assert.Equal(t, "", list[0].Table)
	assert.NotEmpty(t, list[0].CreatedAt)
	assert.Equal(t, int64(1), list[1].ID)
}

func TestBridge_UpdateReservation(t *testing.T) {
	seed := []domain.Reservation{
		{ID: 1, Name: "A", Table: "1", People: 2, Duration: 90},
		{ID: 2, Name: "B", Table: "2", People: 3, Duration: 90},
	}

	t.Run("merges_into_local_record", func(t *testing.T) {
		remote := mocks.NewRemoteStore(t)
		mirror, _ := setupMirror(t)
		seedMirror(t, mirror, domain.KeyReservations, seed)

		patch := domain.Row{"table_no": "7", "people": float64(6)}
		remote.On("Update", mock.Anything, "reservations", patch, []domain.Filter{domain.Eq("id", int64(2))}).
			Return([]domain.Row{{"id": int64(2), "table_no": "7", "people": int64(6)}}, nil).Once()

		bridge := service.NewBridge(remote, nil, mirror, nil)
		_, err := bridge.UpdateReservation(context.Background(), 2, patch)
		require.NoError(t, err)

		list := readMirror[[]domain.Reservation](t, mirror, domain.KeyReservations)
		require.Len(t, list, 2)
		assert.Equal(t, seed[0], list[0])
		assert.Equal(t, "7", list[1].Table)
		assert.Equal(t, 6, list[1].People)
		assert.Equal(t, "B", list[1].Name)
		assert.NotEmpty(t, list[1].UpdatedAt)
	})

	t.Run("absent_id_leaves_mirror_unchanged", func(t *testing.T) {
		remote := mocks.NewRemoteStore(t)
		mirror, _ := setupMirror(t)
		seedMirror(t, mirror, domain.KeyReservations, seed)
		before, _ := mirror.Get(context.Background(), domain.KeyReservations)

		patch := domain.Row{"notes": "window seat"}
		remote.On("Update", mock.Anything, "reservations", patch, []domain.Filter{domain.Eq("id", int64(99))}).
			Return([]domain.Row{{"id": int64(99), "notes": "window seat"}}, nil).Once()

		bridge := service.NewBridge(remote, nil, mirror, nil)
		row, err := bridge.UpdateReservation(context.Background(), 99, patch)
		require.NoError(t, err)
		assert.Equal(t, int64(99), row["id"])

		after, _ := mirror.Get(context.Background(), domain.KeyReservations)
		assert.Equal(t, before, after)
	})

	t.Run("remote_error_leaves_mirror_unchanged", func(t *testing.T) {
		remote := mocks.NewRemoteStore(t)
		mirror, _ := setupMirror(t)
		seedMirror(t, mirror, domain.KeyReservations, seed)

		remote.On("Update", mock.Anything, "reservations", mock.Anything, mock.Anything).
			Return(nil, errors.New("permission denied")).Once()

		bridge := service.NewBridge(remote, nil, mirror, nil)
		_, err := bridge.UpdateReservation(context.Background(), 1, domain.Row{"name": "Z"})

		var remoteErr *service.RemoteQueryError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, seed, readMirror[[]domain.Reservation](t, mirror, domain.KeyReservations))
	})
}

func TestBridge_DeleteReservation(t *testing.T) {
	seed := []domain.Reservation{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}

	tests := []struct {
		name          string
		remoteErr     error
		expectedList  []domain.Reservation
		wantRemoteErr bool
	}{
		{
			name:         "removes_matching_record",
			expectedList: []domain.Reservation{{ID: 1, Name: "A"}, {ID: 3, Name: "C"}},
		},
		{
			name:          "remote_error",
			remoteErr:     errors.New("network down"),
			expectedList:  seed,
			wantRemoteErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			remote := mocks.NewRemoteStore(t)
			mirror, _ := setupMirror(t)
			seedMirror(t, mirror, domain.KeyReservations, seed)

			remote.On("Delete", mock.Anything, "reservations", []domain.Filter{domain.Eq("id", int64(2))}).
				Return(testCase.remoteErr).Once()

			bridge := service.NewBridge(remote, nil, mirror, nil)
			err := bridge.DeleteReservation(context.Background(), 2)

			if testCase.wantRemoteErr {
				var remoteErr *service.RemoteQueryError
				require.ErrorAs(t, err, &remoteErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, testCase.expectedList, readMirror[[]domain.Reservation](t, mirror, domain.KeyReservations))
		})
	}
}

func TestBridge_CreateRating(t *testing.T) {
	remote := mocks.NewRemoteStore(t)
	publisher := mocks.NewEventPublisher(t)
	mirror, _ := setupMirror(t)

	remote.On("Insert", mock.Anything, "ratings", []domain.Row{{"item_id": int64(5), "stars": 4}}).
		Return([]domain.Row{{"id": int64(70), "item_id": int64(5), "stars": int64(4)}}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg domain.KafkaMessage) bool {
		return msg.Type == domain.EventRatingCreated && msg.ItemID == 5 && msg.Stars == 4 && msg.EntityID == 70
	})).Return(nil).Once()

	bridge := service.NewBridge(remote, nil, mirror, publisher)
	rating, err := bridge.CreateRating(context.Background(), domain.RatingInput{ItemID: 5, Stars: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(70), rating["id"])

	_, cached := mirror.Get(context.Background(), domain.KeyRatings)
	assert.False(t, cached)
}

func TestBridge_CreateRating_RemoteError(t *testing.T) {
	remote := mocks.NewRemoteStore(t)
	mirror, _ := setupMirror(t)

	remote.On("Insert", mock.Anything, "ratings", mock.Anything).
		Return(nil, errors.New("stars out of range")).Once()

	bridge := service.NewBridge(remote, nil, mirror, nil)
	rating, err := bridge.CreateRating(context.Background(), domain.RatingInput{ItemID: 5, Stars: 9})

	assert.Nil(t, rating)
	var remoteErr *service.RemoteQueryError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "ratings", remoteErr.Table)
}
