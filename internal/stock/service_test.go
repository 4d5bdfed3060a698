package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Apply(t *testing.T) {
	itemID := uuid.New()
	userID := uuid.New()

	type testCase struct {
		name      string
		params    stock.ApplyParams
		setupMock func(m *stock.MockRepository)
		wantQty   string
		wantErr   error
	}

	tests := []testCase{
		{
			name: "OutReducesBalance",
			params: stock.ApplyParams{
				ItemID:      itemID,
				UserID:      userID,
				Type:        stock.TypeOut,
				Quantity:    dec("4"),
				Description: "Saha kullanımı",
			},
			setupMock: func(m *stock.MockRepository) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mv *stock.Movement) (*stock.Item, error) {
						assert.Equal(t, stock.TypeOut, mv.Type)
						assert.True(t, dec("4").Equal(mv.Quantity))
						assert.Equal(t, "Saha kullanımı", mv.Description)

						return &stock.Item{ID: itemID, Name: "Vida M6", Quantity: dec("6")}, nil
					})
			},
			wantQty: "6",
		},
		{
			name: "InIncreasesBalance",
			params: stock.ApplyParams{
				ItemID:   itemID,
				UserID:   userID,
				Type:     stock.TypeIn,
				Quantity: dec("50"),
			},
			setupMock: func(m *stock.MockRepository) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(&stock.Item{ID: itemID, Name: "Vida M6", Quantity: dec("56")}, nil)
			},
			wantQty: "56",
		},
		{
			name: "ZeroQuantityRejected",
			params: stock.ApplyParams{
				ItemID:   itemID,
				UserID:   userID,
				Type:     stock.TypeIn,
				Quantity: dec("0"),
			},
			wantErr: stock.ErrInvalidQuantity,
		},
		{
			name: "NegativeQuantityRejected",
			params: stock.ApplyParams{
				ItemID:   itemID,
				UserID:   userID,
				Type:     stock.TypeOut,
				Quantity: dec("-3"),
			},
			wantErr: stock.ErrInvalidQuantity,
		},
		{
			name: "UnknownTypeRejected",
			params: stock.ApplyParams{
				ItemID:   itemID,
				UserID:   userID,
				Type:     stock.Type("transfer"),
				Quantity: dec("1"),
			},
			wantErr: stock.ErrInvalidType,
		},
		{
			name: "InsufficientStock",
			params: stock.ApplyParams{
				ItemID:   itemID,
				UserID:   userID,
				Type:     stock.TypeOut,
				Quantity: dec("10"),
			},
			setupMock: func(m *stock.MockRepository) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(nil, stock.ErrInsufficientStock)
			},
			wantErr: stock.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := stock.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := stock.NewService(repo)
			got, err := svc.Apply(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, dec(tt.wantQty).Equal(got.Quantity), "quantity %s != %s", got.Quantity, tt.wantQty)
		})
	}
}

// Submitting the same over-draw twice is rejected identically both times; the
// validation never reaches the repository when the quantity itself is invalid.
func TestService_Apply_RejectionIsRepeatable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := stock.NewMockRepository(ctrl)
	repo.EXPECT().
		ApplyMovement(gomock.Any(), gomock.Any()).
		Return(nil, stock.ErrInsufficientStock).
		Times(2)

	svc := stock.NewService(repo)
	params := stock.ApplyParams{
		ItemID:   uuid.New(),
		UserID:   uuid.New(),
		Type:     stock.TypeOut,
		Quantity: dec("10"),
	}

	for range 2 {
		_, err := svc.Apply(context.Background(), params)
		require.ErrorIs(t, err, stock.ErrInsufficientStock)
	}
}

func TestService_ImportItems(t *testing.T) {
	existingID := uuid.New()

	type testCase struct {
		name         string
		rows         []stock.ItemRow
		setupMock    func(repo *stock.MockRepository, itx *stock.MockImportTx)
		wantInserted int
		wantErr      error
	}

	tests := []testCase{
		{
			name:    "EmptySheetRejectedBeforeTx",
			rows:    nil,
			wantErr: stock.ErrEmptyImport,
		},
		{
			name: "InsertsNewUpdatesExisting",
			rows: []stock.ItemRow{
				{Name: "Vida M6", Category: "Hırdavat", Quantity: dec("99"), Unit: "Adet", CriticalLevel: dec("20")},
				{Name: "Contalı Musluk", Category: "Genel", Quantity: dec("15"), Unit: "Adet", CriticalLevel: dec("5")},
			},
			setupMock: func(repo *stock.MockRepository, itx *stock.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)

				itx.EXPECT().
					FindItemsByName(gomock.Any(), []string{"Vida M6", "Contalı Musluk"}).
					Return(map[string]*stock.Item{
						"Vida M6": {ID: existingID, Name: "Vida M6", Quantity: dec("6")},
					}, nil)

				// Existing item: metadata only, quantity 99 from the row is ignored.
				itx.EXPECT().
					UpdateItemMeta(gomock.Any(), existingID, "Hırdavat", dec("20")).
					Return(nil)

				itx.EXPECT().
					InsertItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *stock.Item) error {
						assert.Equal(t, "Contalı Musluk", item.Name)
						assert.True(t, dec("15").Equal(item.Quantity))

						item.ID = uuid.New()
						return nil
					})

				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil)
			},
			wantInserted: 1,
		},
		{
			name: "DuplicateNamesLastRowWins",
			rows: []stock.ItemRow{
				{Name: "Silikon", Category: "Genel", Quantity: dec("1"), Unit: "Adet", CriticalLevel: dec("5")},
				{Name: "Silikon", Category: "Yapıştırıcı", Quantity: dec("8"), Unit: "Adet", CriticalLevel: dec("3")},
			},
			setupMock: func(repo *stock.MockRepository, itx *stock.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)

				itx.EXPECT().
					FindItemsByName(gomock.Any(), []string{"Silikon"}).
					Return(map[string]*stock.Item{}, nil)

				itx.EXPECT().
					InsertItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *stock.Item) error {
						assert.Equal(t, "Yapıştırıcı", item.Category)
						assert.True(t, dec("8").Equal(item.Quantity))

						return nil
					})

				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil)
			},
			wantInserted: 1,
		},
		{
			name: "RowFailureAbortsWholeImport",
			rows: []stock.ItemRow{
				{Name: "Kablo 2x1.5", Category: "Elektrik", Quantity: dec("100"), Unit: "Metre", CriticalLevel: dec("25")},
			},
			setupMock: func(repo *stock.MockRepository, itx *stock.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)

				itx.EXPECT().
					FindItemsByName(gomock.Any(), gomock.Any()).
					Return(map[string]*stock.Item{}, nil)

				itx.EXPECT().
					InsertItem(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))

				// No Commit: the deferred Rollback undoes everything.
				itx.EXPECT().Rollback().Return(nil)
			},
			wantErr: cmpErrAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := stock.NewMockRepository(ctrl)
			itx := stock.NewMockImportTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, itx)
			}

			svc := stock.NewService(repo)
			inserted, err := svc.ImportItems(context.Background(), tt.rows)

			if tt.wantErr != nil {
				if tt.wantErr == cmpErrAny {
					require.Error(t, err)
				} else {
					require.ErrorIs(t, err, tt.wantErr)
				}

				assert.Zero(t, inserted)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantInserted, inserted)
		})
	}
}

// cmpErrAny marks cases that only assert some error occurred.
var cmpErrAny = errors.New("any error")

func TestService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := stock.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *stock.Item) error {
			item.ID = uuid.New()
			return nil
		})

	svc := stock.NewService(repo)
	item, err := svc.CreateItem(context.Background(), stock.CreateItemParams{
		Name:          "Vida M6",
		Unit:          "Adet",
		Quantity:      dec("10"),
		CriticalLevel: dec("5"),
		Category:      "Hırdavat",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Vida M6", item.Name)
}

func TestService_CreateItem_DuplicateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := stock.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		Return(stock.ErrDuplicateName)

	svc := stock.NewService(repo)
	item, err := svc.CreateItem(context.Background(), stock.CreateItemParams{Name: "Vida M6"})
	require.ErrorIs(t, err, stock.ErrDuplicateName)
	assert.Nil(t, item)
}

func TestService_UpdateItem(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := stock.NewMockRepository(ctrl)
	repo.EXPECT().
		GetItem(gomock.Any(), id).
		Return(&stock.Item{ID: id, Name: "Vida M6", Unit: "Adet", Quantity: dec("6"), CriticalLevel: dec("5"), Category: "Genel"}, nil)
	repo.EXPECT().
		UpdateItemMeta(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *stock.Item) error {
			assert.Equal(t, "Hırdavat", item.Category)
			assert.True(t, dec("20").Equal(item.CriticalLevel))
			// Balance untouched by metadata edits.
			assert.True(t, dec("6").Equal(item.Quantity))

			return nil
		})

	svc := stock.NewService(repo)

	category := "Hırdavat"
	critical := dec("20")

	item, err := svc.UpdateItem(context.Background(), id, stock.UpdateItemParams{
		Category:      &category,
		CriticalLevel: &critical,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hırdavat", item.Category)
}

func TestService_History(t *testing.T) {
	itemID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := stock.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMovements(gomock.Any(), itemID).
		Return([]*stock.Movement{
			{ID: uuid.New(), ItemID: itemID, Type: stock.TypeOut, Quantity: dec("4"), UserName: "Faruk"},
			{ID: uuid.New(), ItemID: itemID, Type: stock.TypeIn, Quantity: dec("10"), UserName: "Faruk"},
		}, nil)

	svc := stock.NewService(repo)
	movements, err := svc.History(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, stock.TypeOut, movements[0].Type)
}
