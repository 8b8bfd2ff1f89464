package transaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/eldermuller/dindin/internal/auth"
	txHandler "github.com/eldermuller/dindin/internal/http/transaction"
	"github.com/eldermuller/dindin/internal/transaction"
)

type fixture struct {
	repo *transaction.MockRepository
	cats *transaction.MockCategoryRepository
	srv  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := transaction.NewMockRepository(ctrl)
	cats := transaction.NewMockCategoryRepository(ctrl)

	h := txHandler.NewHandler(transaction.NewService(repo, cats))

	r := chi.NewRouter()
	r.Route("/transactions", h.Routes)

	return &fixture{repo: repo, cats: cats, srv: r}
}

// do performs a request on behalf of userID, the way the auth middleware
// would have resolved it.
func (f *fixture) do(method, target, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(auth.WithUser(context.Background(), userID))

	w := httptest.NewRecorder()
	f.srv.ServeHTTP(w, req)

	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body.Message
}

func TestHandler_Create_Salary(t *testing.T) {
	f := newFixture(t)

	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	f.cats.EXPECT().CategoryExists(gomock.Any(), int64(1)).Return(true, nil)
	f.repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, int64(7), tx.OwnerID)
			assert.Equal(t, int64(500000), tx.Amount)
			assert.Equal(t, date, tx.Date)
			tx.ID = 11
			return nil
		})
	f.repo.EXPECT().
		GetTransaction(gomock.Any(), int64(11), int64(7)).
		Return(&transaction.Transaction{
			ID:           11,
			Kind:         transaction.KindIncome,
			Description:  "Salary",
			Amount:       500000,
			Date:         date,
			CategoryID:   1,
			CategoryName: "Salário",
			OwnerID:      7,
		}, nil)

	w := f.do(http.MethodPost, "/transactions",
		`{"description":"Salary","amount":500000,"date":"2024-01-05","idcategory":1,"type":"entrada"}`, 7)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(7), resp["usuario_id"])
	assert.Equal(t, float64(500000), resp["valor"])
	assert.Equal(t, "entrada", resp["tipo"])
	assert.Equal(t, "Salário", resp["categoria_nome"])
}

func TestHandler_Create_Validation(t *testing.T) {
	type testCase struct {
		name        string
		body        string
		setupMocks  func(f *fixture)
		wantCode    int
		wantMessage string
	}

	tests := []testCase{
		{
			name:        "MissingFields",
			body:        `{"description":"Rent","amount":90000}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Todos os campos obrigatórios devem ser informados.",
		},
		{
			name:        "ZeroAmount",
			body:        `{"description":"Rent","amount":0,"date":"2024-01-05","idcategory":1,"type":"saida"}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Todos os campos obrigatórios devem ser informados.",
		},
		{
			name:        "UnknownType",
			body:        `{"description":"Rent","amount":90000,"date":"2024-01-05","idcategory":1,"type":"income"}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Defina o campo 'tipo' como 'entrada' ou 'saida'.",
		},
		{
			name: "CategoryMissing",
			body: `{"description":"Rent","amount":90000,"date":"2024-01-05","idcategory":99,"type":"saida"}`,
			setupMocks: func(f *fixture) {
				f.cats.EXPECT().CategoryExists(gomock.Any(), int64(99)).Return(false, nil)
			},
			wantCode:    http.StatusNotFound,
			wantMessage: "A categoria informada não existe.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}

			w := f.do(http.MethodPost, "/transactions", tt.body, 7)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantMessage, message(t, w))
		})
	}
}

func TestHandler_List_Empty(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().ListTransactions(gomock.Any(), int64(7)).Return(nil, nil)

	w := f.do(http.MethodGet, "/transactions", "", 7)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetTransaction(gomock.Any(), int64(3), int64(7)).
		Return(&transaction.Transaction{
			ID:           3,
			Kind:         transaction.KindExpense,
			Description:  "Groceries",
			Amount:       15000,
			Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:   2,
			CategoryName: "Mercado",
			OwnerID:      7,
		}, nil)

	w := f.do(http.MethodGet, "/transactions/3", "", 7)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Groceries", resp[0]["descricao"])
	assert.Equal(t, "2024-02-01", resp[0]["data"])
}

func TestHandler_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetTransaction(gomock.Any(), int64(99), int64(7)).
		Return(nil, transaction.ErrNotFound)

	w := f.do(http.MethodGet, "/transactions/99", "", 7)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Transação não encontrada", message(t, w))
}

func TestHandler_Update_Forbidden(t *testing.T) {
	f := newFixture(t)

	f.cats.EXPECT().CategoryExists(gomock.Any(), int64(1)).Return(true, nil)
	f.repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		Return(transaction.ErrForbidden)

	w := f.do(http.MethodPut, "/transactions/4",
		`{"description":"Hijack","amount":100,"date":"2024-01-05","idcategory":1,"type":"saida"}`, 7)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "O usuário informado não tem permissão para acessar a transação solicitada.", message(t, w))
}

func TestHandler_Update_Success(t *testing.T) {
	f := newFixture(t)

	f.cats.EXPECT().CategoryExists(gomock.Any(), int64(1)).Return(true, nil)
	f.repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, int64(4), tx.ID)
			assert.Equal(t, int64(7), tx.OwnerID)
			return nil
		})

	w := f.do(http.MethodPut, "/transactions/4",
		`{"description":"Rent","amount":90000,"date":"2024-01-05","idcategory":1,"type":"saida"}`, 7)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandler_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	f.cats.EXPECT().CategoryExists(gomock.Any(), int64(1)).Return(true, nil)
	f.repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		Return(transaction.ErrNotFound)

	w := f.do(http.MethodPut, "/transactions/44",
		`{"description":"Rent","amount":90000,"date":"2024-01-05","idcategory":1,"type":"saida"}`, 7)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "A transação informada não foi encontrada.", message(t, w))
}

func TestHandler_Delete(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.repo.EXPECT().DeleteTransaction(gomock.Any(), int64(5), int64(7)).Return(nil),
		f.repo.EXPECT().DeleteTransaction(gomock.Any(), int64(5), int64(7)).Return(transaction.ErrNotFound),
	)

	w := f.do(http.MethodDelete, "/transactions/5", "", 7)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodDelete, "/transactions/5", "", 7)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "A transação informada não foi encontrada.", message(t, w))
}

func TestHandler_Delete_Forbidden(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		DeleteTransaction(gomock.Any(), int64(8), int64(7)).
		Return(transaction.ErrForbidden)

	w := f.do(http.MethodDelete, "/transactions/8", "", 7)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "O usuário informado não tem permissão para acessar a transação solicitada.", message(t, w))
}

func TestHandler_Summary(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		SumByKind(gomock.Any(), int64(7)).
		Return(transaction.Summary{Income: 500000, Expense: 120000}, nil)

	w := f.do(http.MethodGet, "/transactions/summary", "", 7)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entrada":500000,"saida":120000}`, w.Body.String())
}
