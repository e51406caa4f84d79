package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/domain/entities"
)

func TestLedgerCreateMovesBalances(t *testing.T) {
	e := newLedgerRouter(t)

	var entry entities.LedgerEntry
	rec := request(t, e, http.MethodPost, "/ledger",
		`{"item":"salary","amount":1000,"record_type":"income"}`, &entry)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotZero(t, entry.ID)

	var asset entities.Balance
	rec = request(t, e, http.MethodGet, "/asset", "", &asset)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1000.0, asset.Amount)

	var liability entities.Balance
	rec = request(t, e, http.MethodGet, "/liability", "", &liability)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, liability.Amount)
}

func TestLedgerCreateRejectsBadInput(t *testing.T) {
	e := newLedgerRouter(t)

	rec := request(t, e, http.MethodPost, "/ledger",
		`{"item":"mystery","amount":10,"record_type":"transfer"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, e, http.MethodPost, "/ledger",
		`{"amount":10,"record_type":"income"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, e, http.MethodPost, "/ledger",
		`{"item":"groceries","amount":10,"record_type":"expense","record_date":"last week"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLedgerUpdateReversesOldEffect(t *testing.T) {
	e := newLedgerRouter(t)

	var entry entities.LedgerEntry
	request(t, e, http.MethodPost, "/ledger",
		`{"item":"loan","amount":100,"record_type":"debt_in"}`, &entry)

	var updated entities.LedgerEntry
	rec := request(t, e, http.MethodPut, fmt.Sprintf("/ledger/%d", entry.ID),
		`{"item":"repayment","amount":30,"interest":5,"record_type":"debt_out"}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entry.ID, updated.ID)

	var asset entities.Balance
	request(t, e, http.MethodGet, "/asset", "", &asset)
	assert.Equal(t, -35.0, asset.Amount)

	var liability entities.Balance
	request(t, e, http.MethodGet, "/liability", "", &liability)
	assert.Equal(t, -30.0, liability.Amount)
}

func TestLedgerDeleteRestoresBalances(t *testing.T) {
	e := newLedgerRouter(t)

	var entry entities.LedgerEntry
	request(t, e, http.MethodPost, "/ledger",
		`{"item":"gadget","amount":120,"record_type":"expense"}`, &entry)

	rec := request(t, e, http.MethodDelete, fmt.Sprintf("/ledger/%d", entry.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var asset entities.Balance
	request(t, e, http.MethodGet, "/asset", "", &asset)
	assert.Equal(t, 0.0, asset.Amount)

	rec = request(t, e, http.MethodDelete, fmt.Sprintf("/ledger/%d", entry.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLedgerUpdateUnknownID(t *testing.T) {
	e := newLedgerRouter(t)

	rec := request(t, e, http.MethodPut, "/ledger/77",
		`{"item":"ghost","amount":1,"record_type":"income"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBalanceOverwrite(t *testing.T) {
	e := newLedgerRouter(t)

	var balance entities.Balance
	rec := request(t, e, http.MethodPost, "/liability", `{"amount":250.5}`, &balance)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 250.5, balance.Amount)

	rec = request(t, e, http.MethodGet, "/liability", "", &balance)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 250.5, balance.Amount)
}

func TestLedgerListOrdering(t *testing.T) {
	e := newLedgerRouter(t)

	for _, body := range []string{
		`{"item":"older","amount":1,"record_type":"expense","record_date":"2024-01-10"}`,
		`{"item":"newest","amount":1,"record_type":"expense","record_date":"2024-03-01"}`,
	} {
		rec := request(t, e, http.MethodPost, "/ledger", body, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var entries []entities.LedgerEntry
	rec := request(t, e, http.MethodGet, "/ledger", "", &entries)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, entries, 2)
	assert.Equal(t, "newest", entries[0].Item)
}
