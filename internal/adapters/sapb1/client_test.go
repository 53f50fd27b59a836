package sapb1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareflow/wms_backend/internal/adapters/sapb1"
	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*sapb1.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := sapb1.NewClient(sapb1.Config{
		BaseURL:   server.URL,
		CompanyDB: "TESTDB",
		Username:  "manager",
		Password:  "secret",
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_LookupSerial(t *testing.T) {
	var loginBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Login"):
			require.NoError(t, json.NewDecoder(r.Body).Decode(&loginBody))
			http.SetCookie(w, &http.Cookie{Name: "B1SESSION", Value: "abc123"})
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
		case strings.HasSuffix(r.URL.Path, "/SerialNumberDetails"):
			assert.Contains(t, r.URL.RawQuery, "SerialNumber+eq+%27SN-1%27")
			writeJSON(t, w, map[string]interface{}{
				"value": []map[string]interface{}{{
					"SerialNumber":    "SN-1",
					"SystemNumber":    42,
					"ItemCode":        "ITM-1",
					"ItemDescription": "Widget",
					"ManufactureDate": "2024-03-10",
					"ExpirationDate":  nil,
					"ReceptionDate":   "2024-04-01",
				}},
			})
		case strings.Contains(r.URL.Path, "/Items("):
			writeJSON(t, w, map[string]interface{}{
				"ItemCode": "ITM-1",
				"ItemWarehouseInfoCollection": []map[string]interface{}{
					{"WarehouseCode": "WH-A", "InStock": 3},
					{"WarehouseCode": "WH-B", "InStock": 0},
				},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := client.LookupSerial(context.Background(), "SN-1")

	require.NoError(t, err)
	assert.Equal(t, "TESTDB", loginBody["CompanyDB"])
	assert.Equal(t, "manager", loginBody["UserName"])
	require.True(t, result.Found)
	assert.Equal(t, "SN-1", result.SerialNumber)
	require.NotNil(t, result.SystemNumber)
	assert.Equal(t, int64(42), *result.SystemNumber)
	assert.Equal(t, "ITM-1", result.ItemCode)
	require.NotNil(t, result.ManufactureDate)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *result.ManufactureDate)
	assert.Nil(t, result.ExpiryDate)
	assert.True(t, decimal.NewFromInt(3).Equal(result.WarehouseOnHand["WH-A"]))
	assert.True(t, result.WarehouseOnHand["WH-B"].IsZero())
}

func TestClient_LookupSerial_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Login"):
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
		case strings.HasSuffix(r.URL.Path, "/SerialNumberDetails"):
			writeJSON(t, w, map[string]interface{}{"value": []interface{}{}})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	result, err := client.LookupSerial(context.Background(), "SN-404")

	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestClient_LookupSerial_EscapesODataQuotes(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Login"):
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
		case strings.HasSuffix(r.URL.Path, "/SerialNumberDetails"):
			gotQuery = r.URL.Query().Get("$filter")
			writeJSON(t, w, map[string]interface{}{"value": []interface{}{}})
		}
	}))

	_, err := client.LookupSerial(context.Background(), "SN'1")

	require.NoError(t, err)
	assert.Equal(t, "SerialNumber eq 'SN''1'", gotQuery)
}

func TestClient_ReloginOn401(t *testing.T) {
	loginCount := 0
	dataCount := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Login"):
			loginCount++
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
		case strings.HasSuffix(r.URL.Path, "/Warehouses"):
			dataCount++
			// The first data call hits a dropped session.
			if dataCount == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(t, w, map[string]interface{}{
				"value": []map[string]interface{}{
					{"WarehouseCode": "WH-A", "WarehouseName": "Main", "EnableBinLocations": "tYES"},
					{"WarehouseCode": "WH-B", "WarehouseName": "Overflow", "EnableBinLocations": "tNO"},
				},
			})
		}
	}))

	warehouses, err := client.FetchWarehouses(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, loginCount)
	assert.Equal(t, 2, dataCount)
	require.Len(t, warehouses, 2)
	assert.True(t, warehouses[0].BinActivated)
	assert.False(t, warehouses[1].BinActivated)
}

func TestClient_ServerErrorWrapped(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/Login") {
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(t, w, map[string]interface{}{"error": map[string]string{"message": "internal error"}})
	}))

	_, err := client.FetchWarehouses(context.Background())

	require.Error(t, err)
	var extErr *apperrors.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.True(t, extErr.Retryable)
}

func TestClient_LoginFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(t, w, map[string]interface{}{"error": map[string]string{"message": "Invalid credentials"}})
	}))

	_, err := client.FetchWarehouses(context.Background())

	require.Error(t, err)
	var extErr *apperrors.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.False(t, extErr.Retryable)
}

func TestClient_PostStockTransfer(t *testing.T) {
	systemNumber := int64(7)
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Login"):
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
		case strings.HasSuffix(r.URL.Path, "/StockTransfers"):
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, map[string]interface{}{"DocEntry": 501, "DocNum": 10501})
		}
	}))

	doc := domain.TransferDocument{
		FromWarehouse: "WH-A",
		ToWarehouse:   "WH-B",
		Notes:         "urgent restock",
		Lines: []domain.TransferLine{
			{
				Kind:     domain.LineSerial,
				ItemCode: "ITM-1",
				Serials: []domain.SerialEntry{
					{InternalSerial: "SN-1", SystemNumber: &systemNumber, IsValidated: true},
					{InternalSerial: "SN-2", IsValidated: true},
				},
			},
			{
				Kind:     domain.LineQuantity,
				ItemCode: "ITM-2",
				Quantity: decimal.NewFromInt(5),
			},
		},
	}

	docNum, err := client.PostStockTransfer(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "10501", docNum)
	assert.Equal(t, "WH-A", gotBody["FromWarehouse"])
	assert.Equal(t, "WH-B", gotBody["ToWarehouse"])
	assert.Equal(t, "urgent restock", gotBody["Comments"])

	lines, ok := gotBody["StockTransferLines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 2)

	serialLine := lines[0].(map[string]interface{})
	// A serial line's quantity is the serial count.
	assert.EqualValues(t, 2, serialLine["Quantity"])
	assert.Equal(t, "WH-B", serialLine["WarehouseCode"])
	assert.Equal(t, "WH-A", serialLine["FromWarehouseCode"])
	serials := serialLine["SerialNumbers"].([]interface{})
	require.Len(t, serials, 2)
	first := serials[0].(map[string]interface{})
	assert.Equal(t, "SN-1", first["InternalSerialNumber"])
	assert.EqualValues(t, 1, first["Quantity"])

	quantityLine := lines[1].(map[string]interface{})
	assert.EqualValues(t, 5, quantityLine["Quantity"])
	_, hasSerials := quantityLine["SerialNumbers"]
	assert.False(t, hasSerials)
}

func TestClient_FetchPickList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/Login"):
			writeJSON(t, w, map[string]string{"SessionId": "abc123"})
		case strings.Contains(r.URL.Path, "/PickLists(117)"):
			writeJSON(t, w, map[string]interface{}{
				"Absoluteentry": 117,
				"Name":          "117",
				"OwnerName":     "Warehouse Team",
				"PickDate":      "2025-08-20",
				"Status":        "ps_Released",
				"PickListsLines": []map[string]interface{}{
					{
						"LineNumber":       0,
						"ItemNo":           "ITM-1",
						"ItemDescription":  "Widget",
						"ReleasedQuantity": 10,
						"PickedQuantity":   10,
						"PickStatus":       "ps_Picked",
						"WarehouseCode":    "WH-A",
						"UoMCode":          "EA",
						"DocumentLinesBinAllocations": []map[string]interface{}{
							{"BinAbsEntry": 4, "Quantity": 10, "PickedQuantity": 10},
						},
					},
					{
						"LineNumber":       1,
						"ItemNo":           "ITM-2",
						"ItemDescription":  "Gadget",
						"ReleasedQuantity": 3,
						"PickedQuantity":   0,
						"PickStatus":       "ps_Released",
						"WarehouseCode":    "WH-A",
					},
				},
			})
		}
	}))

	pickList, err := client.FetchPickList(context.Background(), 117)

	require.NoError(t, err)
	assert.Equal(t, 117, pickList.AbsoluteEntry)
	assert.Equal(t, domain.PickReleased, pickList.Status)
	assert.Equal(t, 2, pickList.TotalItems)
	assert.Equal(t, 1, pickList.PickedItems)
	require.Len(t, pickList.Lines, 2)
	assert.Equal(t, "ITM-1", pickList.Lines[0].ItemCode)
	assert.True(t, decimal.NewFromInt(10).Equal(pickList.Lines[0].Quantity))
	require.Len(t, pickList.Lines[0].BinAllocations, 1)
	assert.Equal(t, "WH-A", pickList.Lines[0].BinAllocations[0].WarehouseCode)
	assert.Empty(t, pickList.Lines[1].BinAllocations)
}
