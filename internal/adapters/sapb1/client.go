package sapb1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
)

// Session cookies are valid for 30 minutes by default; re-login a bit earlier.
const sessionLifetime = 25 * time.Minute

// The Service Layer expects quantities as JSON numbers, not strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Config carries the Service Layer connection settings.
type Config struct {
	BaseURL   string // e.g. https://sapserver:50000
	CompanyDB string
	Username  string
	Password  string
	Timeout   time.Duration
}

// Client talks to the SAP Business One Service Layer (/b1s/v1). It holds a
// session cookie and re-authenticates transparently when it expires.
type Client struct {
	httpClient *http.Client
	cfg        Config

	mu          sync.Mutex
	sessionTill time.Time
}

// NewClient builds a Service Layer client. The cookie jar carries the
// B1SESSION and ROUTEID cookies set by Login.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("sapb1: base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("sapb1: failed to create cookie jar: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout, Jar: jar},
		cfg:        cfg,
	}, nil
}

// Ensure Client implements the outbound ERP port
var _ portssvc.ERPClient = (*Client)(nil)

func (c *Client) serviceURL(entity string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/b1s/v1/" + entity
}

type loginRequest struct {
	CompanyDB string `json:"CompanyDB"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
}

func (c *Client) login(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{
		CompanyDB: c.cfg.CompanyDB,
		UserName:  c.cfg.Username,
		Password:  c.cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("sapb1: failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL("Login"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sapb1: failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalServiceError("erp login", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.NewExternalServiceError("erp login", resp.StatusCode >= 500,
			fmt.Errorf("status %d: %s", resp.StatusCode, string(payload)))
	}

	c.sessionTill = time.Now().Add(sessionLifetime)
	return nil
}

func (c *Client) ensureSession(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().Before(c.sessionTill) {
		return nil
	}
	return c.login(ctx)
}

func (c *Client) invalidateSession() {
	c.mu.Lock()
	c.sessionTill = time.Time{}
	c.mu.Unlock()
}

// do performs one authenticated Service Layer call and decodes the JSON
// response into out (when out is non-nil). A 401 triggers one re-login and
// retry; the session may have been dropped server side.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body []byte, out interface{}) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	for attempt := 0; attempt < 2; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return fmt.Errorf("sapb1: failed to build request for %s: %w", op, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return apperrors.NewExternalServiceError(op, true, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			c.invalidateSession()
			if err := c.ensureSession(ctx); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return apperrors.NewExternalServiceError(op, resp.StatusCode >= 500,
				fmt.Errorf("status %d: %s", resp.StatusCode, string(payload)))
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				resp.Body.Close()
				return apperrors.NewExternalServiceError(op, false,
					fmt.Errorf("malformed response: %w", err))
			}
		}
		resp.Body.Close()
		return nil
	}
	return apperrors.NewExternalServiceError(op, true, fmt.Errorf("authentication retry exhausted"))
}

// sapDate handles the Service Layer date format ("2006-01-02", sometimes with
// a time component) and nulls.
type sapDate struct {
	t *time.Time
}

func (d *sapDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.t = nil
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05Z07:00"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			d.t = &parsed
			return nil
		}
	}
	// Unrecognized date formats are dropped rather than failing the whole payload.
	d.t = nil
	return nil
}

type serialNumberDetail struct {
	SerialNumber    string  `json:"SerialNumber"`
	SystemNumber    *int64  `json:"SystemNumber"`
	ItemCode        string  `json:"ItemCode"`
	ItemDescription string  `json:"ItemDescription"`
	ManufactureDate sapDate `json:"ManufactureDate"`
	ExpirationDate  sapDate `json:"ExpirationDate"`
	ReceptionDate   sapDate `json:"ReceptionDate"`
}

type itemWarehouseInfo struct {
	WarehouseCode string          `json:"WarehouseCode"`
	InStock       decimal.Decimal `json:"InStock"`
}

// LookupSerial queries SerialNumberDetails for one serial number and, when
// found, the per-warehouse on-hand stock of the owning item.
func (c *Client) LookupSerial(ctx context.Context, serialNumber string) (*domain.SerialLookupResult, error) {
	filter := url.Values{}
	filter.Set("$filter", fmt.Sprintf("SerialNumber eq '%s'", escapeODataString(serialNumber)))
	rawURL := c.serviceURL("SerialNumberDetails") + "?" + filter.Encode()

	var payload struct {
		Value []serialNumberDetail `json:"value"`
	}
	if err := c.do(ctx, "erp serial lookup", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	if len(payload.Value) == 0 {
		return &domain.SerialLookupResult{Found: false}, nil
	}

	detail := payload.Value[0]
	result := &domain.SerialLookupResult{
		Found:           true,
		SerialNumber:    detail.SerialNumber,
		SystemNumber:    detail.SystemNumber,
		ItemCode:        detail.ItemCode,
		ItemDescription: detail.ItemDescription,
		ManufactureDate: detail.ManufactureDate.t,
		ExpiryDate:      detail.ExpirationDate.t,
		AdmissionDate:   detail.ReceptionDate.t,
	}

	onHand, err := c.fetchWarehouseOnHand(ctx, detail.ItemCode)
	if err != nil {
		return nil, err
	}
	result.WarehouseOnHand = onHand
	return result, nil
}

func (c *Client) fetchWarehouseOnHand(ctx context.Context, itemCode string) (map[string]decimal.Decimal, error) {
	params := url.Values{}
	params.Set("$select", "ItemCode,ItemWarehouseInfoCollection")
	rawURL := c.serviceURL(fmt.Sprintf("Items('%s')", escapeODataString(itemCode))) + "?" + params.Encode()

	var payload struct {
		ItemWarehouseInfoCollection []itemWarehouseInfo `json:"ItemWarehouseInfoCollection"`
	}
	if err := c.do(ctx, "erp item stock lookup", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	onHand := make(map[string]decimal.Decimal, len(payload.ItemWarehouseInfoCollection))
	for _, info := range payload.ItemWarehouseInfoCollection {
		onHand[info.WarehouseCode] = info.InStock
	}
	return onHand, nil
}

type stockTransferSerial struct {
	InternalSerialNumber string `json:"InternalSerialNumber"`
	SystemSerialNumber   *int64 `json:"SystemSerialNumber,omitempty"`
	Quantity             int    `json:"Quantity"`
}

type stockTransferLine struct {
	ItemCode          string                `json:"ItemCode"`
	Quantity          decimal.Decimal       `json:"Quantity"`
	WarehouseCode     string                `json:"WarehouseCode"`
	FromWarehouseCode string                `json:"FromWarehouseCode"`
	BaseEntry         *int                  `json:"BaseEntry,omitempty"`
	BaseLine          *int                  `json:"BaseLine,omitempty"`
	SerialNumbers     []stockTransferSerial `json:"SerialNumbers,omitempty"`
}

type stockTransferBody struct {
	FromWarehouse      string              `json:"FromWarehouse"`
	ToWarehouse        string              `json:"ToWarehouse"`
	Comments           string              `json:"Comments,omitempty"`
	StockTransferLines []stockTransferLine `json:"StockTransferLines"`
}

// PostStockTransfer creates the stock transfer document in the ERP and returns
// its document number.
func (c *Client) PostStockTransfer(ctx context.Context, doc domain.TransferDocument) (string, error) {
	body := stockTransferBody{
		FromWarehouse: doc.FromWarehouse,
		ToWarehouse:   doc.ToWarehouse,
		Comments:      doc.Notes,
	}
	for _, line := range doc.Lines {
		from := line.FromWarehouseCode
		if from == "" {
			from = doc.FromWarehouse
		}
		to := line.ToWarehouseCode
		if to == "" {
			to = doc.ToWarehouse
		}
		stl := stockTransferLine{
			ItemCode:          line.ItemCode,
			Quantity:          line.EffectiveQuantity(),
			WarehouseCode:     to,
			FromWarehouseCode: from,
			BaseEntry:         line.BaseEntry,
			BaseLine:          line.BaseLine,
		}
		for _, s := range line.Serials {
			stl.SerialNumbers = append(stl.SerialNumbers, stockTransferSerial{
				InternalSerialNumber: s.InternalSerial,
				SystemSerialNumber:   s.SystemNumber,
				Quantity:             1,
			})
		}
		body.StockTransferLines = append(body.StockTransferLines, stl)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("sapb1: failed to marshal stock transfer: %w", err)
	}

	var response struct {
		DocEntry int `json:"DocEntry"`
		DocNum   int `json:"DocNum"`
	}
	if err := c.do(ctx, "erp stock transfer post", http.MethodPost, c.serviceURL("StockTransfers"), payload, &response); err != nil {
		return "", err
	}
	return strconv.Itoa(response.DocNum), nil
}

// FetchWarehouses retrieves the warehouse master data list.
func (c *Client) FetchWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	params := url.Values{}
	params.Set("$select", "WarehouseCode,WarehouseName,EnableBinLocations")
	rawURL := c.serviceURL("Warehouses") + "?" + params.Encode()

	var payload struct {
		Value []struct {
			WarehouseCode      string `json:"WarehouseCode"`
			WarehouseName      string `json:"WarehouseName"`
			EnableBinLocations string `json:"EnableBinLocations"`
		} `json:"value"`
	}
	if err := c.do(ctx, "erp warehouse fetch", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	warehouses := make([]domain.Warehouse, 0, len(payload.Value))
	for _, w := range payload.Value {
		warehouses = append(warehouses, domain.Warehouse{
			WarehouseCode: w.WarehouseCode,
			WarehouseName: w.WarehouseName,
			BinActivated:  w.EnableBinLocations == "tYES",
		})
	}
	return warehouses, nil
}

// FetchBinLocations retrieves the bins of one warehouse.
func (c *Client) FetchBinLocations(ctx context.Context, warehouseCode string) ([]domain.BinLocation, error) {
	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("Warehouse eq '%s'", escapeODataString(warehouseCode)))
	params.Set("$select", "AbsEntry,BinCode,Warehouse")
	rawURL := c.serviceURL("BinLocations") + "?" + params.Encode()

	var payload struct {
		Value []struct {
			AbsEntry  int    `json:"AbsEntry"`
			BinCode   string `json:"BinCode"`
			Warehouse string `json:"Warehouse"`
		} `json:"value"`
	}
	if err := c.do(ctx, "erp bin fetch", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	bins := make([]domain.BinLocation, 0, len(payload.Value))
	for _, b := range payload.Value {
		bins = append(bins, domain.BinLocation{
			AbsEntry:      b.AbsEntry,
			BinCode:       b.BinCode,
			WarehouseCode: b.Warehouse,
		})
	}
	return bins, nil
}

// FetchBatches retrieves available batches for one item.
func (c *Client) FetchBatches(ctx context.Context, itemCode string) ([]domain.Batch, error) {
	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("ItemCode eq '%s'", escapeODataString(itemCode)))
	rawURL := c.serviceURL("BatchNumberDetails") + "?" + params.Encode()

	var payload struct {
		Value []struct {
			Batch             string          `json:"Batch"`
			ItemCode          string          `json:"ItemCode"`
			Quantity          decimal.Decimal `json:"Quantity"`
			ExpirationDate    sapDate         `json:"ExpirationDate"`
			ManufacturingDate sapDate         `json:"ManufacturingDate"`
		} `json:"value"`
	}
	if err := c.do(ctx, "erp batch fetch", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	batches := make([]domain.Batch, 0, len(payload.Value))
	for _, b := range payload.Value {
		batches = append(batches, domain.Batch{
			BatchNumber:     b.Batch,
			ItemCode:        b.ItemCode,
			Quantity:        b.Quantity,
			ExpiryDate:      b.ExpirationDate.t,
			ManufactureDate: b.ManufacturingDate.t,
		})
	}
	return batches, nil
}

// FetchOpenTransferRequests retrieves open inventory transfer requests.
func (c *Client) FetchOpenTransferRequests(ctx context.Context) ([]domain.TransferRequest, error) {
	params := url.Values{}
	params.Set("$filter", "DocumentStatus eq 'bost_Open'")
	rawURL := c.serviceURL("InventoryTransferRequests") + "?" + params.Encode()

	var payload struct {
		Value []struct {
			DocEntry      int     `json:"DocEntry"`
			DocNum        int     `json:"DocNum"`
			FromWarehouse string  `json:"FromWarehouse"`
			ToWarehouse   string  `json:"ToWarehouse"`
			DocDate       sapDate `json:"DocDate"`
			DueDate       sapDate `json:"DueDate"`
			Comments      string  `json:"Comments"`
			UserSign      int     `json:"UserSign"`
			StockTransferLines []struct {
				Quantity decimal.Decimal `json:"Quantity"`
			} `json:"StockTransferLines"`
		} `json:"value"`
	}
	if err := c.do(ctx, "erp transfer request fetch", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	now := time.Now()
	requests := make([]domain.TransferRequest, 0, len(payload.Value))
	for _, v := range payload.Value {
		total := decimal.Zero
		for _, line := range v.StockTransferLines {
			total = total.Add(line.Quantity)
		}
		requests = append(requests, domain.TransferRequest{
			ERPDocEntry:    v.DocEntry,
			RequestNumber:  strconv.Itoa(v.DocNum),
			FromWarehouse:  v.FromWarehouse,
			ToWarehouse:    v.ToWarehouse,
			DocumentStatus: "Open",
			TotalLines:     len(v.StockTransferLines),
			TotalQuantity:  total,
			DocumentDate:   v.DocDate.t,
			DueDate:        v.DueDate.t,
			Comments:       v.Comments,
			SyncedAt:       now,
		})
	}
	return requests, nil
}

// FetchPickList retrieves one pick list by its ERP AbsoluteEntry.
func (c *Client) FetchPickList(ctx context.Context, absEntry int) (*domain.PickList, error) {
	rawURL := c.serviceURL(fmt.Sprintf("PickLists(%d)", absEntry))

	var payload struct {
		Absoluteentry int     `json:"Absoluteentry"`
		Name          string  `json:"Name"`
		OwnerCode     *int    `json:"OwnerCode"`
		OwnerName     string  `json:"OwnerName"`
		PickDate      sapDate `json:"PickDate"`
		Status        string  `json:"Status"`
		Remarks       string  `json:"Remarks"`
		PickListsLines []struct {
			AbsoluteEntry     int             `json:"AbsoluteEntry"`
			LineNumber        int             `json:"LineNumber"`
			OrderEntry        *int            `json:"OrderEntry"`
			OrderRowID        *int            `json:"OrderRowID"`
			ItemNo            string          `json:"ItemNo"`
			ItemDescription   string          `json:"ItemDescription"`
			ReleasedQuantity  decimal.Decimal `json:"ReleasedQuantity"`
			PickedQuantity    decimal.Decimal `json:"PickedQuantity"`
			PickStatus        string          `json:"PickStatus"`
			WarehouseCode     string          `json:"WarehouseCode"`
			UoMCode           string          `json:"UoMCode"`
			DocumentLinesBinAllocations []struct {
				BinAbsEntry   int             `json:"BinAbsEntry"`
				Quantity      decimal.Decimal `json:"Quantity"`
				PickedQuantity decimal.Decimal `json:"PickedQuantity"`
			} `json:"DocumentLinesBinAllocations"`
		} `json:"PickListsLines"`
	}
	if err := c.do(ctx, "erp pick list fetch", http.MethodGet, rawURL, nil, &payload); err != nil {
		return nil, err
	}

	pickList := &domain.PickList{
		AbsoluteEntry:  payload.Absoluteentry,
		PickListNumber: payload.Name,
		OwnerCode:      payload.OwnerCode,
		OwnerName:      payload.OwnerName,
		PickDate:       payload.PickDate.t,
		Status:         domain.PickStatus(payload.Status),
		Remarks:        payload.Remarks,
		TotalItems:     len(payload.PickListsLines),
		SyncedAt:       time.Now(),
	}
	pickedItems := 0
	for _, v := range payload.PickListsLines {
		line := domain.PickListLine{
			LineNumber:     v.LineNumber,
			OrderEntry:     v.OrderEntry,
			OrderRowID:     v.OrderRowID,
			ItemCode:       v.ItemNo,
			ItemName:       v.ItemDescription,
			Quantity:       v.ReleasedQuantity,
			PickedQuantity: v.PickedQuantity,
			PickStatus:     domain.PickStatus(v.PickStatus),
			WarehouseCode:  v.WarehouseCode,
			UnitOfMeasure:  v.UoMCode,
		}
		if line.PickStatus == domain.PickPicked || line.PickStatus == domain.PickClosed {
			pickedItems++
		}
		for _, bin := range v.DocumentLinesBinAllocations {
			line.BinAllocations = append(line.BinAllocations, domain.BinAllocation{
				BinAbsEntry:    bin.BinAbsEntry,
				WarehouseCode:  v.WarehouseCode,
				Quantity:       bin.Quantity,
				PickedQuantity: bin.PickedQuantity,
			})
		}
		pickList.Lines = append(pickList.Lines, line)
	}
	pickList.PickedItems = pickedItems
	return pickList, nil
}

// escapeODataString doubles single quotes per the OData string literal rules.
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
