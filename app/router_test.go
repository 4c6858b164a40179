package app

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/inventory-notes/app/export"
	"github.com/mytheresa/inventory-notes/app/notes"
	"github.com/mytheresa/inventory-notes/app/products"
	"github.com/mytheresa/inventory-notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	tables models.Tables
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tables := models.NewMemoryTables()
	srv := httptest.NewServer(NewRouter(tables))
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv, tables: tables}
}

func (s *testServer) do(method, path, body string) (int, string) {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(s.t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, string(raw)
}

func (s *testServer) seedProduct(id, name, price string) {
	s.t.Helper()
	status, _ := s.do("POST", "/products", `{"ProductID":"`+id+`","Name":"`+name+`","Description":"","Category":"general"}`)
	require.Equal(s.t, http.StatusCreated, status)
	status, _ = s.do("PATCH", "/products/"+id, `{"LastPrice":`+price+`}`)
	require.Equal(s.t, http.StatusOK, status)
}

func TestNoteRoundTrip(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")
	s.seedProduct("P2", "Nut", "5")

	status, body := s.do("POST", "/inbound-notes", `{"NoteID":"N1","ProductIDs":["P1","P2"],"Quantities":[2,3]}`)
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"message":"Inbound note added"}`, body)

	status, body = s.do("GET", "/inbound-notes/N1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"TotalQuantity":5`)
	assert.Contains(t, body, `"TotalPrice":35`)

	var note notes.Note
	require.NoError(t, json.Unmarshal([]byte(body), &note))
	require.Len(t, note.Products, 2)
	assert.Equal(t, "P1", note.Products[0].ProductID)
	assert.Equal(t, json.Number("2"), note.Products[0].Quantity)
	assert.Equal(t, json.Number("10"), note.Products[0].UnitPrice)
	assert.Equal(t, json.Number("20"), note.Products[0].TotalPrice)
	assert.Equal(t, "P2", note.Products[1].ProductID)
	assert.Equal(t, json.Number("15"), note.Products[1].TotalPrice)

	status, body = s.do("GET", "/inbound-notes", "")
	require.Equal(t, http.StatusOK, status)
	var all []notes.Note
	require.NoError(t, json.Unmarshal([]byte(body), &all))
	assert.Len(t, all, 1)
}

func TestNoteCreationFailuresWriteNothing(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")

	status, body := s.do("POST", "/outbound-notes", `{"NoteID":"N1","ProductIDs":["P1","P2"],"Quantities":[1]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"the length of ProductIDs and Quantities must match"}`, body)

	status, body = s.do("POST", "/outbound-notes", `{"NoteID":"N1","ProductIDs":["P1","P2"],"Quantities":[1,1]}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"product with ID P2 not found"}`, body)

	status, body = s.do("GET", "/outbound-notes", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
	status, _ = s.do("GET", "/outbound-notes/N1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOutOfRangeAmountsAreRejected(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")

	testCases := []struct {
		name         string
		method       string
		path         string
		body         string
		expectedBody string
	}{
		{
			name:         "Quantity with a huge negative exponent",
			method:       "POST",
			path:         "/inbound-notes",
			body:         `{"NoteID":"N1","ProductIDs":["P1"],"Quantities":[1e-2147483000]}`,
			expectedBody: `{"error":"Quantities[0]: invalid amount: more than 10 decimal places"}`,
		},
		{
			name:         "Quantity with a huge positive exponent",
			method:       "POST",
			path:         "/inbound-notes",
			body:         `{"NoteID":"N1","ProductIDs":["P1"],"Quantities":[1e1000000]}`,
			expectedBody: `{"error":"Quantities[0]: invalid amount: more than 20 integer digits"}`,
		},
		{
			name:         "Price with a huge negative exponent",
			method:       "PATCH",
			path:         "/products/P1",
			body:         `{"LastPrice":1e-1000}`,
			expectedBody: `{"error":"invalid product update: LastPrice: invalid amount: more than 10 decimal places"}`,
		},
		{
			name:         "Stock with a huge positive exponent",
			method:       "PATCH",
			path:         "/products/P1",
			body:         `{"Quantity":1e1000000}`,
			expectedBody: `{"error":"invalid product update: Quantity: invalid amount: more than 20 integer digits"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(tc.method, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.JSONEq(t, tc.expectedBody, body)
		})
	}

	status, body := s.do("GET", "/inbound-notes", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	status, body = s.do("GET", "/products/P1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"LastPrice":10`)
	assert.Contains(t, body, `"Quantity":0`)
}

func TestNoteIDReuseOverwrites(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")
	s.seedProduct("P2", "Nut", "5")

	status, _ := s.do("POST", "/inbound-notes", `{"NoteID":"N1","ProductIDs":["P1"],"Quantities":[1]}`)
	require.Equal(t, http.StatusCreated, status)
	status, _ = s.do("POST", "/inbound-notes", `{"NoteID":"N1","ProductIDs":["P2"],"Quantities":[4]}`)
	require.Equal(t, http.StatusCreated, status)

	_, body := s.do("GET", "/inbound-notes/N1", "")
	var note notes.Note
	require.NoError(t, json.Unmarshal([]byte(body), &note))
	require.Len(t, note.Products, 1)
	assert.Equal(t, "P2", note.Products[0].ProductID)
	assert.Equal(t, json.Number("20"), note.TotalPrice)
}

func TestInboundAndOutboundAreSeparate(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "1.25")

	status, _ := s.do("POST", "/outbound-notes", `{"NoteID":"OUT-1","ProductIDs":["P1"],"Quantities":[2]}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.do("GET", "/inbound-notes/OUT-1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do("GET", "/outbound-notes/OUT-1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"TotalPrice":2.5`)
	assert.Contains(t, body, `"Kind":"outbound"`)
}

func TestNoteExport(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")
	s.seedProduct("P2", "Nut", "5")
	status, _ := s.do("POST", "/inbound-notes", `{"NoteID":"N1","ProductIDs":["P1","P2"],"Quantities":[2,3]}`)
	require.Equal(t, http.StatusCreated, status)

	resp, err := http.Get(s.srv.URL + "/inbound-notes/N1/xlsx")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=N1.xlsx", resp.Header.Get("Content-Disposition"))

	encoded, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(string(encoded))
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inbound Note")
	require.NoError(t, err)
	assert.Len(t, rows, export.HeaderRows+2)
	assert.Equal(t, []string{"Total Price", "35"}, rows[2])

	status, _ = s.do("GET", "/inbound-notes/N404/xlsx", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNoteDelete(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")
	status, _ := s.do("POST", "/outbound-notes", `{"NoteID":"N1","ProductIDs":["P1"],"Quantities":[1]}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.do("DELETE", "/outbound-notes/N2", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do("DELETE", "/outbound-notes/N1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Outbound note deleted successfully"}`, body)

	status, _ = s.do("GET", "/outbound-notes/N1", "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do("DELETE", "/outbound-notes/N1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do("POST", "/products", `{"ProductID":"P1","Name":"Bolt","Description":"M6","Category":"hardware"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := s.do("POST", "/products", `{"ProductID":"P1","Name":"Clone","Description":"","Category":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"ProductID already exists"}`, body)

	status, body = s.do("GET", "/products", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"ProductID":"P1","Name":"Bolt","Description":"M6","Category":"hardware","Quantity":0,"LastPrice":0}]`, body)

	status, _ = s.do("PUT", "/products/P1", `{"Quantity":40,"LastPrice":"7"}`)
	assert.Equal(t, http.StatusBadRequest, status, "Prices must be JSON numbers")

	status, _ = s.do("PUT", "/products/P1", `{"Quantity":40,"LastPrice":7.125}`)
	require.Equal(t, http.StatusOK, status)

	status, body = s.do("GET", "/products/P1", "")
	require.Equal(t, http.StatusOK, status)
	var product products.Product
	require.NoError(t, json.Unmarshal([]byte(body), &product))
	assert.Equal(t, json.Number("40"), product.Quantity)
	assert.Equal(t, json.Number("7.125"), product.LastPrice)

	status, _ = s.do("PATCH", "/products/P9", `{"Name":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do("PATCH", "/products/P9", `{"Color":"red"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do("DELETE", "/products/P1", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do("DELETE", "/products/P1", "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do("GET", "/products/P1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNoteCreationDoesNotAdjustStock(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("P1", "Bolt", "10")
	status, _ := s.do("PATCH", "/products/P1", `{"Quantity":100}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do("POST", "/outbound-notes", `{"NoteID":"N1","ProductIDs":["P1"],"Quantities":[30]}`)
	require.Equal(t, http.StatusCreated, status)

	_, body := s.do("GET", "/products/P1", "")
	assert.Contains(t, body, `"Quantity":100`)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("GET", "/healthz", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"ok"}`, body)
}
