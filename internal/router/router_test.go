package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/config"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository/memory"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/router"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

const secret = "router-secret"

type api struct {
	t       *testing.T
	h       http.Handler
	admin   string
	user    string
	store   *memory.Store
	adminID int
}

func newAPI(t *testing.T) *api {
	t.Helper()
	s := memory.New()
	s.SeedStatuses()
	ctx := t.Context()
	_, err := s.Categories().Create(ctx, "Laptop", nil)
	require.NoError(t, err)
	_, err = s.Vendors().Create(ctx, "Acme Repairs")
	require.NoError(t, err)
	dept, err := s.Departments().Create(ctx, "Finance")
	require.NoError(t, err)

	adminID := s.SeedUser(models.User{Username: "root", EmployeeName: "Ram Admin", Role: models.RoleAdmin, DepartmentID: dept},
		models.Credential{Secret: "toor", Format: models.CredentialPlain})
	userID := s.SeedUser(models.User{Username: "sita", EmployeeName: "Sita Shrestha", Role: models.RoleUser, DepartmentID: dept},
		models.Credential{Secret: "pw", Format: models.CredentialPlain})

	cfg := config.Config{
		JWTSecret:      secret,
		TokenTTL:       time.Hour,
		Origins:        []string{"http://localhost:3000"},
		AllowPlaintext: true,
		Reports: models.StatusSets{
			RepairDone:  []string{"Repaired", "Received"},
			RequestDone: []string{"Received"},
			Cancelled:   []string{"Cancelled"},
		},
	}
	admin, err := utils.SignJWT(secret, adminID, models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	user, err := utils.SignJWT(secret, userID, models.RoleUser, time.Hour)
	require.NoError(t, err)

	return &api{t: t, h: router.New(zerolog.Nop(), s, cfg, nil), admin: admin, user: user, store: s, adminID: adminID}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func (a *api) createRepair(vendor string) int {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/repair", a.user, map[string]any{
		"DeviceCategory":   "Laptop",
		"DeviceName":       "Latitude 5420",
		"IssueDescription": "Keyboard dead",
		"IssueDate":        "2026-03-02",
		"VendorName":       vendor,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return int(decode(a.t, rec)["repairId"].(float64))
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestAuthGate(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/repair", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", decode(t, rec)["message"])

	rec = a.do(http.MethodGet, "/api/repair", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec)["message"])

	rec = a.do(http.MethodGet, "/api/report/repairsummary", a.user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access Denied: Insufficient permissions", decode(t, rec)["message"])

	rec = a.do(http.MethodPost, "/api/vendor", a.user, map[string]string{"VendorName": "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodGet, "/api/vendor", a.user, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginAndMe(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "sita", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])

	rec = a.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "sita", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Sita Shrestha", body["user"])
	assert.Equal(t, "user", body["role"])

	rec = a.do(http.MethodGet, "/auth/me", body["token"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "sita", me["Username"])
	assert.Equal(t, "Finance", me["Department"])
}

func TestVendorDeleteBlockedUntilRepairRemoved(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/vendor", a.admin, map[string]string{"VendorName": "Fixit"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	vendorID := int(decode(t, rec)["VendorId"].(float64))

	repairID := a.createRepair("Fixit")

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/vendor/%d", vendorID), a.admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete vendor with associated repairs. It is associated with 1", decode(t, rec)["message"])

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/repair/%d", repairID), a.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/vendor/%d", vendorID), a.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Vendor deleted successfully", decode(t, rec)["message"])
}

func TestRepairReadShape(t *testing.T) {
	a := newAPI(t)
	id := a.createRepair("Acme Repairs")

	rec := a.do(http.MethodGet, fmt.Sprintf("/api/repair/%d", id), a.user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, models.DisplayID(models.PrefixRepair, id), got["RepairId"])
	assert.Equal(t, "2026-03-02", got["IssueDate"])
	assert.Nil(t, got["ReturnDate"])
	assert.Nil(t, got["Cost"])
	assert.Equal(t, "Pending", got["Status"])
	assert.Equal(t, "#F59E0B", got["StatusColor"])

	rec = a.do(http.MethodGet, "/api/repair", a.user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, got, list[0])

	rec = a.do(http.MethodGet, "/api/repair/abc", a.user, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid repair ID", decode(t, rec)["message"])

	rec = a.do(http.MethodGet, "/api/repair/99999", a.user, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRepairCreateValidation(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodPost, "/api/repair", a.user, map[string]any{
		"DeviceCategory": "Laptop", "DeviceName": "X", "IssueDate": "2026-03-02", "VendorName": "Acme Repairs",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IssueDescription is required", decode(t, rec)["message"])

	n, err := a.store.Devices().Count(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)

	req := httptest.NewRequest(http.MethodPost, "/api/repair", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+a.user)
	out := httptest.NewRecorder()
	a.h.ServeHTTP(out, req)
	assert.Equal(t, http.StatusBadRequest, out.Code)
	assert.Equal(t, "invalid json", decode(t, out)["message"])
}

func TestCreateBodyFieldTypes(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/repair", a.user, map[string]any{
		"DeviceCategory":   "Laptop",
		"DeviceName":       "Latitude 5420",
		"IssueDescription": "Hinge cracked",
		"IssueDate":        "2026-03-02",
		"VendorName":       "Acme Repairs",
		"Cost":             "",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := int(decode(t, rec)["repairId"].(float64))

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/repair/%d", id), a.user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["Cost"])

	rec = a.do(http.MethodPost, "/api/repair", a.user, map[string]any{
		"DeviceCategory":   "Laptop",
		"DeviceName":       "Latitude 5420",
		"IssueDescription": "Battery swollen",
		"IssueDate":        "2026-03-02",
		"VendorName":       "Acme Repairs",
		"Cost":             "-4",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cost must be at least 0", decode(t, rec)["message"])

	rec = a.do(http.MethodPost, "/api/repair", a.user, map[string]any{
		"DeviceCategory":   "Laptop",
		"DeviceName":       "Latitude 5420",
		"IssueDescription": "Fan noise",
		"IssueDate":        "2026-03-02",
		"VendorName":       "Acme Repairs",
		"Cost":             "cheap",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cost is invalid", decode(t, rec)["message"])

	rec = a.do(http.MethodPost, "/api/request", a.user, map[string]any{
		"DeviceCategory": "Laptop", "DeviceName": 5, "Reason": "Second screen",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DeviceName is invalid", decode(t, rec)["message"])

	id = a.createRepair("Acme Repairs")
	rec = a.do(http.MethodPut, fmt.Sprintf("/api/repair/%d", id), a.admin, map[string]any{"Cost": ""})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = a.do(http.MethodPut, fmt.Sprintf("/api/repair/%d", id), a.admin, map[string]any{"IssueDescription": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IssueDescription is invalid", decode(t, rec)["message"])
}

func TestIDOutsideKeyRange(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/api/repair/2147483648", "/api/request/9223372036854775807"} {
		rec := a.do(http.MethodGet, path, a.user, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
	rec := a.do(http.MethodGet, "/api/repair/2147483648", a.user, nil)
	assert.Equal(t, "Invalid repair ID", decode(t, rec)["message"])
}

func TestRequestUpdateUnknownStatus(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodPost, "/api/request", a.user, map[string]any{
		"DeviceCategory": "Laptop", "DeviceName": "Monitor 27", "Reason": "Second screen",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := int(created["RequestId"].(float64))
	assert.Equal(t, models.DisplayID(models.PrefixRequest, id), created["DisplayId"])

	rec = a.do(http.MethodPut, fmt.Sprintf("/api/request/%d", id), a.admin, map[string]string{"RequestStatus": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Status name doesn't exist", decode(t, rec)["message"])

	rec = a.do(http.MethodPut, fmt.Sprintf("/api/request/%d", id), a.admin, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields provided to update", decode(t, rec)["message"])

	rec = a.do(http.MethodPut, fmt.Sprintf("/api/request/%d", id), a.user, map[string]string{"RequestStatus": "Received"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/request/%d", id), a.user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "Pending", got["Status"])
	assert.Equal(t, "Sita Shrestha", got["RequestedBy"])
	assert.Equal(t, "Finance", got["Department"])
}

func TestStatusEndpoints(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/requestStatus", a.admin, map[string]string{
		"statusName": "Ordered", "statusColor": "#123456", "statusDescription": "Purchase order raised",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := int(decode(t, rec)["statusId"].(float64))

	rec = a.do(http.MethodPut, fmt.Sprintf("/api/requestStatus/%d", id), a.admin, map[string]string{"statusColor": "blue"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid color format. Use #RRGGBB", decode(t, rec)["message"])

	rec = a.do(http.MethodGet, "/api/requestStatus", a.user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 5)

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/requestStatus/%d", id), a.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReports(t *testing.T) {
	a := newAPI(t)
	a.createRepair("Acme Repairs")

	rec := a.do(http.MethodGet, "/api/report/reporttablerepair", a.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var table []models.CategoryProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	require.Len(t, table, 1)
	assert.Equal(t, "0%", table[0].CompletionPercent)

	rec = a.do(http.MethodGet, "/api/report/monthlyrequests", a.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var months []models.MonthlyRequests
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &months))
	assert.Len(t, months, 12)

	rec = a.do(http.MethodGet, "/api/report/export.xlsx", a.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}
