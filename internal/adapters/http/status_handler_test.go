package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/domain/entities"
)

func TestStatusSubmitReport(t *testing.T) {
	e := newStatusRouter(t)

	var report entities.StatusReport
	rec := request(t, e, http.MethodPost, "/server/status",
		`{"server_name":"web-1","service_name":"nginx","content":"up","is_success":true}`, &report)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "web-1", report.ServerName)
	assert.True(t, report.IsSuccess)
	assert.NotEmpty(t, report.Time)
}

func TestStatusIsSuccessForms(t *testing.T) {
	e := newStatusRouter(t)

	tests := []struct {
		name     string
		value    string
		wantCode int
		want     bool
	}{
		{"boolean true", `true`, http.StatusOK, true},
		{"boolean false", `false`, http.StatusOK, false},
		{"string true", `"true"`, http.StatusOK, true},
		{"string mixed case", `"True"`, http.StatusOK, true},
		{"string false", `"FALSE"`, http.StatusOK, false},
		{"other string", `"yes"`, http.StatusBadRequest, false},
		{"number", `1`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report entities.StatusReport
			body := `{"server_name":"web-1","service_name":"nginx","content":"up","is_success":` + tt.value + `}`
			rec := request(t, e, http.MethodPost, "/server/status", body, &report)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.want, report.IsSuccess)
			}
		})
	}
}

func TestStatusMissingRequiredFields(t *testing.T) {
	e := newStatusRouter(t)

	rec := request(t, e, http.MethodPost, "/server/status",
		`{"service_name":"nginx","content":"up","is_success":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, e, http.MethodPost, "/server/status",
		`{"server_name":"web-1","service_name":"nginx","content":"up"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusExtraFieldsCaptured(t *testing.T) {
	e := newStatusRouter(t)

	var report entities.StatusReport
	body := `{"server_name":"web-1","service_name":"nginx","content":"up","is_success":true,` +
		`"cpu_load":0.7,"region":"eu-west"}`
	rec := request(t, e, http.MethodPost, "/server/status", body, &report)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.7, report.Extra["cpu_load"])
	assert.Equal(t, "eu-west", report.Extra["region"])
}

func TestStatusListFilterAndLimit(t *testing.T) {
	e := newStatusRouter(t)

	for _, body := range []string{
		`{"server_name":"web-1","service_name":"nginx","content":"up","is_success":true}`,
		`{"server_name":"web-1","service_name":"redis","content":"up","is_success":true}`,
		`{"server_name":"db-1","service_name":"postgres","content":"up","is_success":true}`,
	} {
		rec := request(t, e, http.MethodPost, "/server/status", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var all []entities.StatusReport
	rec := request(t, e, http.MethodGet, "/server/status", "", &all)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, all, 3)

	var filtered []entities.StatusReport
	rec = request(t, e, http.MethodGet, "/server/status?server_name=web-1", "", &filtered)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, filtered, 2)

	var limited []entities.StatusReport
	rec = request(t, e, http.MethodGet, "/server/status?limit=1", "", &limited)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, limited, 1)

	rec = request(t, e, http.MethodGet, "/server/status?limit=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusRepeatReportOverwrites(t *testing.T) {
	e := newStatusRouter(t)

	request(t, e, http.MethodPost, "/server/status",
		`{"server_name":"web-1","service_name":"nginx","content":"up","is_success":true}`, nil)
	request(t, e, http.MethodPost, "/server/status",
		`{"server_name":"web-1","service_name":"nginx","content":"down","is_success":false}`, nil)

	var all []entities.StatusReport
	rec := request(t, e, http.MethodGet, "/server/status", "", &all)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, all, 1)
	assert.Equal(t, "down", all[0].Content)
}
