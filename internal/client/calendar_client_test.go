package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisteria0793/scorpion/internal/domain"
)

func TestFetchRemoteCalendar(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/csv/getratescsv", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"username":  r.PostFormValue("username"),
			"roomid":    r.PostFormValue("roomid"),
			"startdate": r.PostFormValue("startdate"),
		}
		w.Write([]byte("Date,Price,MinStay,Available\n" +
			"20260901,12000,2,1\n" +
			"2026-09-02,9000,,0\n" +
			"garbage,1,1,1\n" +
			"20260903,,,1\n"))
	}))
	defer server.Close()

	c := NewHTTPCalendarClient(server.URL, "agent", "secret", 5*time.Second)

	start, err := domain.ParseDay("2026-09-01")
	require.NoError(t, err)
	days, malformed, err := c.FetchRemoteCalendar(context.Background(), "room-42", start, start.AddDays(2))
	require.NoError(t, err)

	assert.Equal(t, "agent", gotForm["username"])
	assert.Equal(t, "room-42", gotForm["roomid"])
	assert.Equal(t, "20260901", gotForm["startdate"])

	// The unparseable date row is reported, not fatal and not dropped.
	require.Len(t, days, 3)
	require.Len(t, malformed, 1)
	assert.Contains(t, malformed[0], `bad date "garbage"`)

	assert.Equal(t, "2026-09-01", days[0].Date.String())
	assert.Equal(t, int64(12000), *days[0].Price)
	assert.Equal(t, 2, *days[0].MinNights)
	assert.True(t, days[0].Available)

	assert.Equal(t, "2026-09-02", days[1].Date.String())
	assert.Nil(t, days[1].MinNights)
	assert.False(t, days[1].Available)

	assert.Nil(t, days[2].Price)
	assert.True(t, days[2].Available)
}

func TestFetchRemoteCalendarStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewHTTPCalendarClient(server.URL, "agent", "secret", 5*time.Second)

	_, _, err := c.FetchRemoteCalendar(context.Background(), "room-42", domain.Today(), domain.Today())
	assert.ErrorContains(t, err, "status 502")
}

func TestFetchRemoteBasicSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/rooms/room-42/settings", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "agent", user)
		require.Equal(t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base_price":11000,"base_guests":3,"adult_extra_price":2500,"child_extra_price":1200,"min_nights":2}`))
	}))
	defer server.Close()

	c := NewHTTPCalendarClient(server.URL, "agent", "secret", 5*time.Second)

	settings, err := c.FetchRemoteBasicSettings(context.Background(), "room-42")
	require.NoError(t, err)
	assert.Equal(t, int64(11000), settings.BasePrice)
	assert.Equal(t, 3, settings.BaseGuests)
	assert.Equal(t, 2, settings.MinNights)
}

func TestParseRemoteRatesCSVMissingDateColumn(t *testing.T) {
	_, _, err := parseRemoteRatesCSV("Price,Available\n100,1\n")
	assert.Error(t, err)
}

func TestParseRemoteRatesCSVReportsMalformedRows(t *testing.T) {
	days, malformed, err := parseRemoteRatesCSV("Date,Price,MinStay,Available\n" +
		"20260901,12000,2,1\n" +
		"not-a-date,9000,1,1\n" +
		"99999999,9000,1,1\n")
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, "2026-09-01", days[0].Date.String())

	require.Len(t, malformed, 2)
	assert.Contains(t, malformed[0], `bad date "not-a-date"`)
	assert.Contains(t, malformed[1], `bad date "99999999"`)
}
