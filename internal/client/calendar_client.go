package client

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wisteria0793/scorpion/internal/domain"
)

// HTTPCalendarClient talks to the external calendar service (channel
// manager). Rates come back as CSV with a Date,Price,MinStay,Available
// header; basic settings as JSON.
type HTTPCalendarClient struct {
	BaseURL  string
	Username string
	Password string

	httpClient *http.Client
}

func NewHTTPCalendarClient(baseURL, username, password string, timeout time.Duration) *HTTPCalendarClient {
	return &HTTPCalendarClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Username:   username,
		Password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPCalendarClient) FetchRemoteCalendar(ctx context.Context, externalKey string, start, end domain.Day) ([]domain.RemoteDay, []string, error) {
	form := url.Values{}
	form.Set("username", c.Username)
	form.Set("password", c.Password)
	form.Set("roomid", externalKey)
	form.Set("startdate", start.Time().Format("20060102"))
	form.Set("enddate", end.Time().Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/csv/getratescsv", c.BaseURL),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching remote calendar: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("remote calendar returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, err
	}

	return parseRemoteRatesCSV(string(body))
}

func (c *HTTPCalendarClient) FetchRemoteBasicSettings(ctx context.Context, externalKey string) (*domain.BasicSettings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/rooms/%s/settings", c.BaseURL, url.PathEscape(externalKey)), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Username, c.Password)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote basic settings: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("remote settings returned status %d", response.StatusCode)
	}

	var payload struct {
		BasePrice       int64 `json:"base_price"`
		BaseGuests      int   `json:"base_guests"`
		AdultExtraPrice int64 `json:"adult_extra_price"`
		ChildExtraPrice int64 `json:"child_extra_price"`
		MinNights       int   `json:"min_nights"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding remote settings: %w", err)
	}

	return &domain.BasicSettings{
		BasePrice:       payload.BasePrice,
		BaseGuests:      payload.BaseGuests,
		AdultExtraPrice: payload.AdultExtraPrice,
		ChildExtraPrice: payload.ChildExtraPrice,
		MinNights:       payload.MinNights,
	}, nil
}

// parseRemoteRatesCSV converts the service's rates CSV into remote
// days. Column names are matched case-insensitively. Rows that cannot
// be interpreted do not abort the parse; each one is returned as a
// malformed-row reason so the caller can account for it.
func parseRemoteRatesCSV(text string) ([]domain.RemoteDay, []string, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("remote rates payload has no header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := columns["date"]
	if !ok {
		return nil, nil, fmt.Errorf("remote rates payload missing Date column")
	}

	var days []domain.RemoteDay
	var malformed []string
	row := 1
	for {
		row++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			malformed = append(malformed, fmt.Sprintf("remote row %d: unreadable", row))
			continue
		}
		if dateCol >= len(record) {
			malformed = append(malformed, fmt.Sprintf("remote row %d: missing date field", row))
			continue
		}

		day, err := parseRemoteDate(record[dateCol])
		if err != nil {
			malformed = append(malformed, fmt.Sprintf("remote row %d: bad date %q", row, record[dateCol]))
			continue
		}

		remoteDay := domain.RemoteDay{Date: day, Available: true}

		if i, ok := columns["price"]; ok && i < len(record) {
			if price, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(record[i]), ",", ""), 10, 64); err == nil {
				remoteDay.Price = &price
			}
		}
		if i, ok := columns["minstay"]; ok && i < len(record) {
			if minStay, err := strconv.Atoi(strings.TrimSpace(record[i])); err == nil && minStay >= 1 {
				remoteDay.MinNights = &minStay
			}
		}
		if i, ok := columns["available"]; ok && i < len(record) {
			switch strings.ToLower(strings.TrimSpace(record[i])) {
			case "1", "true", "yes":
				remoteDay.Available = true
			default:
				remoteDay.Available = false
			}
		}

		days = append(days, remoteDay)
	}

	return days, malformed, nil
}

// Accepts YYYY-MM-DD and the service's compact YYYYMMDD form.
func parseRemoteDate(s string) (domain.Day, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "-") {
		return domain.ParseDay(s)
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return domain.Day{}, err
	}
	return domain.DayOf(t), nil
}
