package datasource

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ArchiveClient implements DataSource for bulk historical draw archives. The
// archive host publishes one CSV file per game and month.
type ArchiveClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// NewArchiveClient creates a new historical archive client
func NewArchiveClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *ArchiveClient {
	if baseURL == "" {
		baseURL = "https://archive.draw-results.example.com/api"
	}
	return &ArchiveClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchDraws retrieves archived draws for a game within the date range
func (c *ArchiveClient) FetchDraws(ctx context.Context, gameName string, startDate, endDate time.Time) ([]DrawData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("archive", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	files, err := c.GetAvailableFiles(ctx, gameName, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		// No data available - return empty list without error
		return []DrawData{}, nil
	}

	var allDraws []DrawData
	parser := NewDrawCSVParser(c.logger)

	// Download and parse each file
	for _, filename := range files {
		fileReader, err := c.DownloadArchiveFile(ctx, filename)
		if err != nil {
			if c.logger != nil {
				c.logger.Printf("Failed to download file %s: %v", filename, err)
			}
			continue
		}

		draws, err := parser.ParseCSVReader(fileReader)
		fileReader.Close()
		if err != nil {
			if c.logger != nil {
				c.logger.Printf("Failed to parse file %s: %v", filename, err)
			}
			continue
		}

		allDraws = append(allDraws, draws...)
	}

	if c.logger != nil {
		c.logger.Printf("Fetched %d draws from archive", len(allDraws))
	}

	return allDraws, nil
}

// FetchLatestDraw retrieves the most recent archived draw for a game. The
// archive lags live results; prefer the live source for the latest draw.
func (c *ArchiveClient) FetchLatestDraw(ctx context.Context, gameName string) (*DrawData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("archive", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, -1, 0)
	draws, err := c.FetchDraws(ctx, gameName, start, end)
	if err != nil {
		return nil, err
	}
	if len(draws) == 0 {
		return nil, NewDataSourceError("archive", ErrCodeNotFound, "no recent draws in archive", nil)
	}

	latest := draws[0]
	for _, draw := range draws[1:] {
		if draw.DrawDate.After(latest.DrawDate) {
			latest = draw
		}
	}
	return &latest, nil
}

// Name returns the data source name
func (c *ArchiveClient) Name() string {
	return "archive"
}

// IsEnabled returns whether this data source is enabled
func (c *ArchiveClient) IsEnabled() bool {
	return c.enabled
}

// DownloadArchiveFile downloads one archive file
func (c *ArchiveClient) DownloadArchiveFile(ctx context.Context, filename string) (io.ReadCloser, error) {
	if !c.enabled {
		return nil, NewDataSourceError("archive", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/files/%s", c.baseURL, filename)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError("archive", ErrCodeNetworkError, "failed to download file", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, NewDataSourceError("archive", ErrCodeNotFound, fmt.Sprintf("file not found: %s", filename), nil)
	}

	return resp.Body, nil
}

// GetAvailableFiles lists archive files covering the date range
func (c *ArchiveClient) GetAvailableFiles(ctx context.Context, gameName string, startDate, endDate time.Time) ([]string, error) {
	if !c.enabled {
		return nil, NewDataSourceError("archive", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/files?game=%s&from=%s&to=%s",
		c.baseURL, gameName, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError("archive", ErrCodeNetworkError, "failed to list files", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewDataSourceError("archive", ErrCodeServerError, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}

	var files []string
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, NewDataSourceError("archive", ErrCodeInvalidData, "invalid response format", err)
	}

	return files, nil
}

// DrawCSVParser handles the archive CSV format. Expected header:
// draw_id,game,draw_date,numbers,supplementary where numbers and
// supplementary are space-separated integers.
type DrawCSVParser struct {
	logger *log.Logger
}

// NewDrawCSVParser creates a new CSV parser
func NewDrawCSVParser(logger *log.Logger) *DrawCSVParser {
	return &DrawCSVParser{logger: logger}
}

// Parse parses archive CSV content
func (p *DrawCSVParser) Parse(data []byte) ([]DrawData, error) {
	return p.ParseCSVReader(strings.NewReader(string(data)))
}

// ParseCSVReader parses archive CSV data from a reader
func (p *DrawCSVParser) ParseCSVReader(reader io.Reader) ([]DrawData, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"draw_id", "game", "draw_date", "numbers"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required CSV column: %s", required)
		}
	}

	var draws []DrawData
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		draw, err := p.parseRow(cols, row)
		if err != nil {
			if p.logger != nil {
				p.logger.Printf("Skipping malformed CSV row: %v", err)
			}
			continue
		}
		draws = append(draws, *draw)
	}

	return draws, nil
}

// parseRow converts one CSV row to DrawData
func (p *DrawCSVParser) parseRow(cols map[string]int, row []string) (*DrawData, error) {
	drawDate, err := time.Parse("2006-01-02", row[cols["draw_date"]])
	if err != nil {
		return nil, fmt.Errorf("invalid draw date %q: %w", row[cols["draw_date"]], err)
	}

	numbers, err := parseNumberList(row[cols["numbers"]])
	if err != nil {
		return nil, fmt.Errorf("invalid numbers field: %w", err)
	}

	draw := &DrawData{
		SourceID:  row[cols["draw_id"]],
		GameName:  row[cols["game"]],
		DrawDate:  drawDate.UTC(),
		Numbers:   numbers,
		CreatedAt: time.Now(),
	}

	if idx, ok := cols["supplementary"]; ok && idx < len(row) && row[idx] != "" {
		supp, err := parseNumberList(row[idx])
		if err != nil {
			return nil, fmt.Errorf("invalid supplementary field: %w", err)
		}
		draw.Supplementary = supp
	}

	return draw, nil
}

// parseNumberList parses a space-separated integer list
func parseNumberList(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty number list")
	}
	numbers := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", field, err)
		}
		numbers[i] = n
	}
	return numbers, nil
}
