package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/chartd/analysis"
	"github.com/rustyeddy/chartd/journal"
	"github.com/rustyeddy/chartd/oanda"
)

// handleIndicators runs the engine over the posted candle series.
func (s *Server) handleIndicators(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Params.Variant == "" {
		req.Params.Variant = s.variant
	}

	start := time.Now()
	res, err := analysis.Analyze(req)
	elapsed := time.Since(start)

	s.journalAnalysis(req, res, err, start, elapsed)

	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrInsufficientHistory):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, analysis.ErrBadRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.log.WithError(err).Error("analysis failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "computation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) journalAnalysis(req analysis.Request, res *analysis.Result, err error, start time.Time, elapsed time.Duration) {
	rec := journal.AnalysisRecord{
		ID:          journal.NewID(start),
		Time:        start.UTC(),
		Instrument:  req.Instrument,
		Granularity: req.Granularity,
		CandleCount: len(req.Candles),
		Variant:     string(req.Params.Variant),
		Duration:    elapsed,
		Status:      "ok",
	}
	status := "ok"
	if err != nil {
		rec.Status = "error"
		rec.Detail = err.Error()
		status = "error"
	} else {
		rec.Variant = string(res.Variant)
	}

	if s.met != nil {
		s.met.ObserveAnalysis(status, rec.CandleCount, elapsed)
	}
	if jerr := s.jnl.RecordAnalysis(rec); jerr != nil {
		s.log.WithError(jerr).Warn("journal write failed")
	}
}

// handleCandles proxies the OANDA candles endpoint. The instrument
// rides in the query here and moves into the upstream path.
func (s *Server) handleCandles(c *gin.Context) {
	if s.broker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "broker is not configured"})
		return
	}
	instrument := c.Query("instrument")
	if instrument == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instrument query parameter is required"})
		return
	}

	query := url.Values{}
	for k, vs := range c.Request.URL.Query() {
		if k == "instrument" {
			continue
		}
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	if query.Get("granularity") == "" {
		query.Set("granularity", "H1")
	}
	if query.Get("count") == "" {
		query.Set("count", "200")
	}

	s.forward(c, "candles", func() (*oanda.Response, error) {
		return s.broker.Get(c.Request.Context(), "/v3/instruments/"+instrument+"/candles", query)
	})
}

// proxyHandler forwards an account-scoped endpoint verbatim.
func (s *Server) proxyHandler(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.broker == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "broker is not configured"})
			return
		}
		query := c.Request.URL.Query()
		call := map[string]func() (*oanda.Response, error){
			"account":   func() (*oanda.Response, error) { return s.broker.AccountSummary(c.Request.Context(), query) },
			"positions": func() (*oanda.Response, error) { return s.broker.OpenPositions(c.Request.Context(), query) },
			"pricing":   func() (*oanda.Response, error) { return s.broker.Pricing(c.Request.Context(), query) },
		}[endpoint]

		s.forward(c, endpoint, call)
	}
}

// forward executes one upstream call and passes status and body back
// untouched, so OANDA's own error payloads reach the caller.
func (s *Server) forward(c *gin.Context, endpoint string, call func() (*oanda.Response, error)) {
	start := time.Now()
	resp, err := call()
	elapsed := time.Since(start)

	if err != nil {
		if s.met != nil {
			s.met.ObserveProxy(endpoint, "error", elapsed)
		}
		s.log.WithError(err).WithField("endpoint", endpoint).Error("broker request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "broker request failed"})
		return
	}

	if s.met != nil {
		s.met.ObserveProxy(endpoint, strconv.Itoa(resp.StatusCode), elapsed)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		s.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		}).Warn("broker returned error status")
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}
