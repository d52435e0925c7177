package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ToroData/ai-radar-linkedin/generator"
	"github.com/ToroData/ai-radar-linkedin/publisher"
	"github.com/ToroData/ai-radar-linkedin/report"
	"github.com/ToroData/ai-radar-linkedin/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	reviseTimeout    = 2 * time.Minute
)

type createReq struct {
	Topic  string `json:"topic"`
	DryRun bool   `json:"dry_run"`
}

type reviseReq struct {
	Comment string `json:"comment"`
}

type reportResp struct {
	ID         string           `json:"id"`
	Topic      string           `json:"topic"`
	Title      string           `json:"title"`
	Narrative  string           `json:"narrative"`
	Markdown   string           `json:"markdown"`
	References []string         `json:"references"`
	PageURL    string           `json:"page_url,omitempty"`
	Revisions  int              `json:"revisions"`
	History    []generator.Turn `json:"history,omitempty"`
	// Live is false for archived reports that can no longer be revised.
	Live bool `json:"live"`
}

func fromResult(res *report.Result) reportResp {
	snap := res.Snapshot()
	return reportResp{
		ID:         snap.ID,
		Topic:      snap.Topic,
		Title:      snap.Title,
		Narrative:  snap.Narrative,
		Markdown:   snap.Markdown,
		References: snap.References,
		PageURL:    snap.PageURL,
		Revisions:  snap.Revisions,
		History:    snap.History,
		Live:       true,
	}
}

func fromArchive(r *store.Report) reportResp {
	return reportResp{
		ID:         r.ID,
		Topic:      r.Topic,
		Title:      r.Title,
		Narrative:  r.Narrative,
		Markdown:   r.Markdown,
		References: r.References,
		PageURL:    r.PageURL,
		Revisions:  r.Revisions,
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := report.LookupTopic(req.Topic); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.runTimeout)
	defer cancel()
	res, err := s.pipeline.Run(ctx, req.Topic, req.DryRun)
	if res != nil {
		// A draft whose upload failed stays reviewable and can be published again.
		s.results.set(res)
	}
	if err != nil {
		s.logger.Error("report run failed", zap.String("topic", req.Topic), zap.Error(err))
		body := map[string]string{"error": err.Error()}
		if res != nil {
			body["id"] = res.ID
		}
		s.respondJSON(w, http.StatusBadGateway, body)
		return
	}
	s.respondJSON(w, http.StatusCreated, fromResult(res))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultListLimit)
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	out := []reportResp{}
	if s.archive != nil {
		reports, err := s.archive.ListReports(r.Context(), offset, limit)
		if err != nil {
			s.logger.Error("list reports failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, rep := range reports {
			if res, ok := s.results.get(rep.ID); ok {
				out = append(out, fromResult(res))
				continue
			}
			out = append(out, fromArchive(rep))
		}
	} else {
		live := s.results.list()
		for i := offset; i < len(live) && len(out) < limit; i++ {
			out = append(out, fromResult(live[i]))
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"reports": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	resp, ok := s.lookup(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "report not found")
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	resp, ok := s.lookup(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "report not found")
		return
	}
	html, err := publisher.RenderHTML(resp.Markdown)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleRevise(w http.ResponseWriter, r *http.Request) {
	res, ok := s.results.get(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "no live review session for report")
		return
	}
	var req reviseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		s.respondError(w, http.StatusBadRequest, "comment is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reviseTimeout)
	defer cancel()
	if err := s.pipeline.Revise(ctx, res, req.Comment); err != nil {
		s.logger.Error("revise failed", zap.String("id", res.ID), zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, fromResult(res))
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	res, ok := s.results.get(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "no live review session for report")
		return
	}
	if err := s.pipeline.Publish(r.Context(), res); err != nil {
		if errors.Is(err, report.ErrAlreadyPublished) {
			s.respondError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Error("publish failed", zap.String("id", res.ID), zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, fromResult(res))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// lookup prefers the live result and falls back to the archive.
func (s *Server) lookup(ctx context.Context, id string) (reportResp, bool) {
	if res, ok := s.results.get(id); ok {
		return fromResult(res), true
	}
	if s.archive == nil {
		return reportResp{}, false
	}
	rep, err := s.archive.GetReport(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("archive lookup failed", zap.String("id", id), zap.Error(err))
		}
		return reportResp{}, false
	}
	return fromArchive(rep), true
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
