package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/officemate/office-mate/internal/config"
	"github.com/officemate/office-mate/internal/core/domain"
	"github.com/officemate/office-mate/internal/core/ports"
	"github.com/officemate/office-mate/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg       config.Config
	ingest    ports.DocumentIngestor
	finder    ports.DocumentFinder
	tasks     ports.TaskManager
	dashboard ports.DashboardReader
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	finder ports.DocumentFinder,
	tasks ports.TaskManager,
	dashboard ports.DashboardReader,
) *Router {
	return &Router{
		cfg:       cfg,
		ingest:    ingest,
		finder:    finder,
		tasks:     tasks,
		dashboard: dashboard,
	}
}

func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/tasks", rt.taskCollection)
	mux.HandleFunc("/v1/tasks/", rt.taskSubtree)
	mux.HandleFunc("/v1/dashboard", rt.dashboardSummary)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	rejected := func(reason string) {
		if rt.metrics != nil {
			rt.metrics.RecordRejected(serviceName, reason)
		}
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 50*time.Millisecond, rejected)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rejected)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.searchDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordDocumentUploaded(serviceName, string(doc.Category))
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) searchDocuments(w http.ResponseWriter, r *http.Request) {
	filter := domain.SearchFilter{
		Query:    r.URL.Query().Get("query"),
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		// Upper bound covers the whole named day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	docs, err := rt.finder.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordSearch(serviceName, len(docs))
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	details, err := rt.finder.GetDetails(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (rt *Router) taskCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.listTasks(w, r)
	case http.MethodPost:
		rt.createTask(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) taskSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/tasks/")
	if rest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task id is required"})
		return
	}

	if rest == "groups" {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		rt.taskGroups(w, r)
		return
	}

	if id, ok := strings.CutSuffix(rest, "/toggle"); ok {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		rt.toggleTask(w, r, id)
		return
	}

	if strings.Contains(rest, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodPatch:
		rt.updateTask(w, r, rest)
	case http.MethodDelete:
		rt.deleteTask(w, r, rest)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) listTasks(w http.ResponseWriter, r *http.Request) {
	status := domain.TaskStatus(r.URL.Query().Get("status"))

	tasks, err := rt.tasks.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	DocumentID  string `json:"document_id"`
	Reminder    string `json:"reminder"`
}

func (rt *Router) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	input := domain.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DocumentID:  req.DocumentID,
	}
	if req.DueDate != "" {
		due, err := time.ParseInLocation(time.DateOnly, req.DueDate, time.UTC)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid due_date, expected YYYY-MM-DD"})
			return
		}
		input.DueDate = &due
	}
	if req.Reminder != "" {
		reminder, err := time.Parse(time.RFC3339, req.Reminder)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reminder, expected RFC 3339 timestamp"})
			return
		}
		input.Reminder = &reminder
	}

	task, err := rt.tasks.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordTaskMutation(serviceName, "create")
	}
	writeJSON(w, http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	DocumentID  *string `json:"document_id"`
	Reminder    *string `json:"reminder"`
}

func (req updateTaskRequest) toPatch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	patch.Title = req.Title
	patch.Description = req.Description
	patch.DocumentID = req.DocumentID
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		// An explicit empty string removes the due date.
		if *req.DueDate == "" {
			patch.DueDate = &time.Time{}
		} else {
			due, err := time.ParseInLocation(time.DateOnly, *req.DueDate, time.UTC)
			if err != nil {
				return domain.TaskPatch{}, err
			}
			patch.DueDate = &due
		}
	}
	if req.Reminder != nil {
		if *req.Reminder == "" {
			patch.Reminder = &time.Time{}
		} else {
			reminder, err := time.Parse(time.RFC3339, *req.Reminder)
			if err != nil {
				return domain.TaskPatch{}, err
			}
			patch.Reminder = &reminder
		}
	}
	return patch, nil
}

func (rt *Router) updateTask(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format"})
		return
	}

	task, err := rt.tasks.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordTaskMutation(serviceName, "update")
	}
	writeJSON(w, http.StatusOK, task)
}

func (rt *Router) deleteTask(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.tasks.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordTaskMutation(serviceName, "delete")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) toggleTask(w http.ResponseWriter, r *http.Request, id string) {
	task, err := rt.tasks.ToggleCompletion(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordTaskMutation(serviceName, "toggle")
	}
	writeJSON(w, http.StatusOK, task)
}

func (rt *Router) taskGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := rt.tasks.Groups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (rt *Router) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	summary, err := rt.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
