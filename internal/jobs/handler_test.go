package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

type mockSystem struct {
	createFn  func(ctx context.Context, cmd CreateCommand) (*Job, error)
	processFn func(ctx context.Context, id uuid.UUID) (*Job, error)
	resetFn   func(ctx context.Context, id uuid.UUID) (*Job, error)
	findFn    func(ctx context.Context, id uuid.UUID) (*Job, error)
	listFn    func(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Job], error)
	staleFn   func(ctx context.Context) ([]Job, error)
}

func (m *mockSystem) Handler(maxUploadSize int64) *Handler {
	return NewHandler(m, discardLogger(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, maxUploadSize)
}

func (m *mockSystem) Create(ctx context.Context, cmd CreateCommand) (*Job, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Process(ctx context.Context, id uuid.UUID) (*Job, error) {
	return m.processFn(ctx, id)
}

func (m *mockSystem) Reset(ctx context.Context, id uuid.UUID) (*Job, error) {
	return m.resetFn(ctx, id)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Job], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Stale(ctx context.Context) ([]Job, error) {
	return m.staleFn(ctx)
}

func setupMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleJob() *Job {
	return &Job{
		ID:       uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Status:   StatusCreated,
		Filename: "ihm-report.pdf",
		Model:    "gpt-4o",
	}
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteField("model", "gpt-4o"); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	return &body, writer.FormDataContentType()
}

func TestHandlerUpload(t *testing.T) {
	t.Run("valid PDF returns 201", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd CreateCommand) (*Job, error) {
				if cmd.Filename != "ihm-report.pdf" {
					t.Errorf("filename = %q", cmd.Filename)
				}
				if cmd.Model != "gpt-4o" {
					t.Errorf("model = %q", cmd.Model)
				}
				return sampleJob(), nil
			},
		}
		mux := setupMux(sys.Handler(50 * 1024 * 1024))

		body, contentType := multipartUpload(t, "ihm-report.pdf", []byte("%PDF-1.4 content"))
		req := httptest.NewRequest("POST", "/jobs", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}

		var job Job
		if err := json.NewDecoder(rec.Body).Decode(&job); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if job.Status != StatusCreated {
			t.Errorf("status = %s, want created", job.Status)
		}
	})

	t.Run("rejected upload returns 400", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(context.Context, CreateCommand) (*Job, error) {
				return nil, ErrInvalidFile
			},
		}
		mux := setupMux(sys.Handler(50 * 1024 * 1024))

		body, contentType := multipartUpload(t, "notes.txt", []byte("plain text"))
		req := httptest.NewRequest("POST", "/jobs", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("oversized upload returns 413", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(context.Context, CreateCommand) (*Job, error) {
				t.Fatal("create should not be reached for an oversized upload")
				return nil, nil
			},
		}
		mux := setupMux(sys.Handler(64))

		body, contentType := multipartUpload(t, "ihm-report.pdf", bytes.Repeat([]byte("%PDF"), 256))
		req := httptest.NewRequest("POST", "/jobs", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rec.Code)
		}
	})

	t.Run("missing file part returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler(50 * 1024 * 1024))

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		writer.WriteField("model", "gpt-4o")
		writer.Close()

		req := httptest.NewRequest("POST", "/jobs", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	t.Run("invalid id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler(0))

		req := httptest.NewRequest("GET", "/jobs/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), ErrInvalidID.Error()) {
			t.Errorf("body = %q, want the invalid id message", rec.Body.String())
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(context.Context, uuid.UUID) (*Job, error) {
				return nil, ErrNotFound
			},
		}
		mux := setupMux(sys.Handler(0))

		req := httptest.NewRequest("GET", "/jobs/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerReset(t *testing.T) {
	t.Run("invalid transition returns 409", func(t *testing.T) {
		sys := &mockSystem{
			resetFn: func(context.Context, uuid.UUID) (*Job, error) {
				return nil, ErrInvalidTransition
			},
		}
		mux := setupMux(sys.Handler(0))

		req := httptest.NewRequest("POST", "/jobs/"+uuid.NewString()+"/reset", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})
}

func TestHandlerProcess(t *testing.T) {
	t.Run("returns current job view", func(t *testing.T) {
		done := sampleJob()
		done.Status = StatusDone
		sys := &mockSystem{
			processFn: func(context.Context, uuid.UUID) (*Job, error) {
				return done, nil
			},
		}
		mux := setupMux(sys.Handler(0))

		req := httptest.NewRequest("POST", "/jobs/"+done.ID.String()+"/process", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var job Job
		if err := json.NewDecoder(rec.Body).Decode(&job); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if job.Status != StatusDone {
			t.Errorf("status = %s, want done", job.Status)
		}
	})
}

func TestHandlerStale(t *testing.T) {
	sys := &mockSystem{
		staleFn: func(context.Context) ([]Job, error) {
			j := sampleJob()
			j.Status = StatusProcessing
			return []Job{*j}, nil
		},
	}
	mux := setupMux(sys.Handler(0))

	req := httptest.NewRequest("GET", "/jobs/stale", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var jobs []Job
	if err := json.NewDecoder(rec.Body).Decode(&jobs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Status != StatusProcessing {
		t.Errorf("jobs = %+v, want one processing job", jobs)
	}
}
