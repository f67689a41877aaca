package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"recall-ai/internal/retrieval"
	"recall-ai/internal/service"
	service_mocks "recall-ai/internal/service/mocks"
	storage_mocks "recall-ai/internal/storage/mocks"
	vs_mocks "recall-ai/internal/vectorstore/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *service_mocks.MockContextBuilder, *service_mocks.MockAssistant, *storage_mocks.MockMemoryStore, *vs_mocks.MockVectorStore) {
	t.Helper()
	ctrl := gomock.NewController(t)

	contexts := service_mocks.NewMockContextBuilder(ctrl)
	assistant := service_mocks.NewMockAssistant(ctrl)
	memories := storage_mocks.NewMockMemoryStore(ctrl)
	vectors := vs_mocks.NewMockVectorStore(ctrl)

	router := NewRouter(&Deps{
		Contexts:   contexts,
		Assistant:  assistant,
		Memories:   memories,
		Vectors:    vectors,
		Collection: "memories",
	})
	return router, contexts, assistant, memories, vectors
}

func TestRouterRoutes(t *testing.T) {
	router, contexts, assistant, memories, vectors := newTestRouter(t)

	contexts.EXPECT().BuildContext(gomock.Any(), gomock.Any()).Return(retrieval.PrioritizedContext{})
	assistant.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(service.AskResponse{Answer: "ok"}, nil)
	memories.EXPECT().Count(gomock.Any()).Return(0, nil)
	vectors.EXPECT().Count(gomock.Any(), "memories").Return(0, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"context route", http.MethodPost, "/v1/context", `{"query": "x"}`, http.StatusOK},
		{"ask route", http.MethodPost, "/v1/ask", `{"question": "x"}`, http.StatusOK},
		{"health route", http.MethodGet, "/health", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/v1/nope", "", http.StatusNotFound},
		{"wrong method on context", http.MethodGet, "/v1/context", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouterRecoversFromPanic(t *testing.T) {
	router, contexts, _, _, _ := newTestRouter(t)

	contexts.EXPECT().
		BuildContext(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ any) retrieval.PrioritizedContext {
			panic("handler exploded")
		})

	req := httptest.NewRequest(http.MethodPost, "/v1/context", bytes.NewReader([]byte(`{"query": "x"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 after panic recovery", rec.Code)
	}
}
