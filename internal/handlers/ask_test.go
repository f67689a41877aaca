package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"recall-ai/internal/service"
	service_mocks "recall-ai/internal/service/mocks"
)

func TestAskHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assistant := service_mocks.NewMockAssistant(ctrl)
	assistant.EXPECT().
		Ask(gomock.Any(), service.AskRequest{Question: "when is the vet visit?"}).
		Return(service.AskResponse{
			Answer:            "Friday at 9am.",
			ContextSummary:    "Found relevant information from: 1 keyword matches",
			SourceAttribution: map[string]int{"keyword": 1},
			ItemsUsed:         1,
		}, nil)

	handler := NewAskHandler(assistant)

	body, _ := json.Marshal(AskRequest{Question: "when is the vet visit?"})
	req := httptest.NewRequest(http.MethodPost, "/v1/ask", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp AskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "Friday at 9am." || resp.ItemsUsed != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAskHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error maps to 400",
			err:        &service.ValidationError{Field: "question", Message: "cannot be empty"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "generation error maps to 502",
			err:        errors.New("failed to generate answer: model unavailable"),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			assistant := service_mocks.NewMockAssistant(ctrl)
			assistant.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(service.AskResponse{}, tt.err)

			handler := NewAskHandler(assistant)

			req := httptest.NewRequest(http.MethodPost, "/v1/ask", bytes.NewReader([]byte(`{"question": "x"}`)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAskHandlerRejectsMalformedBody(t *testing.T) {
	handler := NewAskHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
