package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathforge/pathforge-backend/internal/requestdata"
	"github.com/pathforge/pathforge-backend/internal/services"
	"github.com/pathforge/pathforge-backend/internal/types"
)

type stubRoadmapService struct {
	roadmaps []*types.Roadmap
	detail   *services.RoadmapDetail
	err      error
}

func (s *stubRoadmapService) GetUserRoadmaps(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.roadmaps == nil {
		return []*types.Roadmap{}, nil
	}
	return s.roadmaps, nil
}

func (s *stubRoadmapService) GetRoadmapDetail(ctx context.Context, userID, roadmapID uuid.UUID) (*services.RoadmapDetail, error) {
	return s.detail, s.err
}

func (s *stubRoadmapService) DeleteRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) error {
	return s.err
}

func listRequest(t *testing.T, svc services.RoadmapService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodGet, "/api/roadmaps", nil)
	rd := &requestdata.RequestData{UserID: uuid.New(), Username: "alice"}
	c.Request = req.WithContext(requestdata.WithRequestData(req.Context(), rd))

	handler := NewRoadmapHandler(nil, svc)
	handler.List(c)
	return w
}

func TestListReturnsBareArray(t *testing.T) {
	svc := &stubRoadmapService{roadmaps: []*types.Roadmap{
		{ID: uuid.New(), Title: "Learn Go"},
		{ID: uuid.New(), Title: "Learn SQL"},
	}}
	w := listRequest(t, svc)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("body is not a JSON array: %v\nbody: %s", err, w.Body.String())
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestListEmptyIsEmptyArray(t *testing.T) {
	w := listRequest(t, &stubRoadmapService{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := strings.TrimSpace(w.Body.String())
	if body != "[]" {
		t.Errorf("body = %q, want %q", body, "[]")
	}
}
