package diary

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/seoyeon-oh/maum-diary/backend/internal/apperr"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/account"
	diarymodel "github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
	"github.com/seoyeon-oh/maum-diary/backend/internal/service/feed"
	"github.com/seoyeon-oh/maum-diary/backend/pkg/utils"
)

// Analyzer runs the categorization and emotion pipeline on one diary text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (diarymodel.Analysis, error)
}

// Handler serves diary analysis, record listing and the live record feed.
// analyzer is nil when the model failed to load at startup (degraded mode).
type Handler struct {
	accounts account.Store
	records  diarymodel.RecordStore
	analyzer Analyzer
	hub      *feed.Hub
	upgrader websocket.Upgrader
}

// New creates the diary handler.
func New(accounts account.Store, records diarymodel.RecordStore, analyzer Analyzer, hub *feed.Hub) *Handler {
	return &Handler{
		accounts: accounts,
		records:  records,
		analyzer: analyzer,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes wires the diary endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze_diary", h.handleAnalyzeDiary)
	r.Get("/get_all_records", h.handleGetAllRecords)
	r.Get("/ws/records", h.handleRecordFeed)
}

type analyzeRequest struct {
	DiaryEntry string               `json:"diary_entry"`
	UserEmail  string               `json:"user_email"`
	Position   *diarymodel.Position `json:"position"`
}

type analyzeResponse struct {
	Status       string              `json:"status"`
	Emotion      string              `json:"emotion"`
	EmotionLabel string              `json:"emotion_label"`
	Category     string              `json:"category"`
	Timestamp    string              `json:"timestamp"`
	Text         string              `json:"text"`
	Position     diarymodel.Position `json:"position"`
}

func (h *Handler) handleAnalyzeDiary(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil {
		utils.RespondError(w, http.StatusInternalServerError, "서버 오류: AI 모델이 로드되지 않았습니다.")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}

	if strings.TrimSpace(req.DiaryEntry) == "" {
		utils.RespondError(w, http.StatusBadRequest, "일기 내용이 비어 있습니다.")
		return
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		utils.RespondError(w, http.StatusBadRequest, "사용자 이메일이 비어 있습니다.")
		return
	}
	if req.Position == nil {
		utils.RespondError(w, http.StatusBadRequest, "위치 데이터가 없습니다.")
		return
	}

	userID, err := h.resolveUser(w, r.Context(), req.UserEmail)
	if err != nil {
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), req.DiaryEntry)
	if err != nil {
		log.Printf("[diary] analysis failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	if err := h.records.AppendRecord(r.Context(), userID, analysis, req.DiaryEntry, *req.Position); err != nil {
		log.Printf("[diary] append failed for user %s: %v", userID, err)
		utils.RespondError(w, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	h.hub.Publish(userID, diarymodel.Record{
		Timestamp: analysis.Timestamp,
		Emotion:   analysis.Emotion,
		Category:  analysis.Category,
		Text:      req.DiaryEntry,
		Position:  *req.Position,
	})

	utils.RespondJSON(w, http.StatusOK, analyzeResponse{
		Status:       "success",
		Emotion:      analysis.Emotion,
		EmotionLabel: analysis.EmotionLabel,
		Category:     analysis.Category,
		Timestamp:    analysis.Timestamp,
		Text:         req.DiaryEntry,
		Position:     *req.Position,
	})
}

type recordsResponse struct {
	Status  string              `json:"status"`
	Records []diarymodel.Record `json:"records"`
}

func (h *Handler) handleGetAllRecords(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if strings.TrimSpace(userEmail) == "" {
		utils.RespondError(w, http.StatusBadRequest, "사용자 이메일이 필요합니다.")
		return
	}

	userID, err := h.resolveUser(w, r.Context(), userEmail)
	if err != nil {
		return
	}

	records, err := h.records.ListRecords(r.Context(), userID)
	if err != nil {
		log.Printf("[diary] list failed for user %s: %v", userID, err)
		utils.RespondError(w, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	log.Printf("[diary] loaded %d records for user %s", len(records), userID)
	utils.RespondJSON(w, http.StatusOK, recordsResponse{Status: "success", Records: records})
}

// handleRecordFeed upgrades to a websocket and pushes each newly persisted
// record for the user until the client disconnects.
func (h *Handler) handleRecordFeed(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if strings.TrimSpace(userEmail) == "" {
		utils.RespondError(w, http.StatusBadRequest, "사용자 이메일이 필요합니다.")
		return
	}

	userID, err := h.resolveUser(w, r.Context(), userEmail)
	if err != nil {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[feed] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ch := h.hub.Subscribe(userID)
	defer h.hub.Unsubscribe(userID, ch)

	// Reads are discarded; the pump only detects the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Printf("[feed] record feed opened for user %s", userID)
	for {
		select {
		case <-done:
			log.Printf("[feed] record feed closed for user %s", userID)
			return
		case <-r.Context().Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(record); err != nil {
				log.Printf("[feed] write failed for user %s: %v", userID, err)
				return
			}
		}
	}
}

// resolveUser maps an email to a user ID, writing the error response
// itself when the lookup fails.
func (h *Handler) resolveUser(w http.ResponseWriter, ctx context.Context, email string) (string, error) {
	userID, err := h.accounts.FindUserID(ctx, email)
	if err == nil {
		return userID, nil
	}

	if errors.Is(err, account.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "사용자를 찾을 수 없습니다.")
	} else {
		log.Printf("[diary] user lookup failed for %s: %v", email, err)
		utils.RespondError(w, apperr.Status(err), apperr.Message(err))
	}
	return "", err
}
