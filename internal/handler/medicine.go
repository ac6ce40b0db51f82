package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnswerPath 는 약품 질의 엔드포인트 경로다.
const AnswerPath = "/get-gemini-response/"

// Answerer 는 질문 하나에 정규화된 답변 하나를 돌려주는 서비스다.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// QuestionRequest 는 약품 질의 요청 본문이다.
// question 이 빠지면 422, 빈 문자열은 허용한다.
type QuestionRequest struct {
	Question *string `json:"question" binding:"required"`
}

// AnswerResponse 는 약품 질의 응답 본문이다.
type AnswerResponse struct {
	Response string `json:"response"`
}

// MedicineHandler 는 약품 질의 API 핸들러다.
type MedicineHandler struct {
	answerer Answerer
	logger   *slog.Logger
}

// NewMedicineHandler 는 약품 질의 핸들러를 생성한다.
func NewMedicineHandler(answerer Answerer, logger *slog.Logger) *MedicineHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MedicineHandler{
		answerer: answerer,
		logger:   logger,
	}
}

// RegisterRoutes 는 약품 질의 라우트를 등록한다.
func (h *MedicineHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST(AnswerPath, h.handleAnswer)
}

func (h *MedicineHandler) handleAnswer(c *gin.Context) {
	var req QuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	answer, err := h.answerer.Answer(c.Request.Context(), *req.Question)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "medicine_request_failed", "err", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnswerResponse{Response: answer})
}
