package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/risk"
)

type createSessionRequest struct {
	Variant   domain.Variant `json:"questionnaire_type" binding:"required"`
	SubjectID string         `json:"subject_id"`
	CreatorID string         `json:"creator_id" binding:"required"`
}

type recordResponseRequest struct {
	QuestionID string             `json:"question_id" binding:"required"`
	Value      domain.AnswerValue `json:"response"`
	Confidence float64            `json:"confidence"`
}

type resumeRequest struct {
	ResumeToken string `json:"resume_token" binding:"required"`
}

type recommendationsRequest struct {
	FamilyCancerHistory   bool `json:"family_cancer_history"`
	PersonalCancerHistory bool `json:"personal_cancer_history"`
	LifestyleConcerns     bool `json:"lifestyle_concerns"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, domain.NewValidation("body", "invalid request: %v", err))
		return
	}

	session, err := s.manager.Create(c.Request.Context(), req.Variant, req.SubjectID, req.CreatorID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) handleGetSession(c *gin.Context) {
	session, err := s.manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) handleNextQuestion(c *gin.Context) {
	next, err := s.manager.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, next)
}

func (s *Server) handleRecordResponse(c *gin.Context) {
	var req recordResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, domain.NewValidation("body", "invalid request: %v", err))
		return
	}

	session, err := s.manager.RecordResponse(c.Request.Context(), c.Param("id"), domain.ResponseRecord{
		QuestionID: req.QuestionID,
		Value:      req.Value,
		Confidence: req.Confidence,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":  session.ID,
		"answered":    len(session.Responses),
		"risk_scores": session.RiskScores,
	})
}

func (s *Server) handlePause(c *gin.Context) {
	receipt, err := s.manager.Pause(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (s *Server) handleResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, domain.NewValidation("body", "invalid request: %v", err))
		return
	}

	session, err := s.manager.Resume(c.Request.Context(), c.Param("id"), req.ResumeToken)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) handleProgress(c *gin.Context) {
	progress, err := s.manager.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (s *Server) handleInterimRisks(c *gin.Context) {
	details, err := s.manager.InterimRisks(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) handleResults(c *gin.Context) {
	results, err := s.manager.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleBrowseQuestions(c *gin.Context) {
	variant := domain.Variant(c.DefaultQuery("questionnaire_type", string(domain.COMPREHENSIVE_ASSESSMENT)))
	if !variant.IsValid() {
		s.writeError(c, domain.NewValidation("questionnaire_type", "unsupported variant %q", variant))
		return
	}
	category := domain.Category(c.Query("category"))

	questions := s.bank.QuestionsFor(variant, category)
	c.JSON(http.StatusOK, gin.H{
		"questionnaire_type": variant,
		"count":              len(questions),
		"questions":          questions,
	})
}

func (s *Server) handleGetQuestion(c *gin.Context) {
	question, err := s.bank.Get(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (s *Server) handleValidateBank(c *gin.Context) {
	c.JSON(http.StatusOK, s.bank.Validate())
}

func (s *Server) handleRecommendVariants(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, domain.NewValidation("body", "invalid request: %v", err))
		return
	}

	recs := risk.RecommendVariants(req.FamilyCancerHistory, req.PersonalCancerHistory, req.LifestyleConcerns)
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	code := domain.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case domain.ErrCodeNotFound:
		status = http.StatusNotFound
	case domain.ErrCodeValidation:
		status = http.StatusBadRequest
	case domain.ErrCodeState:
		status = http.StatusConflict
	case domain.ErrCodeAuthorization:
		status = http.StatusUnauthorized
	case domain.ErrCodeStore:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Request failed")
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}
