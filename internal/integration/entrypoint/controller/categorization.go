// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/usecase/categorization"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/learning"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// CategorizationController handles the categorization engine endpoints:
// manual categorization with learning options, rule management, and the
// batch auto-categorization pass.
type CategorizationController struct {
	recordManualUseCase *categorization.RecordManualCategorizationUseCase
	createRuleUseCase   *categorization.CreatePatternRuleUseCase
	listRulesUseCase    *categorization.ListRulesUseCase
	deleteRuleUseCase   *categorization.DeleteRuleUseCase
	autoUseCase         *categorization.AutoCategorizeUseCase
}

// NewCategorizationController creates a new categorization controller instance.
func NewCategorizationController(
	recordManualUseCase *categorization.RecordManualCategorizationUseCase,
	createRuleUseCase *categorization.CreatePatternRuleUseCase,
	listRulesUseCase *categorization.ListRulesUseCase,
	deleteRuleUseCase *categorization.DeleteRuleUseCase,
	autoUseCase *categorization.AutoCategorizeUseCase,
) *CategorizationController {
	return &CategorizationController{
		recordManualUseCase: recordManualUseCase,
		createRuleUseCase:   createRuleUseCase,
		listRulesUseCase:    listRulesUseCase,
		deleteRuleUseCase:   deleteRuleUseCase,
		autoUseCase:         autoUseCase,
	}
}

// Categorize handles POST /transactions/:id/categorize requests.
func (c *CategorizationController) Categorize(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	var req dto.CategorizeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidOption),
		})
		return
	}

	input := categorization.RecordManualCategorizationInput{
		UserID:        userID,
		TransactionID: transactionID,
		Option:        entity.CategorizationOption(req.Option),
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.recordManualUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategorizationError(ctx, err)
		return
	}

	resp := dto.CategorizeTransactionResponse{
		Transaction: dto.ToTransactionResponseFromEntity(output.Transaction),
		RuleCreated: output.RuleWasCreated,
	}
	if output.Rule != nil {
		rule := dto.ToRuleResponse(output.Rule)
		resp.Rule = &rule
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateRule handles POST /categorization/rules requests.
func (c *CategorizationController) CreateRule(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidMatchMode),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.createRuleUseCase.Execute(ctx.Request.Context(), categorization.CreatePatternRuleInput{
		UserID:     userID,
		Pattern:    req.Pattern,
		MatchMode:  learning.MatchMode(req.MatchMode),
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleCategorizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRuleResponseWithCategory(output.Rule))
}

// ListRules handles GET /categorization/rules requests.
func (c *CategorizationController) ListRules(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listRulesUseCase.Execute(ctx.Request.Context(), categorization.ListRulesInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve rules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleListResponse(output.Rules))
}

// DeleteRule handles DELETE /categorization/rules/:id requests.
func (c *CategorizationController) DeleteRule(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	if err := c.deleteRuleUseCase.Execute(ctx.Request.Context(), categorization.DeleteRuleInput{
		UserID: userID,
		RuleID: ruleID,
	}); err != nil {
		c.handleCategorizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Rule deleted",
	})
}

// AutoCategorize handles POST /categorization/auto requests.
func (c *CategorizationController) AutoCategorize(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.autoUseCase.Execute(ctx.Request.Context(), categorization.AutoCategorizeInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Auto-categorization failed",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.AutoCategorizeResponse{
		UpdatedCount: output.UpdatedCount,
	})
}

// handleCategorizationError maps domain categorization and transaction errors
// to HTTP responses.
func (c *CategorizationController) handleCategorizationError(ctx *gin.Context, err error) {
	var ctzErr *domainerror.CategorizationError
	if errors.As(err, &ctzErr) {
		ctx.JSON(c.getStatusCodeForCategorizationError(ctzErr.Code), dto.ErrorResponse{
			Error: ctzErr.Message,
			Code:  string(ctzErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		switch txnErr.Code {
		case domainerror.ErrCodeTransactionNotFound, domainerror.ErrCodeTxnCategoryNotFound:
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: txnErr.Message,
				Code:  string(txnErr.Code),
			})
		case domainerror.ErrCodeNotAuthorizedTransaction, domainerror.ErrCodeTxnCategoryNotOwned:
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error: txnErr.Message,
				Code:  string(txnErr.Code),
			})
		default:
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: txnErr.Message,
				Code:  string(txnErr.Code),
			})
		}
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategorizationError returns the HTTP status code for a categorization error code.
func (c *CategorizationController) getStatusCodeForCategorizationError(code domainerror.CategorizationErrorCode) int {
	switch code {
	case domainerror.ErrCodeRuleNotFound, domainerror.ErrCodeCategoryNotFoundRule:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateRule:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedRule:
		return http.StatusForbidden
	case domainerror.ErrCodeEmptyPattern, domainerror.ErrCodeInvalidMatchMode,
		domainerror.ErrCodeInvalidOption, domainerror.ErrCodeCategoryRequired,
		domainerror.ErrCodePatternTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
