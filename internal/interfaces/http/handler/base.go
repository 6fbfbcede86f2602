// Package handler provides the HTTP request handlers.
package handler

import (
	"github.com/gin-gonic/gin"

	"plotweaver/internal/interfaces/http/dto"
	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/logger"
)

// wireMessages maps domain error codes to the Japanese messages the API
// has always answered with. Codes outside the table keep their internal
// message; validation errors stay English the way binding errors do.
var wireMessages = map[apperrors.ErrorCode]string{
	apperrors.CodeUnknownGenre:       "未対応のジャンルです",
	apperrors.CodeCharacterNotFound:  "キャラクターが見つかりません",
	apperrors.CodeCharacterExists:    "キャラクターは既に存在します",
	apperrors.CodeStoryNotFound:      "物語が見つかりません",
	apperrors.CodeChapterNotFound:    "章が見つかりません",
	apperrors.CodeChapterExists:      "章は既に存在します",
	apperrors.CodePlotThreadNotFound: "伏線が見つかりません",
	apperrors.CodeSceneNotFound:      "シーンが見つかりません",
	apperrors.CodeInferenceFailed:    "プロット生成に失敗しました",
	apperrors.CodeEngineNotReady:     "モデルが初期化されていません",
}

// respondError writes an application error onto the wire with its
// mapped status and message.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	msg := appErr.Message
	if m, ok := wireMessages[appErr.Code]; ok {
		msg = m
	}
	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), "request failed", appErr, "path", c.FullPath())
	}
	dto.Error(c, appErr.HTTPStatus, appErr.Code, msg, appErr.Detail)
}
