// Package handler はecoscanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"ecoscan_backend/internal/api"
	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/domain/entity"
	"ecoscan_backend/internal/feature/ecoscan/usecase"
	"ecoscan_backend/internal/platform/http/middleware"
)

const (
	// FormFieldImage は画像を受け取るマルチパートのフィールド名です。
	FormFieldImage = "image"
	// MaxRequestBodySize はリクエストボディ全体の上限です。画像上限にマルチパートのヘッダー分を足した値です。
	MaxRequestBodySize = usecase.MaxImageSize + 1<<20
)

// ScanUsecase は衣類スキャンのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ScanUsecase interface {
	Scan(ctx context.Context, image entity.ImagePayload) (*entity.ScanResult, error)
}

// ScanHandler は衣類スキャンのHTTPリクエストを処理します。
type ScanHandler struct {
	uc ScanUsecase
}

// NewScanHandler はScanHandlerの新しいインスタンスを生成します。
func NewScanHandler(uc ScanUsecase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// AnalyzeImage はアップロードされた画像を判定し、エコスコアを返します。
//
// エンドポイント: POST /analyze-image, POST /api/analyze-image
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *ScanHandler) AnalyzeImage(c *gin.Context) {
	reqID := middleware.RequestIDFrom(c)

	// 解析前にボディを制限し、巨大なアップロードを一時ファイルへ書き出さない
	if c.Request.ContentLength > MaxRequestBodySize {
		slog.Warn("リクエストボディが上限を超えています", "content_length", c.Request.ContentLength, "request_id", reqID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Image too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodySize)

	file, err := c.FormFile(FormFieldImage)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		slog.Warn("リクエストボディが上限を超えています", "limit", maxErr.Limit, "request_id", reqID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Image too large"})
		return
	}
	if err != nil || file.Size == 0 {
		slog.Warn("画像ファイルが添付されていません", "error", err, "request_id", reqID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No image uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err, "request_id", reqID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to read uploaded image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err, "request_id", reqID)
		}
	}()

	// 上限+1バイトまで読み、サイズ超過の判定はユースケースに任せる
	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err, "request_id", reqID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to read uploaded image"})
		return
	}

	image := entity.ImagePayload{
		Data:      data,
		MediaType: resolveMediaType(file.Header.Get("Content-Type"), data),
	}
	slog.Info("スキャン開始", "request_id", reqID, "size", len(data), "media_type", image.MediaType)

	result, err := h.uc.Scan(c.Request.Context(), image)
	if err != nil {
		status, body := mapError(err)
		slog.Error("スキャンに失敗", "error", err, "status", status, "request_id", reqID)
		c.JSON(status, body)
		return
	}

	slog.Info("スキャン完了", "request_id", reqID, "items", len(result.Items))
	c.JSON(http.StatusOK, toScanResponse(result))
}

// resolveMediaType は宣言されたContent-Typeを優先し、無い場合は内容から推定します。
func resolveMediaType(declared string, data []byte) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}

// mapError はドメインエラーをHTTPステータスとレスポンスボディに変換します。
func mapError(err error) (int, api.ErrorResponse) {
	var (
		parseErr  *domain.ParseError
		inferErr  *domain.InferenceError
		configErr *domain.ConfigError
	)
	switch {
	case errors.Is(err, domain.ErrEmptyImage):
		return http.StatusBadRequest, api.ErrorResponse{Error: "No image uploaded"}
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusBadRequest, api.ErrorResponse{Error: "Image too large"}
	case errors.As(err, &parseErr):
		slog.Warn("モデル出力の解析に失敗", "stage", parseErr.Stage(), "raw", parseErr.Raw)
		msg := "Failed to parse classification response"
		if parseErr.Stage() == domain.StageEstimation {
			msg = "Failed to parse eco-score response"
		}
		return http.StatusInternalServerError, api.ErrorResponse{Error: msg, Raw: parseErr.Raw}
	case errors.As(err, &inferErr):
		msg := "Garment classification failed"
		if inferErr.Stage == domain.StageEstimation {
			msg = "Footprint estimation failed"
		}
		return http.StatusInternalServerError, api.ErrorResponse{Error: msg}
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, api.ErrorResponse{Error: "Server misconfigured"}
	default:
		return http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"}
	}
}

func toScanResponse(r *entity.ScanResult) api.ScanResponse {
	out := api.ScanResponse{Items: make([]api.ItemReportResponse, 0, len(r.Items))}
	for _, it := range r.Items {
		out.Items = append(out.Items, api.ItemReportResponse{
			Name:        it.Name,
			Probability: it.Probability,
			CarbonScore: it.CarbonScore,
			Description: it.Description,
		})
	}
	if r.EcoScore != nil {
		out.EcoScore = &api.EcoScoreResponse{
			TotalCarbon: r.EcoScore.TotalCarbon,
			Points:      r.EcoScore.Points,
		}
	}
	return out
}
