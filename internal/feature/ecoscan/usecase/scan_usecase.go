// Package usecase はecoscanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// DefaultInferenceTimeout は推論呼び出し1回あたりのデフォルトタイムアウトです。
	DefaultInferenceTimeout = 30 * time.Second
)

// GarmentClassifier は画像が衣類かどうかを判定するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type GarmentClassifier interface {
	// Classify は画像から衣類の有無・種類・信頼度を判定します。
	Classify(ctx context.Context, image entity.ImagePayload) (entity.Classification, error)
}

// FootprintEstimator は衣類のカーボンフットプリントを推定するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FootprintEstimator interface {
	// Estimate は衣類名から製造時のCO2排出量と説明文を推定します。
	Estimate(ctx context.Context, garmentName string) (entity.FootprintEstimate, error)
}

// scanUsecase は「判定 → 推定」の2段階パイプラインを提供します。
type scanUsecase struct {
	classifier GarmentClassifier
	estimator  FootprintEstimator
	timeout    time.Duration
}

// NewScanUsecase はscanUsecaseの新しいインスタンスを生成します。
// timeoutが0以下の場合はDefaultInferenceTimeoutを使用します。
func NewScanUsecase(c GarmentClassifier, e FootprintEstimator, timeout time.Duration) *scanUsecase {
	if timeout <= 0 {
		timeout = DefaultInferenceTimeout
	}
	return &scanUsecase{classifier: c, estimator: e, timeout: timeout}
}

// Scan は画像を判定し、衣類であればフットプリントを推定してポイントを算出します。
// 衣類でない場合は空の結果を返し、推定器は呼び出しません。
func (u *scanUsecase) Scan(ctx context.Context, image entity.ImagePayload) (*entity.ScanResult, error) {
	if len(image.Data) == 0 {
		return nil, domain.ErrEmptyImage
	}
	if len(image.Data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", domain.ErrImageTooLarge, len(image.Data), MaxImageSize)
	}

	classification, err := u.classify(ctx, image)
	if err != nil {
		return nil, err
	}
	if !classification.IsClothing {
		return entity.EmptyScanResult(), nil
	}
	if strings.TrimSpace(classification.Name) == "" {
		return nil, domain.NewClassificationParseError("", errors.New("clothing detected without a garment name"))
	}

	estimate, err := u.estimate(ctx, classification.Name)
	if err != nil {
		return nil, err
	}

	// 名前は推定器の正規化名より判定器の検出名を優先する
	item := entity.ItemReport{
		Name:        classification.Name,
		Probability: classification.Probability,
		CarbonScore: estimate.CarbonScore,
		Description: estimate.Description,
	}
	// 1画像1アイテムのみ扱うため、合計はこのアイテムのスコアそのもの
	score := entity.NewEcoScore(item.CarbonScore)

	return &entity.ScanResult{
		Items:    []entity.ItemReport{item},
		EcoScore: &score,
	}, nil
}

func (u *scanUsecase) classify(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	c, err := u.classifier.Classify(ctx, image)
	if err != nil {
		return entity.Classification{}, tagStage(domain.StageClassification, err)
	}
	return c, nil
}

func (u *scanUsecase) estimate(ctx context.Context, garmentName string) (entity.FootprintEstimate, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	e, err := u.estimator.Estimate(ctx, garmentName)
	if err != nil {
		return entity.FootprintEstimate{}, tagStage(domain.StageEstimation, err)
	}
	return e, nil
}

// tagStage は型付けされていないアダプターのエラーを、失敗したステージ付きのInferenceErrorに包みます。
func tagStage(stage domain.Stage, err error) error {
	var pe *domain.ParseError
	var ie *domain.InferenceError
	if errors.As(err, &pe) || errors.As(err, &ie) {
		return err
	}
	return &domain.InferenceError{Stage: stage, Err: err}
}
