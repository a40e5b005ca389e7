// Package vision はGoogle Cloud Vision APIのラベル検出を使用した衣類判定クライアントを提供します。
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"

	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/domain/entity"
	"ecoscan_backend/internal/feature/ecoscan/usecase"
)

// MaxLabels はラベル検出で要求する最大件数です。
const MaxLabels = 20

// garmentLabels は衣類の種類として扱うラベル(小文字)です。
var garmentLabels = map[string]struct{}{
	"t-shirt": {}, "shirt": {}, "dress shirt": {}, "polo shirt": {}, "blouse": {}, "sweater": {},
	"hoodie": {}, "sweatshirt": {}, "cardigan": {}, "jacket": {}, "coat": {}, "blazer": {},
	"suit": {}, "vest": {}, "jeans": {}, "trousers": {}, "pants": {}, "shorts": {}, "skirt": {},
	"dress": {}, "leggings": {}, "jumpsuit": {}, "overcoat": {}, "raincoat": {}, "parka": {},
	"tank top": {}, "scarf": {}, "hat": {}, "cap": {}, "sock": {}, "glove": {}, "shoe": {},
	"sneakers": {}, "boot": {}, "swimsuit": {}, "pajamas": {}, "uniform": {},
}

// genericLabels は衣類であることのみを示し、種類を特定しないラベルです。
var genericLabels = map[string]struct{}{
	"clothing": {}, "apparel": {}, "outerwear": {}, "sleeve": {}, "fashion": {},
}

// annotator は gvision.ImageAnnotatorClient のうち本パッケージが利用するメソッドです。
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// LabelClassifier はVision APIのラベル検出結果から衣類を判定します。
type LabelClassifier struct {
	client annotator
}

// LabelClassifierがusecase.GarmentClassifierを実装していることをコンパイル時に検証します。
var _ usecase.GarmentClassifier = (*LabelClassifier)(nil)

// NewLabelClassifier はADCを使用してLabelClassifierの新しいインスタンスを生成します。
func NewLabelClassifier(ctx context.Context) (*LabelClassifier, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &LabelClassifier{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *LabelClassifier) Close() error {
	return v.client.Close()
}

// Classify は画像のラベルを検出し、衣類判定結果に変換します。
func (v *LabelClassifier) Classify(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image.Data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: MaxLabels},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return entity.Classification{}, &domain.InferenceError{
			Stage: domain.StageClassification,
			Err:   fmt.Errorf("vision API request failed: %w", err),
		}
	}
	if len(resp.GetResponses()) == 0 {
		return entity.Classification{}, &domain.InferenceError{
			Stage: domain.StageClassification,
			Err:   errors.New("vision API returned no annotation response"),
		}
	}
	if e := resp.Responses[0].GetError(); e != nil {
		return entity.Classification{}, &domain.InferenceError{
			Stage: domain.StageClassification,
			Err:   fmt.Errorf("vision API error: %s", e.GetMessage()),
		}
	}
	return ClassifyLabels(resp.Responses[0].GetLabelAnnotations()), nil
}

// ClassifyLabels はラベル一覧から最もスコアの高い衣類ラベルを選びます。
// 種類を特定できるラベルを優先し、無ければ汎用ラベルにフォールバックします。
func ClassifyLabels(labels []*visionpb.EntityAnnotation) entity.Classification {
	var specific, generic *visionpb.EntityAnnotation
	for _, l := range labels {
		key := strings.ToLower(strings.TrimSpace(l.GetDescription()))
		if _, ok := garmentLabels[key]; ok {
			if specific == nil || l.GetScore() > specific.GetScore() {
				specific = l
			}
			continue
		}
		if _, ok := genericLabels[key]; ok {
			if generic == nil || l.GetScore() > generic.GetScore() {
				generic = l
			}
		}
	}

	best := specific
	if best == nil {
		best = generic
	}
	if best == nil {
		return entity.Classification{}
	}
	return entity.Classification{
		IsClothing:  true,
		Name:        strings.TrimSpace(best.GetDescription()),
		Probability: clamp01(float64(best.GetScore())),
	}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
