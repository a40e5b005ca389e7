package usecase_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/domain/entity"
	"ecoscan_backend/internal/feature/ecoscan/usecase"
)

// ErrAPI はモックと期待値の間で共有されるセンチネルエラーです。
var ErrAPI = errors.New("api error")

// mockGarmentClassifier はGarmentClassifierインターフェースのモック実装です。
type mockGarmentClassifier struct {
	ClassifyFunc  func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error)
	ClassifyCalls int
}

func (m *mockGarmentClassifier) Classify(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
	m.ClassifyCalls++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, image)
	}
	return entity.Classification{}, errors.New("ClassifyFunc is not implemented")
}

// mockFootprintEstimator はFootprintEstimatorインターフェースのモック実装です。
type mockFootprintEstimator struct {
	EstimateFunc  func(ctx context.Context, garmentName string) (entity.FootprintEstimate, error)
	EstimateCalls int
}

func (m *mockFootprintEstimator) Estimate(ctx context.Context, garmentName string) (entity.FootprintEstimate, error) {
	m.EstimateCalls++
	if m.EstimateFunc != nil {
		return m.EstimateFunc(ctx, garmentName)
	}
	return entity.FootprintEstimate{}, errors.New("EstimateFunc is not implemented")
}

func classifyAs(c entity.Classification) func(context.Context, entity.ImagePayload) (entity.Classification, error) {
	return func(context.Context, entity.ImagePayload) (entity.Classification, error) { return c, nil }
}

func estimateAs(e entity.FootprintEstimate) func(context.Context, string) (entity.FootprintEstimate, error) {
	return func(context.Context, string) (entity.FootprintEstimate, error) { return e, nil }
}

var pngImage = entity.ImagePayload{Data: []byte("fake-image-data"), MediaType: "image/png"}

func TestScanUsecase_Scan(t *testing.T) {
	ctx := context.Background()
	jeansScore := entity.EcoScore{TotalCarbon: 10, Points: 5}
	fractionalScore := entity.EcoScore{TotalCarbon: 7.9, Points: 3}
	zeroScore := entity.EcoScore{TotalCarbon: 0, Points: 0}
	hugeScore := entity.EcoScore{TotalCarbon: 1e20, Points: math.MaxInt}

	testCases := []struct {
		name                  string
		classifyFunc          func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error)
		estimateFunc          func(ctx context.Context, garmentName string) (entity.FootprintEstimate, error)
		expectedResult        *entity.ScanResult
		expectedEstimateCalls int
	}{
		{
			name:                  "success: not clothing returns empty result",
			classifyFunc:          classifyAs(entity.Classification{IsClothing: false, Probability: 0.97}),
			expectedResult:        &entity.ScanResult{Items: []entity.ItemReport{}},
			expectedEstimateCalls: 0,
		},
		{
			name:         "success: jeans",
			classifyFunc: classifyAs(entity.Classification{IsClothing: true, Name: "Jeans", Probability: 0.9}),
			estimateFunc: estimateAs(entity.FootprintEstimate{Name: "Jeans", CarbonScore: 10, Description: "Denim jeans."}),
			expectedResult: &entity.ScanResult{
				Items:    []entity.ItemReport{{Name: "Jeans", Probability: 0.9, CarbonScore: 10, Description: "Denim jeans."}},
				EcoScore: &jeansScore,
			},
			expectedEstimateCalls: 1,
		},
		{
			name:         "success: classifier name wins over estimator name",
			classifyFunc: classifyAs(entity.Classification{IsClothing: true, Name: "T-shirt", Probability: 0.8}),
			estimateFunc: estimateAs(entity.FootprintEstimate{Name: "Cotton T-Shirt", CarbonScore: 7.9, Description: "A tee."}),
			expectedResult: &entity.ScanResult{
				Items:    []entity.ItemReport{{Name: "T-shirt", Probability: 0.8, CarbonScore: 7.9, Description: "A tee."}},
				EcoScore: &fractionalScore,
			},
			expectedEstimateCalls: 1,
		},
		{
			name:         "success: missing carbon score yields zero points",
			classifyFunc: classifyAs(entity.Classification{IsClothing: true, Name: "Dress", Probability: 0.7}),
			estimateFunc: estimateAs(entity.FootprintEstimate{Name: "Dress", Description: "A dress."}),
			expectedResult: &entity.ScanResult{
				Items:    []entity.ItemReport{{Name: "Dress", Probability: 0.7, Description: "A dress."}},
				EcoScore: &zeroScore,
			},
			expectedEstimateCalls: 1,
		},
		{
			name:         "success: huge carbon score saturates points",
			classifyFunc: classifyAs(entity.Classification{IsClothing: true, Name: "Coat", Probability: 0.6}),
			estimateFunc: estimateAs(entity.FootprintEstimate{Name: "Coat", CarbonScore: 1e20, Description: "A coat."}),
			expectedResult: &entity.ScanResult{
				Items:    []entity.ItemReport{{Name: "Coat", Probability: 0.6, CarbonScore: 1e20, Description: "A coat."}},
				EcoScore: &hugeScore,
			},
			expectedEstimateCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classifier := &mockGarmentClassifier{ClassifyFunc: tc.classifyFunc}
			estimator := &mockFootprintEstimator{EstimateFunc: tc.estimateFunc}
			uc := usecase.NewScanUsecase(classifier, estimator, time.Second)

			result, err := uc.Scan(ctx, pngImage)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tc.expectedResult) {
				t.Errorf("result mismatch: got %+v, want %+v", result, tc.expectedResult)
			}
			if classifier.ClassifyCalls != 1 {
				t.Errorf("expected 1 classify call, got %d", classifier.ClassifyCalls)
			}
			if estimator.EstimateCalls != tc.expectedEstimateCalls {
				t.Errorf("expected %d estimate calls, got %d", tc.expectedEstimateCalls, estimator.EstimateCalls)
			}
		})
	}
}

func TestScanUsecase_Scan_PassesInputs(t *testing.T) {
	var gotImage entity.ImagePayload
	var gotName string
	classifier := &mockGarmentClassifier{ClassifyFunc: func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
		gotImage = image
		return entity.Classification{IsClothing: true, Name: "Jeans", Probability: 0.9}, nil
	}}
	estimator := &mockFootprintEstimator{EstimateFunc: func(ctx context.Context, garmentName string) (entity.FootprintEstimate, error) {
		gotName = garmentName
		return entity.FootprintEstimate{CarbonScore: 4}, nil
	}}
	uc := usecase.NewScanUsecase(classifier, estimator, time.Second)

	if _, err := uc.Scan(context.Background(), pngImage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(gotImage, pngImage) {
		t.Errorf("classifier received %+v, want %+v", gotImage, pngImage)
	}
	if gotName != "Jeans" {
		t.Errorf("estimator received %q, want %q", gotName, "Jeans")
	}
}

func TestScanUsecase_Scan_Errors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name                  string
		image                 entity.ImagePayload
		classifyFunc          func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error)
		estimateFunc          func(ctx context.Context, garmentName string) (entity.FootprintEstimate, error)
		expectedErr           error
		expectedStage         domain.Stage
		expectedClassifyCalls int
		expectedEstimateCalls int
	}{
		{
			name:        "error: empty image data",
			image:       entity.ImagePayload{MediaType: "image/png"},
			expectedErr: domain.ErrEmptyImage,
		},
		{
			name:        "error: image too large",
			image:       entity.ImagePayload{Data: make([]byte, usecase.MaxImageSize+1), MediaType: "image/png"},
			expectedErr: domain.ErrImageTooLarge,
		},
		{
			name:  "error: classification parse failure skips estimator",
			image: pngImage,
			classifyFunc: func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
				return entity.Classification{}, domain.NewClassificationParseError("not json", nil)
			},
			expectedErr:           domain.ErrClassificationParse,
			expectedClassifyCalls: 1,
		},
		{
			name:  "error: untyped classifier error is tagged with classification stage",
			image: pngImage,
			classifyFunc: func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
				return entity.Classification{}, ErrAPI
			},
			expectedErr:           ErrAPI,
			expectedStage:         domain.StageClassification,
			expectedClassifyCalls: 1,
		},
		{
			name:                  "error: clothing without a name",
			image:                 pngImage,
			classifyFunc:          classifyAs(entity.Classification{IsClothing: true, Name: "  ", Probability: 0.5}),
			expectedErr:           domain.ErrClassificationParse,
			expectedClassifyCalls: 1,
		},
		{
			name:         "error: estimation parse failure",
			image:        pngImage,
			classifyFunc: classifyAs(entity.Classification{IsClothing: true, Name: "Jeans", Probability: 0.9}),
			estimateFunc: func(ctx context.Context, garmentName string) (entity.FootprintEstimate, error) {
				return entity.FootprintEstimate{}, domain.NewEstimationParseError("oops", nil)
			},
			expectedErr:           domain.ErrEstimationParse,
			expectedClassifyCalls: 1,
			expectedEstimateCalls: 1,
		},
		{
			name:         "error: untyped estimator error is tagged with estimation stage",
			image:        pngImage,
			classifyFunc: classifyAs(entity.Classification{IsClothing: true, Name: "Jeans", Probability: 0.9}),
			estimateFunc: func(ctx context.Context, garmentName string) (entity.FootprintEstimate, error) {
				return entity.FootprintEstimate{}, ErrAPI
			},
			expectedErr:           domain.ErrInferenceService,
			expectedStage:         domain.StageEstimation,
			expectedClassifyCalls: 1,
			expectedEstimateCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classifier := &mockGarmentClassifier{ClassifyFunc: tc.classifyFunc}
			estimator := &mockFootprintEstimator{EstimateFunc: tc.estimateFunc}
			uc := usecase.NewScanUsecase(classifier, estimator, time.Second)

			result, err := uc.Scan(ctx, tc.image)

			if err == nil {
				t.Fatalf("expected error %v, got nil (result %+v)", tc.expectedErr, result)
			}
			if result != nil {
				t.Errorf("expected nil result on error, got %+v", result)
			}
			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected error %v, got %v", tc.expectedErr, err)
			}
			if tc.expectedStage != "" {
				var ie *domain.InferenceError
				if !errors.As(err, &ie) {
					t.Fatalf("expected *domain.InferenceError, got %T", err)
				}
				if ie.Stage != tc.expectedStage {
					t.Errorf("expected stage %q, got %q", tc.expectedStage, ie.Stage)
				}
			}
			if classifier.ClassifyCalls != tc.expectedClassifyCalls {
				t.Errorf("expected %d classify calls, got %d", tc.expectedClassifyCalls, classifier.ClassifyCalls)
			}
			if estimator.EstimateCalls != tc.expectedEstimateCalls {
				t.Errorf("expected %d estimate calls, got %d", tc.expectedEstimateCalls, estimator.EstimateCalls)
			}
		})
	}
}

func TestScanUsecase_Scan_AppliesTimeout(t *testing.T) {
	classifier := &mockGarmentClassifier{ClassifyFunc: func(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
		<-ctx.Done()
		return entity.Classification{}, ctx.Err()
	}}
	uc := usecase.NewScanUsecase(classifier, &mockFootprintEstimator{}, 10*time.Millisecond)

	_, err := uc.Scan(context.Background(), pngImage)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if !errors.Is(err, domain.ErrInferenceService) {
		t.Errorf("expected timeout to surface as inference service error, got %v", err)
	}
}
