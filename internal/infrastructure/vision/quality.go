//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
)

// Enabled сообщает, собрана ли проверка качества с OpenCV.
const Enabled = true

// NewLeafQualityGate создаёт проверку с порогами по умолчанию.
func NewLeafQualityGate() *LeafQualityGate {
	return &LeafQualityGate{
		MinImageSide:          DefaultMinImageSide,
		MinSharpnessEdgeRatio: 0.008,
		MaxOverexposedRatio:   0.35,
		MaxUnderexposedRatio:  0.45,
		MaxGlareRatio:         0.08,
		MinGreenRatio:         0.05,
	}
}

// Inspect отбраковывает мелкие, размытые, пере- и недоэкспонированные фото,
// фото с бликами и кадры, где почти нет зелени.
func (g *LeafQualityGate) Inspect(ctx context.Context, imageData []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mat, err := decodeToMat(imageData)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrPoorImage, err)
	}
	defer mat.Close()

	if mat.Cols() < g.MinImageSide || mat.Rows() < g.MinImageSide {
		return fmt.Errorf("%w: image is too small (%dx%d)", entity.ErrPoorImage, mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	if ratio := ratioOfMask(edges); ratio < g.MinSharpnessEdgeRatio {
		return fmt.Errorf("%w: image is blurry (edge_ratio=%.4f)", entity.ErrPoorImage, ratio)
	}

	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, 250, 255, gocv.ThresholdBinary)
	if ratio := ratioOfMask(bright); ratio > g.MaxOverexposedRatio {
		return fmt.Errorf("%w: overexposed image (ratio=%.4f)", entity.ErrPoorImage, ratio)
	}

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	if ratio := ratioOfMask(dark); ratio > g.MaxUnderexposedRatio {
		return fmt.Errorf("%w: underexposed image (ratio=%.4f)", entity.ErrPoorImage, ratio)
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return fmt.Errorf("%w: invalid hsv channels", entity.ErrPoorImage)
	}

	lowSat := gocv.NewMat()
	defer lowSat.Close()
	gocv.Threshold(channels[1], &lowSat, 40, 255, gocv.ThresholdBinaryInv)

	highVal := gocv.NewMat()
	defer highVal.Close()
	gocv.Threshold(channels[2], &highVal, 245, 255, gocv.ThresholdBinary)

	glare := gocv.NewMat()
	defer glare.Close()
	gocv.BitwiseAnd(lowSat, highVal, &glare)
	if ratio := ratioOfMask(glare); ratio > g.MaxGlareRatio {
		return fmt.Errorf("%w: too much glare (ratio=%.4f)", entity.ErrPoorImage, ratio)
	}

	// Зелень: оттенок 35..85 в шкале OpenCV (0..180), заметная насыщенность.
	green := gocv.NewMat()
	defer green.Close()
	gocv.InRangeWithScalar(hsv, gocv.NewScalar(35, 40, 40, 0), gocv.NewScalar(85, 255, 255, 0), &green)
	if ratio := ratioOfMask(green); ratio < g.MinGreenRatio {
		return fmt.Errorf("%w: no leaf in frame (green_ratio=%.4f)", entity.ErrPoorImage, ratio)
	}

	return nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

var _ port.LeafInspector = (*LeafQualityGate)(nil)
