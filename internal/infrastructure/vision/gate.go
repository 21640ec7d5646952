package vision

// DefaultMinImageSide: минимальная сторона фото в пикселях.
const DefaultMinImageSide = 400

// LeafQualityGate: пороги проверки фото листа перед классификацией.
type LeafQualityGate struct {
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxUnderexposedRatio  float64
	MaxGlareRatio         float64
	MinGreenRatio         float64
}
