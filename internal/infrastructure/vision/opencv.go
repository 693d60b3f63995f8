//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
)

// CVNormalizer выполняет нормализацию средствами OpenCV.
// FastNlMeansDenoising в OpenCV принимает только 8-битные изображения,
// поэтому шум подавляется до растяжения в 16 бит.
type CVNormalizer struct {
	Params NormalizerParams
}

// NewCVNormalizer создаёт нормализатор OpenCV с параметрами по умолчанию.
func NewCVNormalizer() *CVNormalizer {
	return &CVNormalizer{Params: DefaultNormalizerParams()}
}

// Normalize возвращает 16-битную карту яркости.
func (n *CVNormalizer) Normalize(img *entity.RawImage) (*entity.IntensityMap, error) {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return nil, &entity.InvalidImageError{Reason: "empty image"}
	}

	gray, err := cvLuminance(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	denoised := gocv.NewMat()
	defer denoised.Close()
	gocv.FastNlMeansDenoisingWithParams(gray, &denoised, float32(n.Params.DenoiseStrength),
		n.Params.TemplateWindow, n.Params.SearchWindow)

	wide := gocv.NewMat()
	defer wide.Close()
	denoised.ConvertToWithParams(&wide, gocv.MatTypeCV16U, float32(entity.IntensityScale), 0)

	clahe := gocv.NewCLAHEWithParams(n.Params.ClipLimit, image.Pt(n.Params.TileGridX, n.Params.TileGridY))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(wide, &enhanced)

	return matToIntensity(enhanced), nil
}

// CVSegmenter выполняет сегментацию средствами OpenCV.
// AdaptiveThreshold в OpenCV работает только с 8 битами, поэтому
// гауссово среднее считается отдельно по карте в float32.
type CVSegmenter struct {
	Params SegmenterParams
}

// NewCVSegmenter создаёт сегментатор OpenCV с параметрами по умолчанию.
func NewCVSegmenter() *CVSegmenter {
	return &CVSegmenter{Params: DefaultSegmenterParams()}
}

// Segment возвращает маску и внешние контуры (RetrievalExternal, ChainApproxSimple).
func (s *CVSegmenter) Segment(m *entity.IntensityMap) (*entity.Segmentation, error) {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return nil, &entity.InvalidImageError{Reason: "empty intensity map"}
	}
	if s.Params.BlockSize < 3 || s.Params.BlockSize%2 == 0 {
		return nil, errors.New("threshold block size must be odd and at least 3")
	}

	src := intensityToMat(m)
	defer src.Close()

	wide := gocv.NewMat()
	defer wide.Close()
	src.ConvertTo(&wide, gocv.MatTypeCV32F)

	mean := gocv.NewMat()
	defer mean.Close()
	gocv.GaussianBlur(wide, &mean, image.Pt(s.Params.BlockSize, s.Params.BlockSize), 0, 0, gocv.BorderReplicate)

	offset := float32(s.Params.Offset * entity.IntensityScale)
	bin := gocv.Zeros(m.Height, m.Width, gocv.MatTypeCV8UC1)
	defer bin.Close()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if wide.GetFloatAt(y, x) <= mean.GetFloatAt(y, x)-offset {
				bin.SetUCharAt(y, x, 255)
			}
		}
	}

	found := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	filled := gocv.Zeros(m.Height, m.Width, gocv.MatTypeCV8UC1)
	defer filled.Close()
	contours := make([]entity.Contour, 0, found.Size())
	if found.Size() > 0 {
		gocv.DrawContours(&filled, found, -1, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
		for i := 0; i < found.Size(); i++ {
			contours = append(contours, entity.Contour(found.At(i).ToPoints()))
		}
	}

	mask := entity.NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			mask.Set(x, y, filled.GetUCharAt(y, x) != 0)
		}
	}
	return &entity.Segmentation{Mask: mask, Contours: contours}, nil
}

// cvLuminance возвращает 8-битную яркость снимка.
// ImageToMatRGB кладёт каналы в порядке BGR, как принято в OpenCV.
func cvLuminance(img *entity.RawImage) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img.Image())
	if err != nil {
		return gocv.Mat{}, &entity.InvalidImageError{Reason: "failed to convert image", Cause: err}
	}
	defer mat.Close()
	if mat.Empty() {
		return gocv.Mat{}, &entity.InvalidImageError{Reason: "empty image"}
	}

	gray := gocv.NewMat()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

func matToIntensity(mat gocv.Mat) *entity.IntensityMap {
	m := entity.NewIntensityMap(mat.Cols(), mat.Rows())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, uint16(mat.GetShortAt(y, x)))
		}
	}
	return m
}

func intensityToMat(m *entity.IntensityMap) gocv.Mat {
	mat := gocv.Zeros(m.Height, m.Width, gocv.MatTypeCV16UC1)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			mat.SetShortAt(y, x, int16(m.At(x, y)))
		}
	}
	return mat
}

var (
	_ port.Normalizer = (*CVNormalizer)(nil)
	_ port.Segmenter  = (*CVSegmenter)(nil)
)
