package renderer

// Measurer reports the ink width and height of text at a pixel size.
type Measurer interface {
	Measure(text string, size float64) (float64, float64, error)
}

// FitParams bounds the auto-fit search.
type FitParams struct {
	Start     int
	Floor     int
	Step      int
	MaxWidth  float64
	MaxHeight float64
}

// FitFontSize walks down from Start in Step increments until text fits
// inside MaxWidth x MaxHeight, stopping at Floor.
func FitFontSize(m Measurer, text string, p FitParams) (int, error) {
	step := max(p.Step, 1)
	size := max(p.Start, p.Floor)

	w, h, err := m.Measure(text, float64(size))
	if err != nil {
		return 0, err
	}
	for (w > p.MaxWidth || h > p.MaxHeight) && size > p.Floor {
		size = max(size-step, p.Floor)
		if w, h, err = m.Measure(text, float64(size)); err != nil {
			return 0, err
		}
	}
	return size, nil
}

// inflate applies the visual-weight correction to a fitted size.
func inflate(size int) int {
	return int(float64(size) * fontInflation)
}
