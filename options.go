package octavo

// Option is a functional option for configuring a new Doc.
type Option func(*docConfig)

type docConfig struct {
	orientation string
	unit        string
	size        string
	pageW       float64
	pageH       float64
	lMargin     float64
	tMargin     float64
	rMargin     float64
	bMargin     float64
	marginsSet  bool
	breakSet    bool
	meas        Measurer
}

func defaultConfig() docConfig {
	return docConfig{
		orientation: OrientationPortrait,
		unit:        UnitMillimeter,
		size:        PageSizeA4,
	}
}

// WithOrientation sets the page orientation.
// Use OrientationPortrait ("portrait") or OrientationLandscape ("landscape").
func WithOrientation(orientation string) Option {
	return func(c *docConfig) {
		c.orientation = orientation
	}
}

// WithUnit sets the measurement unit for page dimensions and drawing.
// Use UnitPoint ("pt"), UnitMillimeter ("mm"), UnitCentimeter ("cm"), or
// UnitInch ("in").
func WithUnit(unit string) Option {
	return func(c *docConfig) {
		c.unit = unit
	}
}

// WithPageSize sets the page size by name.
// Use PageSizeA3, PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal,
// or PageSizeTabloid.
func WithPageSize(size string) Option {
	return func(c *docConfig) {
		c.size = size
	}
}

// WithPageSizeCustom sets a custom page size in the configured unit.
func WithPageSizeCustom(width, height float64) Option {
	return func(c *docConfig) {
		c.pageW, c.pageH = width, height
	}
}

// WithMargins sets the left, top and right margins in the configured unit.
func WithMargins(left, top, right float64) Option {
	return func(c *docConfig) {
		c.lMargin, c.tMargin, c.rMargin = left, top, right
		c.marginsSet = true
	}
}

// WithBreakMargin sets the bottom margin that defines the page-break
// trigger, in the configured unit.
func WithBreakMargin(bottom float64) Option {
	return func(c *docConfig) {
		c.bMargin = bottom
		c.breakSet = true
	}
}

// WithMeasurer replaces the Standard-14 text measurer.
func WithMeasurer(m Measurer) Option {
	return func(c *docConfig) {
		c.meas = m
	}
}
