package ui

import "image/color"

// Theme colors - variables so theme presets can swap them at runtime
var (
	colBg        = color.NRGBA{R: 245, G: 245, B: 247, A: 255}
	colText      = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	colMuted     = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colSurface   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBorder    = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colCell      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colCellHover = color.NRGBA{R: 232, G: 240, B: 254, A: 255}
	colCellEmpty = color.NRGBA{R: 238, G: 238, B: 240, A: 255}
	colAccent    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colSuccess   = color.NRGBA{R: 40, G: 167, B: 69, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colDisabled  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	// Config error banner colors
	colErrorBannerBg   = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colErrorBannerText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	// Overlay polish colors
	colShadow      = color.NRGBA{R: 0, G: 0, B: 0, A: 60}  // Modal shadow (deeper)
	colShadowOuter = color.NRGBA{R: 0, G: 0, B: 0, A: 25}  // Outer shadow layer
	colBackdrop    = color.NRGBA{R: 0, G: 0, B: 0, A: 180} // Modal backdrop
	colCodeBg      = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colCodeBorder  = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colQuoteBg     = color.NRGBA{R: 248, G: 248, B: 248, A: 255}
	colQuoteLine   = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	colDropHint    = color.NRGBA{R: 66, G: 133, B: 244, A: 90} // Cell highlight under a drag
)
