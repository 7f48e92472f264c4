package placeholder

const (
	ink   = "#2C2C2C"
	muted = "#666666"
)

func productTexts(title, subtitle string) (*Text, *Text) {
	return &Text{Value: title, X: 200, Y: 260, Size: 28, Color: ink},
		&Text{Value: subtitle, X: 200, Y: 290, Size: 18, Color: muted}
}

func header(label, fill string) *Badge {
	return &Badge{Label: label, Box: Box{10, 10, 390, 35}, Fill: fill}
}

func badgeRow(fill, stroke string, labels []string, boxes []Box) []Badge {
	out := make([]Badge, len(labels))
	for i, l := range labels {
		out[i] = Badge{Label: l, Box: boxes[i], Fill: fill, Stroke: stroke}
	}
	return out
}

var threeBadges = []Box{{50, 320, 150, 345}, {160, 320, 260, 345}, {270, 320, 350, 345}}

// BuiltinCatalog returns the order-bump product shots of the bundle offer.
func BuiltinCatalog() []Spec {
	return []Spec{
		adhesiveBraCups(),
		seamlessThong(),
		pilatesSocks(),
		bundleBanner(),
	}
}

func adhesiveBraCups() Spec {
	title, sub := productTexts("Adhesive Bra Cups", "Invisible Support")
	return Spec{
		Name:       "adhesive-bra-cups",
		Width:      400,
		Height:     400,
		Background: "#FFF5F7",
		Shapes: []Shape{
			{Kind: Ellipse, Box: Box{120, 140, 180, 220}, Fill: "#F8C4D1", Stroke: "#E8A4B8", Width: 2},
			{Kind: Ellipse, Box: Box{220, 140, 280, 220}, Fill: "#F8C4D1", Stroke: "#E8A4B8", Width: 2},
			{Kind: Ellipse, Box: Box{125, 145, 175, 215}, Fill: "#FFE4EC", Stroke: "#E8A4B8"},
			{Kind: Ellipse, Box: Box{225, 145, 275, 215}, Fill: "#FFE4EC", Stroke: "#E8A4B8"},
			{Kind: Rect, Box: Box{190, 170, 210, 180}, Fill: "#F8C4D1", Stroke: "#E8A4B8"},
		},
		Title:    title,
		Subtitle: sub,
		Badges:   badgeRow("#E8B4B8", "#D8A4A8", []string{"No Straps", "Seamless", "Secure"}, threeBadges),
		Header:   header("ESSENTIAL #1", "#E8B4B8"),
		Quality:  DefaultQuality,
	}
}

func seamlessThong() Spec {
	title, sub := productTexts("Seamless Thong", "No Panty Lines")
	shapes := []Shape{
		{Kind: Rect, Box: Box{100, 180, 300, 195}, Fill: "#F5F5F5", Stroke: "#D0D0D0", Width: 2},
		{Kind: Ellipse, Box: Box{150, 185, 250, 240}, Fill: "#F5F5F5", Stroke: "#D0D0D0", Width: 2},
		{Kind: Rect, Box: Box{195, 241, 205, 280}, Fill: "#F5F5F5", Stroke: "#D0D0D0"},
	}
	// seamless texture
	for i := 0; i < 5; i++ {
		y := 200 + float64(i*8)
		x := float64(i)
		shapes = append(shapes,
			Shape{Kind: Ellipse, Box: Box{160 + x, y, 180 + x, y + 3}, Fill: "#E8E8E8"},
			Shape{Kind: Ellipse, Box: Box{220 + x, y, 240 + x, y + 3}, Fill: "#E8E8E8"},
		)
	}

	return Spec{
		Name:       "seamless-thong",
		Width:      400,
		Height:     400,
		Background: "#F8F8F8",
		Shapes:     shapes,
		Title:      title,
		Subtitle:   sub,
		Badges:     badgeRow("#B8B8E8", "#A8A8D8", []string{"Invisible", "Comfort", "Breathable"}, threeBadges),
		Header:     header("ESSENTIAL #2", "#B8B8E8"),
		Quality:    DefaultQuality,
	}
}

func pilatesSocks() Spec {
	title, sub := productTexts("Non-Slip Pilates Socks", "Studio Essential")
	shapes := []Shape{
		{Kind: Ellipse, Box: Box{100, 200, 160, 280}, Fill: "#FFE4E1", Stroke: "#FFB6C1", Width: 2},
		{Kind: Rect, Box: Box{100, 180, 160, 200}, Fill: "#FFE4E1", Stroke: "#FFB6C1", Width: 2},
		{Kind: Ellipse, Box: Box{240, 200, 300, 280}, Fill: "#FFE4E1", Stroke: "#FFB6C1", Width: 2},
		{Kind: Rect, Box: Box{240, 180, 300, 200}, Fill: "#FFE4E1", Stroke: "#FFB6C1", Width: 2},
	}
	grips := [][2]float64{
		{110, 240}, {125, 235}, {140, 235}, {155, 240},
		{250, 240}, {265, 235}, {280, 235}, {295, 240},
	}
	for _, g := range grips {
		shapes = append(shapes, Shape{Kind: Dot, Box: Box{g[0], g[1], 5}, Fill: "#FF69B4", Stroke: "#FF1493"})
	}
	shapes = append(shapes,
		Shape{Kind: Line, Box: Box{115, 210, 125, 210}, Stroke: "#FFB6C1", Width: 2},
		Shape{Kind: Line, Box: Box{255, 210, 265, 210}, Stroke: "#FFB6C1", Width: 2},
	)

	return Spec{
		Name:       "pilates-socks",
		Width:      400,
		Height:     400,
		Background: "#F0F8FF",
		Shapes:     shapes,
		Title:      title,
		Subtitle:   sub,
		Badges: badgeRow("#98FB98", "#7FDD7F", []string{"Grip", "Hygienic", "Stable", "Safe"}, []Box{
			{40, 320, 120, 345}, {130, 320, 210, 345}, {220, 320, 300, 345}, {310, 320, 360, 345},
		}),
		Header:  header("ESSENTIAL #3", "#98FB98"),
		Quality: DefaultQuality,
	}
}

func bundleBanner() Spec {
	return Spec{
		Name:       "bundle-banner",
		Width:      800,
		Height:     200,
		Background: "#ffffff",
		Gradient:   &Gradient{From: "#ffffff", To: "#EBEBFF", Span: 100},
		Title:      &Text{Value: "COMPLETE YOUR OUTFIT BUNDLE", X: 400, Y: 40, Size: 36, Color: ink},
		Subtitle:   &Text{Value: "3 Essential Items - Only $10", X: 400, Y: 90, Size: 48, Color: "#28a745"},
		Texts: []Text{
			{Value: "$95+ Value - Save 90%", X: 400, Y: 130, Size: 24, Color: muted},
		},
		Badges: []Badge{
			{Label: "SAVE\n90%", Box: Box{650, 60, 750, 110}, Fill: "#FF4444", Stroke: "#CC0000", Size: 36},
		},
		Quality: DefaultQuality,
	}
}
