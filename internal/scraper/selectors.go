package scraper

// Selectors holds the CSS selectors and class markers used by the field locators.
// Defaults match the page layout known at the time of writing; each one can be
// overridden from configuration when the page changes.
type Selectors struct {
	WinnersRegion  string `mapstructure:"winners_region" yaml:"winners_region"`
	DrawDate       string `mapstructure:"draw_date" yaml:"draw_date"`
	DrawDateAlt    string `mapstructure:"draw_date_alt" yaml:"draw_date_alt"`
	Ball           string `mapstructure:"ball" yaml:"ball"`
	PrimaryMarker  string `mapstructure:"primary_marker" yaml:"primary_marker"`
	SpecialMarker  string `mapstructure:"special_marker" yaml:"special_marker"`
	Multiplier     string `mapstructure:"multiplier" yaml:"multiplier"`
	WinnerRegion   string `mapstructure:"winner_region" yaml:"winner_region"`
	NextDrawRegion string `mapstructure:"next_draw_region" yaml:"next_draw_region"`
	NextDrawDate   string `mapstructure:"next_draw_date" yaml:"next_draw_date"`
	Jackpot        string `mapstructure:"jackpot" yaml:"jackpot"`
	CashValue      string `mapstructure:"cash_value" yaml:"cash_value"`
}

// DefaultSelectors returns the selectors for the current powerball.com layout
func DefaultSelectors() Selectors {
	return Selectors{
		WinnersRegion:  "div#winners",
		DrawDate:       "h5.card-title",
		DrawDateAlt:    "h5.title-date",
		Ball:           "div.form-control",
		PrimaryMarker:  "white-balls",
		SpecialMarker:  "powerball",
		Multiplier:     "span.multiplier",
		WinnerRegion:   "[data-winner-state], .winner-state",
		NextDrawRegion: "div#next-drawing",
		NextDrawDate:   "h5.card-title",
		Jackpot:        "span.game-jackpot-number",
		CashValue:      ".cash-value",
	}
}

// withDefaults fills empty selectors from DefaultSelectors
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&s.WinnersRegion, d.WinnersRegion)
	fill(&s.DrawDate, d.DrawDate)
	fill(&s.DrawDateAlt, d.DrawDateAlt)
	fill(&s.Ball, d.Ball)
	fill(&s.PrimaryMarker, d.PrimaryMarker)
	fill(&s.SpecialMarker, d.SpecialMarker)
	fill(&s.Multiplier, d.Multiplier)
	fill(&s.WinnerRegion, d.WinnerRegion)
	fill(&s.NextDrawRegion, d.NextDrawRegion)
	fill(&s.NextDrawDate, d.NextDrawDate)
	fill(&s.Jackpot, d.Jackpot)
	fill(&s.CashValue, d.CashValue)
	return s
}
