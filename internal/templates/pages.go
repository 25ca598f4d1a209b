package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/tmorrow/highroad/internal/laws"
	"github.com/tmorrow/highroad/internal/model"
)

// HomeMetrics summarizes the catalog for the landing page.
type HomeMetrics struct {
	TotalStates    int
	TotalCountries int
	HasData        bool
}

// Home renders the landing page.
func Home(metrics HomeMetrics) templ.Component {
	return layout("Cannabis Travel Guides", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>High Road</h1>\n<p>Legal cannabis travel, state by state and country by country.</p>\n"); err != nil {
			return err
		}
		if !metrics.HasData {
			_, err := io.WriteString(w, "<p>No data loaded yet. Run the seed command.</p>\n")
			return err
		}
		_, err := fmt.Fprintf(w, "<p>Tracking %d U.S. states and %d countries.</p>\n",
			metrics.TotalStates, metrics.TotalCountries)
		return err
	}))
}

// States renders the public state list.
func States(states []model.StateLaw) templ.Component {
	return layout("U.S. State Laws", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>U.S. State Cannabis Laws</h1>\n<ul>\n"); err != nil {
			return err
		}
		for _, s := range states {
			if _, err := fmt.Fprintf(w, `<li><a href="/states/%s">%s</a> — %s</li>`+"\n",
				esc(s.Slug), esc(s.Name), esc(string(s.Status))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	}))
}

// StateDetail renders a state guide page.
func StateDetail(s *model.StateLaw, freshness laws.Freshness) templ.Component {
	return layout(s.Name, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>Status: %s (%s)</p>\n",
			esc(s.Name), esc(string(s.Status)), esc(string(freshness))); err != nil {
			return err
		}
		for _, f := range []struct {
			label string
			value string
			ok    bool
		}{
			{"Possession limits", s.PossessionLimits.String, s.PossessionLimits.Valid},
			{"Tourist notes", s.TouristNotes.String, s.TouristNotes.Valid},
			{"Where to consume", s.WhereToConsume.String, s.WhereToConsume.Valid},
			{"Driving", s.DrivingRules.String, s.DrivingRules.Valid},
			{"Airports", s.AirportRules.String, s.AirportRules.Valid},
		} {
			if !f.ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<p>%s</p>\n", esc(f.label), esc(f.value)); err != nil {
				return err
			}
		}
		return nil
	}))
}

// Countries renders the public country list, grouped order by the store.
func Countries(countries []model.CountryLaw) templ.Component {
	return layout("Country Laws", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Cannabis Laws by Country</h1>\n<ul>\n"); err != nil {
			return err
		}
		for _, c := range countries {
			region := ""
			if c.Region.Valid {
				region = " (" + c.Region.String + ")"
			}
			if _, err := fmt.Fprintf(w, `<li><a href="/countries/%s">%s</a>%s — %s</li>`+"\n",
				esc(c.Slug), esc(c.Name), esc(region), esc(string(c.Status))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	}))
}

// CountryDetail renders a country guide page.
func CountryDetail(c *model.CountryLaw, freshness laws.Freshness) templ.Component {
	return layout(c.Name, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>Status: %s (%s)</p>\n",
			esc(c.Name), esc(string(c.Status)), esc(string(freshness))); err != nil {
			return err
		}
		if c.AgeLimit.Valid {
			if _, err := fmt.Fprintf(w, "<p>Minimum age: %d</p>\n", c.AgeLimit.Int64); err != nil {
				return err
			}
		}
		for _, f := range []struct {
			label string
			value string
			ok    bool
		}{
			{"Possession limits", c.PossessionLimits.String, c.PossessionLimits.Valid},
			{"Purchase limits", c.PurchaseLimits.String, c.PurchaseLimits.Valid},
			{"Consumption", c.ConsumptionNotes.String, c.ConsumptionNotes.Valid},
			{"Penalties", c.Penalties.String, c.Penalties.Valid},
			{"Airports", c.AirportRules.String, c.AirportRules.Valid},
		} {
			if !f.ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<p>%s</p>\n", esc(f.label), esc(f.value)); err != nil {
				return err
			}
		}
		if c.SourceURL.Valid {
			if _, err := fmt.Fprintf(w, `<p><a href="%s" rel="nofollow">Official source</a></p>`+"\n", esc(c.SourceURL.String)); err != nil {
				return err
			}
		}
		return nil
	}))
}

// CityGuide renders a city guide page with dispensaries and friendly hotels.
func CityGuide(city string, dispensaries []model.Dispensary, hotels []model.Hotel) templ.Component {
	return layout(city+" Guide", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s Cannabis Travel Guide</h1>\n<h2>Dispensaries</h2>\n<ul>\n", esc(city)); err != nil {
			return err
		}
		for _, d := range dispensaries {
			rating := ""
			if d.Rating.Valid {
				rating = fmt.Sprintf(" — %.1f", d.Rating.Float64)
			}
			if _, err := fmt.Fprintf(w, "<li>%s%s</li>\n", esc(d.Name), esc(rating)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n<h2>420-Friendly Hotels</h2>\n<ul>\n"); err != nil {
			return err
		}
		for _, h := range hotels {
			policy := ""
			if h.SmokingPolicy.Valid {
				policy = " — " + h.SmokingPolicy.String
			}
			if _, err := fmt.Fprintf(w, "<li>%s%s</li>\n", esc(h.Name), esc(policy)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	}))
}

// NewsletterThanks confirms a newsletter signup.
func NewsletterThanks(email string) templ.Component {
	return layout("Subscribed", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<h1>Thanks!</h1>\n<p>%s is on the list.</p>\n", esc(email))
		return err
	}))
}
