package services

import (
	"cmp"
	"errors"
	"poi-map-service/internal/domain"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultSimilarLimit = 5

var ErrUnknownPOI = errors.New("unknown point of interest")

// Criteria narrowing the visible points. Zero values mean "no constraint".
type FilterCriteria struct {
	CategoryID string
	RadiusKm   *float64
	Keyword    string
}

// Return the points matching every criterion, in input order.
//
// A radius only matches points that were ranked against an origin: when
// originSet is false, or a point has no distance, the point is dropped.
func Filter(pois []*domain.PointOfInterest, c FilterCriteria, originSet bool) []*domain.PointOfInterest {
	keyword := FoldText(strings.TrimSpace(c.Keyword))

	out := make([]*domain.PointOfInterest, 0, len(pois))
	for _, p := range pois {
		if c.CategoryID != "" && p.CategoryID != c.CategoryID {
			continue
		}
		if c.RadiusKm != nil {
			if !originSet || p.DistanceKm == nil || *p.DistanceKm > *c.RadiusKm {
				continue
			}
		}
		if keyword != "" && !strings.Contains(FoldText(p.Name), keyword) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FoldText lower-cases s and strips diacritics so "Phở Đất" matches "pho dat".
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.NewReplacer("đ", "d", "Đ", "D").Replace(folded)
	return strings.ToLower(folded)
}

// Return up to limit other points sharing the category of the point with the
// given id, best rated first. limit <= 0 selects 5.
func Similar(pois []*domain.PointOfInterest, id string, limit int) ([]*domain.PointOfInterest, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	var target *domain.PointOfInterest
	for _, p := range pois {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		return nil, ErrUnknownPOI
	}

	out := make([]*domain.PointOfInterest, 0, limit)
	if target.CategoryID == "" {
		return out, nil
	}
	for _, p := range pois {
		if p.ID != id && p.CategoryID == target.CategoryID {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, func(a, b *domain.PointOfInterest) int { return cmp.Compare(b.Rating, a.Rating) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
