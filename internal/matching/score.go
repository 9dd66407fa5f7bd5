package matching

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Rule weights. They sum above 100 on purpose: candidates that score well on
// many independent dimensions are capped by the final clamp, not distinguished
// further.
const (
	weightIndustry   = 40
	weightMoqFull    = 25
	weightMoqPartial = 20
	weightLocation   = 15
	weightDomestic   = 10
	weightScale      = 10
	weightCross      = 10
	weightPrototype  = 10
	weightRatingTop  = 10
	weightRatingGood = 5
)

const domesticKeyword = "thailand"

// Score computes the weighted relevance of one candidate against the buyer's
// criteria. Pure and deterministic: no I/O, rules evaluated in fixed order,
// reasons appended in that order, total clamped to [0,100].
func Score(cand Candidate, crit Criteria) Result {
	score := 0
	reasons := make([]string, 0, 8)

	// Rule 1: industry (40). The candidate pool is pre-filtered by industry,
	// so a mismatch here means the caller assembled the pool wrong.
	if strings.EqualFold(cand.Industry, crit.Industry) {
		score += weightIndustry
		reasons = append(reasons, fmt.Sprintf("Industry match: %s", crit.Industry))
	} else {
		log.Warn().
			Str("oem_org_id", cand.OemOrgID.String()).
			Str("candidate_industry", cand.Industry).
			Str("criteria_industry", crit.Industry).
			Msg("Scoring candidate outside the requested industry; candidate pool was not pre-filtered")
		reasons = append(reasons, fmt.Sprintf("Industry mismatch: manufacturer serves %s, buyer needs %s", cand.Industry, crit.Industry))
	}

	// Rule 2: MOQ compatibility (up to 25). Only with both buyer bounds present;
	// the four branches are mutually exclusive.
	if crit.MoqMin != nil && crit.MoqMax != nil {
		switch {
		case cand.MoqMax != nil && *crit.MoqMax >= cand.MoqMin && *crit.MoqMin <= *cand.MoqMax:
			score += weightMoqFull
			reasons = append(reasons, fmt.Sprintf("Order quantity %d-%d fits manufacturer range %d-%d", *crit.MoqMin, *crit.MoqMax, cand.MoqMin, *cand.MoqMax))
		case cand.MoqMax == nil && *crit.MoqMin >= cand.MoqMin:
			score += weightMoqPartial
			reasons = append(reasons, fmt.Sprintf("Order quantity meets manufacturer minimum of %d (no stated upper limit)", cand.MoqMin))
		case *crit.MoqMax < cand.MoqMin:
			reasons = append(reasons, fmt.Sprintf("Order too small: below manufacturer minimum of %d", cand.MoqMin))
		case cand.MoqMax != nil && *crit.MoqMin > *cand.MoqMax:
			reasons = append(reasons, fmt.Sprintf("Order too large: exceeds manufacturer capacity of %d", *cand.MoqMax))
		}
	}

	// Rule 3: location (up to 15). General substring containment first; the
	// both-in-Thailand heuristic only fires when that failed, so the two
	// branches are alternatives, not additive.
	if crit.Location != "" && cand.Location != "" {
		candLoc := strings.ToLower(cand.Location)
		critLoc := strings.ToLower(crit.Location)
		if strings.Contains(candLoc, critLoc) || strings.Contains(critLoc, candLoc) {
			score += weightLocation
			reasons = append(reasons, fmt.Sprintf("Location match: %s", cand.Location))
		} else if strings.Contains(candLoc, domesticKeyword) && strings.Contains(critLoc, domesticKeyword) {
			score += weightDomestic
			reasons = append(reasons, "Both located in Thailand")
		}
	}

	// Rule 4: scale (10). Any non-null scale earns the bonus; unknown values
	// are reported as medium.
	if cand.Scale != "" {
		score += weightScale
		switch cand.Scale {
		case "large":
			reasons = append(reasons, "Large-scale manufacturer")
		case "small":
			reasons = append(reasons, "Small-scale manufacturer")
		default:
			reasons = append(reasons, "Medium-scale manufacturer")
		}
	}

	// Rule 5: cross-border (10).
	if crit.CrossBorder && cand.CrossBorder {
		score += weightCross
		reasons = append(reasons, "Supports cross-border orders")
	}

	// Rule 6: prototype support (10).
	if crit.PrototypeNeeded && cand.PrototypeSupport {
		score += weightPrototype
		reasons = append(reasons, "Supports prototype development")
	}

	// Rule 7: rating (up to 10). 4.5 and 5.0 score the same; no reason is
	// pushed for unrated or low-rated candidates.
	if cand.Rating != nil {
		if *cand.Rating >= 4.5 {
			score += weightRatingTop
			reasons = append(reasons, fmt.Sprintf("Highly rated: %.1f (%d reviews)", *cand.Rating, cand.TotalReviews))
		} else if *cand.Rating >= 4.0 {
			score += weightRatingGood
			reasons = append(reasons, fmt.Sprintf("Well rated: %.1f", *cand.Rating))
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Result{
		OemOrgID:    cand.OemOrgID,
		Slug:        cand.Slug,
		DisplayName: cand.DisplayName,
		Score:       score,
		Reasons:     reasons,
	}
}
