// Package payload normalizes externally supplied scenario documents into the
// canonical engine types. Legacy documents (version 1 and below) used several
// alternate key names; the fallbacks live here, at the boundary, so the
// engine itself carries no legacy branching.
package payload

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/waterfall-backend/internal/domain"
	"github.com/simaogato/waterfall-backend/internal/usecase/scenario"
)

// currentVersion is the canonical document shape. Documents at or above it
// must use canonical keys; older documents may use the legacy aliases.
const currentVersion = 2

const dateLayout = "2006-01-02"

// Input is a normalized scenario document ready for the engine and the
// snapshot store
type Input struct {
	ProjectID uuid.UUID
	Scenario  scenario.Scenario
}

// document is the raw wire shape. Pointer fields distinguish "absent" from
// zero; the legacy aliases are consulted only for documents below
// currentVersion.
type document struct {
	Version    int    `yaml:"version"`
	ProjectID  string `yaml:"project_id"`
	ScenarioID string `yaml:"scenario_id"`
	Name       string `yaml:"name"`

	HurdleMethod string `yaml:"hurdle_method"`
	Method       string `yaml:"method"` // legacy alias of hurdle_method

	LPOwnership        *float64 `yaml:"lp_ownership"`
	LPOwnershipPercent *float64 `yaml:"lp_ownership_percent"` // legacy, 0-100 scale

	Tiers []tierDocument `yaml:"tiers"`

	Periods   []periodDocument `yaml:"periods"`
	CashFlows []periodDocument `yaml:"cash_flows"` // legacy alias of periods
}

type tierDocument struct {
	IRRHurdle *float64 `yaml:"irr_hurdle"`
	PrefRate  *float64 `yaml:"pref_rate"` // legacy alias of irr_hurdle

	EquityMultipleHurdle *float64 `yaml:"equity_multiple_hurdle"`
	EMxHurdle            *float64 `yaml:"emx_hurdle"` // legacy alias of equity_multiple_hurdle

	LPSplit *float64 `yaml:"lp_split"`
	GPSplit *float64 `yaml:"gp_split"`

	PromotePercent *float64 `yaml:"promote_percent"`
	Promote        *float64 `yaml:"promote"` // legacy alias of promote_percent

	GPCatchUp       bool   `yaml:"gp_catch_up"`
	ReturnOfCapital string `yaml:"return_of_capital"`
}

type periodDocument struct {
	Index *int   `yaml:"index"`
	Date  string `yaml:"date"`

	NetCashFlow *float64 `yaml:"net_cash_flow"`
	Amount      *float64 `yaml:"amount"` // legacy alias of net_cash_flow
}

// Normalize parses a scenario document (YAML, which includes JSON) and maps
// it onto the canonical Scenario/WaterfallSettings/Period types. Non-finite
// cash flows and rates are rejected here with an InputDataError naming the
// period: decimal amounts cannot represent NaN, so this is the engine's
// NaN firewall.
func Normalize(raw []byte) (*Input, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario document: %w", err)
	}

	legacy := doc.Version < currentVersion

	projectID, err := parseID(doc.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	scenarioID, err := parseID(doc.ScenarioID)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario_id: %w", err)
	}

	settings, err := normalizeSettings(&doc, legacy)
	if err != nil {
		return nil, err
	}

	periods, err := normalizePeriods(&doc, legacy)
	if err != nil {
		return nil, err
	}

	return &Input{
		ProjectID: projectID,
		Scenario: scenario.Scenario{
			ID:       scenarioID,
			Name:     doc.Name,
			Periods:  periods,
			Settings: settings,
		},
	}, nil
}

func normalizeSettings(doc *document, legacy bool) (domain.WaterfallSettings, error) {
	var settings domain.WaterfallSettings

	method := doc.HurdleMethod
	if legacy && method == "" {
		method = doc.Method
	}
	hurdleMethod, err := parseHurdleMethod(method)
	if err != nil {
		return settings, err
	}

	ownership := doc.LPOwnership
	if legacy && ownership == nil && doc.LPOwnershipPercent != nil {
		scaled := *doc.LPOwnershipPercent / 100
		ownership = &scaled
	}
	if ownership == nil {
		return settings, &domain.ConfigurationError{Reason: "lp_ownership is required"}
	}
	lpOwnership, err := toDecimal(*ownership, "lp_ownership")
	if err != nil {
		return settings, err
	}

	tiers := make([]domain.Tier, 0, len(doc.Tiers))
	for i := range doc.Tiers {
		tier, err := normalizeTier(&doc.Tiers[i], i+1, legacy)
		if err != nil {
			return settings, err
		}
		tiers = append(tiers, tier)
	}

	settings.HurdleMethod = hurdleMethod
	settings.LPOwnership = lpOwnership
	settings.Tiers = tiers
	return settings, nil
}

func normalizeTier(doc *tierDocument, ordinal int, legacy bool) (domain.Tier, error) {
	tier := domain.Tier{Ordinal: ordinal, GPCatchUp: doc.GPCatchUp}

	irr := doc.IRRHurdle
	if legacy && irr == nil {
		irr = doc.PrefRate
	}
	emx := doc.EquityMultipleHurdle
	if legacy && emx == nil {
		emx = doc.EMxHurdle
	}
	promote := doc.PromotePercent
	if legacy && promote == nil {
		promote = doc.Promote
	}

	for _, rate := range []*float64{irr, emx, promote, doc.LPSplit, doc.GPSplit} {
		if rate != nil && !isFinite(*rate) {
			return tier, &domain.ConfigurationError{TierOrdinal: ordinal, Reason: "rates must be finite numbers"}
		}
	}

	tier.IRRHurdle = irr
	tier.EquityMultipleHurdle = emx
	if promote != nil {
		tier.PromotePercent = decimal.NewFromFloat(*promote)
	}
	if doc.LPSplit != nil {
		tier.LPSplit = decimal.NewFromFloat(*doc.LPSplit)
	}
	if doc.GPSplit != nil {
		tier.GPSplit = decimal.NewFromFloat(*doc.GPSplit)
	}

	if ordinal == 1 {
		policy, err := parseReturnOfCapital(doc.ReturnOfCapital)
		if err != nil {
			return tier, err
		}
		tier.ReturnOfCapital = policy
	}

	return tier, nil
}

func normalizePeriods(doc *document, legacy bool) ([]domain.Period, error) {
	raw := doc.Periods
	if legacy && len(raw) == 0 {
		raw = doc.CashFlows
	}

	periods := make([]domain.Period, 0, len(raw))
	for i := range raw {
		p := &raw[i]

		index := i
		if p.Index != nil {
			index = *p.Index
		}

		flow := p.NetCashFlow
		if legacy && flow == nil {
			flow = p.Amount
		}
		if flow == nil {
			return nil, &domain.InputDataError{PeriodIndex: index, Reason: "net_cash_flow is required"}
		}
		if !isFinite(*flow) {
			return nil, &domain.InputDataError{PeriodIndex: index, Reason: "net_cash_flow must be a finite number"}
		}

		date, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return nil, &domain.InputDataError{PeriodIndex: index, Reason: "date must use YYYY-MM-DD format"}
		}

		periods = append(periods, domain.Period{
			Index:       index,
			Date:        date,
			NetCashFlow: decimal.NewFromFloat(*flow),
		})
	}

	return periods, nil
}

func parseHurdleMethod(raw string) (domain.HurdleMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "IRR":
		return domain.HurdleMethodIRR, nil
	case "EQUITY_MULTIPLE", "EMX":
		return domain.HurdleMethodEquityMultiple, nil
	case "EITHER_OF", "EITHER":
		return domain.HurdleMethodEitherOf, nil
	default:
		return "", &domain.ConfigurationError{Reason: fmt.Sprintf("unknown hurdle method %q", raw)}
	}
}

func parseReturnOfCapital(raw string) (domain.ReturnOfCapitalPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "SEQUENTIAL_LP_FIRST", "LP_FIRST":
		// Sequential is the default when the document is silent
		return domain.ReturnOfCapitalSequentialLPFirst, nil
	case "PARI_PASSU":
		return domain.ReturnOfCapitalPariPassu, nil
	default:
		return "", &domain.ConfigurationError{TierOrdinal: 1, Reason: fmt.Sprintf("unknown return of capital policy %q", raw)}
	}
}

func parseID(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(raw)
}

func toDecimal(value float64, field string) (decimal.Decimal, error) {
	if !isFinite(value) {
		return decimal.Zero, &domain.ConfigurationError{Reason: field + " must be a finite number"}
	}
	return decimal.NewFromFloat(value), nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
