package gateway

// Payment method identifiers used by the amount policy.
const (
	MethodUPI        = "upi"
	MethodWallet     = "wallet"
	MethodCOD        = "cod"
	MethodCards      = "cards"
	MethodNetbanking = "netbanking"
)

// PlatformCeiling is the hard upper bound accepted through any method.
const PlatformCeiling = 500000

// methodCeilings holds per-method transaction ceilings. Methods absent from
// the table are bounded only by the platform ceiling.
var methodCeilings = map[string]float64{
	MethodUPI:    100000,
	MethodWallet: 20000,
	MethodCOD:    10000,
}

// AmountCheck is the result of the pre-flight amount validation performed
// before any gateway call.
type AmountCheck struct {
	Valid              bool     `json:"valid"`
	ExceededMethods    []string `json:"exceeded_methods"`
	RecommendedMethods []string `json:"recommended_methods"`
}

// ValidateAmount evaluates an amount against the per-method ceilings and the
// platform ceiling. method may be empty when the caller has not picked one
// yet; only the platform ceiling applies then. The result lets callers build
// a payment-failed page with alternatives instead of an opaque gateway error.
func ValidateAmount(amount float64, method string) AmountCheck {
	check := AmountCheck{
		ExceededMethods:    []string{},
		RecommendedMethods: []string{},
	}

	if amount > PlatformCeiling {
		check.RecommendedMethods = []string{MethodNetbanking, MethodCards}
		return check
	}

	if method != "" {
		if ceiling, ok := methodCeilings[method]; ok && amount > ceiling {
			check.ExceededMethods = append(check.ExceededMethods, method)
			check.RecommendedMethods = recommendFor(amount)
			return check
		}
	}

	check.Valid = true
	return check
}

// recommendFor lists the methods able to carry the amount, cheapest-ceiling
// methods first, unlimited methods last.
func recommendFor(amount float64) []string {
	recommended := []string{}
	for _, m := range []string{MethodCOD, MethodWallet, MethodUPI} {
		if amount <= methodCeilings[m] {
			recommended = append(recommended, m)
		}
	}
	return append(recommended, MethodNetbanking, MethodCards)
}
