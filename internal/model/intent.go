package model

// Intent is the purpose category of an internal link.
type Intent string

const (
	// IntentAbout marks company background pages.
	IntentAbout Intent = "about"

	// IntentProducts marks product, portfolio, and solutions pages.
	IntentProducts Intent = "products"

	// IntentResearch marks research, science, and innovation pages.
	IntentResearch Intent = "research"

	// IntentCareers marks job and hiring pages.
	IntentCareers Intent = "careers"

	// IntentContact marks contact pages.
	IntentContact Intent = "contact"
)

// Intents returns all intent categories in classification priority order.
func Intents() []Intent {
	return []Intent{IntentAbout, IntentProducts, IntentResearch, IntentCareers, IntentContact}
}

// String returns the intent name.
func (i Intent) String() string {
	return string(i)
}

// Valid reports whether i is one of the known intent categories.
func (i Intent) Valid() bool {
	for _, known := range Intents() {
		if i == known {
			return true
		}
	}
	return false
}
