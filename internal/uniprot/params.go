package uniprot

// Default analysis parameters when no protein record informs them.
const (
	defaultSignalLength = 20
	defaultMinSites     = 4
	defaultMinSpacing   = 5
	defaultMaxLength    = 100
)

// Params are the analysis parameters recommended for a protein.
type Params struct {
	SignalLength     int `json:"signalPeptideLength"`
	MinSites         int `json:"minCleavageSites"`
	MinSpacing       int `json:"minCleavageSpacing"`
	MaxPeptideLength int `json:"maxPeptideLength"`
}

// DefaultParams returns the paper defaults used when a protein has no
// record to derive parameters from.
func DefaultParams() Params {
	return Params{
		SignalLength:     defaultSignalLength,
		MinSites:         defaultMinSites,
		MinSpacing:       defaultMinSpacing,
		MaxPeptideLength: defaultMaxLength,
	}
}

// RecommendedParams derives analysis parameters from a protein's length,
// signal peptide end, and number of annotated peptides. Proteins with
// many known peptides warrant a higher site threshold; short proteins
// tolerate tighter spacing.
func RecommendedParams(length, signalEnd, numPeptides int) Params {
	estimatedSites := float64(numPeptides) * 1.5

	var minSites int
	switch {
	case estimatedSites > 12:
		minSites = 5
	case estimatedSites > 8:
		minSites = 4
	case estimatedSites > 5:
		minSites = 3
	default:
		minSites = 2
	}

	var minSpacing int
	switch {
	case length < 150:
		minSpacing = 3
	case length < 300:
		minSpacing = 4
	default:
		minSpacing = 5
	}

	return Params{
		SignalLength:     signalEnd,
		MinSites:         minSites,
		MinSpacing:       minSpacing,
		MaxPeptideLength: defaultMaxLength,
	}
}
