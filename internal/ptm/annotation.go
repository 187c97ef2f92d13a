// Package ptm detects post-translational modification signatures in
// peptide candidates and renders modified sequence representations.
package ptm

// Modification types. The set is fixed; detection checks are independent
// and any subset may fire for one peptide.
const (
	TypeCAmidation    = "C-terminal amidation"
	TypePyroglutamate = "N-terminal pyroglutamate"
	TypeDisulfide     = "Disulfide bonds"
	TypeAcylation     = "Ghrelin acylation"
	TypeSulfation     = "Tyrosine O-sulfation"
	TypeGlycosylation = "N-glycosylation"
)

// Annotation describes one detected modification. Position and Positions
// are 1-based within the peptide's local coordinate frame.
type Annotation struct {
	Type        string `json:"type"`
	ShortName   string `json:"shortName"`
	Enzyme      string `json:"enzyme"`
	Motif       string `json:"motif,omitempty"`
	Residue     string `json:"residue,omitempty"`
	Position    int    `json:"position,omitempty"`
	Positions   []int  `json:"positions,omitempty"`
	Count       int    `json:"count,omitempty"`
	Description string `json:"description"`
}
