package bioactivity

import (
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Residue classes for the amphipathicity profile.
const (
	basicResidues      = "KRH"
	lipophilicResidues = "AVLIMFWY"
)

// kyteDoolittle maps residues to their Kyte-Doolittle hydropathy index.
var kyteDoolittle = map[byte]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// Properties summarizes the physicochemical character of a peptide.
// AmphipathicScore is the coverage percentage of basic plus lipophilic
// residues; bioactive amphipathic peptides tend to score high.
type Properties struct {
	AmphipathicScore float64 `json:"amphipathicScore"`
	BasicCount       int     `json:"basicCount"`
	LipophilicCount  int     `json:"lipophilicCount"`
	OtherCount       int     `json:"otherCount"`
	BasicRatio       float64 `json:"basicRatio"`
	LipophilicRatio  float64 `json:"lipophilicRatio"`
	OtherRatio       float64 `json:"otherRatio"`
	MeanHydropathy   float64 `json:"meanHydropathy"`
}

// Profile computes residue-class counts, ratios, and the mean
// Kyte-Doolittle hydropathy of a peptide. An empty peptide yields the
// zero Properties.
func Profile(pep string) Properties {
	if len(pep) == 0 {
		return Properties{}
	}

	var p Properties
	hydropathy := make([]float64, 0, len(pep))

	for i := 0; i < len(pep); i++ {
		switch {
		case strings.IndexByte(basicResidues, pep[i]) >= 0:
			p.BasicCount++
		case strings.IndexByte(lipophilicResidues, pep[i]) >= 0:
			p.LipophilicCount++
		default:
			p.OtherCount++
		}

		if h, ok := kyteDoolittle[pep[i]]; ok {
			hydropathy = append(hydropathy, h)
		}
	}

	total := float64(len(pep))
	p.BasicRatio = round1(float64(p.BasicCount) / total * 100)
	p.LipophilicRatio = round1(float64(p.LipophilicCount) / total * 100)
	p.OtherRatio = round1(float64(p.OtherCount) / total * 100)
	p.AmphipathicScore = round1(p.BasicRatio + p.LipophilicRatio)

	if len(hydropathy) > 0 {
		p.MeanHydropathy = round1(stat.Mean(hydropathy, nil))
	}

	return p
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}
