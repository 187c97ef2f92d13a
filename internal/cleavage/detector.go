package cleavage

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-pep/internal/sequence"
)

// disallowedFollow lists residues that veto a dibasic match when they
// appear immediately after the motif. Hydrophobic or basic followers make
// the site a poor convertase substrate.
const disallowedFollow = "RKILPVH"

// maxAnchorDistance bounds how far upstream of an amidation-terminal
// motif the ultra-permissive scan looks for a single-basic anchor.
const maxAnchorDistance = 50

// Detector scans validated sequences for convertase recognition motifs.
// The zero value is not usable; construct with NewDetector.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a detector with a no-op logger.
func NewDetector() *Detector {
	return &Detector{logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostic messages.
func (d *Detector) SetLogger(l *zap.Logger) {
	d.logger = l
}

// FindSites scans seq for cleavage sites under the given mode. Scanning
// is restricted to the region after signalLength residues; the signal
// peptide is never a cleavage target. Sites are returned in ascending
// index order. An unknown mode is a configuration error: it yields an
// empty result with a logged diagnostic, never a panic.
func (d *Detector) FindSites(seq string, mode Mode, signalLength, minSpacing int) []Site {
	if signalLength < 0 {
		signalLength = 0
	}
	if signalLength >= len(seq) {
		return nil
	}

	switch mode {
	case ModeStrict, ModePermissive:
		return d.scanDibasic(seq, mode, signalLength, minSpacing)
	case ModeUltraPermissive:
		return d.scanUltraPermissive(seq, signalLength)
	case ModePCSK567:
		return d.scanFurin(seq, signalLength)
	}

	d.logger.Warn("unsupported detection mode, returning no sites",
		zap.String("mode", string(mode)))
	return nil
}

// scanDibasic finds KK/KR/RR/RK motifs. Strict mode additionally requires
// the motif not to be preceded by K/R inside the scanned region and drops
// any match whose index is closer than minSpacing to the previous accepted
// site's cleavage point, so acceptance depends on scan order.
func (d *Detector) scanDibasic(seq string, mode Mode, signalLength, minSpacing int) []Site {
	var sites []Site

	i := signalLength
	for i+1 < len(seq) {
		if !sequence.IsBasic(seq[i]) || !sequence.IsBasic(seq[i+1]) {
			i++
			continue
		}

		// The motif needs a following residue outside the disallowed set;
		// a dibasic pair at the extreme end of the sequence is not a site.
		if i+2 >= len(seq) || strings.IndexByte(disallowedFollow, seq[i+2]) >= 0 {
			i++
			continue
		}

		if mode == ModeStrict {
			// Preceding-residue exclusion, evaluated within the scanned
			// region only: a motif at the region start has no visible
			// predecessor.
			if i > signalLength && sequence.IsBasic(seq[i-1]) {
				i++
				continue
			}

			// Spacing filter: the match is consumed but the site dropped.
			if len(sites) > 0 && i-sites[len(sites)-1].Position < minSpacing {
				i += 2
				continue
			}
		}

		sites = append(sites, Site{
			Position: i + 2,
			Motif:    seq[i : i+2],
			Index:    i,
			Kind:     KindDibasic,
		})
		i += 2
	}

	return sites
}

// scanUltraPermissive runs the two-pass permissive enumeration. Pass 1
// finds amidation-terminal motifs ([KR][FY] with an optional trailing G)
// and pairs each with the nearest preceding single K/R within
// maxAnchorDistance residues. Pass 2 marks every remaining isolated K/R.
// The merged site list is sorted by index.
func (d *Detector) scanUltraPermissive(seq string, signalLength int) []Site {
	var sites []Site
	used := make(map[int]bool)

	// Pass 1: amidation-terminal motifs and their anchors.
	for i := signalLength; i+1 < len(seq); i++ {
		if !sequence.IsBasic(seq[i]) || (seq[i+1] != 'F' && seq[i+1] != 'Y') {
			continue
		}

		motifEnd := i + 2
		if motifEnd < len(seq) && seq[motifEnd] == 'G' {
			motifEnd++
		}

		sites = append(sites, Site{
			Position: motifEnd,
			Motif:    seq[i:motifEnd],
			Index:    i,
			Kind:     KindAmidation,
		})
		for j := i; j < motifEnd; j++ {
			used[j] = true
		}

		if anchor, ok := d.findAnchor(seq, signalLength, i, used); ok {
			sites = append(sites, Site{
				Position: anchor + 1,
				Motif:    seq[anchor : anchor+1],
				Index:    anchor,
				Kind:     KindAmidationAnchor,
			})
			used[anchor] = true
		}
	}

	// Pass 2: isolated K/R not consumed above.
	for i := signalLength; i < len(seq); i++ {
		if !sequence.IsBasic(seq[i]) || used[i] {
			continue
		}
		if i > 0 && sequence.IsBasic(seq[i-1]) {
			continue
		}
		if i+1 < len(seq) && sequence.IsBasic(seq[i+1]) {
			continue
		}
		sites = append(sites, Site{
			Position: i + 1,
			Motif:    seq[i : i+1],
			Index:    i,
			Kind:     KindSingleBasic,
		})
	}

	sort.Slice(sites, func(a, b int) bool {
		if sites[a].Index != sites[b].Index {
			return sites[a].Index < sites[b].Index
		}
		return sites[a].Position < sites[b].Position
	})

	return sites
}

// findAnchor walks back from an amidation motif at motifIndex looking for
// the nearest isolated K/R not yet consumed by another site.
func (d *Detector) findAnchor(seq string, signalLength, motifIndex int, used map[int]bool) (int, bool) {
	low := motifIndex - maxAnchorDistance
	if low < signalLength {
		low = signalLength
	}

	for p := motifIndex - 1; p >= low; p-- {
		if !sequence.IsBasic(seq[p]) || used[p] {
			continue
		}
		if p > 0 && sequence.IsBasic(seq[p-1]) {
			continue
		}
		if p+1 < len(seq) && sequence.IsBasic(seq[p+1]) {
			continue
		}
		return p, true
	}
	return 0, false
}

// scanFurin finds non-overlapping R-X-[KR]-R motifs. The cleavage point
// is four residues past the match start: the whole motif is consumed by
// the site, unlike the two-residue dibasic motifs.
func (d *Detector) scanFurin(seq string, signalLength int) []Site {
	var sites []Site

	i := signalLength
	for i+3 < len(seq) {
		if seq[i] == 'R' && sequence.IsBasic(seq[i+2]) && seq[i+3] == 'R' {
			sites = append(sites, Site{
				Position: i + 4,
				Motif:    seq[i : i+4],
				Index:    i,
				Kind:     KindFurin,
			})
			i += 4
			continue
		}
		i++
	}

	return sites
}
