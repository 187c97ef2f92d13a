package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare sequence", "MKTLLL", "MKTLLL"},
		{"lowercase", "mktlll", "MKTLLL"},
		{"whitespace and newlines", "MKT LLL\nTVV\r\nVTI", "MKTLLLTVVVTI"},
		{"fasta header stripped", ">sp|P01189|COLI_HUMAN POMC\nMKTLLL\nTVV", "MKTLLLTVV"},
		{"tabs", "MKT\tLLL", "MKTLLL"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("ACDEFGHIKLMNPQRSTVWY*"))
	assert.NoError(t, Validate(""))

	err := Validate("MKTXLLZ1")
	require.Error(t, err)
	// Invalid characters are reported sorted and deduplicated.
	assert.Contains(t, err.Error(), "1, X, Z")

	err = Validate("MKTXXXL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X")
	assert.NotContains(t, err.Error(), "X, X")
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("MKTLLLTVVV", 10))
	err := ValidateLength("MKTLLLTVV", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9 residues")
}

func TestIsBasic(t *testing.T) {
	assert.True(t, IsBasic('K'))
	assert.True(t, IsBasic('R'))
	assert.False(t, IsBasic('H'))
	assert.False(t, IsBasic('G'))
}

func TestParseFASTA(t *testing.T) {
	t.Run("uniprot header", func(t *testing.T) {
		rec := ParseFASTA(">sp|P01189|COLI_HUMAN Pro-opiomelanocortin\nMPRSC\nCSRSG")
		assert.Equal(t, "sp|P01189|COLI_HUMAN Pro-opiomelanocortin", rec.Header)
		assert.Equal(t, "P01189", rec.ID)
		assert.Equal(t, "MPRSCCSRSG", rec.Sequence)
	})

	t.Run("headerless", func(t *testing.T) {
		rec := ParseFASTA("mprsc\ncsrsg")
		assert.Empty(t, rec.Header)
		assert.Equal(t, "MPRSCCSRSG", rec.Sequence)
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		rec := ParseFASTA(">x\nMPRSC\n\nCSRSG\n")
		assert.Equal(t, "MPRSCCSRSG", rec.Sequence)
	})
}
