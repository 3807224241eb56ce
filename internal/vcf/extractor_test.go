package vcf

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

const sampleVCF = `##fileformat=VCFv4.2
##source=test
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	NA12878
22	42524947	rs3892097	G	A	.	PASS	GENE=CYP2D6;STAR=*4	GT:DP	0/1:30
10	94781859	rs4244285	G	A	.	PASS	GENE=CYP2C19	GT	1|1
12	21178615	rs4149056	T	C	.	PASS	GENE=SLCO1B1	GT	0/0
1	97915614	rs3918290	C	T	.	PASS	.	GT	0/1
7	117559590	rs0000001	A	T	.	PASS	GENE=BRCA1	GT	0/1
`

func TestStreamExtractor_Extract(t *testing.T) {
	e := NewStreamExtractor()

	variants, ok, coverage := e.Extract([]byte(sampleVCF), 5<<20)
	require.True(t, ok)
	assert.Equal(t, "CYP2C19,CYP2D6,DPYD,SLCO1B1", coverage)
	require.Len(t, variants, 4)

	assert.Equal(t, domain.VariantRecord{
		Gene:     domain.CYP2D6,
		Star:     "*4",
		RS:       "rs3892097",
		Genotype: "0/1",
	}, variants[0])

	// Phased separator is preserved
	assert.Equal(t, "1|1", variants[1].Genotype)

	// DPYD line has no GENE annotation and resolves through the rsid table
	assert.Equal(t, domain.DPYD, variants[3].Gene)
}

func TestStreamExtractor_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sampleVCF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	variants, ok, coverage := NewStreamExtractor().Extract(buf.Bytes(), 5<<20)
	require.True(t, ok)
	assert.Equal(t, "CYP2C19,CYP2D6,DPYD,SLCO1B1", coverage)
	assert.Len(t, variants, 4)
}

func TestStreamExtractor_Failures(t *testing.T) {
	e := NewStreamExtractor()

	tests := []struct {
		name    string
		content []byte
		maxSize int64
		detail  string
	}{
		{
			name:    "oversized payload",
			content: []byte(sampleVCF),
			maxSize: 10,
			detail:  "VCF exceeds max size",
		},
		{
			name:    "missing column header",
			content: []byte("##fileformat=VCFv4.2\n22\t1\trs3892097\tG\tA\t.\tPASS\tGENE=CYP2D6\n"),
			maxSize: 5 << 20,
			detail:  "missing #CHROM header line",
		},
		{
			name:    "truncated gzip stream",
			content: []byte{0x1f, 0x8b, 0x00},
			maxSize: 5 << 20,
			detail:  "gzip decoder",
		},
		{
			name:    "binary garbage",
			content: []byte("#CHROM\theader\n\xff\xfe\x00garbage"),
			maxSize: 5 << 20,
			detail:  "content is not valid text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variants, ok, coverage := e.Extract(tt.content, tt.maxSize)
			assert.False(t, ok)
			assert.Empty(t, variants)
			assert.Contains(t, coverage, tt.detail)
		})
	}
}

func TestTextExtractor_MatchesStreamOnPlainText(t *testing.T) {
	sVariants, sOK, sCov := NewStreamExtractor().Extract([]byte(sampleVCF), 5<<20)
	tVariants, tOK, tCov := NewTextExtractor().Extract([]byte(sampleVCF), 5<<20)

	assert.Equal(t, sOK, tOK)
	assert.Equal(t, sCov, tCov)
	assert.Equal(t, sVariants, tVariants)
}

func TestTextExtractor_RejectsOversized(t *testing.T) {
	variants, ok, coverage := NewTextExtractor().Extract([]byte(sampleVCF), 10)
	assert.False(t, ok)
	assert.Empty(t, variants)
	assert.Contains(t, coverage, "VCF exceeds max size")
}

func TestResolveRSID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"plain rsid", "rs4244285", "rs4244285"},
		{"first rs token wins", "COSM123;rs4244285;rs999", "rs4244285"},
		{"missing marker", ".", ""},
		{"empty", "", ""},
		{"non-rs id kept", "COSM123", "COSM123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRSID(tt.id))
		})
	}
}

func TestNormalizeGenotype(t *testing.T) {
	tests := []struct {
		name   string
		format string
		sample string
		want   string
	}{
		{"unphased het", "GT:DP", "0/1:30", "0/1"},
		{"phased hom", "GT", "1|1", "1|1"},
		{"no GT key", "DP:AD", "30:15,15", "./."},
		{"missing call", "GT", "./.", "./."},
		{"half call", "GT", "1", "./."},
		{"non-numeric allele", "GT", "A/T", "./."},
		{"sample shorter than format", "DP:GT", "30", "./."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeGenotype(tt.format, tt.sample))
		})
	}
}

func TestParseDataLine_UnsupportedGeneDropped(t *testing.T) {
	line := strings.Join([]string{"7", "117559590", "rs0000001", "A", "T", ".", "PASS", "GENE=BRCA1", "GT", "0/1"}, "\t")
	_, keep := parseDataLine(line)
	assert.False(t, keep)

	line = strings.Join([]string{"7", "117559590", ".", "A", "T", ".", "PASS", "DP=30"}, "\t")
	_, keep = parseDataLine(line)
	assert.False(t, keep)
}

func TestCoverageString(t *testing.T) {
	assert.Equal(t, "none", coverageString(map[domain.Gene]bool{}))
	assert.Equal(t, "CYP2C9,TPMT", coverageString(map[domain.Gene]bool{
		domain.TPMT:   true,
		domain.CYP2C9: true,
	}))
}
