package vcf

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// gzipMagic is the two-byte signature of a gzip stream
var gzipMagic = []byte{0x1f, 0x8b}

// StreamExtractor is the full-featured extractor. It transparently inflates
// gzip-compressed payloads (.vcf.gz) and scans records line by line without
// materializing the whole body as a string.
type StreamExtractor struct{}

// NewStreamExtractor creates the binary-aware extractor
func NewStreamExtractor() *StreamExtractor {
	return &StreamExtractor{}
}

// Extract implements Extractor
func (e *StreamExtractor) Extract(content []byte, maxSize int64) ([]domain.VariantRecord, bool, string) {
	if int64(len(content)) > maxSize {
		return []domain.VariantRecord{}, false, "VCF exceeds max size"
	}

	var reader io.Reader = bytes.NewReader(content)
	if bytes.HasPrefix(content, gzipMagic) {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return []domain.VariantRecord{}, false, fmt.Sprintf("gzip decoder: %v", err)
		}
		defer gz.Close()
		reader = gz
	}

	variants := []domain.VariantRecord{}
	seen := map[domain.Gene]bool{}
	sawHeader := false

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !utf8.ValidString(line) {
			return []domain.VariantRecord{}, false, "content is not valid text"
		}
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "#CHROM") {
				sawHeader = true
			}
			continue
		}
		if line == "" {
			continue
		}
		if rec, keep := parseDataLine(line); keep {
			variants = append(variants, rec)
			seen[rec.Gene] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return []domain.VariantRecord{}, false, fmt.Sprintf("scan: %v", err)
	}
	if !sawHeader {
		return []domain.VariantRecord{}, false, "missing #CHROM header line"
	}

	return variants, true, coverageString(seen)
}

var _ Extractor = (*StreamExtractor)(nil)
