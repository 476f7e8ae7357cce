package services

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/M1doriya/Analysis-PRO/internal/models"
)

type bankDetectorService struct{}

func NewBankDetectorService() BankDetectorServiceInterface {
	return &bankDetectorService{}
}

// DetectMissing counts description references to known bank codes that are
// not in the provided set. Counts are keyed by "CODE (Bank Name)"; a
// description matching several codes increments each of them. The code set
// is returned sorted so downstream scans are reproducible.
func (s *bankDetectorService) DetectMissing(pool []models.Transaction, providedCodes []string) models.MissingBankSummary {
	if len(providedCodes) == 0 {
		providedCodes = defaultProvidedBankCodes
	}
	provided := make(map[string]struct{}, len(providedCodes))
	for _, code := range providedCodes {
		provided[code] = struct{}{}
	}

	counts := make(map[string]int)
	codeSet := make(map[string]struct{})

	for i := range pool {
		descUpper := pool[i].DescriptionUpper()
		for _, bc := range bankCodes {
			if _, ok := provided[bc.code]; ok {
				continue
			}
			if strings.Contains(descUpper, bc.code) {
				counts[bc.code+" ("+bc.name+")"]++
				codeSet[bc.code] = struct{}{}
			}
		}
	}

	codes := make([]string, 0, len(codeSet))
	for code := range codeSet {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if len(codes) > 0 {
		slog.Warn("statements reference banks that were not provided",
			"codes", codes,
			"reference_count", len(counts))
	}

	return models.MissingBankSummary{Counts: counts, Codes: codes}
}
