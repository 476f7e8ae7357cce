package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"gopkg.in/yaml.v3"
)

// AnalysisProfile is the on-disk description of one analysis run: the company
// under analysis and one statement file per account. It is the CLI-side
// equivalent of the HTTP request body.
type AnalysisProfile struct {
	Company           CompanyProfile        `yaml:"company"`
	RelatedParties    []models.RelatedParty `yaml:"related_parties,omitempty"`
	ProvidedBankCodes []string              `yaml:"provided_bank_codes,omitempty"`
	Accounts          []ProfileAccount      `yaml:"accounts"`
}

type CompanyProfile struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// ProfileAccount names one account and the JSON statement file backing it.
type ProfileAccount struct {
	ID             string `yaml:"id"`
	BankName       string `yaml:"bank_name"`
	AccountNumber  string `yaml:"account_number"`
	AccountHolder  string `yaml:"account_holder"`
	AccountType    string `yaml:"account_type"`
	Classification string `yaml:"classification"`
	StatementFile  string `yaml:"statement_file"`
}

// LoadProfile reads an analysis profile file.
func LoadProfile(path string) (*AnalysisProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var profile AnalysisProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if profile.Company.Name == "" {
		return nil, fmt.Errorf("profile %s: company.name is required", path)
	}
	if len(profile.Accounts) == 0 {
		return nil, fmt.Errorf("profile %s: at least one account is required", path)
	}
	return &profile, nil
}

// BuildInput resolves the statement files named by the profile, relative to
// baseDir unless absolute, and assembles the engine input.
func (p *AnalysisProfile) BuildInput(baseDir string) (*models.AnalysisInput, error) {
	input := &models.AnalysisInput{
		CompanyName:       p.Company.Name,
		CompanyKeywords:   p.Company.Keywords,
		RelatedParties:    p.RelatedParties,
		ProvidedBankCodes: p.ProvidedBankCodes,
		Accounts:          make(map[string]models.AccountInfo, len(p.Accounts)),
		Statements:        make(map[string]*models.AccountStatement, len(p.Accounts)),
	}

	for _, acct := range p.Accounts {
		if acct.ID == "" {
			return nil, fmt.Errorf("profile account without id")
		}

		path := acct.StatementFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading statement for %s: %w", acct.ID, err)
		}
		var stmt models.AccountStatement
		if err := json.Unmarshal(data, &stmt); err != nil {
			return nil, fmt.Errorf("parsing statement for %s: %w", acct.ID, err)
		}

		input.Accounts[acct.ID] = models.AccountInfo{
			BankName:       acct.BankName,
			AccountNumber:  acct.AccountNumber,
			AccountHolder:  acct.AccountHolder,
			AccountType:    acct.AccountType,
			Classification: acct.Classification,
		}
		input.Statements[acct.ID] = &stmt
	}

	return input, nil
}
