package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/services"
)

func newGenerateCommand() *cobra.Command {
	var outputDir string
	var months int
	var seed uint64
	var companyName string
	var endMonth string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic demo bundle (profile + statements) for the analyze command",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(outputDir, companyName, endMonth, months, seed)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "demo", "directory to write the bundle into")
	cmd.Flags().IntVar(&months, "months", 6, "number of statement months")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVar(&companyName, "company", "", "company name (default: generated)")
	cmd.Flags().StringVar(&endMonth, "end-month", "", "last statement month as YYYY-MM (default: previous month)")

	return cmd
}

func runGenerate(dir, companyName, endMonth string, months int, seed uint64) error {
	gen := services.NewStatementGeneratorService()
	input, err := gen.GenerateInput(services.GeneratorOptions{
		CompanyName: companyName,
		Months:      months,
		Seed:        seed,
		EndMonth:    endMonth,
	})
	if err != nil {
		return fmt.Errorf("generating bundle: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "statements"), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	profile := config.AnalysisProfile{
		Company: config.CompanyProfile{
			Name:     input.CompanyName,
			Keywords: input.CompanyKeywords,
		},
		RelatedParties: input.RelatedParties,
	}

	for _, id := range input.AccountIDs() {
		fileName := strings.ToLower(id) + ".json"
		data, err := json.MarshalIndent(input.Statements[id], "", "  ")
		if err != nil {
			return fmt.Errorf("encoding statement %s: %w", id, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "statements", fileName), append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing statement %s: %w", id, err)
		}

		info := input.Accounts[id]
		profile.Accounts = append(profile.Accounts, config.ProfileAccount{
			ID:             id,
			BankName:       info.BankName,
			AccountNumber:  info.AccountNumber,
			AccountHolder:  info.AccountHolder,
			AccountType:    info.AccountType,
			Classification: info.Classification,
			StatementFile:  filepath.Join("statements", fileName),
		})
	}

	data, err := yaml.Marshal(&profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	profilePath := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(profilePath, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	fmt.Printf("Generated %s for %s (%d months)\n", profilePath, input.CompanyName, months)
	return nil
}
