package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/motodiag-backend/internal/services"
)

var diagnoseFlags struct {
	motorcycle uint
	symptoms   []string
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose from symptom codes and print the result as JSON",
	Long: `Resolves symptom codes (G1, G2, ...) and runs the same diagnosis path as
POST /api/diagnose. The consultation is recorded anonymously.`,
	Example: "  motodiag diagnose --motorcycle=1 --symptoms=G1,G2,G7",
	RunE:    runDiagnose,
}

func init() {
	diagnoseCmd.Flags().UintVar(&diagnoseFlags.motorcycle, "motorcycle", 0, "motorcycle id")
	diagnoseCmd.Flags().StringSliceVar(&diagnoseFlags.symptoms, "symptoms", nil, "comma separated symptom codes")
	_ = diagnoseCmd.MarkFlagRequired("motorcycle")
	_ = diagnoseCmd.MarkFlagRequired("symptoms")
}

type diagnoseOutput struct {
	ConsultationID uint   `json:"consultation_id"`
	Diagnosis      any    `json:"diagnosis"`
	RuleID         *uint  `json:"rule_id,omitempty"`
	Message        string `json:"message,omitempty"`
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids, err := a.Services.Diagnosis.ResolveSymptomCodes(ctx, diagnoseFlags.symptoms)
	if err != nil {
		return err
	}
	res, err := a.Services.Diagnosis.Diagnose(ctx, services.DiagnoseInput{
		MotorcycleID: diagnoseFlags.motorcycle,
		SymptomIDs:   ids,
	})
	if err != nil {
		return fmt.Errorf("diagnose: %w", err)
	}

	out := diagnoseOutput{ConsultationID: res.Consultation.ID}
	if res.Matched() {
		out.Diagnosis = res.Damage
		out.RuleID = &res.Rule.ID
	} else {
		out.Message = services.NoMatchMessage
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
