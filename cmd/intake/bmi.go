package intake

import (
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var (
	bmiCm        float64
	bmiFeet      float64
	bmiInches    float64
	bmiKg        float64
	bmiStone     float64
	bmiPounds    float64
	bmiEthnicity string
)

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Convert a height and weight and classify the BMI",
	RunE: func(cmd *cobra.Command, args []string) error {
		height, err := measurementFromFlags(cmd, "cm", "feet", "inches", bmiCm, bmiFeet, bmiInches, service.MetricHeight, service.ImperialHeight)
		if err != nil {
			return err
		}
		weight, err := measurementFromFlags(cmd, "kg", "stone", "pounds", bmiKg, bmiStone, bmiPounds, service.MetricWeight, service.ImperialWeight)
		if err != nil {
			return err
		}

		cm, ok := service.HeightCm(height)
		if !ok {
			return fmt.Errorf("height must be greater than zero")
		}
		kg, ok := service.WeightKg(weight)
		if !ok {
			return fmt.Errorf("weight must be greater than zero")
		}
		bmi, _ := service.ComputeBMI(cm, kg)
		inches, err := service.ConvertLength(cm, "cm", "in")
		if err != nil {
			return err
		}
		pounds, err := service.ConvertMass(kg, "kg", "lb")
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm (%.1f in)\n", cm, inches)
		fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg (%.1f lb)\n", kg, pounds)
		fmt.Fprintf(cmd.OutOrStdout(), "BMI: %.1f (%s)\n", bmi, service.ClassifyBMI(bmi))
		if cmd.Flags().Changed("ethnicity") {
			ethnicity, err := service.Ethnicities.Parse(bmiEthnicity)
			if err != nil {
				return err
			}
			base, withCondition := service.BMIThresholds(ethnicity)
			fmt.Fprintf(cmd.OutOrStdout(), "Thresholds: %g, or %g with a weight-related condition\n", base, withCondition)
		}
		return nil
	},
}

func measurementFromFlags(
	cmd *cobra.Command,
	metricFlag, majorFlag, minorFlag string,
	metric, major, minor float64,
	metricCtor func(float64) model.Measurement,
	imperialCtor func(float64, float64) model.Measurement,
) (model.Measurement, error) {
	hasMetric := cmd.Flags().Changed(metricFlag)
	hasImperial := cmd.Flags().Changed(majorFlag) || cmd.Flags().Changed(minorFlag)
	switch {
	case hasMetric && hasImperial:
		return model.Measurement{}, fmt.Errorf("use either --%s or --%s/--%s", metricFlag, majorFlag, minorFlag)
	case hasMetric:
		return metricCtor(metric), nil
	case hasImperial:
		return imperialCtor(major, minor), nil
	default:
		return model.Measurement{}, fmt.Errorf("--%s or --%s is required", metricFlag, majorFlag)
	}
}

func init() {
	rootCmd.AddCommand(bmiCmd)
	bmiCmd.Flags().Float64Var(&bmiCm, "cm", 0, "Height in centimetres")
	bmiCmd.Flags().Float64Var(&bmiFeet, "feet", 0, "Height in feet")
	bmiCmd.Flags().Float64Var(&bmiInches, "inches", 0, "Additional inches")
	bmiCmd.Flags().Float64Var(&bmiKg, "kg", 0, "Weight in kilograms")
	bmiCmd.Flags().Float64Var(&bmiStone, "stone", 0, "Weight in stone")
	bmiCmd.Flags().Float64Var(&bmiPounds, "pounds", 0, "Additional pounds")
	bmiCmd.Flags().StringVar(&bmiEthnicity, "ethnicity", "", "Show eligibility thresholds for an ethnicity")
}
