package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/staffcast/staffcast/internal/staffing"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
)

var (
	arrivalRatePerHour   float64
	avgHandleTimeSecs    float64
	agentCount           int
	targetServiceLevel   float64
	targetAnswerTimeSecs float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "staffctl",
	Short: "staffctl - Erlang-C staffing calculator",
	Long: `staffctl computes call-center staffing metrics from the command line:
wait probability, expected delay, service level and the minimum number
of agents needed to hit a service-level target.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&arrivalRatePerHour, "arrival-rate", 0, "calls per hour (required)")
	rootCmd.PersistentFlags().Float64Var(&avgHandleTimeSecs, "handle-time", 0, "average handle time in seconds (required)")
	rootCmd.PersistentFlags().Float64Var(&targetServiceLevel, "target", 0.8, "target service level as a fraction")
	rootCmd.PersistentFlags().Float64Var(&targetAnswerTimeSecs, "answer-time", 20, "answer-time threshold in seconds")

	evaluateCmd.Flags().IntVar(&agentCount, "agents", 0, "agents currently staffed (required)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(requiredCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate service level for a given staffing",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := staffing.NewEngine(targetAnswerTimeSecs / 3600)
		result, err := engine.Evaluate(staffing.Query{
			ArrivalRate:        arrivalRatePerHour,
			ServiceTime:        avgHandleTimeSecs / 3600,
			AgentCount:         agentCount,
			TargetServiceLevel: targetServiceLevel,
			TargetAnswerTime:   targetAnswerTimeSecs / 3600,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Offered load:       %.2f erlangs\n", result.TrafficIntensity)
		fmt.Printf("Wait probability:   %.1f%%\n", result.WaitProbability*100)
		if result.Unstable() {
			fmt.Printf("Average wait:       unbounded (queue unstable)\n")
		} else {
			fmt.Printf("Average wait:       %.1f s\n", result.AverageWaitTime*3600)
		}
		fmt.Printf("Service level:      %.1f%% (target %.1f%% within %.0f s)\n",
			result.ServiceLevel*100, targetServiceLevel*100, targetAnswerTimeSecs)
		fmt.Printf("Required agents:    %d (current %d)\n", result.RequiredAgents, agentCount)
		fmt.Printf("Recommendation:     %s\n", result.Recommendation)

		if !result.MeetsTarget {
			os.Exit(1)
		}
		return nil
	},
}

var requiredCmd = &cobra.Command{
	Use:   "required",
	Short: "Compute the minimum agents for a service-level target",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := staffing.NewEngine(targetAnswerTimeSecs / 3600)
		required, err := engine.RequiredAgentsFor(arrivalRatePerHour, avgHandleTimeSecs/3600, targetServiceLevel)
		if err != nil {
			return err
		}

		load := arrivalRatePerHour * avgHandleTimeSecs / 3600
		fmt.Printf("Offered load:    %.2f erlangs\n", load)
		fmt.Printf("Required agents: %d for %.1f%% within %.0f s (minimum stable: %d)\n",
			required, targetServiceLevel*100, targetAnswerTimeSecs, int(math.Ceil(load))+1)
		return nil
	},
}
