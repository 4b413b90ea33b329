package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"momentum-scout/internal/app"
)

var (
	simulateMarket   string
	simulatePrice    float64
	simulateChange15 float64
	simulateChange60 float64
	simulateOverheat bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate-alert",
	Short: "模拟一个候选并触发告警通道",
	RunE: func(cmd *cobra.Command, args []string) error {
		if simulateMarket == "" {
			return errors.New("--market 必须指定")
		}
		if simulatePrice <= 0 {
			return errors.New("--price 必须大于 0")
		}

		opts := app.SimulateOptions{
			Market:     simulateMarket,
			Price:      simulatePrice,
			Change15:   simulateChange15,
			Change60:   simulateChange60,
			Overheated: simulateOverheat,
		}
		return getApp().SimulateAlert(cmd.Context(), opts)
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateMarket, "market", "", "市场标识，如 KRW-BTC")
	simulateCmd.Flags().Float64Var(&simulatePrice, "price", 0, "当前价格")
	simulateCmd.Flags().Float64Var(&simulateChange15, "change15", 0, "15 分钟涨幅 (%)")
	simulateCmd.Flags().Float64Var(&simulateChange60, "change60", 0, "60 分钟涨幅 (%)")
	simulateCmd.Flags().BoolVar(&simulateOverheat, "overheat", false, "标记过热警告")
}
