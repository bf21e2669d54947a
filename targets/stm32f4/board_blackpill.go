//go:build stm32f4 && !stm32f4disco

package main

import "ledtoggle/config"

func boardConfig() *config.BoardConfig {
	return config.DefaultBlackPillConfig()
}
