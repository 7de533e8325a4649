package main

import (
	"fmt"
	"os"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/app"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/utils"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	port := utils.GetEnv("PORT", "8080", a.Log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := a.Run(":" + port); err != nil {
		a.Log.Warn("Server failed", "error", err)
	}
}
