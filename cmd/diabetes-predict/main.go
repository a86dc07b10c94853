package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/di"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	input := flag.String("input", "-", "patient record JSON file, or - for stdin")
	flag.Parse()

	container, err := di.BuildCLIContainer(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	err = container.Invoke(func(service *core.PredictionService, audit core.AuditLog, logger *zap.Logger) error {
		defer logger.Sync()
		defer audit.Close()
		return predict(service, *input)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Prediction failed: %v\n", err)
		os.Exit(1)
	}
}

func predict(service *core.PredictionService, input string) error {
	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var record core.RawRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("input is not valid JSON: %w", err)
	}

	result, err := service.Predict(context.Background(), record)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
