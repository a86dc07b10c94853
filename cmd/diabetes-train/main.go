package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/config"
	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/logging"
	"github.com/adiprasetyo045/diabetes-detector/internal/model"
	"github.com/adiprasetyo045/diabetes-detector/internal/storage"
	"github.com/adiprasetyo045/diabetes-detector/internal/training"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	dataset := flag.String("dataset", "", "override the training dataset path")
	flag.Parse()

	if err := run(*verbose, *dataset); err != nil {
		fmt.Fprintf(os.Stderr, "Training failed: %v\n", err)
		os.Exit(1)
	}
}

func run(verbose bool, datasetOverride string) error {
	logger, err := logging.InitConsoleLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	layout := storage.NewLayout(cfg)
	if err := layout.Ensure(); err != nil {
		return err
	}

	datasetPath := layout.DatasetPath
	if datasetOverride != "" {
		datasetPath = datasetOverride
	}

	pre := core.NewPreprocessor()
	ds, err := training.LoadDataset(datasetPath, cfg.GetString("training.target_column"), pre)
	if err != nil {
		return err
	}
	logger.Info("Dataset loaded",
		zap.String("path", datasetPath),
		zap.Int("rows", len(ds.X)),
		zap.Int("dropped", ds.Dropped))

	trainer := training.NewTrainer(training.DefaultTreeConfig(), cfg.GetInt64("training.seed"), logger)
	bundle, meta, err := trainer.Train(ds)
	if err != nil {
		return err
	}

	if err := model.SaveBundle(layout.BundlePath, bundle); err != nil {
		return err
	}
	if err := model.SaveMetadata(layout.MetadataPath, meta); err != nil {
		return err
	}

	logger.Info("Model trained and saved",
		zap.String("bundle", layout.BundlePath),
		zap.String("metadata", layout.MetadataPath),
		zap.Float64("cv_accuracy", meta.AccuracyCV),
		zap.Float64("train_accuracy", meta.AccuracyTrain))
	return nil
}
